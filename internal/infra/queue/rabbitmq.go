package mq

import (
	"context"
	"crypto/tls"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/opencollect/collect-api/internal/config"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// DialFunc opens a broker connection; kept as a type so the container can
// hand it to the publisher for reconnects.
type DialFunc func() (*amqp.Connection, error)

// NewDialFunc builds the dialer from config, switching to amqps when TLS is
// required.
func NewDialFunc(cfg *config.Config) DialFunc {
	return func() (*amqp.Connection, error) {
		url := cfg.RabbitMQ.URL
		useTLS := cfg.RabbitMQ.EnableTLS || strings.HasPrefix(url, "amqps://")
		if !useTLS {
			return amqp.Dial(url)
		}
		if strings.HasPrefix(url, "amqp://") {
			url = strings.Replace(url, "amqp://", "amqps://", 1)
		}
		return amqp.DialTLS(url, &tls.Config{MinVersion: tls.VersionTLS12})
	}
}

// Publisher emits survey-unit lifecycle events on a topic exchange.
type Publisher struct {
	ch   *amqp.Channel
	log  *zap.Logger
	cfg  *config.Config
	dial DialFunc
}

func NewPublisher(conn *amqp.Connection, log *zap.Logger, cfg *config.Config, dial DialFunc) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}
	if err := ch.ExchangeDeclare(cfg.RabbitMQ.Exchange, "topic", true, false, false, false, nil); err != nil {
		return nil, err
	}
	return &Publisher{ch: ch, log: log, cfg: cfg, dial: dial}, nil
}

func (p *Publisher) Close() error { return p.ch.Close() }

// PublishJSON marshals body and publishes it under the given routing key,
// reopening the channel once if the broker connection was lost.
func (p *Publisher) PublishJSON(ctx context.Context, exchange, routingKey string, body any) error {
	b, err := sonic.Marshal(body)
	if err != nil {
		return err
	}

	tracer := otel.Tracer(p.cfg.App.Name)
	ctx, span := tracer.Start(ctx, "rabbitmq.publish",
		trace.WithAttributes(
			attribute.String("messaging.system", "rabbitmq"),
			attribute.String("messaging.destination", exchange),
			attribute.String("messaging.routing_key", routingKey),
		))
	defer span.End()

	msg := amqp.Publishing{ContentType: "application/json", Body: b}

	if err := p.ch.PublishWithContext(ctx, exchange, routingKey, false, false, msg); err != nil {
		if !p.reconnect() {
			span.RecordError(err)
			return err
		}
		if err := p.ch.PublishWithContext(ctx, exchange, routingKey, false, false, msg); err != nil {
			span.RecordError(err)
			return err
		}
	}
	return nil
}

func (p *Publisher) reconnect() bool {
	conn, err := p.dial()
	if err != nil {
		p.log.Error("rabbitmq reconnect failed", zap.Error(err))
		return false
	}
	ch, err := conn.Channel()
	if err != nil {
		p.log.Error("rabbitmq channel reopen failed", zap.Error(err))
		return false
	}
	p.ch = ch
	p.log.Warn("rabbitmq connection reestablished")
	return true
}
