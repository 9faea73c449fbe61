package bootstrap

import (
	"context"

	"github.com/opencollect/collect-api/internal/config"
	"github.com/opencollect/collect-api/internal/infra/blob"
	"github.com/opencollect/collect-api/internal/infra/cache"
	"github.com/opencollect/collect-api/internal/infra/db"
	"github.com/opencollect/collect-api/internal/infra/httpclient"
	"github.com/opencollect/collect-api/internal/infra/logger"
	mq "github.com/opencollect/collect-api/internal/infra/queue"
	"github.com/opencollect/collect-api/internal/modules/handler"
	"github.com/opencollect/collect-api/internal/modules/model"
	"github.com/opencollect/collect-api/internal/modules/repo"
	"github.com/opencollect/collect-api/internal/modules/service"
	"github.com/opencollect/collect-api/internal/pkg/depositproof"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func BuildContainer() *do.Injector {
	inj := do.New()

	// config
	do.Provide(inj, func(i *do.Injector) (*config.Config, error) {
		return config.Load()
	})

	// logger
	do.Provide(inj, func(i *do.Injector) (*zap.Logger, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return logger.New(cfg.Log.Level)
	})

	// DB
	do.Provide(inj, func(i *do.Injector) (*gorm.DB, error) {
		cfg := do.MustInvoke[*config.Config](i)
		log := do.MustInvoke[*zap.Logger](i)
		d, err := db.New(cfg)
		if err != nil {
			return nil, err
		}
		if cfg.Database.AutoMigrate {
			err := d.AutoMigrate(
				&model.Campaign{},
				&model.QuestionnaireModel{},
				&model.SurveyUnit{},
				&model.Data{},
				&model.Comment{},
				&model.Personalization{},
				&model.StateData{},
			)
			if err != nil {
				return nil, err
			}
		}
		if err := EnsureDemoCampaignExists(context.Background(), d, cfg, log); err != nil {
			return nil, err
		}
		return d, nil
	})

	// Redis (habilitation cache); optional
	do.Provide(inj, func(i *do.Injector) (*redis.Client, error) {
		cfg := do.MustInvoke[*config.Config](i)
		if cfg.Redis.Addr == "" {
			return nil, nil
		}
		return cache.New(cfg)
	})

	// RabbitMQ
	do.Provide(inj, func(i *do.Injector) (mq.DialFunc, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return mq.NewDialFunc(cfg), nil
	})
	do.Provide(inj, func(i *do.Injector) (*amqp.Connection, error) {
		dial := do.MustInvoke[mq.DialFunc](i)
		return dial()
	})
	do.Provide(inj, func(i *do.Injector) (service.EventPublisher, error) {
		cfg := do.MustInvoke[*config.Config](i)
		if cfg.RabbitMQ.URL == "" {
			return nil, nil
		}
		conn := do.MustInvoke[*amqp.Connection](i)
		log := do.MustInvoke[*zap.Logger](i)
		dial := do.MustInvoke[mq.DialFunc](i)
		return mq.NewPublisher(conn, log, cfg, dial)
	})

	// S3 deposit-proof archive; optional
	do.Provide(inj, func(i *do.Injector) (service.ProofArchiver, error) {
		cfg := do.MustInvoke[*config.Config](i)
		if cfg.S3.Bucket == "" {
			return nil, nil
		}
		return blob.NewS3(context.Background(), cfg)
	})

	// Pilotage client
	do.Provide(inj, func(i *do.Injector) (*httpclient.PilotageClient, error) {
		cfg := do.MustInvoke[*config.Config](i)
		log := do.MustInvoke[*zap.Logger](i)
		return httpclient.NewPilotageClient(cfg, log), nil
	})

	// Repo
	do.Provide(inj, func(i *do.Injector) (repo.CampaignRepo, error) {
		return repo.NewCampaignRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.SurveyUnitRepo, error) {
		return repo.NewSurveyUnitRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.SurveyUnitStore, error) {
		return repo.NewSurveyUnitStore(
			do.MustInvoke[*gorm.DB](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})

	// Access gate
	do.Provide(inj, func(i *do.Injector) (service.AccessGate, error) {
		return service.NewAccessGate(
			do.MustInvoke[*httpclient.PilotageClient](i),
			do.MustInvoke[*redis.Client](i),
			do.MustInvoke[*config.Config](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})

	// Deposit-proof renderer
	do.Provide(inj, func(i *do.Injector) (depositproof.Renderer, error) {
		return depositproof.NewFORenderer(), nil
	})

	// Service
	do.Provide(inj, func(i *do.Injector) (service.SurveyUnitService, error) {
		return service.NewSurveyUnitService(
			do.MustInvoke[repo.SurveyUnitRepo](i),
			do.MustInvoke[repo.CampaignRepo](i),
			do.MustInvoke[repo.SurveyUnitStore](i),
			do.MustInvoke[service.AccessGate](i),
			do.MustInvoke[depositproof.Renderer](i),
			do.MustInvoke[service.EventPublisher](i),
			do.MustInvoke[service.ProofArchiver](i),
			do.MustInvoke[*config.Config](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.CampaignService, error) {
		return service.NewCampaignService(do.MustInvoke[repo.CampaignRepo](i)), nil
	})

	// Handler
	do.Provide(inj, func(i *do.Injector) (*handler.SurveyUnitHandler, error) {
		return handler.NewSurveyUnitHandler(do.MustInvoke[service.SurveyUnitService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.CampaignHandler, error) {
		return handler.NewCampaignHandler(
			do.MustInvoke[service.CampaignService](i),
			do.MustInvoke[service.SurveyUnitService](i),
		), nil
	})

	return inj
}
