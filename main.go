package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/opencollect/collect-api/internal/bootstrap"
	"github.com/opencollect/collect-api/internal/config"
	"github.com/opencollect/collect-api/internal/infra/cache"
	"github.com/opencollect/collect-api/internal/infra/db"
	mq "github.com/opencollect/collect-api/internal/infra/queue"
	"github.com/opencollect/collect-api/internal/modules/handler"
	"github.com/opencollect/collect-api/internal/modules/service"
	"github.com/opencollect/collect-api/internal/router"
	"github.com/opencollect/collect-api/internal/telemetry"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

//	@title			collect-api
//	@version		1.0
//	@description	Survey-data collection backend: survey-unit CRUD and deposit proofs.
//	@BasePath		/api

func main() {
	inj := bootstrap.BuildContainer()

	cfg := do.MustInvoke[*config.Config](inj)
	log := do.MustInvoke[*zap.Logger](inj)
	defer log.Sync() //nolint:errcheck

	if cfg.App.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	tp, err := telemetry.SetupTracing(cfg)
	if err != nil {
		log.Fatal("telemetry setup failed", zap.Error(err))
	}

	gdb := do.MustInvoke[*gorm.DB](inj)
	rdb := do.MustInvoke[*redis.Client](inj)
	if tp != nil {
		if err := db.RegisterOpenTelemetryPlugin(gdb); err != nil {
			log.Fatal("gorm tracing plugin failed", zap.Error(err))
		}
		if rdb != nil {
			if err := cache.RegisterOpenTelemetryPlugin(rdb); err != nil {
				log.Fatal("redis tracing plugin failed", zap.Error(err))
			}
		}
	}

	publisher, _ := do.MustInvoke[service.EventPublisher](inj).(*mq.Publisher)

	engine := router.NewRouter(router.RouterDeps{
		Config:            cfg,
		Log:               log,
		SurveyUnitHandler: do.MustInvoke[*handler.SurveyUnitHandler](inj),
		CampaignHandler:   do.MustInvoke[*handler.CampaignHandler](inj),
	})

	srv := &http.Server{
		Addr:              cfg.App.Addr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("listening", zap.String("addr", cfg.App.Addr), zap.String("env", cfg.App.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := telemetry.Shutdown(shutdownCtx, tp); err != nil {
			log.Warn("telemetry shutdown failed", zap.Error(err))
		}
		if publisher != nil {
			if err := publisher.Close(); err != nil {
				log.Warn("rabbitmq close failed", zap.Error(err))
			}
		}
		if rdb != nil {
			if err := cache.Close(rdb); err != nil {
				log.Warn("redis close failed", zap.Error(err))
			}
		}
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
	log.Info("server stopped")
}
