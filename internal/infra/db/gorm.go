package db

import (
	"strings"
	"time"

	"github.com/opencollect/collect-api/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/opentelemetry/tracing"
)

// New opens the postgres connection pool used by every repository.
func New(cfg *config.Config) (*gorm.DB, error) {
	dsn := cfg.Database.DSN
	if cfg.Database.EnableTLS && !strings.Contains(dsn, "sslmode=") {
		dsn = strings.TrimRight(dsn, " ") + " sslmode=require"
	}

	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpen)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdle)
	sqlDB.SetConnMaxLifetime(time.Hour)
	return gdb, nil
}

// RegisterOpenTelemetryPlugin attaches the GORM tracing plugin. Call after
// telemetry.SetupTracing so the global tracer provider is in place.
func RegisterOpenTelemetryPlugin(gdb *gorm.DB) error {
	return gdb.Use(tracing.NewPlugin())
}
