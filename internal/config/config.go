package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds every externally supplied setting. It is loaded once at
// startup and injected where needed; nothing reads ambient state per request.
type Config struct {
	App struct {
		Name string `mapstructure:"name"`
		Addr string `mapstructure:"addr"`
		// Env is the deployment profile. Survey-unit creation is only
		// allowed outside production.
		Env string `mapstructure:"env" validate:"oneof=dev test prod"`
	} `mapstructure:"app"`

	Auth struct {
		// Mode "noauth" resolves every caller to the guest identity.
		Mode      string `mapstructure:"mode" validate:"oneof=jwt noauth"`
		JWTSecret string `mapstructure:"jwt_secret"`
	} `mapstructure:"auth"`

	Pilotage struct {
		BaseURL string `mapstructure:"base_url"`
		// IntegrationOverride relaxes the campaign-listing habilitation
		// gate and switches the listing to the reduced projection.
		IntegrationOverride bool `mapstructure:"integration_override"`
		CacheTTLSec         int  `mapstructure:"cache_ttl_sec"`
	} `mapstructure:"pilotage"`

	Database struct {
		DSN         string `mapstructure:"dsn" validate:"required"`
		MaxOpen     int    `mapstructure:"max_open"`
		MaxIdle     int    `mapstructure:"max_idle"`
		AutoMigrate bool   `mapstructure:"auto_migrate"`
		EnableTLS   bool   `mapstructure:"enable_tls"`
	} `mapstructure:"database"`

	Redis struct {
		Addr      string `mapstructure:"addr"`
		Password  string `mapstructure:"password"`
		DB        int    `mapstructure:"db"`
		PoolSize  int    `mapstructure:"pool_size"`
		EnableTLS bool   `mapstructure:"enable_tls"`
	} `mapstructure:"redis"`

	RabbitMQ struct {
		URL       string `mapstructure:"url"`
		EnableTLS bool   `mapstructure:"enable_tls"`
		Exchange  string `mapstructure:"exchange"`
		// RoutingKeyState is where survey-unit lifecycle events land.
		RoutingKeyState string `mapstructure:"routing_key_state"`
	} `mapstructure:"rabbitmq"`

	S3 struct {
		Endpoint     string `mapstructure:"endpoint"`
		Region       string `mapstructure:"region"`
		Bucket       string `mapstructure:"bucket"`
		AccessKey    string `mapstructure:"access_key"`
		SecretKey    string `mapstructure:"secret_key"`
		UsePathStyle bool   `mapstructure:"use_path_style"`
	} `mapstructure:"s3"`

	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`

	Telemetry struct {
		Enabled      bool   `mapstructure:"enabled"`
		OtlpEndpoint string `mapstructure:"otlp_endpoint"`
	} `mapstructure:"telemetry"`
}

// CreationAllowed reports whether the deployment profile permits survey-unit
// creation over HTTP.
func (c *Config) CreationAllowed() bool {
	return c.App.Env == "dev" || c.App.Env == "test"
}

// setDefaults registers every key, zero-valued ones included, so environment
// overrides bind even when the key is absent from config.yaml.
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "collect-api")
	v.SetDefault("app.addr", ":8080")
	v.SetDefault("app.env", "dev")
	v.SetDefault("auth.mode", "noauth")
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("pilotage.base_url", "")
	v.SetDefault("pilotage.integration_override", false)
	v.SetDefault("pilotage.cache_ttl_sec", 300)
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.max_open", 20)
	v.SetDefault("database.max_idle", 5)
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("database.enable_tls", false)
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.enable_tls", false)
	v.SetDefault("rabbitmq.url", "")
	v.SetDefault("rabbitmq.enable_tls", false)
	v.SetDefault("rabbitmq.exchange", "collect.survey-unit")
	v.SetDefault("rabbitmq.routing_key_state", "state.changed")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.access_key", "")
	v.SetDefault("s3.secret_key", "")
	v.SetDefault("s3.use_path_style", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.otlp_endpoint", "")
}

// Load reads config.yaml (working directory or /etc/collect-api) and applies
// COLLECT_* environment overrides, e.g. COLLECT_DATABASE_DSN.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/collect-api")
	v.SetEnvPrefix("COLLECT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// a missing file is fine, env vars and defaults still apply
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}
