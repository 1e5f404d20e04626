package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Service     Service     `envconfig:"SERVICE"`
	Postgres    Postgres    `envconfig:"POSTGRES"`
	SQS         SQS         `envconfig:"SQS"`
	ClickHouse  ClickHouse  `envconfig:"CLICKHOUSE"`
	Consumer    Consumer    `envconfig:"CONSUMER"`
	Attribution Attribution `envconfig:"ATTRIBUTION"`
	Pipeline    Pipeline    `envconfig:"PIPELINE"`
}

type Service struct {
	Environment string `envconfig:"ENVIRONMENT" default:"development"`
	APIPort     string `envconfig:"API_PORT" default:"8080"`
	Host        string `envconfig:"HOST" default:"localhost:8080"`
}

type Postgres struct {
	DSN             string `envconfig:"DSN" required:"true"`
	MaxOpenConns    int    `envconfig:"MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int    `envconfig:"MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime int    `envconfig:"CONN_MAX_LIFETIME_SEC" default:"3600"`
	AutoMigrate     bool   `envconfig:"AUTO_MIGRATE" default:"true"`
}

// SQS is optional: an empty QueueURL disables publishing and consuming
type SQS struct {
	Endpoint string `envconfig:"ENDPOINT"`
	QueueURL string `envconfig:"QUEUE_URL"`
	Region   string `envconfig:"REGION" default:"us-east-1"`
}

// Enabled reports whether a queue has been configured
func (s SQS) Enabled() bool {
	return s.QueueURL != ""
}

// ClickHouse is optional: an empty Host disables the interaction mirror
type ClickHouse struct {
	Host            string `envconfig:"HOST"`
	Port            string `envconfig:"PORT" default:"9000"`
	Database        string `envconfig:"DB" default:"default"`
	User            string `envconfig:"USER" default:""`
	Password        string `envconfig:"PASSWORD" default:""`
	UseTLS          bool   `envconfig:"USE_TLS" default:"false"`
	MaxOpenConns    int    `envconfig:"MAX_OPEN_CONNS" default:"5"`
	MaxIdleConns    int    `envconfig:"MAX_IDLE_CONNS" default:"2"`
	ConnMaxLifetime int    `envconfig:"CONN_MAX_LIFETIME_SEC" default:"3600"`
}

// Enabled reports whether the interaction mirror has been configured
func (c ClickHouse) Enabled() bool {
	return c.Host != ""
}

type Consumer struct {
	BatchSizeMax    int    `envconfig:"BATCH_SIZE_MAX" default:"500"`
	BatchTimeoutSec int    `envconfig:"BATCH_TIMEOUT_SEC" default:"10"`
	HealthCheckPort string `envconfig:"HEALTH_CHECK_PORT" default:"8081"`
}

type Attribution struct {
	HalfLifeDays float64 `envconfig:"HALF_LIFE_DAYS" default:"14"`
}

type Pipeline struct {
	FetchTimeoutSec       int  `envconfig:"FETCH_TIMEOUT_SEC" default:"15"`
	RecomputeTouchedDates bool `envconfig:"RECOMPUTE_TOUCHED_DATES" default:"false"`
}

// Load reads an optional .env file and then the process environment
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if cfg.Attribution.HalfLifeDays <= 0 {
		return nil, fmt.Errorf("ATTRIBUTION_HALF_LIFE_DAYS must be positive, got %v", cfg.Attribution.HalfLifeDays)
	}
	if cfg.Pipeline.FetchTimeoutSec <= 0 {
		return nil, fmt.Errorf("PIPELINE_FETCH_TIMEOUT_SEC must be positive, got %d", cfg.Pipeline.FetchTimeoutSec)
	}

	return &cfg, nil
}
