package clickhouse

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"go.uber.org/zap"

	"github.com/hanabenko/ticket-scraping-api/internal/config"
)

const dialTimeout = 5 * time.Second

// Client owns the native-protocol connection to the interaction mirror
type Client struct {
	conn driver.Conn
	log  *zap.Logger
}

// NewClient opens and pings the mirror connection described by cfg
func NewClient(ctx context.Context, cfg *config.ClickHouse, log *zap.Logger) (*Client, error) {
	log = log.Named("clickhouse").With(
		zap.String("host", cfg.Host),
		zap.String("database", cfg.Database))

	log.Info("Opening interaction mirror connection",
		zap.String("port", cfg.Port),
		zap.Bool("tls", cfg.UseTLS))

	conn, err := clickhouse.Open(mirrorOptions(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open ClickHouse connection: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()
	if err := conn.Ping(pingCtx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping ClickHouse: %w", err)
	}

	log.Info("ClickHouse mirror connected")
	return &Client{conn: conn, log: log}, nil
}

func mirrorOptions(cfg *config.ClickHouse) *clickhouse.Options {
	options := &clickhouse.Options{
		Addr: []string{net.JoinHostPort(cfg.Host, cfg.Port)},
		Auth: clickhouse.Auth{
			Database: cfg.Database,
			Username: cfg.User,
			Password: cfg.Password,
		},
		Settings: clickhouse.Settings{
			"max_execution_time": 60,
		},
		DialTimeout:      dialTimeout,
		MaxOpenConns:     cfg.MaxOpenConns,
		MaxIdleConns:     cfg.MaxIdleConns,
		ConnMaxLifetime:  time.Duration(cfg.ConnMaxLifetime) * time.Second,
		ConnOpenStrategy: clickhouse.ConnOpenInOrder,
	}
	if cfg.UseTLS {
		options.TLS = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	return options
}

// Conn returns the underlying ClickHouse connection
func (c *Client) Conn() driver.Conn {
	return c.conn
}

// Close closes the mirror connection
func (c *Client) Close() error {
	if err := c.conn.Close(); err != nil {
		return fmt.Errorf("failed to close ClickHouse connection: %w", err)
	}
	c.log.Info("ClickHouse mirror connection closed")
	return nil
}
