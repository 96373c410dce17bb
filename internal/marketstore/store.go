// Package marketstore is the read layer over the ClickHouse snapshot tables
// the site's ingestion jobs keep populated: price/social/technical snapshots,
// a live-price tick table, and the ticker-alias registry.
package marketstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Addr     string
	Database string
	Username string
	Password string

	Logger *logrus.Logger
}

type Store struct {
	db     *sql.DB
	logger *logrus.Logger
}

func New(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Logger == nil {
		cfg.Logger = logrus.New()
	}

	db := clickhouse.OpenDB(&clickhouse.Options{
		Addr: []string{cfg.Addr},
		Auth: clickhouse.Auth{
			Database: cfg.Database,
			Username: cfg.Username,
			Password: cfg.Password,
		},
	})

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping ClickHouse: %w", err)
	}

	cfg.Logger.WithFields(logrus.Fields{
		"addr":     cfg.Addr,
		"database": cfg.Database,
	}).Info("connected to market store")

	return &Store{db: db, logger: cfg.Logger}, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	return s.db.Close()
}
