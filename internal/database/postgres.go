package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Connection retries cover the usual compose startup race where the API
// container comes up before postgres accepts connections.
const (
	connectWait    = 30 * time.Second
	initialBackoff = 500 * time.Millisecond
	maxBackoff     = 5 * time.Second
)

type PostgresConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxIdle     time.Duration
	ConnMaxLifetime time.Duration
}

// NewPostgres opens a pgx-backed pool and blocks until the database answers
// a ping or the wait budget runs out.
func NewPostgres(cfg PostgresConfig, logger *slog.Logger) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdle)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), connectWait)
	defer cancel()

	backoff := initialBackoff
	for {
		err = db.PingContext(ctx)
		if err == nil {
			return db, nil
		}
		logger.Warn("postgres not ready, retrying", "error", err)
		select {
		case <-ctx.Done():
			db.Close()
			return nil, fmt.Errorf("ping postgres: %w", err)
		case <-time.After(backoff):
		}
		if backoff < maxBackoff {
			backoff *= 2
		}
	}
}
