package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"noteful/config"
	"noteful/pkg/logger"

	_ "github.com/lib/pq"
)

// Connect opens the Postgres pool and pings it, retrying a few times in case
// of temporary DNS/network blips.
func Connect(cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := ping(db, cfg.PingRetries, cfg.PingInterval); err != nil {
		_ = db.Close()
		return nil, err
	}
	logger.Sugar.Info("Successfully connected to the database")
	return db, nil
}

func ping(db *sql.DB, retries int, interval time.Duration) error {
	if retries < 1 {
		retries = 1
	}
	var err error
	for i := 0; i < retries; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), interval)
		err = db.PingContext(ctx)
		cancel()
		if err == nil {
			return nil
		}
		logger.Sugar.Infof("Database connection failed, retrying in %s... (%v)", interval, err)
		time.Sleep(interval)
	}
	return fmt.Errorf("could not connect to database after %d attempts: %w", retries, err)
}
