// Package database opens and prepares the SQL database shared by the
// repositories. Postgres is the production driver; sqlite3 serves local
// development and tests.
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/atlaslingo/darlingo/internal/infrastructure/config"
)

// NewConnection creates a database connection pool from config. The returned
// cleanup function closes the pool.
func NewConnection(cfg *config.Config) (*sqlx.DB, func(), error) {
	driver := cfg.DatabaseDriver()
	db, err := sqlx.Open(driver, cfg.DatabaseURL())
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}

	if driver == "sqlite3" {
		// sqlite serializes writes; extra connections just contend.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(time.Hour)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("ping database: %w", err)
	}

	return db, func() { db.Close() }, nil
}
