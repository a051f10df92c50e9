// Package db opens the ledger database and runs its migrations.
//
// SQLite serves local use and tests; PostgreSQL serves shared deployments.
// Both go through sqlx. Schema files are embedded from the migrations
// package, named queries from queries/*.sql.
package db

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Pool limits. The ledger sees one insert per recorded call, so the pool
// stays small.
const (
	maxOpenConns    = 8
	maxIdleConns    = 2
	connMaxIdleTime = 5 * time.Minute
	connMaxLifetime = 30 * time.Minute
)

// Driver names as reported by sqlx.DB.DriverName.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// ParseURL maps a database URL to a driver name and data source.
// sqlite://file.db is relative, sqlite:///abs/file.db absolute.
func ParseURL(dbURL string) (driver, dataSource string, err error) {
	u, err := url.Parse(dbURL)
	if err != nil {
		return "", "", fmt.Errorf("invalid database URL: %w", err)
	}

	switch u.Scheme {
	case "sqlite":
		dataSource = u.Path
		if u.Host != "" {
			dataSource = u.Host + u.Path
		}
		if dataSource == "" {
			return "", "", fmt.Errorf("sqlite URL has no path: %s", dbURL)
		}
		return DriverSQLite, dataSource, nil
	case "postgres", "postgresql":
		return DriverPostgres, dbURL, nil
	default:
		return "", "", fmt.Errorf("unsupported database scheme: %q (expected sqlite or postgres)", u.Scheme)
	}
}

// Open connects to dbURL, configures pooling and pings the server.
func Open(ctx context.Context, dbURL string) (*sqlx.DB, error) {
	driver, dataSource, err := ParseURL(dbURL)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Open(driver, dataSource)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxIdleTime(connMaxIdleTime)
	db.SetConnMaxLifetime(connMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}
