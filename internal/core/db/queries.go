package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/qustavo/dotsql"
)

//go:embed queries/*.sql
var queriesFS embed.FS

// Queries runs named SQL from queries/*.sql. Statements are written with ?
// placeholders and rebound for the connected driver.
type Queries struct {
	dot *dotsql.DotSql
	db  *sqlx.DB
}

// LoadQueries parses every embedded query file.
func LoadQueries(db *sqlx.DB) (*Queries, error) {
	files, err := fs.Glob(queriesFS, "queries/*.sql")
	if err != nil {
		return nil, fmt.Errorf("failed to list query files: %w", err)
	}

	var combined strings.Builder
	for _, f := range files {
		content, err := queriesFS.ReadFile(f)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", f, err)
		}
		combined.Write(content)
		combined.WriteByte('\n')
	}

	dot, err := dotsql.LoadFromString(combined.String())
	if err != nil {
		return nil, fmt.Errorf("failed to parse queries: %w", err)
	}
	return &Queries{dot: dot, db: db}, nil
}

// DB returns the underlying connection.
func (q *Queries) DB() *sqlx.DB { return q.db }

func (q *Queries) raw(name string) (string, error) {
	query, err := q.dot.Raw(name)
	if err != nil {
		return "", fmt.Errorf("query not found: %s", name)
	}
	return q.db.Rebind(query), nil
}

// Exec runs a named statement.
func (q *Queries) Exec(ctx context.Context, name string, args ...any) (sql.Result, error) {
	query, err := q.raw(name)
	if err != nil {
		return nil, err
	}
	return q.db.ExecContext(ctx, query, args...)
}

// Get scans a single row into dest.
func (q *Queries) Get(ctx context.Context, name string, dest any, args ...any) error {
	query, err := q.raw(name)
	if err != nil {
		return err
	}
	return q.db.GetContext(ctx, dest, query, args...)
}

// Select scans every row into the dest slice.
func (q *Queries) Select(ctx context.Context, name string, dest any, args ...any) error {
	query, err := q.raw(name)
	if err != nil {
		return err
	}
	return q.db.SelectContext(ctx, dest, query, args...)
}
