package db

import (
	"context"
	"crypto/sha256"
	"embed"
	"encoding/hex"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	embeddedmigrations "github.com/solatis/mwsfba/migrations"
)

// MigrationStatus is the state of one embedded migration.
type MigrationStatus struct {
	ID          string
	Checksum    string
	Applied     bool
	AppliedAt   *time.Time
	ExecutionMs int64
}

type migration struct {
	ID       string
	Checksum string
	SQL      string
}

type appliedMigration struct {
	ID          string `db:"migration_id"`
	Checksum    string `db:"checksum"`
	AppliedAt   string `db:"applied_at"`
	ExecutionMs int64  `db:"execution_ms"`
}

// migrationSource picks the embedded schema directory for the driver.
func migrationSource(driver string) (embed.FS, string, error) {
	switch driver {
	case DriverSQLite:
		return embeddedmigrations.SqliteMigrations, "sqlite", nil
	case DriverPostgres:
		return embeddedmigrations.PostgresMigrations, "postgres", nil
	default:
		return embed.FS{}, "", fmt.Errorf("unsupported database driver: %s", driver)
	}
}

// loadMigrations ensures the tracking table exists and returns the embedded
// migrations in order along with the rows already applied.
func loadMigrations(ctx context.Context, db *sqlx.DB) ([]migration, map[string]appliedMigration, error) {
	fsys, dir, err := migrationSource(db.DriverName())
	if err != nil {
		return nil, nil, err
	}
	if err := createMigrationsTable(ctx, db); err != nil {
		return nil, nil, fmt.Errorf("failed to create migrations table: %w", err)
	}
	migrations, err := parseMigrationFiles(fsys, dir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse migrations: %w", err)
	}

	var rows []appliedMigration
	q := "SELECT migration_id, checksum, applied_at, execution_ms FROM migrations"
	if db.DriverName() == DriverPostgres {
		q = "SELECT migration_id, checksum, to_char(applied_at, 'YYYY-MM-DD\"T\"HH24:MI:SS\"Z\"') AS applied_at, execution_ms FROM migrations"
	}
	if err := db.SelectContext(ctx, &rows, q); err != nil {
		return nil, nil, fmt.Errorf("failed to query applied migrations: %w", err)
	}
	applied := make(map[string]appliedMigration, len(rows))
	for _, r := range rows {
		applied[r.ID] = r
	}
	return migrations, applied, nil
}

// MigrateUp applies every pending migration. Already-applied migrations must
// match their embedded checksum, and each migration commits together with
// its tracking row.
func MigrateUp(ctx context.Context, db *sqlx.DB) error {
	migrations, applied, err := loadMigrations(ctx, db)
	if err != nil {
		return err
	}
	if err := validateChecksums(migrations, applied); err != nil {
		return fmt.Errorf("migration checksum validation failed: %w", err)
	}

	for _, m := range migrations {
		if _, ok := applied[m.ID]; ok {
			continue
		}
		start := time.Now()

		tx, err := db.BeginTxx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin transaction for migration %s: %w", m.ID, err)
		}
		if err := applyMigration(ctx, tx, m); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to apply migration %s: %w", m.ID, err)
		}
		if err := recordMigration(ctx, tx, m, time.Since(start)); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %s: %w", m.ID, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %s: %w", m.ID, err)
		}
	}
	return nil
}

// MigrateStatus lists every embedded migration with its applied state.
func MigrateStatus(ctx context.Context, db *sqlx.DB) ([]MigrationStatus, error) {
	migrations, applied, err := loadMigrations(ctx, db)
	if err != nil {
		return nil, err
	}

	statuses := make([]MigrationStatus, 0, len(migrations))
	for _, m := range migrations {
		s := MigrationStatus{ID: m.ID, Checksum: m.Checksum}
		if a, ok := applied[m.ID]; ok {
			s.Applied = true
			s.Checksum = a.Checksum
			s.ExecutionMs = a.ExecutionMs
			if t, err := time.Parse(time.RFC3339, a.AppliedAt); err == nil {
				s.AppliedAt = &t
			}
		}
		statuses = append(statuses, s)
	}
	return statuses, nil
}

// parseMigrationFiles reads dir/*.sql sorted by file name.
func parseMigrationFiles(fsys fs.FS, dir string) ([]migration, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, err
	}

	var migrations []migration
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".sql" {
			continue
		}
		content, err := fs.ReadFile(fsys, path.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", e.Name(), err)
		}
		sum := sha256.Sum256(content)
		migrations = append(migrations, migration{
			ID:       e.Name(),
			Checksum: hex.EncodeToString(sum[:]),
			SQL:      string(content),
		})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].ID < migrations[j].ID
	})
	return migrations, nil
}

// createMigrationsTable must stay in sync with the migrations table in
// 001_ledger.sql.
func createMigrationsTable(ctx context.Context, db *sqlx.DB) error {
	createSQL := `
		CREATE TABLE IF NOT EXISTS migrations (
			migration_id TEXT PRIMARY KEY,
			checksum TEXT NOT NULL,
			applied_at TIMESTAMP WITHOUT TIME ZONE NOT NULL,
			execution_ms INTEGER NOT NULL
		)`
	if db.DriverName() == DriverSQLite {
		createSQL = `
		CREATE TABLE IF NOT EXISTS migrations (
			migration_id TEXT PRIMARY KEY,
			checksum TEXT NOT NULL,
			applied_at TEXT NOT NULL,
			execution_ms INTEGER NOT NULL,
			CHECK (applied_at LIKE '____-__-__T__:__:__Z')
		)`
	}
	_, err := db.ExecContext(ctx, createSQL)
	return err
}

func validateChecksums(migrations []migration, applied map[string]appliedMigration) error {
	embedded := make(map[string]string, len(migrations))
	for _, m := range migrations {
		embedded[m.ID] = m.Checksum
	}
	for id, a := range applied {
		want, ok := embedded[id]
		if !ok {
			return fmt.Errorf("migration %s exists in database but not in embedded files", id)
		}
		if a.Checksum != want {
			return fmt.Errorf("checksum mismatch for migration %s: expected %s, got %s", id, want, a.Checksum)
		}
	}
	return nil
}

// applyMigration runs statements one at a time; lib/pq rejects multiple
// statements in a single Exec.
func applyMigration(ctx context.Context, tx *sqlx.Tx, m migration) error {
	for _, stmt := range splitStatements(m.SQL) {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("statement failed: %w", err)
		}
	}
	return nil
}

// splitStatements drops comment lines and splits on semicolons.
func splitStatements(sql string) []string {
	var b strings.Builder
	for _, line := range strings.Split(sql, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	var out []string
	for _, stmt := range strings.Split(b.String(), ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}

func recordMigration(ctx context.Context, tx *sqlx.Tx, m migration, d time.Duration) error {
	var appliedAt any = time.Now().UTC()
	if tx.DriverName() == DriverSQLite {
		appliedAt = time.Now().UTC().Format(time.RFC3339)
	}
	_, err := tx.ExecContext(ctx, tx.Rebind(
		"INSERT INTO migrations (migration_id, checksum, applied_at, execution_ms) VALUES (?, ?, ?, ?)"),
		m.ID, m.Checksum, appliedAt, d.Milliseconds(),
	)
	return err
}
