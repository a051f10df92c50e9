package db

import (
	"context"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *Queries {
	t.Helper()
	ctx := context.Background()
	conn, err := Open(ctx, "sqlite://"+filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, MigrateUp(ctx, conn))
	q, err := LoadQueries(conn)
	require.NoError(t, err)
	return q
}

func TestParseURL(t *testing.T) {
	tests := []struct {
		url        string
		wantDriver string
		wantSource string
		wantErr    bool
	}{
		{"sqlite://ledger.db", DriverSQLite, "ledger.db", false},
		{"sqlite://data/ledger.db", DriverSQLite, "data/ledger.db", false},
		{"sqlite:///var/lib/mwsfba/ledger.db", DriverSQLite, "/var/lib/mwsfba/ledger.db", false},
		{"postgres://u:p@localhost:5432/mws?sslmode=disable", DriverPostgres, "postgres://u:p@localhost:5432/mws?sslmode=disable", false},
		{"mysql://localhost/mws", "", "", true},
		{"sqlite://", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			driver, source, err := ParseURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseURL() error = %v, wantErr %v", err, tt.wantErr)
			}
			if driver != tt.wantDriver || source != tt.wantSource {
				t.Errorf("ParseURL() = (%q, %q), want (%q, %q)", driver, source, tt.wantDriver, tt.wantSource)
			}
		})
	}
}

func TestMigrateUp_Idempotent(t *testing.T) {
	q := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, MigrateUp(ctx, q.DB()), "second run must be a no-op")

	statuses, err := MigrateStatus(ctx, q.DB())
	require.NoError(t, err)
	require.NotEmpty(t, statuses)
	for _, s := range statuses {
		assert.True(t, s.Applied, "migration %s not applied", s.ID)
		assert.NotNil(t, s.AppliedAt, "migration %s has no applied_at", s.ID)
	}
}

func TestMigrateUp_ChecksumMismatch(t *testing.T) {
	q := openTestDB(t)
	ctx := context.Background()

	_, err := q.DB().ExecContext(ctx, "UPDATE migrations SET checksum = 'tampered'")
	require.NoError(t, err)

	err = MigrateUp(ctx, q.DB())
	assert.ErrorContains(t, err, "checksum mismatch")
}

func TestParseMigrationFiles_Order(t *testing.T) {
	fsys := fstest.MapFS{
		"sqlite/002_b.sql": {Data: []byte("SELECT 2;")},
		"sqlite/001_a.sql": {Data: []byte("SELECT 1;")},
		"sqlite/notes.txt": {Data: []byte("ignored")},
	}
	got, err := parseMigrationFiles(fsys, "sqlite")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "001_a.sql", got[0].ID)
	assert.Equal(t, "002_b.sql", got[1].ID)
	assert.Len(t, got[0].Checksum, 64)
}

func TestSplitStatements(t *testing.T) {
	sql := "-- header; with semicolon\nCREATE TABLE a (x INT);\n\n  -- note\nCREATE INDEX i ON a (x);\n"
	got := splitStatements(sql)
	assert.Equal(t, []string{"CREATE TABLE a (x INT)", "CREATE INDEX i ON a (x)"}, got)
}

func TestQueries_UnknownName(t *testing.T) {
	q := openTestDB(t)
	_, err := q.Exec(context.Background(), "no-such-query")
	assert.ErrorContains(t, err, "query not found")
}

func TestQueries_Count(t *testing.T) {
	q := openTestDB(t)
	var n int
	require.NoError(t, q.Get(context.Background(), "count-ledger-entries", &n))
	assert.Equal(t, 0, n)
}
