// Package ledger records finalized parameter sets so a call can be audited
// or replayed after the fact. It stores exactly what the engine produced;
// nothing is re-derived on read.
package ledger

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/solatis/mwsfba/internal/core/db"
	"github.com/solatis/mwsfba/internal/types"
)

// createdAtLayout keeps created_at lexically sortable in both drivers.
const createdAtLayout = "2006-01-02T15:04:05.000Z"

// List limits. A limit <= 0 means DefaultListLimit; anything above
// MaxListLimit is capped.
const (
	DefaultListLimit = 50
	MaxListLimit     = 500
)

// ErrNotFound is returned by Get for an unknown request ID.
var ErrNotFound = errors.New("ledger entry not found")

// Entry is one recorded call.
type Entry struct {
	RequestID types.RequestID `json:"request_id"`
	Group     string          `json:"group"`
	Action    string          `json:"action"`
	Version   string          `json:"version"`
	Method    string          `json:"method"`
	URL       string          `json:"url"`
	Params    types.Params    `json:"params"`
	CreatedAt time.Time       `json:"created_at"`
}

type row struct {
	RequestID string `db:"request_id"`
	Group     string `db:"action_group"`
	Action    string `db:"action"`
	Version   string `db:"version"`
	Method    string `db:"method"`
	URL       string `db:"url"`
	Params    string `db:"params"`
	CreatedAt string `db:"created_at"`
}

func (r row) entry() (Entry, error) {
	var p types.Params
	if err := json.Unmarshal([]byte(r.Params), &p); err != nil {
		return Entry{}, fmt.Errorf("ledger entry %s: corrupt params: %w", r.RequestID, err)
	}
	created, err := time.Parse(createdAtLayout, r.CreatedAt)
	if err != nil {
		return Entry{}, fmt.Errorf("ledger entry %s: corrupt created_at: %w", r.RequestID, err)
	}
	return Entry{
		RequestID: types.RequestID(r.RequestID),
		Group:     r.Group,
		Action:    r.Action,
		Version:   r.Version,
		Method:    r.Method,
		URL:       r.URL,
		Params:    p,
		CreatedAt: created,
	}, nil
}

// Store persists entries through the named ledger queries.
type Store struct {
	queries *db.Queries
	logger  *slog.Logger
	now     func() time.Time
}

// NewStore wraps loaded queries. A nil logger discards output.
func NewStore(queries *db.Queries, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{
		queries: queries,
		logger:  logger,
		now:     time.Now,
	}
}

// Record stores e. A missing RequestID or CreatedAt is filled in and the
// completed entry is returned.
func (s *Store) Record(ctx context.Context, e Entry) (Entry, error) {
	if e.RequestID == "" {
		e.RequestID = types.NewRequestID()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.now()
	}
	e.CreatedAt = e.CreatedAt.UTC().Truncate(time.Millisecond)
	if e.Params == nil {
		e.Params = types.Params{}
	}

	encoded, err := json.Marshal(e.Params)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to encode params: %w", err)
	}

	_, err = s.queries.Exec(ctx, "insert-ledger-entry",
		string(e.RequestID), e.Group, e.Action, e.Version, e.Method, e.URL,
		string(encoded), e.CreatedAt.Format(createdAtLayout),
	)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to record %s/%s: %w", e.Group, e.Action, err)
	}

	s.logger.Debug("ledger entry recorded",
		"request_id", e.RequestID,
		"group", e.Group,
		"action", e.Action,
		"params", len(e.Params),
	)
	return e, nil
}

// Get returns the entry for id.
func (s *Store) Get(ctx context.Context, id types.RequestID) (Entry, error) {
	var r row
	if err := s.queries.Get(ctx, "get-ledger-entry", &r, string(id)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entry{}, fmt.Errorf("%s: %w", id, ErrNotFound)
		}
		return Entry{}, fmt.Errorf("failed to load %s: %w", id, err)
	}
	return r.entry()
}

// List returns up to limit entries, newest first. group and action filter
// independently; an empty value matches everything.
func (s *Store) List(ctx context.Context, group, action string, limit int) ([]Entry, error) {
	limit = listLimit(limit)

	var rows []row
	var err error
	switch {
	case group != "" && action != "":
		err = s.queries.Select(ctx, "list-ledger-entries-by-action", &rows, group, action, limit)
	case group != "":
		err = s.queries.Select(ctx, "list-ledger-entries-by-group", &rows, group, limit)
	case action != "":
		err = s.queries.Select(ctx, "list-ledger-entries-by-action-name", &rows, action, limit)
	default:
		err = s.queries.Select(ctx, "list-ledger-entries", &rows, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}

	out := make([]Entry, 0, len(rows))
	for _, r := range rows {
		e, err := r.entry()
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func listLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultListLimit
	case limit > MaxListLimit:
		return MaxListLimit
	default:
		return limit
	}
}
