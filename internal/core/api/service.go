// Package api holds the service layer shared by the CLI and the HTTP
// preview server: call document in, finalized parameters out.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/solatis/mwsfba/internal/calldoc"
	"github.com/solatis/mwsfba/internal/core/config"
	"github.com/solatis/mwsfba/internal/core/dispatch"
	"github.com/solatis/mwsfba/internal/fba"
	"github.com/solatis/mwsfba/internal/ledger"
	"github.com/solatis/mwsfba/internal/types"
)

// LedgerReader lists recorded calls; *ledger.Store satisfies it.
type LedgerReader interface {
	Get(ctx context.Context, id types.RequestID) (ledger.Entry, error)
	List(ctx context.Context, group, action string, limit int) ([]ledger.Entry, error)
}

// ParamsService builds parameter sets from call documents and optionally
// hands them to an invoker.
type ParamsService struct {
	cfg     *config.Config
	catalog *fba.Catalog
	invoker dispatch.Invoker
	entries LedgerReader
	logger  *slog.Logger
}

// Option configures a ParamsService.
type Option func(*ParamsService)

// WithInvoker sets the invoker used by Submit.
func WithInvoker(inv dispatch.Invoker) Option {
	return func(s *ParamsService) { s.invoker = inv }
}

// WithLedger enables ledger reads.
func WithLedger(r LedgerReader) Option {
	return func(s *ParamsService) { s.entries = r }
}

// WithLogger sets the logger; the default discards.
func WithLogger(l *slog.Logger) Option {
	return func(s *ParamsService) { s.logger = l }
}

// NewParamsService creates the service. Without WithInvoker, Submit uses a
// DryRun invoker that records nothing.
func NewParamsService(cfg *config.Config, catalog *fba.Catalog, opts ...Option) (*ParamsService, error) {
	if cfg == nil {
		return nil, fmt.Errorf("cfg cannot be nil")
	}
	if catalog == nil {
		return nil, fmt.Errorf("catalog cannot be nil")
	}

	s := &ParamsService{
		cfg:     cfg,
		catalog: catalog,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.invoker == nil {
		s.invoker = dispatch.NewDryRun(nil, s.logger)
	}
	return s, nil
}

// Catalog returns the compiled action catalog.
func (s *ParamsService) Catalog() *fba.Catalog { return s.catalog }

// BuildResult is a finalized call.
type BuildResult struct {
	RequestID types.RequestID `json:"request_id"`
	Group     string          `json:"group"`
	Action    string          `json:"action"`
	Method    string          `json:"method"`
	URL       string          `json:"url"`
	Params    types.Params    `json:"params"`
	Query     string          `json:"query"`
	Recorded  bool            `json:"recorded"`
}

func newBuildResult(call dispatch.Call) *BuildResult {
	return &BuildResult{
		RequestID: call.RequestID,
		Group:     call.Group,
		Action:    call.Action,
		Method:    call.Method,
		URL:       call.URL,
		Params:    call.Params,
		Query:     call.Body(),
	}
}

// Build finalizes doc without invoking anything.
func (s *ParamsService) Build(ctx context.Context, doc *calldoc.Document) (*BuildResult, error) {
	call, err := s.prepare(doc)
	if err != nil {
		return nil, err
	}
	return newBuildResult(call), nil
}

// Submit finalizes doc and hands the call to the invoker.
func (s *ParamsService) Submit(ctx context.Context, doc *calldoc.Document) (*BuildResult, error) {
	call, err := s.prepare(doc)
	if err != nil {
		return nil, err
	}
	res, err := s.invoker.Invoke(ctx, call)
	if err != nil {
		s.logger.Error("invoke failed", "request_id", call.RequestID, "action", call.Action, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	out := newBuildResult(call)
	out.Recorded = res.Recorded
	return out, nil
}

func (s *ParamsService) prepare(doc *calldoc.Document) (dispatch.Call, error) {
	if doc == nil {
		return dispatch.Call{}, fmt.Errorf("%w: empty", ErrInvalidDocument)
	}
	req, err := calldoc.Build(s.catalog, doc)
	if err != nil {
		return dispatch.Call{}, err
	}
	call, err := dispatch.Prepare(s.cfg, req)
	if err != nil {
		s.logger.Debug("finalize rejected", "group", doc.Group, "action", doc.Action, "error", err)
		return dispatch.Call{}, err
	}
	s.logger.Debug("finalized", "request_id", call.RequestID, "action", call.Action, "params", len(call.Params))
	return call, nil
}

// Entry returns one recorded call.
func (s *ParamsService) Entry(ctx context.Context, id string) (ledger.Entry, error) {
	if s.entries == nil {
		return ledger.Entry{}, ErrLedgerDisabled
	}
	rid, err := types.ParseRequestID(id)
	if err != nil {
		return ledger.Entry{}, fmt.Errorf("%w: request id %q: %v", ErrInvalidDocument, id, err)
	}
	e, err := s.entries.Get(ctx, rid)
	if err != nil && !errors.Is(err, ledger.ErrNotFound) {
		return ledger.Entry{}, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return e, err
}

// Entries lists recorded calls, newest first.
func (s *ParamsService) Entries(ctx context.Context, group, action string, limit int) ([]ledger.Entry, error) {
	if s.entries == nil {
		return nil, ErrLedgerDisabled
	}
	out, err := s.entries.List(ctx, group, action, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return out, nil
}

// ParseDocument decodes and validates a JSON call document.
func ParseDocument(data []byte) (*calldoc.Document, error) {
	doc, err := calldoc.ParseJSON(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return doc, nil
}
