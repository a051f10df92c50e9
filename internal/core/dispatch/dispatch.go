// Package dispatch turns finalized requests into calls and hands them to an
// Invoker. Sending, signing and retrying belong to the Invoker; this package
// only ships DryRun, which logs a call and optionally records it.
package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/solatis/mwsfba/internal/core/config"
	"github.com/solatis/mwsfba/internal/ledger"
	"github.com/solatis/mwsfba/internal/params"
	"github.com/solatis/mwsfba/internal/types"
)

// Call is everything a transport needs to send one request. MWS takes the
// parameters as a form-encoded POST body.
type Call struct {
	RequestID types.RequestID
	Group     string
	Action    string
	Version   string
	Method    string
	URL       string
	Params    types.Params
}

// Body returns the encoded parameters.
func (c Call) Body() string { return c.Params.Encode() }

// Result reports what an Invoker did with a call.
type Result struct {
	RequestID types.RequestID
	Sent      bool
	Recorded  bool
}

// Invoker delivers calls. Implementations must be safe for concurrent use.
type Invoker interface {
	Invoke(ctx context.Context, call Call) (Result, error)
}

// Prepare finalizes req and addresses it at the configured endpoint.
// Finalize errors are returned unwrapped so callers can match them.
func Prepare(cfg *config.Config, req *params.Request) (Call, error) {
	p, err := req.Finalize()
	if err != nil {
		return Call{}, err
	}
	return Call{
		RequestID: types.NewRequestID(),
		Group:     req.Group(),
		Action:    req.Action(),
		Version:   req.Version(),
		Method:    http.MethodPost,
		URL:       cfg.BaseURL() + req.Path(),
		Params:    p,
	}, nil
}

// Recorder persists calls; *ledger.Store satisfies it.
type Recorder interface {
	Record(ctx context.Context, e ledger.Entry) (ledger.Entry, error)
}

// DryRun logs calls instead of sending them. With a Recorder set each call
// is also written to the ledger.
type DryRun struct {
	recorder Recorder
	logger   *slog.Logger
}

// NewDryRun returns a DryRun invoker. recorder may be nil.
func NewDryRun(recorder Recorder, logger *slog.Logger) *DryRun {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &DryRun{recorder: recorder, logger: logger}
}

// Invoke implements Invoker. The recorder gets its own copy of the params.
func (d *DryRun) Invoke(ctx context.Context, call Call) (Result, error) {
	res := Result{RequestID: call.RequestID}

	d.logger.Info("dry run",
		"request_id", call.RequestID,
		"action", call.Action,
		"method", call.Method,
		"url", call.URL,
		"params", len(call.Params),
	)
	d.logger.Debug("dry run body", "request_id", call.RequestID, "body", call.Body())

	if d.recorder == nil {
		return res, nil
	}
	_, err := d.recorder.Record(ctx, ledger.Entry{
		RequestID: call.RequestID,
		Group:     call.Group,
		Action:    call.Action,
		Version:   call.Version,
		Method:    call.Method,
		URL:       call.URL,
		Params:    call.Params.Clone(),
	})
	if err != nil {
		return res, fmt.Errorf("dry run %s: %w", call.RequestID, err)
	}
	res.Recorded = true
	return res, nil
}
