package api

import (
	"errors"
	"net/http"

	"github.com/solatis/mwsfba/internal/ledger"
	"github.com/solatis/mwsfba/internal/types"
)

// ErrLedgerDisabled is returned by ledger reads when no database is configured.
var ErrLedgerDisabled = errors.New("ledger disabled: no ledger.db_url configured")

// ErrStorage wraps ledger write and read failures.
var ErrStorage = errors.New("ledger storage unavailable")

// ErrInvalidDocument marks call documents rejected before reaching the engine.
var ErrInvalidDocument = errors.New("invalid call document")

// ErrInvalidQuery marks malformed query parameters on read endpoints.
var ErrInvalidQuery = errors.New("invalid query parameter")

// Status maps service errors to HTTP status codes.
// Unknown action or ledger entry: 404. Malformed input: 400.
// Engine validation: 422. Storage: 503. Anything else: 500.
func Status(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, types.ErrUnknownAction),
		errors.Is(err, ledger.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidDocument),
		errors.Is(err, ErrInvalidQuery),
		errors.Is(err, types.ErrUnknownField):
		return http.StatusBadRequest
	case errors.Is(err, types.ErrMissingRequiredField),
		errors.Is(err, types.ErrInvalidEnumValue),
		errors.Is(err, types.ErrInvalidTimestamp),
		errors.Is(err, types.ErrInvalidComplexValue),
		errors.Is(err, types.ErrCoercionFailed),
		errors.Is(err, types.ErrListTooLong),
		errors.Is(err, types.ErrWireKeyCollision):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrLedgerDisabled),
		errors.Is(err, ErrStorage):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
