package ledger

import "errors"

var (
	// ErrStoreUnavailable wraps a failure of the underlying kv store.
	ErrStoreUnavailable = errors.New("ledger: store unavailable")
	// ErrMalformedData means a stored collection exists but does not parse.
	ErrMalformedData = errors.New("ledger: malformed stored data")
	// ErrInvalidDebt rejects a debt that fails validation.
	ErrInvalidDebt = errors.New("ledger: invalid debt")
	// ErrInvalidPayment rejects a non-positive, non-finite, or out-of-range amount.
	ErrInvalidPayment = errors.New("ledger: invalid payment")
)
