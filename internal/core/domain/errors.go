package domain

import "errors"

// Error kinds returned by the registry. Every rejected operation wraps exactly
// one of them, so callers branch with errors.Is.
var (
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrNotFound         = errors.New("not found")
	ErrInvalidState     = errors.New("invalid state")
	ErrThrottleExceeded = errors.New("throttle exceeded")
	ErrCapacityExceeded = errors.New("capacity exceeded")
	ErrCooldown         = errors.New("bid cooldown active")
	ErrDuplicate        = errors.New("duplicate keyword")
)

// Kind is a machine-readable error code.
type Kind string

const (
	KindUnknown          Kind = "UNKNOWN"
	KindInvalidArgument  Kind = "INVALID_ARGUMENT"
	KindNotFound         Kind = "NOT_FOUND"
	KindInvalidState     Kind = "INVALID_STATE"
	KindThrottleExceeded Kind = "THROTTLE_EXCEEDED"
	KindCapacityExceeded Kind = "CAPACITY_EXCEEDED"
	KindCooldown         Kind = "COOLDOWN"
	KindDuplicate        Kind = "DUPLICATE"
)

var kinds = []struct {
	err  error
	kind Kind
}{
	{ErrInvalidArgument, KindInvalidArgument},
	{ErrNotFound, KindNotFound},
	{ErrInvalidState, KindInvalidState},
	{ErrThrottleExceeded, KindThrottleExceeded},
	{ErrCapacityExceeded, KindCapacityExceeded},
	{ErrCooldown, KindCooldown},
	{ErrDuplicate, KindDuplicate},
}

// KindOf returns the code of the first error kind found in err's chain, or
// KindUnknown when err carries none.
func KindOf(err error) Kind {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return KindUnknown
}
