package stats

import (
	"errors"
	"fmt"
)

// Sentinel kinds for classification failures. They are reported on the
// Sheet, never returned: one bad key must not fail a collection cycle.
var (
	ErrUnknownStat     = errors.New("unknown statistic")
	ErrUnknownCategory = errors.New("unknown statistic category")
	ErrNotNumeric      = errors.New("statistic value is not numeric")
	ErrMalformed       = errors.New("malformed statistics section")
	ErrDuplicate       = errors.New("statistic already recorded under the same labels")
)

// Unclassified is a raw key that was skipped.
type Unclassified struct {
	Key    string
	Reason error
}

// Error implements error so callers can log or wrap it directly.
func (u Unclassified) Error() string {
	return fmt.Sprintf("%s: %v", u.Key, u.Reason)
}

// Unwrap exposes the sentinel reason to errors.Is.
func (u Unclassified) Unwrap() error {
	return u.Reason
}
