package emeeprom

import (
	"fmt"

	"github.com/pkg/errors"
)

// Error wraps a non-success Status with the operation that produced it and,
// where one exists, the underlying block-driver failure. Callers that only
// care about the status can compare the Status field directly; callers that want
// the root cause can errors.As/errors.Unwrap through to it.
type Error struct {
	Status Status
	Op     string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("emeeprom: %s: %s: %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("emeeprom: %s: %s", e.Op, e.Status)
}

func (e *Error) Unwrap() error { return e.Err }

// statusError builds an *Error for a terminal status (BadParam, BadData,
// WriteFail) so it can be returned as a conventional Go error alongside the
// Status value. SUCCESS, REDUNDANT_COPY_USED, and BAD_CHECKSUM are not
// terminal - they are returned as a Status with a nil error, since the call
// still completed and produced usable (if degraded) output.
func statusError(op string, status Status, cause error) error {
	if cause != nil {
		cause = errors.Wrap(cause, op)
	}
	return &Error{Status: status, Op: op, Err: cause}
}
