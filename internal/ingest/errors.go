package ingest

import (
	"fmt"

	pkgerrors "github.com/vendhub/vendhub-backend/pkg/errors"
)

// Row-level failures are plain typed errors: the orchestrator catches them,
// formats one message per row, and keeps going. Only structural failures of
// the whole file escalate to a coded application error.

// MissingFieldError reports a required column that is blank on one row.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Field)
}

// InvalidDateError reports a date value no format rule accepts.
type InvalidDateError struct {
	Value string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date %q", e.Value)
}

// InvalidAmountError reports a price or total that does not parse to a
// non-negative decimal.
type InvalidAmountError struct {
	Value string
}

func (e *InvalidAmountError) Error() string {
	return fmt.Sprintf("invalid amount %q", e.Value)
}

// PersistenceError wraps a store rejection. The message keeps the
// underlying store error text so operators can see what the database said.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure (%s): %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func malformedInput(reason string) error {
	return pkgerrors.New(pkgerrors.CodeMalformedInput, reason)
}

// IsMalformedInput reports whether err rejects a whole batch rather than a
// single row.
func IsMalformedInput(err error) bool {
	typed := pkgerrors.As(err)
	return typed != nil && typed.Code() == pkgerrors.CodeMalformedInput
}
