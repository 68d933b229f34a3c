// Package errs is a thin front over cockroachdb/errors. Callers get
// stack-carrying errors without importing the library everywhere, and
// sentinel matching stays on the standard errors.Is path.
package errs

import (
	cr "github.com/cockroachdb/errors"
)

// New builds a stack-carrying error from a message.
func New(msg string) error {
	return cr.New(msg)
}

// Wrap annotates err while keeping its chain. Nil in, nil out.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Wrap(err, msg)
}

// Mark attaches markErr to err so errors.Is(err, markErr) holds while
// the original cause stays visible in logs. A nil err collapses to the
// marker itself.
func Mark(err error, markErr error) error {
	if err == nil {
		return markErr
	}
	return cr.Mark(err, markErr)
}
