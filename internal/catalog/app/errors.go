package app

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("not found")

// ValidationError reports a form-stage problem with caller input. It is
// raised before any network call is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// CatalogError wraps any failure talking to the remote catalog: network
// errors, non-2xx responses, malformed payloads. Status is 0 when no
// HTTP status was obtained.
type CatalogError struct {
	Op     string
	Status int
	Err    error
}

func (e *CatalogError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("catalog %s: status %d: %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("catalog %s: %v", e.Op, e.Err)
}

func (e *CatalogError) Unwrap() error { return e.Err }
