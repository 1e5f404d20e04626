package domain

import (
	"errors"
	"fmt"
)

// SourceFormatError reports a source payload that is not decodable JSON or
// not shaped as an array of records
type SourceFormatError struct {
	Source string
	Err    error
}

func (e *SourceFormatError) Error() string {
	return fmt.Sprintf("malformed source %q: %v", e.Source, e.Err)
}

func (e *SourceFormatError) Unwrap() error { return e.Err }

// SourceUnavailableError reports a source that could not be read or fetched,
// including timeouts and an open circuit breaker
type SourceUnavailableError struct {
	Source string
	Err    error
}

func (e *SourceUnavailableError) Error() string {
	return fmt.Sprintf("source %q unavailable: %v", e.Source, e.Err)
}

func (e *SourceUnavailableError) Unwrap() error { return e.Err }

// EntityResolutionError reports a get-or-create that kept conflicting after retries
type EntityResolutionError struct {
	Entity string
	Key    string
	Err    error
}

func (e *EntityResolutionError) Error() string {
	return fmt.Sprintf("failed to resolve %s %q: %v", e.Entity, e.Key, e.Err)
}

func (e *EntityResolutionError) Unwrap() error { return e.Err }

// PersistenceError reports a failed statement or commit; the surrounding
// transaction has been rolled back
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// IsSourceError reports whether err is a connector-level error that a batch
// run recovers from by skipping the source
func IsSourceError(err error) bool {
	var formatErr *SourceFormatError
	var unavailableErr *SourceUnavailableError
	return errors.As(err, &formatErr) || errors.As(err, &unavailableErr)
}
