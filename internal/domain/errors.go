package domain

import (
	"errors"
	"fmt"
)

// ConfigError reports a malformed or incomplete configuration.
// It is fatal: no engine is started from a configuration that fails validation.
type ConfigError struct {
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid configuration: %s: %v", e.Reason, e.Err)
	}
	return "invalid configuration: " + e.Reason
}

func (e *ConfigError) Unwrap() error { return e.Err }

// NewConfigError formats a ConfigError reason.
func NewConfigError(format string, args ...any) *ConfigError {
	return &ConfigError{Reason: fmt.Sprintf(format, args...)}
}

// TreeError reports a structural conflict in sidebar data.
type TreeError struct {
	Path     string
	Conflict string
}

func (e *TreeError) Error() string {
	return fmt.Sprintf("sidebar conflict at %q: %s", e.Path, e.Conflict)
}

// QueryError reports a query issued against an invalid session.
// Hosts log it and drop the query.
type QueryError struct {
	Session string
	Reason  string
	Err     error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query on session %s: %s", e.Session, e.Reason)
}

func (e *QueryError) Unwrap() error { return e.Err }

// ErrSessionClosed is wrapped by QueryError when a torn-down session is used.
var ErrSessionClosed = errors.New("session closed")
