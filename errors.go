package dicekv

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// ErrClosed is returned when operating on a closed client or connection.
	ErrClosed = errors.New("connection closed")

	// ErrNotFound is returned by Get when the key does not exist.
	ErrNotFound = errors.New("key not found")

	// ErrEmptyCommand is returned when a command has no tokens.
	ErrEmptyCommand = errors.New("empty command")
)

// ConnectionError represents a failure to establish or maintain the
// transport connection.
type ConnectionError struct {
	Address string
	Err     error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("failed to connect to %s: %v", e.Address, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// TimeoutError indicates that no complete response arrived within the
// configured deadline. The connection is left in an indeterminate state and
// the client closes it; callers must reconnect.
type TimeoutError struct {
	Op  string
	Err error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s timed out: %v", e.Op, e.Err)
}

func (e *TimeoutError) Unwrap() error {
	return e.Err
}

// ProtocolError indicates bytes that do not conform to the wire grammar.
// It is fatal to the current connection; the library never retries it.
type ProtocolError struct {
	Message string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("protocol error: %s", e.Message)
}

// TypeMismatchError is returned by a Value accessor when the decoded reply
// holds a different variant than the one requested.
type TypeMismatchError struct {
	Expected Kind
	Actual   Kind
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("type mismatch: expected %s, got %s", e.Expected, e.Actual)
}

// ServerError represents an error reply sent by the server.
type ServerError struct {
	Message string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error: %s", e.Message)
}
