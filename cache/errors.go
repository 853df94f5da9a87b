package cache

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cache operations.
// Use errors.Is() to check for these specific conditions.
var (
	// ErrNotFound is returned when a key doesn't exist or has expired.
	// Callers should treat it as a cache miss, not a failure.
	ErrNotFound = errors.New("cache: key not found")

	// ErrClosed is returned when using a closed cache.
	ErrClosed = errors.New("cache: closed")

	// ErrInvalidTTL is returned when a TTL value is negative.
	ErrInvalidTTL = errors.New("cache: invalid TTL")
)

// ConnectionError represents a cache connection error.
// These may be transient and could be retried.
type ConnectionError struct {
	Op      string // operation that failed, e.g. "dial", "ping"
	Address string // cache server address
	Err     error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("cache connection error: %s failed for %s: %v", e.Op, e.Address, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// NewConnectionError creates a new connection error.
func NewConnectionError(op, address string, err error) *ConnectionError {
	return &ConnectionError{Op: op, Address: address, Err: err}
}

// OperationError represents a failure during a cache operation.
type OperationError struct {
	Op  string // operation that failed, e.g. "get", "set"
	Key string // key involved in the operation
	Err error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("cache operation error: %s failed for key %q: %v", e.Op, e.Key, e.Err)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

// NewOperationError creates a new operation error.
func NewOperationError(op, key string, err error) *OperationError {
	return &OperationError{Op: op, Key: key, Err: err}
}
