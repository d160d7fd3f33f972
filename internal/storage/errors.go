// Package storage persists CV documents in a key-value store and bounds every
// store operation with a timeout budget.
package storage

import "fmt"

// TimeoutError is returned when an operation does not settle within its budget.
// It is distinct from any error the operation itself reports.
type TimeoutError struct {
	Message string
}

func (e *TimeoutError) Error() string {
	return e.Message
}

// StoreError represents a failure reported by a store backend
type StoreError struct {
	Op    string
	Key   string
	Cause error
}

func (e *StoreError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("store %s %q: %v", e.Op, e.Key, e.Cause)
	}
	return fmt.Sprintf("store %s %q failed", e.Op, e.Key)
}

func (e *StoreError) Unwrap() error {
	return e.Cause
}
