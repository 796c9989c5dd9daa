// Package errorspkg provides common app errors.
package errorspkg

import "errors"

var (
	// ErrInternal indicates internal server error.
	ErrInternal = errors.New("internal")
	// ErrStorageFailure indicates a persistence failure during execution.
	// The engine guarantees that no partial mutation took place.
	ErrStorageFailure = errors.New("storage failure")
)
