package list

import (
	"errors"
	"fmt"
)

// OpErrorCode categorizes list operation failures.
type OpErrorCode string

const (
	// ErrCodeUnknownTask indicates a referenced task ID does not exist
	// in the list.
	ErrCodeUnknownTask OpErrorCode = "UNKNOWN_TASK"

	// ErrCodeDuplicateTask indicates an inserted task ID already exists
	// in the list.
	ErrCodeDuplicateTask OpErrorCode = "DUPLICATE_TASK"

	// ErrCodeInvalidTask indicates a task value that cannot be accepted,
	// such as an empty ID.
	ErrCodeInvalidTask OpErrorCode = "INVALID_TASK"

	// ErrCodeInvalidAnchor indicates an anchor that cannot serve as an
	// insertion point, such as moving a task after itself.
	ErrCodeInvalidAnchor OpErrorCode = "INVALID_ANCHOR"

	// ErrCodePersistenceFailed indicates the store rejected a write. The
	// in-memory change was rolled back; the list still matches the last
	// successful persistence outcome.
	ErrCodePersistenceFailed OpErrorCode = "PERSISTENCE_FAILED"

	// ErrCodeRebalanceFailed indicates the store rejected a rebalance
	// batch. The replacement is atomic, so no rank changed in memory or
	// in the store.
	ErrCodeRebalanceFailed OpErrorCode = "REBALANCE_FAILED"
)

// OpError represents a failed list operation.
//
// Failures split into caller contract violations (unknown, duplicate, or
// invalid task IDs and anchors), persistence failures (the attempted
// mutation was rolled back), and rebalance failures (the replacement
// batch was rejected as a whole).
type OpError struct {
	// Code identifies the failure category.
	Code OpErrorCode

	// Message is a human-readable description.
	Message string

	// ListID identifies the affected list.
	ListID string

	// TaskID identifies the task involved, when there is one.
	TaskID string

	// Err is the underlying cause, when there is one.
	Err error
}

// Error implements the error interface.
func (e *OpError) Error() string {
	switch {
	case e.TaskID != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s (list=%s, task=%s): %v", e.Code, e.Message, e.ListID, e.TaskID, e.Err)
	case e.TaskID != "":
		return fmt.Sprintf("%s: %s (list=%s, task=%s)", e.Code, e.Message, e.ListID, e.TaskID)
	case e.Err != nil:
		return fmt.Sprintf("%s: %s (list=%s): %v", e.Code, e.Message, e.ListID, e.Err)
	default:
		return fmt.Sprintf("%s: %s (list=%s)", e.Code, e.Message, e.ListID)
	}
}

// Unwrap returns the underlying cause, if any.
func (e *OpError) Unwrap() error {
	return e.Err
}

// IsUnknownTask reports whether err is an OpError for a missing task.
func IsUnknownTask(err error) bool {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Code == ErrCodeUnknownTask
	}
	return false
}

// IsDuplicateTask reports whether err is an OpError for a duplicate
// task ID.
func IsDuplicateTask(err error) bool {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Code == ErrCodeDuplicateTask
	}
	return false
}

// IsInvalidTask reports whether err is an OpError for an unacceptable
// task value.
func IsInvalidTask(err error) bool {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Code == ErrCodeInvalidTask
	}
	return false
}

// IsInvalidAnchor reports whether err is an OpError for an unusable
// anchor.
func IsInvalidAnchor(err error) bool {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Code == ErrCodeInvalidAnchor
	}
	return false
}

// IsPersistenceFailure reports whether err is an OpError for a rejected
// store write.
func IsPersistenceFailure(err error) bool {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Code == ErrCodePersistenceFailed
	}
	return false
}

// IsRebalanceFailure reports whether err is an OpError for a rejected
// rebalance batch.
func IsRebalanceFailure(err error) bool {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Code == ErrCodeRebalanceFailed
	}
	return false
}

func newUnknownTaskError(listID, taskID string) *OpError {
	return &OpError{
		Code:    ErrCodeUnknownTask,
		Message: "task not found",
		ListID:  listID,
		TaskID:  taskID,
	}
}

func newDuplicateTaskError(listID, taskID string) *OpError {
	return &OpError{
		Code:    ErrCodeDuplicateTask,
		Message: "task already exists",
		ListID:  listID,
		TaskID:  taskID,
	}
}

func newInvalidTaskError(listID, msg string) *OpError {
	return &OpError{
		Code:    ErrCodeInvalidTask,
		Message: msg,
		ListID:  listID,
	}
}

func newInvalidAnchorError(listID, anchorID, msg string) *OpError {
	return &OpError{
		Code:    ErrCodeInvalidAnchor,
		Message: msg,
		ListID:  listID,
		TaskID:  anchorID,
	}
}

func newPersistenceError(listID, taskID, op string, err error) *OpError {
	return &OpError{
		Code:    ErrCodePersistenceFailed,
		Message: op + " rejected by store",
		ListID:  listID,
		TaskID:  taskID,
		Err:     err,
	}
}

func newRebalanceError(listID string, err error) *OpError {
	return &OpError{
		Code:    ErrCodeRebalanceFailed,
		Message: "rebalance batch rejected by store",
		ListID:  listID,
		Err:     err,
	}
}
