package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for task operations. The typed errors below wrap them so
// callers can match with errors.Is and still report the offending value.
var (
	ErrNotFound        = errors.New("task not found")
	ErrInvalidCategory = errors.New("invalid category")
	ErrAlreadyTracking = errors.New("time tracking already running")
	ErrNotTracking     = errors.New("no active time tracking")
	ErrCorruptData     = errors.New("corrupt task data")
	ErrValidation      = errors.New("validation failed")
)

// NotFoundError reports a task id that does not exist.
type NotFoundError struct {
	ID int
}

func (e *NotFoundError) Error() string { return fmt.Sprintf("task %d not found", e.ID) }
func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// InvalidCategoryError names a label outside the palette.
type InvalidCategoryError struct {
	Label string
}

func (e *InvalidCategoryError) Error() string {
	return fmt.Sprintf("invalid category %q (valid: Work, Personal, Study, Health, Shopping)", e.Label)
}
func (e *InvalidCategoryError) Unwrap() error { return ErrInvalidCategory }

// TrackingError reports time tracking misuse on a task.
type TrackingError struct {
	ID  int
	Err error // ErrAlreadyTracking or ErrNotTracking
}

func (e *TrackingError) Error() string { return fmt.Sprintf("task %d: %v", e.ID, e.Err) }
func (e *TrackingError) Unwrap() error { return e.Err }

// CorruptDataError reports a persisted file that cannot be parsed.
type CorruptDataError struct {
	Path string
	Err  error
}

func (e *CorruptDataError) Error() string {
	return fmt.Sprintf("corrupt task file %s: %v (file left untouched)", e.Path, e.Err)
}

// Unwrap exposes only ErrCorruptData; the cause is kept in Err.
func (e *CorruptDataError) Unwrap() error { return ErrCorruptData }

// ValidationError reports an invalid input value.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string { return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason) }
func (e *ValidationError) Unwrap() error { return ErrValidation }
