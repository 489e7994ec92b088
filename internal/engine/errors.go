package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument matches every InvalidArgumentError via errors.Is.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidState matches every InvalidStateError via errors.Is.
	ErrInvalidState = errors.New("invalid state")
	// ErrNotFound matches every NotFoundError via errors.Is.
	ErrNotFound = errors.New("not found")
)

// InvalidArgumentError reports a precondition violated by caller input.
type InvalidArgumentError struct {
	Field  string
	Reason string
}

func (e InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e InvalidArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// InvalidStateError is returned when a task transition is not allowed from its
// current status, e.g. completing a task twice.
type InvalidStateError struct {
	TaskID int64
	Status TaskStatus
	Op     string
}

func (e InvalidStateError) Error() string {
	if e.TaskID == 0 {
		return fmt.Sprintf("cannot %s a %s task", e.Op, e.Status)
	}
	return fmt.Sprintf("cannot %s task %d: it is %s", e.Op, e.TaskID, e.Status)
}

func (e InvalidStateError) Is(target error) bool {
	return target == ErrInvalidState
}

// NotFoundError is returned by the service when a record does not exist.
type NotFoundError struct {
	Kind string
	ID   int64
}

func (e NotFoundError) Error() string {
	if e.ID == 0 {
		return fmt.Sprintf("%s not found", e.Kind)
	}
	return fmt.Sprintf("%s %d not found", e.Kind, e.ID)
}

func (e NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
