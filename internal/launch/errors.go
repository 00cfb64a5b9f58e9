package launch

import (
	"errors"
	"fmt"
)

// ErrHandleConsumed is wrapped by the WaitError returned when a Child is
// waited on more than once.
var ErrHandleConsumed = errors.New("child handle already consumed")

// UsageError reports that no command was supplied.
type UsageError struct{}

func (e *UsageError) Error() string {
	return "no command given"
}

// SpawnError reports that the child process could not be created.
type SpawnError struct {
	Spec CommandSpec
	Err  error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("spawn %s: %v", e.Spec.Name(), e.Err)
}

func (e *SpawnError) Unwrap() error {
	return e.Err
}

// WaitError reports that termination of a child could not be observed.
type WaitError struct {
	PID int
	Err error
}

func (e *WaitError) Error() string {
	return fmt.Sprintf("wait for pid %d: %v", e.PID, e.Err)
}

func (e *WaitError) Unwrap() error {
	return e.Err
}

// ReplaceError is what Replace returns when the child could not become the
// requested program. It only ever exists inside the child.
type ReplaceError struct {
	Name string
	Err  error
}

func (e *ReplaceError) Error() string {
	return fmt.Sprintf("exec %s: %v", e.Name, e.Err)
}

func (e *ReplaceError) Unwrap() error {
	return e.Err
}
