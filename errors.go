package watch

import (
	"errors"
	"fmt"
)

var (
	// ErrUsage means no command was supplied.
	ErrUsage = errors.New("usage: watch [-n sec] <command>")
	// ErrInvalidInterval means the -n value parsed to zero or less.
	ErrInvalidInterval = errors.New("invalid interval")
	// ErrCommandNotFound means the registry has no entry for the command name.
	ErrCommandNotFound = errors.New("command not found")
	// ErrInterrupted means the user asked the loop to stop.
	ErrInterrupted = errors.New("interrupted")
)

// NotFoundError records the command name that failed to resolve.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", ErrCommandNotFound, e.Name)
}

func (e *NotFoundError) Unwrap() error { return ErrCommandNotFound }
