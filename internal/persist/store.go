// Package persist records variables where future shell sessions pick them
// up: the per-user registry key on Windows and the shell rc-file elsewhere.
package persist

import (
	"errors"
	"fmt"
	"strings"

	"envfetch/internal/model"
	"envfetch/internal/names"
)

// ErrInvalidFormat is returned for values the rc-file format cannot carry.
var ErrInvalidFormat = errors.New("invalid variable format")

// Store durably records or removes variables.
type Store interface {
	Set(key, value string) error
	Unset(key string) error
	List() ([]model.Variable, error)
	Target() Target
}

// Kind names a persistence mechanism.
type Kind int

const (
	KindRegistry Kind = iota
	KindRcFile
)

func (k Kind) String() string {
	switch k {
	case KindRegistry:
		return "registry"
	case KindRcFile:
		return "rc-file"
	default:
		return "unknown"
	}
}

// Target describes where a Store writes.
type Target struct {
	Kind Kind
	// Root is the registry hive; empty for rc-files.
	Root string
	// Path is the registry subkey or the rc-file location.
	Path string
}

func (t Target) String() string {
	if t.Kind == KindRegistry {
		return fmt.Sprintf("registry %s\\%s", t.Root, t.Path)
	}
	return t.Path
}

// Op is the persistent operation that failed.
type Op string

const (
	OpSet   Op = "set"
	OpUnset Op = "unset"
	OpList  Op = "list"
)

// Error wraps a backend failure with the operation and key involved.
type Error struct {
	Op  Op
	Key string
	Err error
}

func (e *Error) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Key, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// checkAssignment applies the rules shared by every backend.
func checkAssignment(key, value string, withValue bool) error {
	if err := names.Validate(key); err != nil {
		return err
	}
	if withValue && strings.Contains(value, "==") {
		return fmt.Errorf("%w: value contains double equals", ErrInvalidFormat)
	}
	return nil
}
