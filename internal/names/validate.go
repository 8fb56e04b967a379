// Package names holds the checks applied to variable names before they are
// written anywhere, and the "did you mean" matcher used when a lookup misses.
package names

import (
	"errors"
	"strings"
)

var (
	ErrEmptyName     = errors.New("variable name cannot be empty")
	ErrContainsSpace = errors.New("variable name cannot contain spaces")
)

// Validate reports whether name may be used as a variable name.
//
// The rules are intentionally loose: only empty names and names containing a
// space are rejected. Anything else, including characters that are not valid
// in a POSIX identifier, is accepted and left for the OS to refuse.
func Validate(name string) error {
	if name == "" {
		return ErrEmptyName
	}
	if strings.Contains(name, " ") {
		return ErrContainsSpace
	}
	return nil
}
