package vars

import (
	"errors"
	"fmt"
)

// ErrNoPersistentStore is returned for persistent writes when the service
// was built without a store.
var ErrNoPersistentStore = errors.New("no persistent store configured")

// NameValidationError reports a rejected variable name. Err is one of the
// names package sentinels.
type NameValidationError struct {
	Name string
	Err  error
}

func (e *NameValidationError) Error() string { return e.Err.Error() }
func (e *NameValidationError) Unwrap() error { return e.Err }

// NotFoundError reports a lookup miss. SuggestSimilar tells the caller
// whether to offer similar names.
type NotFoundError struct {
	Key            string
	SuggestSimilar bool
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("can't find '%s'", e.Key)
}

// FileError wraps an I/O failure on a dotenv or export file.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("file error: %s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

// ParsingError wraps a dotenv parse failure.
type ParsingError struct {
	Err error
}

func (e *ParsingError) Error() string {
	return fmt.Sprintf("parsing error: %v", e.Err)
}

func (e *ParsingError) Unwrap() error { return e.Err }

// GlobalOp is the persistent operation behind a GlobalError.
type GlobalOp int

const (
	GlobalSet GlobalOp = iota
	GlobalDelete
)

// GlobalError wraps a persistent store failure.
type GlobalError struct {
	Op  GlobalOp
	Err error
}

func (e *GlobalError) Error() string {
	if e.Op == GlobalDelete {
		return fmt.Sprintf("can't delete variable globally: %v", e.Err)
	}
	return fmt.Sprintf("can't set variable globally: %v", e.Err)
}

func (e *GlobalError) Unwrap() error { return e.Err }
