package persist

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"envfetch/internal/model"
)

// rcHeader is written when the rc-file does not exist yet.
const rcHeader = "# Environment variables\n"

// RcFile persists variables as `export KEY="VALUE"` lines in a shell
// initialization file. Each call reads, edits and rewrites the whole file;
// nothing is locked, so concurrent writers race and the last one wins.
type RcFile struct {
	path string
}

// NewRcFile returns a store backed by path, creating the file with a header
// comment if it is missing.
func NewRcFile(path string) (*RcFile, error) {
	if path == "" {
		return nil, errors.New("rc-file path is empty")
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
		if err := os.WriteFile(path, []byte(rcHeader), 0o644); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}
	return &RcFile{path: path}, nil
}

func (r *RcFile) Target() Target {
	return Target{Kind: KindRcFile, Path: r.path}
}

// Set replaces every assignment of key with one assigning value. Keys and
// values must fit on one line.
func (r *RcFile) Set(key, value string) error {
	if err := checkAssignment(key, value, true); err != nil {
		return err
	}
	if err := checkSingleLine(key, value); err != nil {
		return err
	}
	return r.edit(OpSet, key, func(d *Document) { d.Assign(key, value) })
}

// Unset removes every assignment of key. A key that is not present is not
// an error.
func (r *RcFile) Unset(key string) error {
	if err := checkAssignment(key, "", false); err != nil {
		return err
	}
	return r.edit(OpUnset, key, func(d *Document) { d.Remove(key) })
}

// List returns the variables the rc-file currently exports.
func (r *RcFile) List() ([]model.Variable, error) {
	doc, err := r.read()
	if err != nil {
		return nil, &Error{Op: OpList, Err: err}
	}
	return doc.Variables(), nil
}

func checkSingleLine(key, value string) error {
	if strings.ContainsAny(key, "\r\n") {
		return fmt.Errorf("%w: key contains a line break", ErrInvalidFormat)
	}
	if strings.ContainsAny(value, "\r\n") {
		return fmt.Errorf("%w: value contains a line break", ErrInvalidFormat)
	}
	return nil
}

func (r *RcFile) read() (*Document, error) {
	data, err := os.ReadFile(r.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	return ParseDocument(string(data)), nil
}

func (r *RcFile) edit(op Op, key string, change func(*Document)) error {
	doc, err := r.read()
	if err != nil {
		return &Error{Op: op, Key: key, Err: err}
	}
	change(doc)
	if err := writeFileAtomic(r.path, []byte(doc.String())); err != nil {
		return &Error{Op: op, Key: key, Err: err}
	}
	return nil
}

// writeFileAtomic writes data next to path and renames it into place. A
// symlinked rc-file is resolved first so the link itself survives.
func writeFileAtomic(path string, data []byte) error {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		path = resolved
	}
	mode := fs.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".envfetch-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
