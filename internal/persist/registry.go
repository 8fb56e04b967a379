package persist

import (
	"errors"
	"io/fs"

	"envfetch/internal/model"
)

const (
	registryRoot      = "HKEY_CURRENT_USER"
	environmentSubkey = "Environment"
)

// registryKey is the part of an open registry key the store needs.
type registryKey interface {
	SetStringValue(name, value string) error
	DeleteValue(name string) error
	ReadValueNames(n int) ([]string, error)
	GetStringValue(name string) (string, uint32, error)
	Close() error
}

// Registry persists variables as string values under the per-user
// Environment key. After every write it broadcasts a settings change, since
// running shells do not poll the registry.
type Registry struct {
	open   func() (registryKey, error)
	notify func() error
}

func newRegistry(open func() (registryKey, error), notify func() error) *Registry {
	return &Registry{open: open, notify: notify}
}

func (r *Registry) Target() Target {
	return Target{Kind: KindRegistry, Root: registryRoot, Path: environmentSubkey}
}

func (r *Registry) Set(key, value string) error {
	if err := checkAssignment(key, value, true); err != nil {
		return err
	}
	return r.write(OpSet, key, func(k registryKey) error {
		return k.SetStringValue(key, value)
	})
}

// Unset deletes the value entry. An entry that is already absent is not an
// error.
func (r *Registry) Unset(key string) error {
	if err := checkAssignment(key, "", false); err != nil {
		return err
	}
	return r.write(OpUnset, key, func(k registryKey) error {
		if err := k.DeleteValue(key); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		return nil
	})
}

func (r *Registry) List() ([]model.Variable, error) {
	k, err := r.open()
	if err != nil {
		return nil, &Error{Op: OpList, Err: err}
	}
	defer k.Close()

	valueNames, err := k.ReadValueNames(-1)
	if err != nil {
		return nil, &Error{Op: OpList, Err: err}
	}
	out := make([]model.Variable, 0, len(valueNames))
	for _, name := range valueNames {
		value, _, err := k.GetStringValue(name)
		if err != nil {
			// Non-string values (e.g. REG_DWORD) are not environment variables.
			continue
		}
		out = append(out, model.Variable{Key: name, Value: value})
	}
	return out, nil
}

func (r *Registry) write(op Op, key string, apply func(registryKey) error) error {
	k, err := r.open()
	if err != nil {
		return &Error{Op: op, Key: key, Err: err}
	}
	err = apply(k)
	if cerr := k.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return &Error{Op: op, Key: key, Err: err}
	}
	if r.notify != nil {
		// best effort
		_ = r.notify()
	}
	return nil
}
