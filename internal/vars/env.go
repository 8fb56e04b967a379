package vars

import (
	"os"
	"strings"
	"sync"

	"envfetch/internal/model"
)

// Environ is a process-scoped variable table.
type Environ interface {
	Lookup(key string) (string, bool)
	Set(key, value string) error
	Unset(key string) error
	List() model.Snapshot
	// Environ renders the table as KEY=VALUE entries for a child process.
	Environ() []string
}

// OSEnv is the environment of the running process.
type OSEnv struct{}

func (OSEnv) Lookup(key string) (string, bool) { return os.LookupEnv(key) }
func (OSEnv) Set(key, value string) error      { return os.Setenv(key, value) }
func (OSEnv) Unset(key string) error           { return os.Unsetenv(key) }

func (OSEnv) List() model.Snapshot {
	return parseEnviron(os.Environ())
}

func (OSEnv) Environ() []string { return os.Environ() }

// parseEnviron splits KEY=VALUE entries. Windows keeps per-drive entries such
// as "=C:=C:\dir" whose key starts with '='.
func parseEnviron(environ []string) model.Snapshot {
	out := make(model.Snapshot, 0, len(environ))
	for _, entry := range environ {
		i := strings.IndexByte(entry, '=')
		if i == 0 {
			i = strings.IndexByte(entry[1:], '=') + 1
		}
		if i <= 0 {
			continue
		}
		out = append(out, model.Variable{Key: entry[:i], Value: entry[i+1:]})
	}
	return out
}

// MapEnv is an in-memory Environ, safe for concurrent use.
type MapEnv struct {
	mu   sync.RWMutex
	vars map[string]string
}

// NewMapEnv returns a MapEnv seeded with a copy of initial.
func NewMapEnv(initial map[string]string) *MapEnv {
	vars := make(map[string]string, len(initial))
	for k, v := range initial {
		vars[k] = v
	}
	return &MapEnv{vars: vars}
}

func (m *MapEnv) Lookup(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.vars[key]
	return v, ok
}

func (m *MapEnv) Set(key, value string) error {
	m.mu.Lock()
	m.vars[key] = value
	m.mu.Unlock()
	return nil
}

func (m *MapEnv) Unset(key string) error {
	m.mu.Lock()
	delete(m.vars, key)
	m.mu.Unlock()
	return nil
}

func (m *MapEnv) List() model.Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(model.Snapshot, 0, len(m.vars))
	for k, v := range m.vars {
		out = append(out, model.Variable{Key: k, Value: v})
	}
	return out
}

// Environ renders the table as KEY=VALUE entries for a child process.
func (m *MapEnv) Environ() []string {
	snapshot := m.List().Sorted()
	out := make([]string, len(snapshot))
	for i, v := range snapshot {
		out[i] = v.Key + "=" + v.Value
	}
	return out
}
