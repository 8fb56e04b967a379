// Package vars is the variable service shared by the one-shot commands and
// the interactive editor. It validates names and writes to the process
// environment and, on request, to the platform's persistent store.
package vars

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
	"pkt.systems/pslog"

	"envfetch/internal/model"
	"envfetch/internal/names"
)

// Persister durably records variables for future sessions.
type Persister interface {
	Set(key, value string) error
	Unset(key string) error
}

// Deps are the collaborators of a Service.
type Deps struct {
	Env    Environ
	Store  Persister
	Logger pslog.Logger
}

// Service orchestrates validation, the process environment and the
// persistent store.
//
// A persistent Set writes the process environment first. If the store then
// fails the error is returned and the two are left diverged; the in-memory
// write is not rolled back.
type Service struct {
	env   Environ
	store Persister
	log   pslog.Logger

	// storeMu serialises persistent writes from this process. The rc-file
	// backend is read-modify-write, so parallel loads would lose updates.
	storeMu sync.Mutex
}

// NewService builds a Service. Env defaults to the process environment.
func NewService(deps Deps) *Service {
	env := deps.Env
	if env == nil {
		env = OSEnv{}
	}
	log := deps.Logger
	if log == nil {
		log = pslog.Ctx(context.Background())
	}
	return &Service{env: env, store: deps.Store, log: log}
}

// List returns a snapshot of the process environment ordered by key.
func (s *Service) List() model.Snapshot {
	return s.env.List().Sorted()
}

// Get returns the value of key. On a miss the error is a *NotFoundError
// carrying suggestSimilar for the caller.
func (s *Service) Get(key string, suggestSimilar bool) (string, error) {
	value, ok := s.env.Lookup(key)
	if !ok {
		return "", &NotFoundError{Key: key, SuggestSimilar: suggestSimilar}
	}
	return value, nil
}

// Suggest returns the current variable names similar to key.
func (s *Service) Suggest(key string, threshold float64) []string {
	return names.FindSimilar(key, s.env.List().Keys(), threshold)
}

// Set assigns value to key in the process environment and, when persistent
// is true, in the persistent store.
func (s *Service) Set(key, value string, persistent bool) error {
	if err := validate(key); err != nil {
		return err
	}
	if err := s.env.Set(key, value); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	if !persistent {
		return nil
	}
	if err := s.persist(func(p Persister) error { return p.Set(key, value) }); err != nil {
		return &GlobalError{Op: GlobalSet, Err: err}
	}
	s.log.Debug("variable persisted", "key", key)
	return nil
}

// Append concatenates suffix to the current value of key, treating a
// missing variable as empty.
func (s *Service) Append(key, suffix string, persistent bool) error {
	if err := validate(key); err != nil {
		return err
	}
	current, _ := s.env.Lookup(key)
	return s.Set(key, current+suffix, persistent)
}

// Delete removes key. A persistent delete always unsets it in the store,
// which tolerates absent keys, and then drops it from the process
// environment. A process-only delete of a missing variable logs a warning
// and succeeds.
func (s *Service) Delete(key string, persistent bool) error {
	if err := validate(key); err != nil {
		return err
	}
	if persistent {
		if err := s.persist(func(p Persister) error { return p.Unset(key) }); err != nil {
			return &GlobalError{Op: GlobalDelete, Err: err}
		}
		return s.env.Unset(key)
	}
	if _, ok := s.env.Lookup(key); !ok {
		s.log.Warn("variable doesn't exist", "key", key)
		return nil
	}
	return s.env.Unset(key)
}

// Load applies every pair in parallel. The first failure is returned; pairs
// already applied stay applied.
func (s *Service) Load(ctx context.Context, pairs map[string]string, persistent bool) error {
	g, ctx := errgroup.WithContext(ctx)
	for key, value := range pairs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return s.Set(key, value, persistent)
		})
	}
	return g.Wait()
}

// Export writes the requested variables to name.env as KEY=VALUE lines in
// the given order. Unknown and repeated keys are skipped with a warning. All
// keys are validated before the file is created.
func (s *Service) Export(name string, keys []string) error {
	for _, key := range keys {
		if err := validate(key); err != nil {
			return err
		}
	}

	path := strings.TrimSpace(name) + ".env"
	file, err := os.Create(path)
	if err != nil {
		return &FileError{Path: path, Err: err}
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	seen := make(map[string]bool, len(keys))
	for _, key := range keys {
		if seen[key] {
			s.log.Warn("duplicate variable, skipping", "key", key)
			continue
		}
		value, ok := s.env.Lookup(key)
		if !ok {
			s.log.Warn((&NotFoundError{Key: key}).Error()+", skipping", "key", key)
			continue
		}
		seen[key] = true
		if _, err := fmt.Fprintf(w, "%s=%s\n", key, value); err != nil {
			return &FileError{Path: path, Err: err}
		}
	}
	if err := w.Flush(); err != nil {
		return &FileError{Path: path, Err: err}
	}
	if err := file.Close(); err != nil {
		return &FileError{Path: path, Err: err}
	}
	return nil
}

func (s *Service) persist(op func(Persister) error) error {
	if s.store == nil {
		return ErrNoPersistentStore
	}
	s.storeMu.Lock()
	defer s.storeMu.Unlock()
	return op(s.store)
}

func validate(key string) error {
	if err := names.Validate(key); err != nil {
		return &NameValidationError{Name: key, Err: err}
	}
	return nil
}
