// Package jsonfile persists the project catalog as one pretty-printed JSON
// array. Every mutation is a whole-document read-modify-write; the file is
// the sole source of truth and nothing is cached between calls.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"

	"github.com/devfolio-labs/portfolio-backend/internal/projects/domain"
	"github.com/devfolio-labs/portfolio-backend/internal/projects/store"
)

// Store implements store.Store on a single JSON document. A process-local
// mutex plus a sidecar flock bound each read-modify-write, so concurrent
// mutations serialize instead of silently losing updates.
type Store struct {
	path string
	mu   sync.Mutex
	fl   *flock.Flock
}

func New(path string) *Store {
	return &Store{
		path: path,
		fl:   flock.New(path + ".lock"),
	}
}

func (s *Store) List(ctx context.Context) ([]domain.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

func (s *Store) Get(ctx context.Context, id int) (domain.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	projects, err := s.read()
	if err != nil {
		return domain.Project{}, err
	}
	for _, p := range projects {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Project{}, store.ErrNotFound
}

func (s *Store) Append(ctx context.Context, p domain.Project) (domain.Project, error) {
	var out domain.Project
	err := s.update(func(projects []domain.Project) ([]domain.Project, error) {
		maxID := 0
		for _, existing := range projects {
			if existing.ID > maxID {
				maxID = existing.ID
			}
		}
		p.ID = maxID + 1
		out = p
		return append(projects, p), nil
	})
	return out, err
}

func (s *Store) Replace(ctx context.Context, id int, p domain.Project) (domain.Project, error) {
	var out domain.Project
	err := s.update(func(projects []domain.Project) ([]domain.Project, error) {
		for i := range projects {
			if projects[i].ID == id {
				p.ID = id
				projects[i] = p
				out = p
				return projects, nil
			}
		}
		return nil, store.ErrNotFound
	})
	return out, err
}

func (s *Store) Remove(ctx context.Context, id int) (domain.Project, error) {
	var out domain.Project
	err := s.update(func(projects []domain.Project) ([]domain.Project, error) {
		for i := range projects {
			if projects[i].ID == id {
				out = projects[i]
				return append(projects[:i], projects[i+1:]...), nil
			}
		}
		return nil, store.ErrNotFound
	})
	return out, err
}

// update runs one locked read-modify-write. When mutate fails nothing is
// written, so a not-found mutation leaves the document byte-for-byte intact.
func (s *Store) update(mutate func([]domain.Project) ([]domain.Project, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	if err := s.fl.Lock(); err != nil {
		return fmt.Errorf("lock store: %w", err)
	}
	defer s.fl.Unlock()

	projects, err := s.read()
	if err != nil {
		return err
	}

	projects, err = mutate(projects)
	if err != nil {
		return err
	}

	return s.write(projects)
}

// read returns the document contents, healing a missing or empty file to an
// empty catalog.
func (s *Store) read() ([]domain.Project, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []domain.Project{}, nil
		}
		return nil, fmt.Errorf("read projects file: %w", err)
	}
	if len(data) == 0 {
		return []domain.Project{}, nil
	}

	var projects []domain.Project
	if err := json.Unmarshal(data, &projects); err != nil {
		return nil, fmt.Errorf("decode projects file: %w", err)
	}
	return projects, nil
}

// write replaces the whole document. A temp-file rename keeps the write
// all-or-nothing from the reader's perspective.
func (s *Store) write(projects []domain.Project) error {
	data, err := json.MarshalIndent(projects, "", "  ")
	if err != nil {
		return fmt.Errorf("encode projects: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write projects file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace projects file: %w", err)
	}
	return nil
}
