// Package store holds the shared AppData document and serializes every
// mutation through a single writer. Commits are whole-document replaces:
// handlers clone the current snapshot, apply their deltas, and the store
// swaps the pointer, so readers always observe a fully consistent document.
package store

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/xaysimo/xaysimo/internal/core/domain"
	portsrepo "github.com/xaysimo/xaysimo/internal/core/ports/repositories"
	"github.com/xaysimo/xaysimo/internal/middleware"
)

// Store is the single-writer holder of the shared document.
type Store struct {
	mu       sync.Mutex
	current  *domain.AppData
	repo     portsrepo.DocumentRepository
	logger   *slog.Logger
	onCommit func(*domain.AppData)
}

// New creates a store backed by repo. When the repository holds no document
// yet, the seed document is created and persisted. A nil repo yields a
// memory-only store, used by tests.
func New(ctx context.Context, repo portsrepo.DocumentRepository, logger *slog.Logger) (*Store, error) {
	s := &Store{repo: repo, logger: logger}

	if repo != nil {
		data, err := repo.Load(ctx)
		if err == nil {
			s.current = data
			return s, nil
		}
		logger.Info("No local document found, seeding initial data", slog.String("reason", err.Error()))
	}

	s.current = domain.NewAppData(time.Now().UTC())
	if repo != nil {
		if err := repo.Save(ctx, s.current); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// SetOnCommit registers a callback invoked after every successful commit with
// the new snapshot. Used by the sync engine to re-arm its debounce timer.
func (s *Store) SetOnCommit(fn func(*domain.AppData)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onCommit = fn
}

// Snapshot returns the current document. The returned value is shared and
// must be treated as read-only; mutations go through Update.
func (s *Store) Snapshot() *domain.AppData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Update applies fn to a clone of the current document and commits the clone
// if fn succeeds. The commit is all-or-nothing: an error from fn leaves the
// visible document untouched. The local persistence write is best-effort and
// only logged on failure, matching the durability model of the original
// on-device store.
func (s *Store) Update(ctx context.Context, fn func(*domain.AppData) error) (*domain.AppData, error) {
	s.mu.Lock()

	next := s.current.Clone()
	if err := fn(next); err != nil {
		s.mu.Unlock()
		return nil, err
	}

	next.LastModified = time.Now().UTC()
	next.Settings.Sync.DataVersion++

	if s.repo != nil {
		if err := s.repo.Save(ctx, next); err != nil {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to persist document locally", slog.String("error", err.Error()))
		}
	}

	s.current = next
	onCommit := s.onCommit
	s.mu.Unlock()

	if onCommit != nil {
		onCommit(next)
	}
	return next, nil
}

// Replace swaps in a whole document, used by restore and by startup recovery
// from a remote mirror.
func (s *Store) Replace(ctx context.Context, data *domain.AppData) error {
	_, err := s.Update(ctx, func(next *domain.AppData) error {
		*next = *data.Clone()
		return nil
	})
	return err
}
