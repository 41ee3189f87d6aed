package mirror

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/xaysimo/xaysimo/internal/core/domain"
)

// SyncState is the user-visible state of the background mirror.
type SyncState string

const (
	SyncIdle    SyncState = "idle"
	SyncSyncing SyncState = "syncing"
	SyncSuccess SyncState = "success"
	SyncError   SyncState = "error"
)

// SyncStatus is a point-in-time snapshot of the sync engine.
type SyncStatus struct {
	Mirror       string
	State        SyncState
	LastSyncedAt time.Time
	LastError    string
}

// Syncer debounces document commits into best-effort pushes: a burst of edits
// collapses into a single push of the latest snapshot. Failures set the error
// state and wait for the next commit; there is no automatic retry.
type Syncer struct {
	mirror   Mirror
	debounce time.Duration
	logger   *slog.Logger

	mu           sync.Mutex
	timer        *time.Timer
	pending      *domain.AppData
	state        SyncState
	lastSyncedAt time.Time
	lastError    string
	closed       bool

	// pushMu serializes pushes so only one is in flight.
	pushMu sync.Mutex
}

// NewSyncer wires a sync engine over the given mirror.
func NewSyncer(m Mirror, debounce time.Duration, logger *slog.Logger) *Syncer {
	return &Syncer{
		mirror:   m,
		debounce: debounce,
		logger:   logger,
		state:    SyncIdle,
	}
}

// Notify re-arms the debounce timer with the latest snapshot. Commits made
// while auto-sync is disabled are ignored.
func (s *Syncer) Notify(data *domain.AppData) {
	if !data.Settings.Sync.AutoSync {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	s.pending = data
	s.state = SyncSyncing
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, s.flush)
}

// flush pushes the latest pending snapshot.
func (s *Syncer) flush() {
	s.mu.Lock()
	data := s.pending
	s.pending = nil
	s.mu.Unlock()
	if data == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	s.push(ctx, data)
}

// SyncNow pushes the given snapshot immediately, bypassing the debounce.
func (s *Syncer) SyncNow(ctx context.Context, data *domain.AppData) error {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
	}
	s.pending = nil
	s.state = SyncSyncing
	s.mu.Unlock()

	return s.push(ctx, data)
}

func (s *Syncer) push(ctx context.Context, data *domain.AppData) error {
	s.pushMu.Lock()
	defer s.pushMu.Unlock()

	err := s.mirror.Push(ctx, data)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state = SyncError
		s.lastError = err.Error()
		s.logger.Error("Mirror push failed", slog.String("mirror", s.mirror.Name()), slog.String("error", err.Error()))
		return err
	}
	s.state = SyncSuccess
	s.lastError = ""
	s.lastSyncedAt = time.Now().UTC()
	s.logger.Info("Mirror push completed", slog.String("mirror", s.mirror.Name()))
	return nil
}

// Recover pulls the remote document, used at startup when the local store is
// empty. A missing remote document is not an error.
func (s *Syncer) Recover(ctx context.Context) (*domain.AppData, error) {
	return s.mirror.Pull(ctx)
}

// Test verifies connectivity and schema of the remote.
func (s *Syncer) Test(ctx context.Context) error {
	return s.mirror.Test(ctx)
}

// Status returns the current sync state.
func (s *Syncer) Status() SyncStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SyncStatus{
		Mirror:       s.mirror.Name(),
		State:        s.state,
		LastSyncedAt: s.lastSyncedAt,
		LastError:    s.lastError,
	}
}

// Close stops the debounce timer; a pending snapshot is dropped.
func (s *Syncer) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
	}
	s.pending = nil
}
