package mirror_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xaysimo/xaysimo/internal/core/domain"
	"github.com/xaysimo/xaysimo/internal/mirror"
)

type stubMirror struct {
	mu      sync.Mutex
	pushes  int
	lastDoc *domain.AppData
	pushErr error
	remote  *domain.AppData
	pullErr error
}

func (s *stubMirror) Name() string { return "stub" }

func (s *stubMirror) Test(ctx context.Context) error { return nil }

func (s *stubMirror) Push(ctx context.Context, data *domain.AppData) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pushErr != nil {
		return s.pushErr
	}
	s.pushes++
	s.lastDoc = data
	return nil
}

func (s *stubMirror) Pull(ctx context.Context) (*domain.AppData, error) {
	if s.pullErr != nil {
		return nil, s.pullErr
	}
	return s.remote, nil
}

func (s *stubMirror) pushCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pushes
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

func syncedDoc() *domain.AppData {
	doc := domain.NewAppData(time.Now().UTC())
	doc.Settings.Sync.AutoSync = true
	return doc
}

func TestNotifyDebouncesBurstsIntoOnePush(t *testing.T) {
	stub := &stubMirror{}
	syncer := mirror.NewSyncer(stub, 50*time.Millisecond, testLogger())
	defer syncer.Close()

	first := syncedDoc()
	second := syncedDoc()
	second.Settings.Sync.DataVersion = 2

	syncer.Notify(first)
	syncer.Notify(second)

	require.Eventually(t, func() bool { return stub.pushCount() == 1 }, time.Second, 10*time.Millisecond)

	// Only the latest snapshot went out.
	stub.mu.Lock()
	defer stub.mu.Unlock()
	assert.Equal(t, int64(2), stub.lastDoc.Settings.Sync.DataVersion)
}

func TestNotifyIgnoredWhenAutoSyncOff(t *testing.T) {
	stub := &stubMirror{}
	syncer := mirror.NewSyncer(stub, 10*time.Millisecond, testLogger())
	defer syncer.Close()

	doc := domain.NewAppData(time.Now().UTC())
	doc.Settings.Sync.AutoSync = false
	syncer.Notify(doc)

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, 0, stub.pushCount())
}

func TestSyncNowBypassesDebounce(t *testing.T) {
	stub := &stubMirror{}
	syncer := mirror.NewSyncer(stub, time.Hour, testLogger())
	defer syncer.Close()

	require.NoError(t, syncer.SyncNow(context.Background(), syncedDoc()))
	assert.Equal(t, 1, stub.pushCount())

	status := syncer.Status()
	assert.Equal(t, mirror.SyncSuccess, status.State)
	assert.Equal(t, "stub", status.Mirror)
	assert.False(t, status.LastSyncedAt.IsZero())
}

func TestPushFailureSetsErrorState(t *testing.T) {
	stub := &stubMirror{pushErr: errors.New("connection refused")}
	syncer := mirror.NewSyncer(stub, time.Hour, testLogger())
	defer syncer.Close()

	err := syncer.SyncNow(context.Background(), syncedDoc())
	require.Error(t, err)

	status := syncer.Status()
	assert.Equal(t, mirror.SyncError, status.State)
	assert.Contains(t, status.LastError, "connection refused")
}

func TestRecoverPullsRemoteDocument(t *testing.T) {
	remote := syncedDoc()
	remote.Products = []domain.Product{{ID: "p1", Name: "Remote"}}
	stub := &stubMirror{remote: remote}
	syncer := mirror.NewSyncer(stub, time.Hour, testLogger())
	defer syncer.Close()

	doc, err := syncer.Recover(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, doc.ProductByID("p1"))
}

func TestCloseDropsPendingPush(t *testing.T) {
	stub := &stubMirror{}
	syncer := mirror.NewSyncer(stub, 50*time.Millisecond, testLogger())

	syncer.Notify(syncedDoc())
	syncer.Close()

	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, 0, stub.pushCount())
}
