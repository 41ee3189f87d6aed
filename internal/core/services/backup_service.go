package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/xaysimo/xaysimo/internal/apperrors"
	"github.com/xaysimo/xaysimo/internal/core/domain"
	portssvc "github.com/xaysimo/xaysimo/internal/core/ports/services"
	"github.com/xaysimo/xaysimo/internal/middleware"
	"github.com/xaysimo/xaysimo/internal/store"
)

// BackupService exports and restores the whole document as JSON, the same
// shape the local store and the remote mirrors carry.
type BackupService struct {
	store *store.Store
}

var _ portssvc.BackupSvcFacade = (*BackupService)(nil)

func NewBackupService(s *store.Store) *BackupService {
	return &BackupService{store: s}
}

func (s *BackupService) Export(ctx context.Context) ([]byte, error) {
	return json.MarshalIndent(s.store.Snapshot(), "", "  ")
}

// Restore replaces the whole document with the uploaded backup. The swap is
// all-or-nothing: a file that does not parse as a document leaves the current
// state untouched.
func (s *BackupService) Restore(ctx context.Context, raw []byte, actor string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	var doc domain.AppData
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("%w: not a valid backup file", apperrors.ErrValidation)
	}
	if doc.Accounts == nil && doc.Products == nil && doc.Transactions == nil {
		return fmt.Errorf("%w: backup file is missing the expected sections", apperrors.ErrValidation)
	}

	appendAudit(&doc, actor, "Backup Restored",
		fmt.Sprintf("Document replaced from backup (%d products, %d transactions)", len(doc.Products), len(doc.Transactions)), time.Now().UTC())

	if err := s.store.Replace(ctx, &doc); err != nil {
		return err
	}
	logger.Info("Backup restored",
		slog.Int("products", len(doc.Products)),
		slog.Int("transactions", len(doc.Transactions)))
	return nil
}
