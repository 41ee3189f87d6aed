package repositories

import (
	"context"

	"github.com/xaysimo/xaysimo/internal/core/domain"
)

// DocumentRepository persists the whole AppData document as one blob.
// Load returns apperrors.ErrNotFound when no document has been saved yet.
type DocumentRepository interface {
	Load(ctx context.Context) (*domain.AppData, error)
	Save(ctx context.Context, data *domain.AppData) error
	Close() error
}
