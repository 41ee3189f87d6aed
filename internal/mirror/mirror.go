// Package mirror implements the optional one-way remote copy of the local
// document: a pluggable Mirror capability with a hosted-Postgres and a
// GitHub-gist implementation, plus the debounced background sync engine.
package mirror

import (
	"context"
	"errors"

	"github.com/xaysimo/xaysimo/internal/core/domain"
)

// Classified remote-store failures, surfaced to the user as status text.
// Anything else is reported verbatim.
var (
	ErrTableMissing     = errors.New("remote table does not exist")
	ErrPermissionDenied = errors.New("remote store denied access")
	ErrBadCredentials   = errors.New("remote credentials are invalid or expired")
)

// Mirror is a best-effort remote copy of the whole document. Push overwrites
// the remote with the given snapshot (last writer wins, no conflict
// detection); Pull returns the remote document or apperrors.ErrNotFound when
// the remote holds none.
type Mirror interface {
	Name() string
	Test(ctx context.Context) error
	Push(ctx context.Context, data *domain.AppData) error
	Pull(ctx context.Context) (*domain.AppData, error)
}
