package services

import (
	"context"

	"github.com/xaysimo/xaysimo/internal/core/domain"
	portssvc "github.com/xaysimo/xaysimo/internal/core/ports/services"
	"github.com/xaysimo/xaysimo/internal/store"
)

const defaultAuditLimit = 50

// AuditService lists the action trail, most recent first.
type AuditService struct {
	store *store.Store
}

var _ portssvc.AuditSvcFacade = (*AuditService)(nil)

func NewAuditService(s *store.Store) *AuditService {
	return &AuditService{store: s}
}

func (s *AuditService) ListAuditLogs(ctx context.Context, limit int) []domain.AuditLog {
	if limit <= 0 {
		limit = defaultAuditLimit
	}
	logs := s.store.Snapshot().AuditLogs
	if len(logs) > limit {
		logs = logs[:limit]
	}
	return logs
}
