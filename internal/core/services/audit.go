package services

import (
	"time"

	"github.com/google/uuid"

	"github.com/xaysimo/xaysimo/internal/core/domain"
)

// appendAudit prepends an action record so the trail reads most recent first.
func appendAudit(doc *domain.AppData, actor, action, details string, now time.Time) {
	entry := domain.AuditLog{
		ID:        uuid.NewString(),
		Action:    action,
		Details:   details,
		Timestamp: now,
		User:      actor,
	}
	doc.AuditLogs = append([]domain.AuditLog{entry}, doc.AuditLogs...)
}
