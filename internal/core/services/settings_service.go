package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xaysimo/xaysimo/internal/apperrors"
	"github.com/xaysimo/xaysimo/internal/core/domain"
	portssvc "github.com/xaysimo/xaysimo/internal/core/ports/services"
	"github.com/xaysimo/xaysimo/internal/dto"
	"github.com/xaysimo/xaysimo/internal/middleware"
	"github.com/xaysimo/xaysimo/internal/store"
	"github.com/xaysimo/xaysimo/internal/utils"
)

// SettingsService reads and updates the settings block of the document.
// The credential hash never leaves the service.
type SettingsService struct {
	store *store.Store
}

var _ portssvc.SettingsSvcFacade = (*SettingsService)(nil)

func NewSettingsService(s *store.Store) *SettingsService {
	return &SettingsService{store: s}
}

func (s *SettingsService) GetSettings(ctx context.Context) domain.AppSettings {
	settings := s.store.Snapshot().Settings
	settings.AuthPasswordHash = ""
	return settings
}

func (s *SettingsService) UpdateSettings(ctx context.Context, req dto.UpdateSettingsRequest, actor string) (*domain.AppSettings, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.ExchangeRate != nil && !req.ExchangeRate.IsPositive() {
		return nil, fmt.Errorf("%w: exchange rate must be positive", apperrors.ErrValidation)
	}
	if req.TaxRate != nil && req.TaxRate.IsNegative() {
		return nil, fmt.Errorf("%w: tax rate cannot be negative", apperrors.ErrValidation)
	}

	var passwordHash string
	if req.AuthPassword != nil {
		hash, err := utils.HashPassword(*req.AuthPassword)
		if err != nil {
			return nil, fmt.Errorf("%w: hashing password", apperrors.ErrInternal)
		}
		passwordHash = hash
	}

	var updated domain.AppSettings
	_, err := s.store.Update(ctx, func(doc *domain.AppData) error {
		settings := &doc.Settings
		if req.BusinessName != nil {
			settings.BusinessName = *req.BusinessName
		}
		if req.BusinessLogo != nil {
			settings.BusinessLogo = *req.BusinessLogo
		}
		if req.ExchangeRate != nil {
			settings.ExchangeRate = *req.ExchangeRate
		}
		if req.TaxRate != nil {
			settings.TaxRate = *req.TaxRate
		}
		if req.DefaultCurrency != nil {
			settings.DefaultCurrency = *req.DefaultCurrency
		}
		if req.AuthUsername != nil {
			settings.AuthUsername = *req.AuthUsername
		}
		if passwordHash != "" {
			settings.AuthPasswordHash = passwordHash
		}
		if req.AutoSync != nil {
			settings.Sync.AutoSync = *req.AutoSync
		}
		appendAudit(doc, actor, "Settings Updated", "Business settings changed", time.Now().UTC())
		updated = *settings
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Settings updated", slog.String("actor", actor))
	updated.AuthPasswordHash = ""
	return &updated, nil
}
