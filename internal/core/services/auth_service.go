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
	"github.com/xaysimo/xaysimo/internal/platform/config"
	"github.com/xaysimo/xaysimo/internal/store"
	"github.com/xaysimo/xaysimo/internal/utils"
)

// AuthService is the login gate. Credentials live in the document: either
// the business-wide pair in settings or a named user profile with its own
// password hash. On a fresh document with no credential configured, the
// first login sets the business credential.
type AuthService struct {
	store *store.Store
	cfg   *config.Config
}

var _ portssvc.AuthSvcFacade = (*AuthService)(nil)

func NewAuthService(s *store.Store, cfg *config.Config) *AuthService {
	return &AuthService{store: s, cfg: cfg}
}

func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	doc := s.store.Snapshot()

	// Named user profiles take precedence over the business credential.
	for _, user := range doc.Users {
		if user.Name != req.Username || !user.IsActive || user.PasswordHash == "" {
			continue
		}
		if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
			return nil, apperrors.ErrUnauthorized
		}
		return s.issueToken(logger, user.ID, domain.CurrentUser{Name: user.Name, Role: user.Role, Avatar: user.Avatar})
	}

	settings := doc.Settings
	if settings.AuthPasswordHash == "" {
		return s.bootstrapCredential(ctx, req)
	}

	if req.Username != settings.AuthUsername || !utils.CheckPasswordHash(req.Password, settings.AuthPasswordHash) {
		return nil, apperrors.ErrUnauthorized
	}

	operator := settings.CurrentUser
	if operator.Name == "" {
		operator = domain.CurrentUser{Name: req.Username, Role: domain.RoleAdmin}
	}
	return s.issueToken(logger, req.Username, operator)
}

// bootstrapCredential stores the first credential pair presented to an
// unconfigured document and signs the caller in as admin.
func (s *AuthService) bootstrapCredential(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: hashing password", apperrors.ErrInternal)
	}

	operator := domain.CurrentUser{Name: req.Username, Role: domain.RoleAdmin}
	_, err = s.store.Update(ctx, func(doc *domain.AppData) error {
		if doc.Settings.AuthPasswordHash != "" {
			return apperrors.ErrUnauthorized
		}
		doc.Settings.AuthUsername = req.Username
		doc.Settings.AuthPasswordHash = hash
		doc.Settings.CurrentUser = operator
		appendAudit(doc, req.Username, "Credentials Set", "Initial login credential configured", time.Now().UTC())
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Initial credential configured", slog.String("username", req.Username))
	return s.issueToken(logger, req.Username, operator)
}

func (s *AuthService) issueToken(logger *slog.Logger, userID string, operator domain.CurrentUser) (*dto.LoginResponse, error) {
	token, err := utils.GenerateJWT(userID, string(operator.Role), s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		logger.Error("Failed to sign token", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: signing token", apperrors.ErrInternal)
	}
	logger.Info("Login succeeded", slog.String("user", operator.Name), slog.String("role", string(operator.Role)))
	return &dto.LoginResponse{Token: token, User: operator}, nil
}
