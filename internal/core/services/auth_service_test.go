package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/xaysimo/xaysimo/internal/apperrors"
	"github.com/xaysimo/xaysimo/internal/core/domain"
	"github.com/xaysimo/xaysimo/internal/core/services"
	"github.com/xaysimo/xaysimo/internal/dto"
	"github.com/xaysimo/xaysimo/internal/platform/config"
	"github.com/xaysimo/xaysimo/internal/store"
	"github.com/xaysimo/xaysimo/internal/utils"
)

type AuthServiceTestSuite struct {
	suite.Suite
	store   *store.Store
	service *services.AuthService
	ctx     context.Context
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.store = newTestStore(suite.T())
	cfg := &config.Config{
		JWTSecret:         "test-secret",
		JWTExpiryDuration: time.Hour,
		JWTIssuer:         "test",
	}
	suite.service = services.NewAuthService(suite.store, cfg)
	suite.ctx = context.Background()
}

func (suite *AuthServiceTestSuite) TestFirstLoginSetsCredential() {
	resp, err := suite.service.Login(suite.ctx, dto.LoginRequest{Username: "owner", Password: "hunter2"})
	suite.Require().NoError(err)
	suite.NotEmpty(resp.Token)
	suite.Equal(domain.RoleAdmin, resp.User.Role)

	settings := suite.store.Snapshot().Settings
	suite.Equal("owner", settings.AuthUsername)
	suite.NotEmpty(settings.AuthPasswordHash)
	suite.NotEqual("hunter2", settings.AuthPasswordHash)
}

func (suite *AuthServiceTestSuite) TestWrongPasswordRejected() {
	_, err := suite.service.Login(suite.ctx, dto.LoginRequest{Username: "owner", Password: "hunter2"})
	suite.Require().NoError(err)

	_, err = suite.service.Login(suite.ctx, dto.LoginRequest{Username: "owner", Password: "wrong"})
	assert.ErrorIs(suite.T(), err, apperrors.ErrUnauthorized)
}

func (suite *AuthServiceTestSuite) TestWrongUsernameRejected() {
	_, err := suite.service.Login(suite.ctx, dto.LoginRequest{Username: "owner", Password: "hunter2"})
	suite.Require().NoError(err)

	_, err = suite.service.Login(suite.ctx, dto.LoginRequest{Username: "intruder", Password: "hunter2"})
	assert.ErrorIs(suite.T(), err, apperrors.ErrUnauthorized)
}

func (suite *AuthServiceTestSuite) TestUserProfileLogin() {
	hash, err := utils.HashPassword("cashier-pass")
	suite.Require().NoError(err)
	_, err = suite.store.Update(suite.ctx, func(doc *domain.AppData) error {
		doc.Users = append(doc.Users, domain.UserProfile{
			ID: "u2", Name: "Mina", Role: domain.RoleCashier, PasswordHash: hash, IsActive: true,
		})
		return nil
	})
	suite.Require().NoError(err)

	resp, err := suite.service.Login(suite.ctx, dto.LoginRequest{Username: "Mina", Password: "cashier-pass"})
	suite.Require().NoError(err)
	suite.Equal(domain.RoleCashier, resp.User.Role)

	_, err = suite.service.Login(suite.ctx, dto.LoginRequest{Username: "Mina", Password: "wrong"})
	assert.ErrorIs(suite.T(), err, apperrors.ErrUnauthorized)
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
