package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/xaysimo/xaysimo/internal/core/domain"
)

// LoginRequest carries the credential pair for the login gate.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse returns the bearer token and operator identity.
type LoginResponse struct {
	Token string             `json:"token"`
	User  domain.CurrentUser `json:"user"`
}

// UpdateSettingsRequest carries optional settings updates. Credential changes
// go through AuthPassword, which is hashed before it touches the document.
type UpdateSettingsRequest struct {
	BusinessName    *string          `json:"businessName,omitempty"`
	BusinessLogo    *string          `json:"businessLogo,omitempty"`
	ExchangeRate    *decimal.Decimal `json:"exchangeRate,omitempty"`
	TaxRate         *decimal.Decimal `json:"taxRate,omitempty"`
	DefaultCurrency *string          `json:"defaultCurrency,omitempty"`
	AuthUsername    *string          `json:"authUsername,omitempty"`
	AuthPassword    *string          `json:"authPassword,omitempty"`
	AutoSync        *bool            `json:"autoSync,omitempty"`
}

// SyncStatusResponse reports the state of the remote mirror.
type SyncStatusResponse struct {
	Mirror       string    `json:"mirror"`
	State        string    `json:"state"`
	LastSyncedAt time.Time `json:"lastSyncedAt,omitempty"`
	LastError    string    `json:"lastError,omitempty"`
}
