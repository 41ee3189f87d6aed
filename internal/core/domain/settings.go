package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SyncSettings holds the remote-mirror toggles persisted with the document.
type SyncSettings struct {
	AutoSync     bool      `json:"autoSync"`
	LastSyncedAt time.Time `json:"lastSyncedAt,omitempty"`
	DataVersion  int64     `json:"dataVersion"`
}

// CurrentUser is the operator identity stamped on audit entries.
type CurrentUser struct {
	Name   string   `json:"name"`
	Role   UserRole `json:"role"`
	Avatar string   `json:"avatar,omitempty"`
}

// AppSettings is the business identity and configuration block of the document.
type AppSettings struct {
	BusinessName     string          `json:"businessName"`
	BusinessLogo     string          `json:"businessLogo,omitempty"`
	ExchangeRate     decimal.Decimal `json:"exchangeRate"`
	TaxRate          decimal.Decimal `json:"taxRate"`
	DefaultCurrency  string          `json:"defaultCurrency"`
	AuthUsername     string          `json:"authUsername,omitempty"`
	AuthPasswordHash string          `json:"authPasswordHash,omitempty"`
	CurrentUser      CurrentUser     `json:"currentUser"`
	Sync             SyncSettings    `json:"syncSettings"`
}
