package services

import (
	"context"
	"io"
	"time"

	"github.com/xaysimo/xaysimo/internal/core/domain"
	"github.com/xaysimo/xaysimo/internal/dto"
)

// AuthSvcFacade is the login gate.
type AuthSvcFacade interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}

// ReportingSvcFacade is the read side: pure aggregations over the current
// snapshot, no mutation.
type ReportingSvcFacade interface {
	IncomeStatement(ctx context.Context) *dto.IncomeStatement
	BalanceSheet(ctx context.Context) *dto.BalanceSheet
	ZReport(ctx context.Context, day time.Time) *dto.ZReport
	Dashboard(ctx context.Context) *dto.DashboardSummary
	ExportSalesCSV(ctx context.Context, w io.Writer) error
}

// SettingsSvcFacade reads and updates the settings block.
type SettingsSvcFacade interface {
	GetSettings(ctx context.Context) domain.AppSettings
	UpdateSettings(ctx context.Context, req dto.UpdateSettingsRequest, actor string) (*domain.AppSettings, error)
}

// AuditSvcFacade lists the audit trail, most recent first.
type AuditSvcFacade interface {
	ListAuditLogs(ctx context.Context, limit int) []domain.AuditLog
}

// BackupSvcFacade exports and restores the full document, byte-identical to
// the local persistence shape.
type BackupSvcFacade interface {
	Export(ctx context.Context) ([]byte, error)
	Restore(ctx context.Context, raw []byte, actor string) error
}

// InsightsSvcFacade answers free-form business questions from a summary of
// the current document.
type InsightsSvcFacade interface {
	Analyze(ctx context.Context, query string) (string, error)
}

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Auth       AuthSvcFacade
	Register   RegisterSvcFacade
	Debt       DebtSvcFacade
	Product    ProductSvcFacade
	Purchase   PurchaseSvcFacade
	Adjustment AdjustmentSvcFacade
	Customer   CustomerSvcFacade
	Supplier   SupplierSvcFacade
	Account    AccountSvcFacade
	Expense    ExpenseSvcFacade
	Reporting  ReportingSvcFacade
	Settings   SettingsSvcFacade
	Audit      AuditSvcFacade
	Backup     BackupSvcFacade
	Insights   InsightsSvcFacade
}
