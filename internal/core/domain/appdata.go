package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AppData is the single shared document that owns every entity in the system.
// It is replaced wholesale on each mutation: handlers clone the current
// snapshot, apply their deltas, and commit the clone.
type AppData struct {
	Products         []Product         `json:"products"`
	Transactions     []Transaction     `json:"transactions"`
	Customers        []Customer        `json:"customers"`
	Suppliers        []Supplier        `json:"suppliers"`
	Expenses         []Expense         `json:"expenses"`
	StockAdjustments []StockAdjustment `json:"stockAdjustments"`
	AuditLogs        []AuditLog        `json:"auditLogs"`
	Accounts         []Account         `json:"accounts"`
	Users            []UserProfile     `json:"users"`
	Settings         AppSettings       `json:"settings"`
	LastModified     time.Time         `json:"lastModified,omitempty"`
}

// NewAppData returns the seed document: empty ledgers and the default chart of
// accounts (liquid asset accounts plus the fixed-name inventory and loss
// accounts referenced by the posting rules).
func NewAppData(now time.Time) *AppData {
	return &AppData{
		Products:         []Product{},
		Transactions:     []Transaction{},
		Customers:        []Customer{},
		Suppliers:        []Supplier{},
		Expenses:         []Expense{},
		StockAdjustments: []StockAdjustment{},
		AuditLogs:        []AuditLog{},
		Accounts: []Account{
			{ID: "acc-cash", Name: "Cash Account", Type: Asset},
			{ID: "acc-bank", Name: "Bank Account", Type: Asset},
			{ID: "acc-mobile", Name: "Mobile Account", Type: Asset},
			{ID: "acc-inv", Name: AccountNameInventory, Type: Asset},
			{ID: "acc-loss-damaged", Name: AccountNameLossDamaged, Type: Liability},
			{ID: "acc-loss-lost", Name: AccountNameLossLost, Type: Liability},
			{ID: "acc-loss-expired", Name: AccountNameLossExpired, Type: Liability},
		},
		Users: []UserProfile{
			{ID: "1", Name: "Admin User", Role: RoleAdmin, IsActive: true},
		},
		Settings: AppSettings{
			BusinessName:    "Xaysimo ERP",
			ExchangeRate:    decimal.NewFromInt(1),
			TaxRate:         decimal.Zero,
			DefaultCurrency: "USD",
			CurrentUser:     CurrentUser{Name: "Admin User", Role: RoleAdmin},
			Sync:            SyncSettings{AutoSync: true, DataVersion: 1},
		},
		LastModified: now,
	}
}

// Clone returns a deep copy of the document. Item snapshots, histories and the
// audit trail are copied so mutations on the clone never alias the original.
func (d *AppData) Clone() *AppData {
	out := *d

	out.Products = append([]Product(nil), d.Products...)
	out.Suppliers = append([]Supplier(nil), d.Suppliers...)
	out.Expenses = append([]Expense(nil), d.Expenses...)
	out.StockAdjustments = append([]StockAdjustment(nil), d.StockAdjustments...)
	out.AuditLogs = append([]AuditLog(nil), d.AuditLogs...)
	out.Accounts = append([]Account(nil), d.Accounts...)
	out.Users = append([]UserProfile(nil), d.Users...)

	out.Transactions = make([]Transaction, len(d.Transactions))
	for i, tx := range d.Transactions {
		out.Transactions[i] = tx
		out.Transactions[i].Items = append([]CartItem(nil), tx.Items...)
		if tx.Payment.Split != nil {
			split := *tx.Payment.Split
			out.Transactions[i].Payment.Split = &split
		}
	}

	out.Customers = make([]Customer, len(d.Customers))
	for i, c := range d.Customers {
		out.Customers[i] = c
		out.Customers[i].History = append([]string(nil), c.History...)
	}

	return &out
}

// AccountByID returns a pointer into the document's account list, or nil.
func (d *AppData) AccountByID(id string) *Account {
	for i := range d.Accounts {
		if d.Accounts[i].ID == id {
			return &d.Accounts[i]
		}
	}
	return nil
}

// AccountByName returns a pointer into the document's account list, or nil.
func (d *AppData) AccountByName(name string) *Account {
	for i := range d.Accounts {
		if d.Accounts[i].Name == name {
			return &d.Accounts[i]
		}
	}
	return nil
}

// ProductByID returns a pointer into the document's product list, or nil.
func (d *AppData) ProductByID(id string) *Product {
	for i := range d.Products {
		if d.Products[i].ID == id {
			return &d.Products[i]
		}
	}
	return nil
}

// CustomerByID returns a pointer into the document's customer list, or nil.
func (d *AppData) CustomerByID(id string) *Customer {
	for i := range d.Customers {
		if d.Customers[i].ID == id {
			return &d.Customers[i]
		}
	}
	return nil
}

// SupplierByID returns a pointer into the document's supplier list, or nil.
func (d *AppData) SupplierByID(id string) *Supplier {
	for i := range d.Suppliers {
		if d.Suppliers[i].ID == id {
			return &d.Suppliers[i]
		}
	}
	return nil
}

// TransactionByID returns a pointer into the transaction log, or nil.
func (d *AppData) TransactionByID(id string) *Transaction {
	for i := range d.Transactions {
		if d.Transactions[i].ID == id {
			return &d.Transactions[i]
		}
	}
	return nil
}

// AdjustmentByID returns a pointer into the stock adjustment list, or nil.
func (d *AppData) AdjustmentByID(id string) *StockAdjustment {
	for i := range d.StockAdjustments {
		if d.StockAdjustments[i].ID == id {
			return &d.StockAdjustments[i]
		}
	}
	return nil
}

// ExpenseByID returns a pointer into the expense list, or nil.
func (d *AppData) ExpenseByID(id string) *Expense {
	for i := range d.Expenses {
		if d.Expenses[i].ID == id {
			return &d.Expenses[i]
		}
	}
	return nil
}
