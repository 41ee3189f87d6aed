// Package csvio reads and writes the spreadsheet-facing CSV shapes. Exports
// are prefixed with a UTF-8 BOM so the files open cleanly in Excel; imports
// tolerate the BOM on the way back in.
package csvio

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"

	"github.com/xaysimo/xaysimo/internal/core/domain"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ProductRow is one catalog line in the import/export sheet.
type ProductRow struct {
	Name      string          `csv:"Name"`
	SKU       string          `csv:"SKU"`
	Barcode   string          `csv:"Barcode"`
	CostPrice decimal.Decimal `csv:"Cost Price"`
	SellPrice decimal.Decimal `csv:"Sell Price"`
	Stock     int64           `csv:"Stock"`
	Category  string          `csv:"Category"`
}

// SaleRow is one invoice line in the sales export.
type SaleRow struct {
	InvoiceID     string          `csv:"Invoice ID"`
	Date          string          `csv:"Date"`
	Customer      string          `csv:"Customer"`
	PaymentMethod string          `csv:"Payment Method"`
	Subtotal      decimal.Decimal `csv:"Subtotal"`
	Tax           decimal.Decimal `csv:"Tax"`
	Total         decimal.Decimal `csv:"Total"`
	ItemsCount    int             `csv:"Items Count"`
}

// WriteProducts exports the catalog.
func WriteProducts(w io.Writer, products []domain.Product) error {
	rows := make([]ProductRow, 0, len(products))
	for _, p := range products {
		rows = append(rows, ProductRow{
			Name:      p.Name,
			SKU:       p.SKU,
			Barcode:   p.Barcode,
			CostPrice: p.CostPrice,
			SellPrice: p.SellPrice,
			Stock:     p.Stock,
			Category:  p.Category,
		})
	}
	if _, err := w.Write(utf8BOM); err != nil {
		return err
	}
	return gocsv.Marshal(rows, w)
}

// ReadProducts parses an import sheet into catalog entries. IDs are left
// empty for the caller to assign. Rows without a name are rejected.
func ReadProducts(r io.Reader) ([]domain.Product, error) {
	var rows []ProductRow
	if err := gocsv.Unmarshal(stripBOM(r), &rows); err != nil {
		return nil, fmt.Errorf("parsing product csv: %w", err)
	}

	products := make([]domain.Product, 0, len(rows))
	for i, row := range rows {
		if row.Name == "" {
			return nil, fmt.Errorf("row %d: product name is required", i+2)
		}
		products = append(products, domain.Product{
			Name:      row.Name,
			SKU:       row.SKU,
			Barcode:   row.Barcode,
			CostPrice: row.CostPrice,
			SellPrice: row.SellPrice,
			Stock:     row.Stock,
			Category:  row.Category,
		})
	}
	return products, nil
}

// WriteSales exports the transaction log. Customer names are resolved from
// the document; deleted customers show as their stored id.
func WriteSales(w io.Writer, doc *domain.AppData) error {
	rows := make([]SaleRow, 0, len(doc.Transactions))
	for _, tx := range doc.Transactions {
		customerName := tx.CustomerID
		if c := doc.CustomerByID(tx.CustomerID); c != nil {
			customerName = c.Name
		}
		rows = append(rows, SaleRow{
			InvoiceID:     tx.ID,
			Date:          tx.Timestamp.Format(time.RFC3339),
			Customer:      customerName,
			PaymentMethod: string(tx.Payment.Method),
			Subtotal:      tx.Subtotal,
			Tax:           tx.Tax,
			Total:         tx.Total,
			ItemsCount:    len(tx.Items),
		})
	}
	if _, err := w.Write(utf8BOM); err != nil {
		return err
	}
	return gocsv.Marshal(rows, w)
}

// stripBOM drops a leading UTF-8 BOM if present.
func stripBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	head, err := br.Peek(3)
	if err == nil && head[0] == utf8BOM[0] && head[1] == utf8BOM[1] && head[2] == utf8BOM[2] {
		br.Discard(3)
	}
	return br
}
