// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"facturio/internal/models"
)

const invoiceColumns = `id, client_id, number, status, date, due_date,
	subtotal, tax, tax_rate, shipping, total, created_at, updated_at`

const invoiceItemColumns = `id, invoice_id, description, quantity, unit_price,
	discount, tax_rate, tax_amount, total, total_ttc, category, reference, sort_order`

// InvoiceStore provides access to invoice data in PostgreSQL.
type InvoiceStore struct {
	db *sql.DB
}

// NewInvoiceStore creates a new InvoiceStore with the given database connection.
func NewInvoiceStore(db *sql.DB) *InvoiceStore {
	return &InvoiceStore{db: db}
}

func scanInvoice(scanner interface{ Scan(...any) error }) (*models.Invoice, error) {
	var inv models.Invoice
	err := scanner.Scan(
		&inv.ID, &inv.ClientID, &inv.Number, &inv.Status, &inv.Date, &inv.DueDate,
		&inv.Subtotal, &inv.Tax, &inv.TaxRate, &inv.Shipping, &inv.Total,
		&inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func scanInvoiceItem(scanner interface{ Scan(...any) error }) (*models.InvoiceItem, error) {
	var it models.InvoiceItem
	err := scanner.Scan(
		&it.ID, &it.InvoiceID, &it.Description, &it.Quantity, &it.UnitPrice,
		&it.Discount, &it.TaxRate, &it.TaxAmount, &it.Total, &it.TotalTTC,
		&it.Category, &it.Reference, &it.SortOrder,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// List returns all invoices, newest first.
func (s *InvoiceStore) List() ([]*models.Invoice, error) {
	rows, err := s.db.Query(`SELECT ` + invoiceColumns + ` FROM invoices ORDER BY date DESC, number DESC`)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	var invoices []*models.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}

// ListByClientID returns a client's invoices, newest first.
func (s *InvoiceStore) ListByClientID(clientID uuid.UUID) ([]*models.Invoice, error) {
	rows, err := s.db.Query(`SELECT `+invoiceColumns+` FROM invoices WHERE client_id = $1 ORDER BY date DESC`, clientID)
	if err != nil {
		return nil, fmt.Errorf("list invoices by client: %w", err)
	}
	defer rows.Close()

	var invoices []*models.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}

// FindByID retrieves an invoice by its UUID. Returns nil if not found.
func (s *InvoiceStore) FindByID(id uuid.UUID) (*models.Invoice, error) {
	row := s.db.QueryRow(`SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id)
	inv, err := scanInvoice(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find invoice by id: %w", err)
	}
	return inv, nil
}

// FindByNumber retrieves an invoice by its number. Returns nil if not found.
func (s *InvoiceStore) FindByNumber(number string) (*models.Invoice, error) {
	row := s.db.QueryRow(`SELECT `+invoiceColumns+` FROM invoices WHERE number = $1`, number)
	inv, err := scanInvoice(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find invoice by number: %w", err)
	}
	return inv, nil
}

// ListItemsByInvoiceID returns the line items of an invoice, in display order.
func (s *InvoiceStore) ListItemsByInvoiceID(invoiceID uuid.UUID) ([]*models.InvoiceItem, error) {
	rows, err := s.db.Query(`SELECT `+invoiceItemColumns+` FROM invoice_items WHERE invoice_id = $1 ORDER BY sort_order`, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice items: %w", err)
	}
	defer rows.Close()

	var items []*models.InvoiceItem
	for rows.Next() {
		it, err := scanInvoiceItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// Create inserts an invoice and its items in one transaction.
func (s *InvoiceStore) Create(inv *models.Invoice, items []*models.InvoiceItem) (*models.Invoice, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin create invoice: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRow(`
		INSERT INTO invoices (client_id, number, status, date, due_date,
			subtotal, tax, tax_rate, shipping, total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+invoiceColumns,
		inv.ClientID, inv.Number, inv.Status, inv.Date, inv.DueDate,
		inv.Subtotal, inv.Tax, inv.TaxRate, inv.Shipping, inv.Total,
	)
	created, err := scanInvoice(row)
	if err != nil {
		return nil, fmt.Errorf("create invoice: %w", err)
	}

	for i, it := range items {
		_, err := tx.Exec(`
			INSERT INTO invoice_items (invoice_id, description, quantity, unit_price,
				discount, tax_rate, tax_amount, total, total_ttc, category, reference, sort_order)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		`, created.ID, it.Description, it.Quantity, it.UnitPrice,
			it.Discount, it.TaxRate, it.TaxAmount, it.Total, it.TotalTTC,
			it.Category, it.Reference, i)
		if err != nil {
			return nil, fmt.Errorf("create invoice item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit create invoice: %w", err)
	}
	return created, nil
}

// UpdateStatus moves an invoice to a new lifecycle state.
func (s *InvoiceStore) UpdateStatus(id uuid.UUID, status models.InvoiceStatus) error {
	_, err := s.db.Exec(`UPDATE invoices SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("update invoice status: %w", err)
	}
	return nil
}

// Delete removes an invoice and, via cascade, its items.
func (s *InvoiceStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	return nil
}
