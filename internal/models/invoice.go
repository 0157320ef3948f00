// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// InvoiceStatus is the billing lifecycle state of an invoice.
type InvoiceStatus string

const (
	InvoiceStatusDraft   InvoiceStatus = "draft"
	InvoiceStatusSent    InvoiceStatus = "sent"
	InvoiceStatusPaid    InvoiceStatus = "paid"
	InvoiceStatusOverdue InvoiceStatus = "overdue"
)

// Invoice is a billed document heading. Monetary fields are stored as
// already-computed totals; line items carry the per-line breakdown.
type Invoice struct {
	ID        uuid.UUID     `json:"id"`
	ClientID  uuid.UUID     `json:"client_id"`
	Number    string        `json:"number"`
	Status    InvoiceStatus `json:"status"`
	Date      time.Time     `json:"date"`
	DueDate   time.Time     `json:"due_date"`
	Subtotal  float64       `json:"subtotal"`
	Tax       float64       `json:"tax"`
	TaxRate   float64       `json:"tax_rate"`
	Shipping  float64       `json:"shipping"`
	Total     float64       `json:"total"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// InvoiceItem is one line of an invoice: the per-row source for dynamic
// table rendering and total aggregation. Total is the pre-tax line total;
// TotalTTC is the tax-inclusive one.
type InvoiceItem struct {
	ID          uuid.UUID `json:"id"`
	InvoiceID   uuid.UUID `json:"invoice_id"`
	Description string    `json:"description"`
	Quantity    float64   `json:"quantity"`
	UnitPrice   float64   `json:"unitPrice"`
	Discount    float64   `json:"discount"`
	TaxRate     float64   `json:"taxRate"`
	TaxAmount   float64   `json:"taxAmount"`
	Total       float64   `json:"total"`
	TotalTTC    float64   `json:"totalTTC"`
	Category    *string   `json:"category,omitempty"`
	Reference   *string   `json:"reference,omitempty"`
	SortOrder   int       `json:"sort_order"`
}
