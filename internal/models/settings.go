// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// CompanySettings is the single-row issuer identity: the company.* section
// of the document variable bag. SIRET and VAT are the French business and
// tax registration numbers printed on invoices.
type CompanySettings struct {
	Name      string    `json:"name"`
	Logo      string    `json:"logo"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	Country   string    `json:"country"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Siret     string    `json:"siret"`
	VAT       string    `json:"vat"`
	Currency  string    `json:"currency"`
	UpdatedAt time.Time `json:"updated_at"`
}
