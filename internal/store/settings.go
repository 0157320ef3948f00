// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"facturio/internal/models"
)

// SettingsStore provides access to the single company_settings row.
type SettingsStore struct {
	db *sql.DB
}

// NewSettingsStore creates a new SettingsStore with the given database connection.
func NewSettingsStore(db *sql.DB) *SettingsStore {
	return &SettingsStore{db: db}
}

// Get returns the company settings. The row is created by the migrations,
// so a missing row is an error rather than a nil result.
func (s *SettingsStore) Get() (*models.CompanySettings, error) {
	var cs models.CompanySettings
	err := s.db.QueryRow(`
		SELECT name, logo, address, city, country, email, phone, siret, vat, currency, updated_at
		FROM company_settings WHERE id = 1
	`).Scan(
		&cs.Name, &cs.Logo, &cs.Address, &cs.City, &cs.Country,
		&cs.Email, &cs.Phone, &cs.Siret, &cs.VAT, &cs.Currency, &cs.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("get company settings: %w", err)
	}
	return &cs, nil
}

// Update replaces the company settings.
func (s *SettingsStore) Update(cs *models.CompanySettings) error {
	_, err := s.db.Exec(`
		UPDATE company_settings SET
			name = $1, logo = $2, address = $3, city = $4, country = $5,
			email = $6, phone = $7, siret = $8, vat = $9, currency = $10,
			updated_at = NOW()
		WHERE id = 1
	`, cs.Name, cs.Logo, cs.Address, cs.City, cs.Country,
		cs.Email, cs.Phone, cs.Siret, cs.VAT, cs.Currency)
	if err != nil {
		return fmt.Errorf("update company settings: %w", err)
	}
	return nil
}
