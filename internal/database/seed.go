// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"facturio/internal/doctree"
)

// Seed populates the database with initial development data: a starter
// invoice template assembled from the element registry defaults, plus a
// sample client. It is a no-op when templates already exist.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM templates").Scan(&count); err != nil {
		return fmt.Errorf("seed check templates: %w", err)
	}
	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	elements, err := starterInvoiceElements()
	if err != nil {
		return fmt.Errorf("seed build starter template: %w", err)
	}
	raw, err := json.Marshal(elements)
	if err != nil {
		return fmt.Errorf("seed marshal starter template: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO templates (name, kind, elements, is_default)
		VALUES ($1, 'invoice', $2, TRUE)
	`, "Facture standard", raw)
	if err != nil {
		return fmt.Errorf("seed insert template: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO clients (name, company, address, city, country, email)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, "Marie Martin", "Martin & Fils", "8 avenue de la République", "Paris", "France", "marie@martin-fils.fr")
	if err != nil {
		return fmt.Errorf("seed insert client: %w", err)
	}

	slog.Info("database seeded with starter template and sample client")
	return nil
}

// starterInvoiceElements assembles the default invoice layout: header,
// client/invoice metadata columns, line-item table, and footer.
func starterInvoiceElements() ([]doctree.Element, error) {
	var elements []doctree.Element
	for _, t := range []doctree.Type{
		doctree.TypeHeader,
		doctree.TypeColumnLayout,
		doctree.TypeTable,
		doctree.TypeFooter,
	} {
		el, err := doctree.New(t)
		if err != nil {
			return nil, err
		}
		elements = append(elements, el)
	}
	return elements, nil
}
