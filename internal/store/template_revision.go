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

// templateRevisionColumns lists all columns for template_revisions SELECTs.
const templateRevisionColumns = `id, template_id, name, elements, version, created_at`

// TemplateRevisionStore provides access to retained past template states.
type TemplateRevisionStore struct {
	db *sql.DB
}

// NewTemplateRevisionStore creates a new TemplateRevisionStore backed by the given database.
func NewTemplateRevisionStore(db *sql.DB) *TemplateRevisionStore {
	return &TemplateRevisionStore{db: db}
}

// scanTemplateRevision scans a single template_revisions row.
func scanTemplateRevision(scanner interface{ Scan(...any) error }) (*models.TemplateRevision, error) {
	var r models.TemplateRevision
	err := scanner.Scan(
		&r.ID, &r.TemplateID, &r.Name, &r.Elements, &r.Version, &r.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// ListByTemplateID returns all revisions for a template, newest first.
func (s *TemplateRevisionStore) ListByTemplateID(templateID uuid.UUID) ([]*models.TemplateRevision, error) {
	rows, err := s.db.Query(`
		SELECT `+templateRevisionColumns+`
		FROM template_revisions
		WHERE template_id = $1
		ORDER BY created_at DESC
	`, templateID)
	if err != nil {
		return nil, fmt.Errorf("list template revisions: %w", err)
	}
	defer rows.Close()

	var revisions []*models.TemplateRevision
	for rows.Next() {
		r, err := scanTemplateRevision(rows)
		if err != nil {
			return nil, fmt.Errorf("scan template revision: %w", err)
		}
		revisions = append(revisions, r)
	}
	return revisions, rows.Err()
}

// FindByID returns a single template revision by its ID.
func (s *TemplateRevisionStore) FindByID(id uuid.UUID) (*models.TemplateRevision, error) {
	row := s.db.QueryRow(`
		SELECT `+templateRevisionColumns+`
		FROM template_revisions
		WHERE id = $1
	`, id)
	r, err := scanTemplateRevision(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return r, err
}
