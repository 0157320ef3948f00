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

// templateColumns lists all columns for templates SELECTs.
const templateColumns = `id, name, kind, elements, version, is_default, created_at, updated_at`

// TemplateStore handles all template-related database operations.
type TemplateStore struct {
	db *sql.DB
}

// NewTemplateStore creates a new TemplateStore with the given database connection.
func NewTemplateStore(db *sql.DB) *TemplateStore {
	return &TemplateStore{db: db}
}

// scanTemplate scans a single templates row.
func scanTemplate(scanner interface{ Scan(...any) error }) (*models.Template, error) {
	var t models.Template
	err := scanner.Scan(
		&t.ID, &t.Name, &t.Kind, &t.Elements, &t.Version,
		&t.IsDefault, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// List returns all templates ordered by kind and name.
func (s *TemplateStore) List() ([]*models.Template, error) {
	rows, err := s.db.Query(`
		SELECT ` + templateColumns + `
		FROM templates
		ORDER BY kind, name
	`)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	var templates []*models.Template
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan template: %w", err)
		}
		templates = append(templates, t)
	}
	return templates, rows.Err()
}

// FindByID retrieves a template by its UUID. Returns nil if not found.
func (s *TemplateStore) FindByID(id uuid.UUID) (*models.Template, error) {
	row := s.db.QueryRow(`
		SELECT `+templateColumns+`
		FROM templates WHERE id = $1
	`, id)
	t, err := scanTemplate(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find template by id: %w", err)
	}
	return t, nil
}

// FindDefaultByKind returns the default template for the given document
// kind. Only one template per kind should be default at a time.
func (s *TemplateStore) FindDefaultByKind(kind models.TemplateKind) (*models.Template, error) {
	row := s.db.QueryRow(`
		SELECT `+templateColumns+`
		FROM templates WHERE kind = $1 AND is_default = TRUE
		LIMIT 1
	`, kind)
	t, err := scanTemplate(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find default template: %w", err)
	}
	return t, nil
}

// Create inserts a new template. Does NOT make it the default.
func (s *TemplateStore) Create(t *models.Template) (*models.Template, error) {
	row := s.db.QueryRow(`
		INSERT INTO templates (name, kind, elements, version, is_default)
		VALUES ($1, $2, $3, 1, FALSE)
		RETURNING `+templateColumns,
		t.Name, t.Kind, t.Elements,
	)
	created, err := scanTemplate(row)
	if err != nil {
		return nil, fmt.Errorf("create template: %w", err)
	}
	return created, nil
}

// Update modifies a template's name and element tree, increments its
// version, and captures the previous state as a revision. The two writes
// happen in one transaction so a revision always matches a version bump.
func (s *TemplateStore) Update(t *models.Template) (*models.Template, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO template_revisions (template_id, name, elements, version)
		SELECT id, name, elements, version FROM templates WHERE id = $1
	`, t.ID)
	if err != nil {
		return nil, fmt.Errorf("capture template revision: %w", err)
	}

	row := tx.QueryRow(`
		UPDATE templates SET
			name = $1, elements = $2, version = version + 1, updated_at = NOW()
		WHERE id = $3
		RETURNING `+templateColumns,
		t.Name, t.Elements, t.ID,
	)
	updated, err := scanTemplate(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update template: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit template update: %w", err)
	}
	return updated, nil
}

// SetDefault makes a template the default for its kind, clearing the flag
// on any other template of the same kind. Uses a transaction for atomicity.
func (s *TemplateStore) SetDefault(id uuid.UUID) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var kind string
	err = tx.QueryRow(`SELECT kind FROM templates WHERE id = $1`, id).Scan(&kind)
	if err != nil {
		return fmt.Errorf("get template kind: %w", err)
	}

	_, err = tx.Exec(`UPDATE templates SET is_default = FALSE WHERE kind = $1`, kind)
	if err != nil {
		return fmt.Errorf("clear default templates: %w", err)
	}

	_, err = tx.Exec(`UPDATE templates SET is_default = TRUE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("set default template: %w", err)
	}

	return tx.Commit()
}

// Delete removes a template by ID. Cannot delete the default template.
func (s *TemplateStore) Delete(id uuid.UUID) error {
	result, err := s.db.Exec(`DELETE FROM templates WHERE id = $1 AND is_default = FALSE`, id)
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("cannot delete: template is the default or not found")
	}
	return nil
}

// Count returns the total number of templates.
func (s *TemplateStore) Count() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM templates`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count templates: %w", err)
	}
	return count, nil
}
