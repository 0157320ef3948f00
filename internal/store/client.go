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

// clientColumns lists all columns for clients SELECTs.
const clientColumns = `id, name, company, address, city, country, email, created_at, updated_at`

// ClientStore provides access to client data in PostgreSQL.
type ClientStore struct {
	db *sql.DB
}

// NewClientStore creates a new ClientStore with the given database connection.
func NewClientStore(db *sql.DB) *ClientStore {
	return &ClientStore{db: db}
}

func scanClient(scanner interface{ Scan(...any) error }) (*models.Client, error) {
	var c models.Client
	err := scanner.Scan(
		&c.ID, &c.Name, &c.Company, &c.Address, &c.City,
		&c.Country, &c.Email, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns all clients ordered by name.
func (s *ClientStore) List() ([]*models.Client, error) {
	rows, err := s.db.Query(`SELECT ` + clientColumns + ` FROM clients ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	var clients []*models.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

// FindByID retrieves a client by its UUID. Returns nil if not found.
func (s *ClientStore) FindByID(id uuid.UUID) (*models.Client, error) {
	row := s.db.QueryRow(`SELECT `+clientColumns+` FROM clients WHERE id = $1`, id)
	c, err := scanClient(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find client by id: %w", err)
	}
	return c, nil
}

// Create inserts a new client.
func (s *ClientStore) Create(c *models.Client) (*models.Client, error) {
	row := s.db.QueryRow(`
		INSERT INTO clients (name, company, address, city, country, email)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+clientColumns,
		c.Name, c.Company, c.Address, c.City, c.Country, c.Email,
	)
	created, err := scanClient(row)
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	return created, nil
}

// Update modifies a client.
func (s *ClientStore) Update(c *models.Client) error {
	_, err := s.db.Exec(`
		UPDATE clients SET
			name = $1, company = $2, address = $3, city = $4,
			country = $5, email = $6, updated_at = NOW()
		WHERE id = $7
	`, c.Name, c.Company, c.Address, c.City, c.Country, c.Email, c.ID)
	if err != nil {
		return fmt.Errorf("update client: %w", err)
	}
	return nil
}

// Delete removes a client and, via cascade, their invoices.
func (s *ClientStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	return nil
}
