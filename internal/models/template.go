// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// TemplateKind categorizes document templates by the document they produce.
type TemplateKind string

const (
	TemplateKindInvoice TemplateKind = "invoice"
	TemplateKindQuote   TemplateKind = "quote"
)

// Template is a stored document template: a named element tree plus
// versioning metadata. Elements holds the serialized tree exactly as the
// builder produced it; element constraints are recomputed from the type
// registry on load, never trusted from storage.
type Template struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Kind      TemplateKind    `json:"kind"`
	Elements  json.RawMessage `json:"elements"`
	Version   int             `json:"version"`
	IsDefault bool            `json:"is_default"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// TemplateRevision is a retained past state of a template, captured on
// every update so a broken edit can be rolled back.
type TemplateRevision struct {
	ID         uuid.UUID       `json:"id"`
	TemplateID uuid.UUID       `json:"template_id"`
	Name       string          `json:"name"`
	Elements   json.RawMessage `json:"elements"`
	Version    int             `json:"version"`
	CreatedAt  time.Time       `json:"created_at"`
}
