// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for the Facturio JSON API.
// Handlers are grouped by concern (templates, documents, uploads) and
// receive their dependencies through the API struct.
package handlers

import (
	"encoding/json"
	"net/http"

	"facturio/internal/cache"
	"facturio/internal/storage"
	"facturio/internal/store"
)

// API groups all API handlers and their dependencies.
type API struct {
	templates *store.TemplateStore
	revisions *store.TemplateRevisionStore
	clients   *store.ClientStore
	invoices  *store.InvoiceStore
	settings  *store.SettingsStore
	docCache  *cache.DocumentCache
	storage   *storage.Client
}

// NewAPI creates a new API handler group with the given dependencies.
// docCache and storageClient may be nil if Valkey or S3 is not configured.
func NewAPI(templates *store.TemplateStore, revisions *store.TemplateRevisionStore, clients *store.ClientStore, invoices *store.InvoiceStore, settings *store.SettingsStore, docCache *cache.DocumentCache, storageClient *storage.Client) *API {
	return &API{
		templates: templates,
		revisions: revisions,
		clients:   clients,
		invoices:  invoices,
		settings:  settings,
		docCache:  docCache,
		storage:   storageClient,
	}
}

// respondJSON writes v as a JSON response with the given status.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// respondError writes a JSON error response.
func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}
