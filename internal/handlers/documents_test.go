// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// documents_test.go exercises the invoice document endpoint against a
// live PostgreSQL. Tests are skipped when the database is unavailable.
package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"facturio/internal/database"
	"facturio/internal/models"
	"facturio/internal/store"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "facturio")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "facturio")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// newTestAPI builds an API over a live database, without cache or storage.
func newTestAPI(t *testing.T) (*API, *sql.DB) {
	t.Helper()
	db := testDB(t)

	for _, table := range []string{"invoice_items", "invoices", "clients", "template_revisions", "templates"} {
		if _, err := db.Exec("DELETE FROM " + table); err != nil {
			t.Fatalf("clean %s: %v", table, err)
		}
	}

	api := NewAPI(
		store.NewTemplateStore(db),
		store.NewTemplateRevisionStore(db),
		store.NewClientStore(db),
		store.NewInvoiceStore(db),
		store.NewSettingsStore(db),
		nil,
		nil,
	)
	return api, db
}

// seedInvoice creates a client and a two-line invoice.
func seedInvoice(t *testing.T, api *API) *models.Invoice {
	t.Helper()

	client, err := api.clients.Create(&models.Client{
		Name:    "Acme SARL",
		Address: "1 rue de la Paix",
		City:    "Paris",
		Country: "France",
		Email:   "compta@acme.example",
	})
	if err != nil {
		t.Fatalf("create client: %v", err)
	}

	inv, err := api.invoices.Create(&models.Invoice{
		ClientID: client.ID,
		Number:   "FAC-2026-0042",
		Status:   models.InvoiceStatusSent,
		Subtotal: 150,
		Tax:      30,
		Total:    180,
	}, []*models.InvoiceItem{
		{Description: "Service A", Quantity: 1, UnitPrice: 100, TaxRate: 20, TaxAmount: 20, Total: 100, TotalTTC: 120},
		{Description: "Service B", Quantity: 1, UnitPrice: 50, TaxRate: 20, TaxAmount: 10, Total: 50, TotalTTC: 60},
	})
	if err != nil {
		t.Fatalf("create invoice: %v", err)
	}
	return inv
}

// documentRequest calls InvoiceDocument for the given invoice with the
// chi route parameter wired the way the router does it.
func documentRequest(api *API, invoiceID, query string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/invoices/"+invoiceID+"/document"+query, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", invoiceID)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	rr := httptest.NewRecorder()
	api.InvoiceDocument(rr, req)
	return rr
}

func TestInvoiceDocumentDisposition(t *testing.T) {
	api, _ := newTestAPI(t)
	inv := seedInvoice(t, api)

	elements, _ := json.Marshal([]map[string]any{
		{"id": "t1", "type": "text", "content": map[string]any{"text": "Facture {{invoice.number}}"}},
	})
	tmpl, err := api.templates.Create(&models.Template{
		Name:     "Standard",
		Kind:     models.TemplateKindInvoice,
		Elements: elements,
	})
	if err != nil {
		t.Fatalf("create template: %v", err)
	}
	if err := api.templates.SetDefault(tmpl.ID); err != nil {
		t.Fatalf("set default: %v", err)
	}

	rr := documentRequest(api, inv.ID.String(), "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200 (body %q)", rr.Code, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type: got %q, want text/html", ct)
	}
	disposition := rr.Header().Get("Content-Disposition")
	if !strings.Contains(disposition, "fac-2026-0042.html") {
		t.Errorf("Content-Disposition: got %q, want the slugged invoice number", disposition)
	}
	if !strings.Contains(rr.Body.String(), "Facture FAC-2026-0042") {
		t.Errorf("body: variable not substituted, got %q", rr.Body.String())
	}
}

// A template that fails validation must produce a plain JSON error with
// no document filename header attached.
func TestInvoiceDocumentInvalidTemplateNoDisposition(t *testing.T) {
	api, _ := newTestAPI(t)
	inv := seedInvoice(t, api)

	// Duplicate element ids fail validation.
	elements, _ := json.Marshal([]map[string]any{
		{"id": "dup", "type": "text", "content": map[string]any{"text": "a"}},
		{"id": "dup", "type": "text", "content": map[string]any{"text": "b"}},
	})
	tmpl, err := api.templates.Create(&models.Template{
		Name:     "Broken",
		Kind:     models.TemplateKindInvoice,
		Elements: elements,
	})
	if err != nil {
		t.Fatalf("create template: %v", err)
	}

	rr := documentRequest(api, inv.ID.String(), "?template="+tmpl.ID.String())
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status: got %d, want 422", rr.Code)
	}
	if got := rr.Header().Get("Content-Disposition"); got != "" {
		t.Errorf("Content-Disposition on error response: got %q, want none", got)
	}
	var body struct {
		Errors []string `json:"errors"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if len(body.Errors) == 0 {
		t.Error("expected validation problems in the error body")
	}
}
