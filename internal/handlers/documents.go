package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"facturio/internal/cache"
	"facturio/internal/doctree"
	"facturio/internal/models"
	"facturio/internal/render"
	"facturio/internal/slug"
	"facturio/internal/vars"
)

// Palette returns the element type catalogue the builder UI offers,
// with default styles and containment rules per type.
func (a *API) Palette(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, doctree.Palette())
}

// ClientsList returns all clients.
func (a *API) ClientsList(w http.ResponseWriter, r *http.Request) {
	clients, err := a.clients.List()
	if err != nil {
		slog.Error("list clients failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to list clients.")
		return
	}
	if clients == nil {
		clients = []*models.Client{}
	}
	respondJSON(w, http.StatusOK, clients)
}

// ClientGet returns a single client with their invoices.
func (a *API) ClientGet(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid client ID.")
		return
	}
	client, err := a.clients.FindByID(id)
	if err != nil {
		slog.Error("find client failed", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "Failed to load client.")
		return
	}
	if client == nil {
		respondError(w, http.StatusNotFound, "Client not found.")
		return
	}

	invoices, err := a.invoices.ListByClientID(client.ID)
	if err != nil {
		slog.Error("list client invoices failed", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "Failed to load invoices.")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"client":   client,
		"invoices": invoices,
	})
}

// InvoicesList returns all invoices, newest first.
func (a *API) InvoicesList(w http.ResponseWriter, r *http.Request) {
	invoices, err := a.invoices.List()
	if err != nil {
		slog.Error("list invoices failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to list invoices.")
		return
	}
	if invoices == nil {
		invoices = []*models.Invoice{}
	}
	respondJSON(w, http.StatusOK, invoices)
}

// InvoiceGet returns an invoice with its line items.
func (a *API) InvoiceGet(w http.ResponseWriter, r *http.Request) {
	inv, ok := a.findInvoice(w, r)
	if !ok {
		return
	}
	items, err := a.invoices.ListItemsByInvoiceID(inv.ID)
	if err != nil {
		slog.Error("list invoice items failed", "error", err, "id", inv.ID)
		respondError(w, http.StatusInternalServerError, "Failed to load invoice items.")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"invoice": inv,
		"items":   items,
	})
}

// InvoiceDocument renders an invoice through a template and returns the
// finished HTML document. The template defaults to the invoice default
// and can be overridden with ?template=<id>. Rendered documents are
// cached in Valkey keyed by template id, template version and invoice id.
func (a *API) InvoiceDocument(w http.ResponseWriter, r *http.Request) {
	inv, ok := a.findInvoice(w, r)
	if !ok {
		return
	}

	tmpl, ok := a.documentTemplate(w, r)
	if !ok {
		return
	}

	// Filename used when the client saves the document. Set only on the
	// success paths so error responses stay plain JSON.
	disposition := fmt.Sprintf("inline; filename=%q", slug.Generate(inv.Number)+".html")

	key := cache.Key(tmpl.ID.String(), tmpl.Version, inv.ID.String())
	if a.docCache != nil {
		if html, hit := a.docCache.Get(r.Context(), key); hit {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.Header().Set("Content-Disposition", disposition)
			w.Write(html)
			return
		}
	}

	elements, problems := validateElements(tmpl.Elements)
	if len(problems) > 0 {
		respondJSON(w, http.StatusUnprocessableEntity, map[string]any{"errors": problems})
		return
	}

	bag, err := a.buildBag(inv)
	if err != nil {
		slog.Error("build document bag failed", "error", err, "invoice", inv.ID)
		respondError(w, http.StatusInternalServerError, "Failed to assemble document data.")
		return
	}

	html := render.Document(elements, bag, render.ModeStatic)
	if a.docCache != nil {
		a.docCache.Set(r.Context(), key, []byte(html))
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Disposition", disposition)
	w.Write([]byte(html))
}

// SettingsGet returns the company settings.
func (a *API) SettingsGet(w http.ResponseWriter, r *http.Request) {
	cs, err := a.settings.Get()
	if err != nil {
		slog.Error("get settings failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to load settings.")
		return
	}
	respondJSON(w, http.StatusOK, cs)
}

// SettingsUpdate replaces the company settings.
func (a *API) SettingsUpdate(w http.ResponseWriter, r *http.Request) {
	var cs models.CompanySettings
	if err := json.NewDecoder(r.Body).Decode(&cs); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON body.")
		return
	}
	if cs.Name == "" {
		respondError(w, http.StatusBadRequest, "Company name is required.")
		return
	}
	if err := a.settings.Update(&cs); err != nil {
		slog.Error("update settings failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to save settings.")
		return
	}
	respondJSON(w, http.StatusOK, &cs)
}

// buildBag assembles the document variable bag for an invoice.
func (a *API) buildBag(inv *models.Invoice) (vars.Bag, error) {
	company, err := a.settings.Get()
	if err != nil {
		return nil, err
	}
	client, err := a.clients.FindByID(inv.ClientID)
	if err != nil {
		return nil, err
	}
	itemPtrs, err := a.invoices.ListItemsByInvoiceID(inv.ID)
	if err != nil {
		return nil, err
	}
	items := make([]models.InvoiceItem, 0, len(itemPtrs))
	for _, it := range itemPtrs {
		items = append(items, *it)
	}
	return vars.BuildBag(company, client, inv, items), nil
}

// documentTemplate resolves the template to render an invoice document
// with: the ?template= query parameter when present, otherwise the
// default invoice template.
func (a *API) documentTemplate(w http.ResponseWriter, r *http.Request) (*models.Template, bool) {
	if q := r.URL.Query().Get("template"); q != "" {
		id, err := uuid.Parse(q)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid template ID.")
			return nil, false
		}
		t, err := a.templates.FindByID(id)
		if err != nil {
			slog.Error("find template failed", "error", err, "id", id)
			respondError(w, http.StatusInternalServerError, "Failed to load template.")
			return nil, false
		}
		if t == nil {
			respondError(w, http.StatusNotFound, "Template not found.")
			return nil, false
		}
		return t, true
	}

	t, err := a.templates.FindDefaultByKind(models.TemplateKindInvoice)
	if err != nil {
		slog.Error("find default template failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to load default template.")
		return nil, false
	}
	if t == nil {
		respondError(w, http.StatusNotFound, "No default invoice template is configured.")
		return nil, false
	}
	return t, true
}

// findInvoice resolves the {id} URL parameter to a stored invoice,
// writing the error response itself when the lookup fails.
func (a *API) findInvoice(w http.ResponseWriter, r *http.Request) (*models.Invoice, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid invoice ID.")
		return nil, false
	}
	inv, err := a.invoices.FindByID(id)
	if err != nil {
		slog.Error("find invoice failed", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "Failed to load invoice.")
		return nil, false
	}
	if inv == nil {
		respondError(w, http.StatusNotFound, "Invoice not found.")
		return nil, false
	}
	return inv, true
}
