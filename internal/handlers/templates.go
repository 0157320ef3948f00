package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"facturio/internal/models"
	"facturio/internal/render"
	"facturio/internal/vars"
)

// templatePayload is the exchange format for template create/update.
// It mirrors the stored document shape.
type templatePayload struct {
	Name     string          `json:"name"`
	Kind     string          `json:"kind,omitempty"`
	Elements json.RawMessage `json:"elements"`
}

// templateResponse is the JSON shape returned for a template.
type templateResponse struct {
	ID        uuid.UUID           `json:"id"`
	Name      string              `json:"name"`
	Kind      models.TemplateKind `json:"kind"`
	Elements  json.RawMessage     `json:"elements"`
	Version   int                 `json:"version"`
	IsDefault bool                `json:"isDefault"`
	UpdatedAt time.Time           `json:"updatedAt"`
}

func toTemplateResponse(t *models.Template) templateResponse {
	return templateResponse{
		ID:        t.ID,
		Name:      t.Name,
		Kind:      t.Kind,
		Elements:  t.Elements,
		Version:   t.Version,
		IsDefault: t.IsDefault,
		UpdatedAt: t.UpdatedAt,
	}
}

// TemplatesList returns all templates, without their element trees.
func (a *API) TemplatesList(w http.ResponseWriter, r *http.Request) {
	templates, err := a.templates.List()
	if err != nil {
		slog.Error("list templates failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to list templates.")
		return
	}

	type summary struct {
		ID        uuid.UUID           `json:"id"`
		Name      string              `json:"name"`
		Kind      models.TemplateKind `json:"kind"`
		Version   int                 `json:"version"`
		IsDefault bool                `json:"isDefault"`
		UpdatedAt time.Time           `json:"updatedAt"`
	}
	out := make([]summary, 0, len(templates))
	for _, t := range templates {
		out = append(out, summary{
			ID: t.ID, Name: t.Name, Kind: t.Kind,
			Version: t.Version, IsDefault: t.IsDefault, UpdatedAt: t.UpdatedAt,
		})
	}
	respondJSON(w, http.StatusOK, out)
}

// TemplateGet returns a single template with its element tree.
func (a *API) TemplateGet(w http.ResponseWriter, r *http.Request) {
	t, ok := a.findTemplate(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, toTemplateResponse(t))
}

// TemplateCreate stores a new template. The element tree is validated
// before anything is written.
func (a *API) TemplateCreate(w http.ResponseWriter, r *http.Request) {
	var payload templatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON body.")
		return
	}
	if msg := validateTemplateName(payload.Name); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}
	if _, problems := validateElements(payload.Elements); len(problems) > 0 {
		respondJSON(w, http.StatusUnprocessableEntity, map[string]any{"errors": problems})
		return
	}

	kind := models.TemplateKind(payload.Kind)
	if kind == "" {
		kind = models.TemplateKindInvoice
	}
	if kind != models.TemplateKindInvoice && kind != models.TemplateKindQuote {
		respondError(w, http.StatusBadRequest, "Unknown template kind.")
		return
	}

	created, err := a.templates.Create(&models.Template{
		Name:     payload.Name,
		Kind:     kind,
		Elements: payload.Elements,
	})
	if err != nil {
		slog.Error("create template failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to create template.")
		return
	}
	respondJSON(w, http.StatusCreated, toTemplateResponse(created))
}

// TemplateUpdate saves a new version of a template. The previous version
// is captured as a revision, and cached documents rendered from the
// template are invalidated.
func (a *API) TemplateUpdate(w http.ResponseWriter, r *http.Request) {
	t, ok := a.findTemplate(w, r)
	if !ok {
		return
	}

	var payload templatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON body.")
		return
	}
	if msg := validateTemplateName(payload.Name); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}
	if _, problems := validateElements(payload.Elements); len(problems) > 0 {
		respondJSON(w, http.StatusUnprocessableEntity, map[string]any{"errors": problems})
		return
	}

	t.Name = payload.Name
	t.Elements = payload.Elements
	updated, err := a.templates.Update(t)
	if err != nil {
		slog.Error("update template failed", "error", err, "id", t.ID)
		respondError(w, http.StatusInternalServerError, "Failed to update template.")
		return
	}

	if a.docCache != nil {
		a.docCache.InvalidateTemplate(r.Context(), updated.ID.String())
	}
	respondJSON(w, http.StatusOK, toTemplateResponse(updated))
}

// TemplateDelete removes a template. The default template of a kind
// cannot be deleted.
func (a *API) TemplateDelete(w http.ResponseWriter, r *http.Request) {
	t, ok := a.findTemplate(w, r)
	if !ok {
		return
	}
	if err := a.templates.Delete(t.ID); err != nil {
		respondError(w, http.StatusConflict, err.Error())
		return
	}
	if a.docCache != nil {
		a.docCache.InvalidateTemplate(r.Context(), t.ID.String())
	}
	w.WriteHeader(http.StatusNoContent)
}

// TemplateSetDefault marks a template as the default for its kind.
func (a *API) TemplateSetDefault(w http.ResponseWriter, r *http.Request) {
	t, ok := a.findTemplate(w, r)
	if !ok {
		return
	}
	if err := a.templates.SetDefault(t.ID); err != nil {
		slog.Error("set default template failed", "error", err, "id", t.ID)
		respondError(w, http.StatusInternalServerError, "Failed to set default template.")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// TemplateValidate runs the structural checks on a submitted element tree
// without saving anything.
func (a *API) TemplateValidate(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Elements json.RawMessage `json:"elements"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON body.")
		return
	}
	_, problems := validateElements(payload.Elements)
	respondJSON(w, http.StatusOK, map[string]any{
		"valid":  len(problems) == 0,
		"errors": problems,
	})
}

// TemplatePreview renders a template against the sample variable bag.
// mode=canvas adds the editing affordances (drop zones, element ids).
func (a *API) TemplatePreview(w http.ResponseWriter, r *http.Request) {
	t, ok := a.findTemplate(w, r)
	if !ok {
		return
	}

	elements, problems := validateElements(t.Elements)
	if len(problems) > 0 {
		respondJSON(w, http.StatusUnprocessableEntity, map[string]any{"errors": problems})
		return
	}

	mode := render.ModeStatic
	if r.URL.Query().Get("mode") == "canvas" {
		mode = render.ModeCanvas
	}
	html := render.Document(elements, vars.SampleBag(), mode)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(html))
}

// TemplateRevisions lists the retained past versions of a template.
func (a *API) TemplateRevisions(w http.ResponseWriter, r *http.Request) {
	t, ok := a.findTemplate(w, r)
	if !ok {
		return
	}
	revisions, err := a.revisions.ListByTemplateID(t.ID)
	if err != nil {
		slog.Error("list template revisions failed", "error", err, "id", t.ID)
		respondError(w, http.StatusInternalServerError, "Failed to list revisions.")
		return
	}
	if revisions == nil {
		revisions = []*models.TemplateRevision{}
	}
	respondJSON(w, http.StatusOK, revisions)
}

// TemplateRestore replaces a template's current tree with a revision's.
// The restore itself goes through Update, so it records a revision too.
func (a *API) TemplateRestore(w http.ResponseWriter, r *http.Request) {
	t, ok := a.findTemplate(w, r)
	if !ok {
		return
	}

	revID, err := uuid.Parse(chi.URLParam(r, "revisionID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid revision ID.")
		return
	}
	rev, err := a.revisions.FindByID(revID)
	if err != nil {
		slog.Error("find revision failed", "error", err, "id", revID)
		respondError(w, http.StatusInternalServerError, "Failed to load revision.")
		return
	}
	if rev == nil || rev.TemplateID != t.ID {
		respondError(w, http.StatusNotFound, "Revision not found.")
		return
	}

	t.Name = rev.Name
	t.Elements = rev.Elements
	updated, err := a.templates.Update(t)
	if err != nil {
		slog.Error("restore template failed", "error", err, "id", t.ID)
		respondError(w, http.StatusInternalServerError, "Failed to restore template.")
		return
	}
	if a.docCache != nil {
		a.docCache.InvalidateTemplate(r.Context(), t.ID.String())
	}
	respondJSON(w, http.StatusOK, toTemplateResponse(updated))
}

// findTemplate resolves the {id} URL parameter to a stored template,
// writing the error response itself when the lookup fails.
func (a *API) findTemplate(w http.ResponseWriter, r *http.Request) (*models.Template, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
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
