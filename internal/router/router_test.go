// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router tests verify the HTTP routing configuration, middleware
// chains, and the health endpoint.
package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"facturio/internal/handlers"
)

func TestHealthHandler(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/health", nil)

	healthHandler(w, r)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status: got %d, want 200", resp.StatusCode)
	}

	ct := resp.Header.Get("Content-Type")
	if ct != "application/json" {
		t.Errorf("content-type: got %q, want %q", ct, "application/json")
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field: got %q, want %q", body["status"], "ok")
	}
}

// testRouter builds the full router around an API with no backing
// services. Routes that touch the database are not exercised here.
func testRouter() http.Handler {
	api := handlers.NewAPI(nil, nil, nil, nil, nil, nil, nil)
	return New(api)
}

func TestRouter_Palette(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/api/palette", nil)

	testRouter().ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("GET /api/palette: got %d, want 200", w.Code)
	}

	var palette []map[string]any
	if err := json.NewDecoder(w.Body).Decode(&palette); err != nil {
		t.Fatalf("decode palette: %v", err)
	}
	if len(palette) == 0 {
		t.Fatal("palette is empty")
	}
}

func TestRouter_TemplateValidate(t *testing.T) {
	body := strings.NewReader(`{"elements": [{"id": "a", "type": "text", "content": {"text": "Hi"}}]}`)
	w := httptest.NewRecorder()
	r := httptest.NewRequest("POST", "/api/templates/validate", body)
	r.Header.Set("Content-Type", "application/json")

	testRouter().ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("POST /api/templates/validate: got %d, want 200", w.Code)
	}

	var result struct {
		Valid  bool     `json:"valid"`
		Errors []string `json:"errors"`
	}
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if !result.Valid {
		t.Errorf("valid: got false, errors: %v", result.Errors)
	}
}

func TestRouter_SecurityHeaders(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/health", nil)

	testRouter().ServeHTTP(w, r)

	if got := w.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options: got %q, want %q", got, "nosniff")
	}
	if got := w.Header().Get("X-Frame-Options"); got == "" {
		t.Error("X-Frame-Options header missing")
	}
}

func TestRouter_NotFound(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/api/nope", nil)

	testRouter().ServeHTTP(w, r)

	if w.Code != http.StatusNotFound {
		t.Errorf("GET /api/nope: got %d, want 404", w.Code)
	}
}
