package handlers

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"facturio/internal/imaging"
)

// UploadImage handles multipart image upload for logos and image
// elements. The file is validated (MIME sniff plus image header decode),
// stored to S3 and the public URL returned for the caller to apply to
// the element's content.
func (a *API) UploadImage(w http.ResponseWriter, r *http.Request) {
	if a.storage == nil {
		respondError(w, http.StatusServiceUnavailable, "Object storage is not configured.")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, imaging.MaxUploadSize+1024)
	if err := r.ParseMultipartForm(imaging.MaxUploadSize); err != nil {
		respondError(w, http.StatusRequestEntityTooLarge, "File too large. Maximum size is 5 MB.")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "No file provided.")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to read file.")
		return
	}

	info, err := imaging.Validate(data)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	now := time.Now()
	key := fmt.Sprintf("uploads/%d/%02d/%s.%s", now.Year(), now.Month(), uuid.NewString(), info.Extension)
	if err := a.storage.Upload(r.Context(), key, info.ContentType, data); err != nil {
		slog.Error("s3 upload failed", "error", err, "key", key)
		respondError(w, http.StatusInternalServerError, "Failed to upload file.")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"url":    a.storage.FileURL(key),
		"type":   info.ContentType,
		"width":  info.Width,
		"height": info.Height,
	})
}
