// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package imaging validates uploaded logo and image files before they are
// stored and bound to template elements. Validation happens here, at the
// edge: the document tree never receives invalid image data, so the core
// editing engine has no image error paths.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"

	_ "golang.org/x/image/webp"
)

// MaxUploadSize caps uploaded image files at 5 MB.
const MaxUploadSize = 5 << 20

// allowedTypes maps acceptable MIME types to their file extensions.
var allowedTypes = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpg",
	"image/gif":  "gif",
	"image/webp": "webp",
}

// Info describes a validated upload.
type Info struct {
	ContentType string
	Extension   string
	Width       int
	Height      int
}

// Validate checks an uploaded file: size cap, sniffed MIME type against
// the allow-list, and a successful decode of the image header. The
// sniffed type is authoritative — the client-declared Content-Type is
// ignored.
func Validate(data []byte) (Info, error) {
	if len(data) == 0 {
		return Info{}, fmt.Errorf("empty file")
	}
	if len(data) > MaxUploadSize {
		return Info{}, fmt.Errorf("file exceeds %d MB limit", MaxUploadSize>>20)
	}

	contentType := http.DetectContentType(data)
	ext, ok := allowedTypes[contentType]
	if !ok {
		return Info{}, fmt.Errorf("unsupported image type %s", contentType)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Info{}, fmt.Errorf("decode image: %w", err)
	}

	return Info{
		ContentType: contentType,
		Extension:   ext,
		Width:       cfg.Width,
		Height:      cfg.Height,
	}, nil
}
