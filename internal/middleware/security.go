// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import "net/http"

// SecureHeaders adds security headers to every response. The API is
// JSON, but preview and invoice-document endpoints serve rendered HTML
// built from user-authored templates, so the Content-Security-Policy is
// shaped around what those documents legitimately contain: inline style
// attributes emitted by the style compositor, data: image URIs for QR
// and barcode PNGs, and uploaded logos served over https from object
// storage. Everything else (scripts above all) is locked out.
func SecureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()

		h.Set("Content-Security-Policy",
			"default-src 'none'; img-src 'self' data: https:; style-src 'unsafe-inline'")

		// Prevent the browser from MIME-sniffing the Content-Type.
		h.Set("X-Content-Type-Options", "nosniff")

		// The builder UI embeds document previews in a same-origin frame;
		// anything cross-origin stays blocked.
		h.Set("X-Frame-Options", "SAMEORIGIN")

		// Disable the legacy XSS filter; the CSP above takes its place.
		h.Set("X-XSS-Protection", "0")

		// Rendered documents carry invoice numbers in their URLs; don't
		// leak full paths to external logo hosts.
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")

		next.ServeHTTP(w, r)
	})
}
