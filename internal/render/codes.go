// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// codes.go renders the machine-readable elements: QR codes and Code 128
// barcodes. Both encode to PNG and embed as data URIs so a rendered
// document is self-contained (no asset host needed for print or email).

package render

import (
	"bytes"
	"encoding/base64"
	"html"
	"image/png"
	"log/slog"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	qrcode "github.com/skip2/go-qrcode"

	"facturio/internal/doctree"
	"facturio/internal/style"
	"facturio/internal/vars"
)

func (r *Renderer) renderQRCode(el doctree.Element) {
	data := vars.Substitute(el.ContentString("data"), r.bag)
	size := contentInt(el.Content, "size", 96)

	pngBytes, err := qrcode.Encode(data, qrcode.Medium, size)
	if err != nil {
		slog.Warn("qr code encoding failed", "id", el.ID, "error", err)
		return
	}
	r.dataURIImage(el, pngBytes, "QR code")
}

func (r *Renderer) renderBarcode(el doctree.Element) {
	data := vars.Substitute(el.ContentString("data"), r.bag)
	height := contentInt(el.Content, "height", 48)

	code, err := code128.Encode(data)
	if err != nil {
		slog.Warn("barcode encoding failed", "id", el.ID, "error", err)
		return
	}
	scaled, err := barcode.Scale(code, code.Bounds().Dx()*2, height)
	if err != nil {
		slog.Warn("barcode scaling failed", "id", el.ID, "error", err)
		return
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		slog.Warn("barcode png encoding failed", "id", el.ID, "error", err)
		return
	}
	r.dataURIImage(el, buf.Bytes(), "Barcode")
}

// dataURIImage writes an img tag with base64-embedded PNG content.
func (r *Renderer) dataURIImage(el doctree.Element, pngBytes []byte, alt string) {
	r.buf.WriteString(`<img src="data:image/png;base64,`)
	r.buf.WriteString(base64.StdEncoding.EncodeToString(pngBytes))
	r.buf.WriteString(`" alt="` + alt + `"`)
	r.buf.WriteString(` data-type="` + string(el.Type) + `"`)
	if r.mode == ModeCanvas {
		r.buf.WriteString(` data-element-id="` + html.EscapeString(el.ID) + `"`)
	}
	if css := style.Compose(el.Style).String(); css != "" {
		r.buf.WriteString(` style="` + html.EscapeString(css) + `"`)
	}
	r.buf.WriteByte('>')
}

// contentInt reads a numeric content field, tolerating the float64 shape
// JSON decoding produces.
func contentInt(content map[string]any, key string, fallback int) int {
	if content == nil {
		return fallback
	}
	switch v := content[key].(type) {
	case float64:
		if v > 0 {
			return int(v)
		}
	case int:
		if v > 0 {
			return v
		}
	}
	return fallback
}
