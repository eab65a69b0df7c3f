// Package materialfile builds the TAR that becomes a MaterialFile row's
// FileData: a CLYA layer blob plus a minimal material.xml document.
package materialfile

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/csp-tools/sutbuild/internal/clya"
	"github.com/csp-tools/sutbuild/internal/tarfile"
)

// BuildFileData assembles the two-member FileData TAR: material_0.layer
// (a CLYA blob wrapping png), then material.xml describing name and uuid.
func BuildFileData(png []byte, name, materialUUID string, mtime time.Time) ([]byte, error) {
	layer, err := clya.Encode(png, mtime)
	if err != nil {
		return nil, fmt.Errorf("materialfile: encode layer: %w", err)
	}

	xml := buildMaterialXML(name, materialUUID)

	tw := tarfile.NewWriter()
	tw.Add("material_0.layer", layer, mtime)
	tw.Add("material.xml", xml, mtime)
	return tw.Bytes()
}

func buildMaterialXML(name, materialUUID string) []byte {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?><material version="1"><name>`)
	b.WriteString(escapeXML(name))
	b.WriteString(`</name><uuid>`)
	b.WriteString(materialUUID)
	b.WriteString(`</uuid><type>brush_shape</type></material>`)
	return []byte(b.String())
}

// escapeXML replaces &, <, > with their entities and strips control
// characters, per spec.md §4.5 — deliberately narrower than a full XML
// escaper (which would also escape quotes, unneeded here since name never
// appears inside an attribute value).
func escapeXML(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsControl(r) {
			continue // strip control characters
		}
		switch r {
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
