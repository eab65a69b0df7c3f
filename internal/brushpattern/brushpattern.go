// Package brushpattern encodes the BrushPatternImageArray BLOB stored on
// every Variant row: a small little-endian header, a UTF-16LE material
// reference string, type/flag words, a UTF-16LE brush name, and the raw
// PNG bytes re-embedded verbatim. This is the format-critical, trickiest
// mixed-endian layout in the builder (spec.md §4.6) — every field here is
// little-endian; do not "correct" it to big-endian.
package brushpattern

import (
	"fmt"

	"github.com/csp-tools/sutbuild/internal/byteio"
)

// emptyFlagsWord is the fixed trailer word on the empty-shape record.
const emptyFlagsWord = 0x84

// typeFlagsA and typeFlagsB are the two fixed words at offset (c) in the
// with-image shape. The meaning of typeFlagsB (0x14) is undocumented by
// the vendor; it is copied from observed valid files and must never be
// reinterpreted (spec.md §9 Open Question).
const (
	typeFlagsA = 0x00000002
	typeFlagsB = 0x00000014
)

// Empty returns the 16-byte record used when a brush has no attached
// image: u32(8) | u32(1) | u32(0) | u32(0x84).
func Empty() []byte {
	w := byteio.NewWriter(16)
	w.U32LE(8)
	w.U32LE(1)
	w.U32LE(0)
	w.U32LE(emptyFlagsWord)
	return w.Bytes()
}

// WithImage builds the with-image BrushPatternImageArray BLOB: the
// material reference string ".:12:45:{materialUUID}:data:material_0.layer",
// the fixed type/flag words, the brush name, and the raw PNG bytes, all
// per spec.md §4.6. materialUUID is the dashed lowercase-hex string
// (idgen.MintMaterialUUIDString), brushName is the brush's display name,
// png is re-embedded unmodified.
func WithImage(materialUUID, brushName string, png []byte) ([]byte, error) {
	if materialUUID == "" {
		return nil, fmt.Errorf("brushpattern: materialUUID must not be empty")
	}

	refString := fmt.Sprintf(".:12:45:%s:data:material_0.layer", materialUUID)
	refBytes := byteio.UTF16LEBytes(refString)
	nameBytes := byteio.UTF16LEBytes(brushName)

	// (b) reference string, (c) 8-byte type/flags, (d) name, (e) raw PNG.
	dataLength := len(refBytes) + 8 + len(nameBytes) + len(png)

	w := byteio.NewWriter(16 + dataLength)
	w.U32LE(8)
	w.U32LE(1)
	w.U32LE(uint32(dataLength))
	w.U32LE(0x84)

	w.Raw(refBytes)
	w.U32LE(typeFlagsA)
	w.U32LE(typeFlagsB)
	w.Raw(nameBytes)
	w.Raw(png)

	return w.Bytes(), nil
}
