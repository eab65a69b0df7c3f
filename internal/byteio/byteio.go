// Package byteio provides the little/big-endian integer packing, UTF-16LE
// string encoding, and fixed-width ASCII padding primitives that every
// binary sub-container in the .sut builder is assembled from.
package byteio

import (
	"encoding/binary"
	"math"
	"unicode/utf16"
)

// Writer is a growable byte buffer with endian-aware append helpers. It
// never returns an error: the only failure mode of pure byte packing is
// out-of-memory, which Go reports via panic, not an error return.
type Writer struct {
	buf []byte
}

// NewWriter returns an empty Writer with capacity pre-reserved.
func NewWriter(sizeHint int) *Writer {
	return &Writer{buf: make([]byte, 0, sizeHint)}
}

// Bytes returns the accumulated buffer.
func (w *Writer) Bytes() []byte { return w.buf }

// Len reports the number of bytes written so far.
func (w *Writer) Len() int { return len(w.buf) }

// Raw appends p verbatim.
func (w *Writer) Raw(p []byte) *Writer {
	w.buf = append(w.buf, p...)
	return w
}

// U16LE appends a little-endian uint16.
func (w *Writer) U16LE(v uint16) *Writer {
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], v)
	return w.Raw(tmp[:])
}

// U16BE appends a big-endian uint16.
func (w *Writer) U16BE(v uint16) *Writer {
	var tmp [2]byte
	binary.BigEndian.PutUint16(tmp[:], v)
	return w.Raw(tmp[:])
}

// U32LE appends a little-endian uint32.
func (w *Writer) U32LE(v uint32) *Writer {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	return w.Raw(tmp[:])
}

// U32BE appends a big-endian uint32.
func (w *Writer) U32BE(v uint32) *Writer {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], v)
	return w.Raw(tmp[:])
}

// U64LE appends a little-endian uint64.
func (w *Writer) U64LE(v uint64) *Writer {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	return w.Raw(tmp[:])
}

// U64BE appends a big-endian uint64.
func (w *Writer) U64BE(v uint64) *Writer {
	var tmp [8]byte
	binary.BigEndian.PutUint64(tmp[:], v)
	return w.Raw(tmp[:])
}

// F32LE appends an IEEE-754 single-precision float, little-endian.
func (w *Writer) F32LE(v float32) *Writer {
	return w.U32LE(math.Float32bits(v))
}

// UTF16LEString appends s encoded as UTF-16LE, terminated with two zero
// bytes, per spec: "each code unit LE, terminated with two zero bytes."
func (w *Writer) UTF16LEString(s string) *Writer {
	for _, u := range utf16.Encode([]rune(s)) {
		w.U16LE(u)
	}
	return w.U16LE(0)
}

// PadASCII appends s truncated or zero-padded to exactly width bytes —
// used for fixed-width TAR header fields.
func (w *Writer) PadASCII(s string, width int) *Writer {
	b := make([]byte, width)
	n := copy(b, s)
	_ = n
	return w.Raw(b)
}

// UTF16LEBytes encodes s as UTF-16LE with a trailing NUL code unit and
// returns the bytes directly, for callers that need the length before
// appending (e.g. BrushPatternImageArray's data_length computation).
func UTF16LEBytes(s string) []byte {
	w := NewWriter(len(s)*2 + 2)
	w.UTF16LEString(s)
	return w.Bytes()
}

// Zero16 is the 16-byte all-zero sentinel used throughout the schema for
// "no uuid" (terminal NodeNextUuid, empty Manager.CurrentNodeUuid, ...).
var Zero16 = [16]byte{}
