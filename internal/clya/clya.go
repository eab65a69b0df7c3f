// Package clya encodes the CLYA layer container: a 12-byte little-endian
// header (magic, version, TAR length) wrapping a single-member TAR that
// holds a layer's texture.png.
package clya

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/csp-tools/sutbuild/internal/byteio"
	"github.com/csp-tools/sutbuild/internal/tarfile"
)

// Magic is the 4-byte CLYA identifier.
const Magic = "CLYA"

// Version is the fixed little-endian version word written into every
// CLYA header.
const Version = 0x00010000

// Encode wraps pngBytes into a CLYA blob: the 12-byte header followed by
// a USTAR archive containing exactly one member, "texture.png". mtime is
// the wall clock; callers that need reproducible builds should pass a
// fixed time instead of time.Now().
func Encode(pngBytes []byte, mtime time.Time) ([]byte, error) {
	tw := tarfile.NewWriter()
	tw.Add("texture.png", pngBytes, mtime)
	tarBytes, err := tw.Bytes()
	if err != nil {
		return nil, err
	}

	w := byteio.NewWriter(12 + len(tarBytes))
	w.Raw([]byte(Magic))
	w.U32LE(Version)
	w.U32LE(uint32(len(tarBytes)))
	w.Raw(tarBytes)
	return w.Bytes(), nil
}

// Decode parses a CLYA blob and returns the original texture.png bytes,
// verifying the magic, version, and declared TAR length. Used by the
// round-trip test property in spec.md §8 and available to any consumer
// that needs to unwrap a layer blob.
func Decode(blob []byte) ([]byte, error) {
	if len(blob) < 12 {
		return nil, fmt.Errorf("clya: blob too short: %d bytes", len(blob))
	}
	if string(blob[0:4]) != Magic {
		return nil, fmt.Errorf("clya: bad magic %q", blob[0:4])
	}
	version := binary.LittleEndian.Uint32(blob[4:8])
	if version != Version {
		return nil, fmt.Errorf("clya: unsupported version 0x%08x", version)
	}
	tarLen := binary.LittleEndian.Uint32(blob[8:12])
	if 12+int(tarLen) > len(blob) {
		return nil, fmt.Errorf("clya: declared tar length %d exceeds blob size", tarLen)
	}
	tarBytes := blob[12 : 12+int(tarLen)]
	return tarfile.ReadMember(tarBytes, "texture.png")
}
