// Package tarfile writes minimal USTAR archives: one or more named
// members, fixed-width octal headers, 512-byte block padding, and a
// two-zero-block trailer. No long-name extensions, no symlinks, no
// compression — exactly the subset the CSP sub-tool format expects
// nested inside CLYA layer blobs and MaterialFile FileData.
package tarfile

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	blockSize  = 512
	nameWidth  = 100
	modeWidth  = 8
	idWidth    = 8
	sizeWidth  = 12
	mtimeWidth = 12
	typeFlag   = '0'
)

// Member is one named entry to write into the archive.
type Member struct {
	Name    string
	Payload []byte
	// Mtime is the member's modification time. Zero means "now" — callers
	// that need reproducible output (see idgen's seed override) should
	// supply a fixed Mtime explicitly.
	Mtime time.Time
}

// Writer accumulates Members and serializes them as a USTAR stream.
type Writer struct {
	members []Member
}

// NewWriter returns an empty tar Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Add appends a named member. Order is preserved in the output stream.
func (w *Writer) Add(name string, payload []byte, mtime time.Time) {
	w.members = append(w.members, Member{Name: name, Payload: payload, Mtime: mtime})
}

// Bytes serializes all added members into a complete USTAR archive,
// including the two-zero-block trailer.
func (w *Writer) Bytes() ([]byte, error) {
	out := make([]byte, 0, blockSize*2*(len(w.members)+1))
	for _, m := range w.members {
		hdr, err := buildHeader(m)
		if err != nil {
			return nil, err
		}
		out = append(out, hdr...)
		out = append(out, m.Payload...)
		out = append(out, make([]byte, padLen(len(m.Payload)))...)
	}
	// Trailer: two all-zero 512-byte blocks.
	out = append(out, make([]byte, blockSize*2)...)
	return out, nil
}

func padLen(n int) int {
	rem := n % blockSize
	if rem == 0 {
		return 0
	}
	return blockSize - rem
}

func buildHeader(m Member) ([]byte, error) {
	if len(m.Name) > nameWidth {
		return nil, fmt.Errorf("tarfile: member name %q exceeds %d bytes (long names unsupported)", m.Name, nameWidth)
	}

	hdr := make([]byte, blockSize)
	off := 0

	putASCII(hdr, &off, m.Name, nameWidth)
	putOctal(hdr, &off, 0o000644, modeWidth)
	putOctal(hdr, &off, 0, idWidth)  // uid
	putOctal(hdr, &off, 0, idWidth)  // gid
	putOctal(hdr, &off, int64(len(m.Payload)), sizeWidth)
	mtime := m.Mtime
	if mtime.IsZero() {
		mtime = time.Now()
	}
	putOctal(hdr, &off, mtime.Unix(), mtimeWidth)

	chksumOff := off
	// Checksum field: 8 spaces while computing, per USTAR convention.
	for i := 0; i < 8; i++ {
		hdr[off+i] = ' '
	}
	off += 8

	hdr[off] = typeFlag
	off++

	// linkname (100 bytes), left zero.
	off += 100

	// USTAR magic + version.
	copy(hdr[off:off+6], "ustar\x00")
	off += 6
	hdr[off] = '0'
	hdr[off+1] = '0'
	off += 2

	// uname/gname (32 bytes each), devmajor/devminor (8 bytes each),
	// prefix (155 bytes) — all left zero for this minimal writer.

	sum := 0
	for _, b := range hdr {
		sum += int(b)
	}
	writeChecksum(hdr, chksumOff, sum)

	return hdr, nil
}

func putASCII(dst []byte, off *int, s string, width int) {
	copy(dst[*off:*off+width], s)
	*off += width
}

func putOctal(dst []byte, off *int, v int64, width int) {
	// width-1 digits + NUL terminator, left-padded with '0'.
	s := fmt.Sprintf("%0*o", width-1, v)
	if len(s) > width-1 {
		s = s[len(s)-(width-1):]
	}
	copy(dst[*off:*off+width-1], s)
	dst[*off+width-1] = 0
	*off += width
}

// ReadMember scans a USTAR stream produced by Writer.Bytes and returns the
// payload of the first member whose name matches want. It understands
// only the fixed-width, no-long-name layout this package writes.
func ReadMember(archive []byte, want string) ([]byte, error) {
	off := 0
	for off+blockSize <= len(archive) {
		hdr := archive[off : off+blockSize]
		if isZeroBlock(hdr) {
			return nil, fmt.Errorf("tarfile: member %q not found", want)
		}
		name := strings.TrimRight(string(hdr[0:nameWidth]), "\x00")
		size, err := parseOctal(hdr[124:136])
		if err != nil {
			return nil, fmt.Errorf("tarfile: bad size field for %q: %w", name, err)
		}
		off += blockSize
		if off+size > len(archive) {
			return nil, fmt.Errorf("tarfile: truncated payload for %q", name)
		}
		payload := archive[off : off+size]
		off += size + padLen(size)
		if name == want {
			return payload, nil
		}
	}
	return nil, fmt.Errorf("tarfile: member %q not found", want)
}

func isZeroBlock(b []byte) bool {
	for _, c := range b {
		if c != 0 {
			return false
		}
	}
	return true
}

func parseOctal(field []byte) (int, error) {
	s := strings.TrimRight(strings.TrimLeft(string(field), "\x00 "), "\x00 ")
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(s, 8, 64)
	if err != nil {
		return 0, err
	}
	return int(v), nil
}

// writeChecksum writes the 6-octal-digit + NUL + space checksum field,
// per spec: "written as 6 octal digits + NUL + space."
func writeChecksum(dst []byte, off int, sum int) {
	s := fmt.Sprintf("%06o", sum)
	copy(dst[off:off+6], s)
	dst[off+6] = 0
	dst[off+7] = ' '
}
