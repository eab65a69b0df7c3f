// Package archivepack turns a .zip or .brushset archive into the stream
// of raw image entries the normalizer consumes next. Extraction target
// paths are mediated through a billy chroot filesystem so a maliciously
// crafted archive entry name (e.g. "../../etc/passwd") cannot escape the
// extraction root; oversize entries and non-image members are skipped
// and recorded in a compact bitmap rather than aborting the whole pack.
package archivepack

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/RoaringBitmap/roaring"
	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/helper/chroot"
	"github.com/go-git/go-billy/v5/memfs"
)

// MaxEntrySize bounds any single extracted archive member, per spec.md
// §2's archive demultiplexer entry ("safe path handling is required").
const MaxEntrySize = 64 * 1024 * 1024

// Entry is one extracted image candidate, named by its archive path.
type Entry struct {
	Name string
	Data []byte
}

// Result is the outcome of unpacking an archive: the extracted image
// entries in archive order, and a bitmap of zip-file indices that were
// skipped (oversize, directory, a non-image extension, or a member that
// could not be extracted).
type Result struct {
	Entries []Entry
	Skipped *roaring.Bitmap
}

var imageExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true,
}

// Unpack reads a .zip/.brushset archive from raw and extracts every
// image-looking member through a sandboxed chroot filesystem.
func Unpack(raw []byte) (Result, error) {
	zr, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return Result{}, fmt.Errorf("archivepack: open zip: %w", err)
	}

	root := chroot.New(memfs.New(), "/")
	skipped := roaring.New()
	var entries []Entry

	for i, f := range zr.File {
		if f.FileInfo().IsDir() {
			skipped.Add(uint32(i))
			continue
		}
		if f.UncompressedSize64 > MaxEntrySize {
			skipped.Add(uint32(i))
			continue
		}
		ext := strings.ToLower(path.Ext(f.Name))
		if !imageExtensions[ext] {
			skipped.Add(uint32(i))
			continue
		}

		data, err := extractEntry(root, f)
		if err != nil {
			skipped.Add(uint32(i))
			continue
		}
		entries = append(entries, Entry{Name: f.Name, Data: data})
	}

	return Result{Entries: entries, Skipped: skipped}, nil
}

func extractEntry(fs billy.Filesystem, f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("archivepack: open %s: %w", f.Name, err)
	}
	defer func() { _ = rc.Close() }()

	sandboxName := sanitizeName(f.Name)
	w, err := fs.Create(sandboxName)
	if err != nil {
		return nil, fmt.Errorf("archivepack: stage %s: %w", f.Name, err)
	}
	if _, err := io.CopyN(w, rc, int64(f.UncompressedSize64)); err != nil && err != io.EOF {
		_ = w.Close()
		return nil, fmt.Errorf("archivepack: stage %s: %w", f.Name, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("archivepack: close staged %s: %w", f.Name, err)
	}

	r, err := fs.Open(sandboxName)
	if err != nil {
		return nil, fmt.Errorf("archivepack: reopen staged %s: %w", f.Name, err)
	}
	defer func() { _ = r.Close() }()

	return io.ReadAll(r)
}

// sanitizeName strips any leading slash and parent-directory segments
// before handing a name to the chroot filesystem, which also rejects
// escapes itself; this is a second, cheap line of defense.
func sanitizeName(name string) string {
	clean := path.Clean("/" + name)
	clean = strings.TrimPrefix(clean, "/")
	if clean == "" || clean == "." {
		clean = "unnamed"
	}
	return clean
}
