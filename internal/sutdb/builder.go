// Package sutdb assembles a complete Sub Tool file: it opens a scratch
// SQLite database on disk, installs the schema, composes every row, and
// serializes the result back to a byte sequence. The scratch file is
// acquired with os.CreateTemp and released on every exit path.
package sutdb

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "modernc.org/sqlite"

	"github.com/csp-tools/sutbuild/internal/idgen"
	"github.com/csp-tools/sutbuild/internal/sutdb/compose"
	"github.com/csp-tools/sutbuild/internal/sutdb/schema"
)

// Package is the full build request: metadata plus the ordered brush
// list, matching spec.md §3's Brush Input and Package Metadata entities.
type Package struct {
	Name    string
	Author  string
	Brushes []compose.BrushInput
}

// Builder produces .sut byte streams. ids controls UUID minting; pass a
// seeded source for reproducible output, or idgen.NewSource() for normal
// random builds.
type Builder struct {
	ids *idgen.Source
}

// NewBuilder returns a Builder that mints UUIDs from ids.
func NewBuilder(ids *idgen.Source) *Builder {
	if ids == nil {
		ids = idgen.NewSource()
	}
	return &Builder{ids: ids}
}

// Emit builds pkg into a complete .sut byte sequence. mtime stamps every
// nested TAR member; callers building reproducible output should pass a
// fixed time alongside a seeded Builder.
func (b *Builder) Emit(pkg Package, mtime time.Time) ([]byte, error) {
	tmp, err := os.CreateTemp("", "sutbuild-*.sut")
	if err != nil {
		return nil, fmt.Errorf("sutdb: create scratch file: %w", err)
	}
	tmpPath := tmp.Name()
	_ = tmp.Close()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tmpPath)
		}
	}()

	db, err := sql.Open("sqlite", tmpPath)
	if err != nil {
		return nil, fmt.Errorf("sutdb: open scratch db: %w", err)
	}
	dbOpen := true
	defer func() {
		if dbOpen {
			_ = db.Close()
		}
	}()

	if err := schema.Install(db); err != nil {
		return nil, fmt.Errorf("sutdb: install schema: %w", err)
	}

	meta := compose.PackageMetadata{PackageName: pkg.Name, AuthorName: pkg.Author}
	if err := compose.Build(db, b.ids, meta, pkg.Brushes, mtime); err != nil {
		return nil, fmt.Errorf("sutdb: compose rows: %w", err)
	}

	if err := db.Close(); err != nil {
		return nil, fmt.Errorf("sutdb: close before read: %w", err)
	}
	dbOpen = false

	out, err := os.ReadFile(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("sutdb: read scratch file: %w", err)
	}

	cleanup = false
	if err := os.Remove(tmpPath); err != nil {
		return nil, fmt.Errorf("sutdb: remove scratch file: %w", err)
	}
	return out, nil
}
