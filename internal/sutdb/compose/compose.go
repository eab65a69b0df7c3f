// Package compose mints the rows of a Sub Tool package: the root Node,
// one Node/Variant-pair per brush, the MaterialFile backing any brush
// with image data, and the finalized Manager singleton. It implements
// the two-pass arena-and-indices linking spec.md §9 recommends: nodes
// are inserted with placeholder sibling links, and each placeholder
// (NodeNextUuid, NodeFirstChildUuid) is fixed up by an UPDATE once the
// UUID it points to has been minted.
package compose

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/csp-tools/sutbuild/internal/brushpattern"
	"github.com/csp-tools/sutbuild/internal/byteio"
	"github.com/csp-tools/sutbuild/internal/effector"
	"github.com/csp-tools/sutbuild/internal/idgen"
	"github.com/csp-tools/sutbuild/internal/materialfile"
)

// variantIDBase is the allocator's starting counter; the first brush's
// pair is (1001, 1002), per spec.md §5.2 step 3 and §8 scenario 2.
const variantIDBase = 1000

// defaultCommonVariantID is Manager.CommonVariantID when the package has
// no brushes at all.
const defaultCommonVariantID = 1001

// Options is a brush's tunable parameter set, defaulted per spec.md §3.
type Options struct {
	Size            float32
	Opacity         uint8
	Hardness        uint8
	Spacing         float32
	Angle           float32
	SizePressure    bool
	OpacityPressure bool
}

// DefaultOptions returns the package-documented defaults.
func DefaultOptions() Options {
	return Options{Size: 50, Opacity: 100, Hardness: 50, Spacing: 10, Angle: 0}
}

// BrushInput is one normalized tip image plus the name it is filed
// under in the tool palette. PNG may be empty for a placeholder brush
// with no attached image.
type BrushInput struct {
	Name    string
	Width   uint32
	Height  uint32
	PNG     []byte
	Options Options
}

// PackageMetadata names the sub tool package and its author.
type PackageMetadata struct {
	PackageName string
	AuthorName  string
}

// Build composes the whole package (root node, every brush, Manager)
// into db inside a single transaction, using ids to mint UUIDs and
// mtime as the TAR member timestamp for every nested container.
func Build(db *sql.DB, ids *idgen.Source, pkg PackageMetadata, brushes []BrushInput, mtime time.Time) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("compose: begin tx: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	rootUUID := ids.MintBinaryUUID()
	zero16 := byteio.Zero16[:]

	if _, err := tx.Exec(
		`INSERT INTO Manager (ToolType, Version, RootUuid, CurrentNodeUuid, MaxVariantID, CommonVariantID, ObjectNodeUuid, PressureGraph, SavedCount)
		 VALUES (0, 126, ?, ?, ?, ?, ?, ?, 0)`,
		rootUUID[:], zero16, variantIDBase, defaultCommonVariantID, rootUUID[:], effector.DefaultManagerPressureGraph(),
	); err != nil {
		return fmt.Errorf("compose: insert manager placeholder: %w", err)
	}

	if _, err := tx.Exec(
		`INSERT INTO Node (NodeUuid, NodeName, NodeLock, NodeHidden, NodeNextUuid, NodeFirstChildUuid, NodeInputOp, NodeOutputOp, NodeRangeOp, NodeIcon, NodeIconColor, NodeVariantID, NodeInitVariantID)
		 VALUES (?, ?, 0, 0, ?, NULL, NULL, NULL, NULL, NULL, NULL, NULL, NULL)`,
		rootUUID[:], pkg.PackageName, zero16,
	); err != nil {
		return fmt.Errorf("compose: insert root node: %w", err)
	}

	counter := variantIDBase
	var firstBrushUUID [16]byte
	var firstCurrentVariantID int
	hasBrush := false
	var prevBrushUUID [16]byte
	havePrev := false

	for i, b := range brushes {
		brushUUID := ids.MintBinaryUUID()
		counter++
		currentVariantID := counter
		counter++
		initialVariantID := counter

		hasImage := len(b.PNG) > 0
		materialUUIDString := ""
		if hasImage {
			materialUUIDString = ids.MintMaterialUUIDString()
			fileData, err := materialfile.BuildFileData(b.PNG, b.Name, materialUUIDString, mtime)
			if err != nil {
				return fmt.Errorf("compose: brush %q: build material file: %w", b.Name, err)
			}
			if _, err := tx.Exec(
				`INSERT INTO MaterialFile (InstallFolder, OriginalPath, CatalogPath, FileData, MaterialUuid, OldMaterial)
				 VALUES (0, ?, ?, ?, NULL, NULL)`,
				fmt.Sprintf(".:%s:data:material_0.layer", materialUUIDString),
				fmt.Sprintf(".:%s", materialUUIDString),
				fileData,
			); err != nil {
				return fmt.Errorf("compose: brush %q: insert material file: %w", b.Name, err)
			}
		}

		var patternArray []byte
		var err error
		if hasImage {
			patternArray, err = brushpattern.WithImage(materialUUIDString, b.Name, b.PNG)
		} else {
			patternArray = brushpattern.Empty()
		}
		if err != nil {
			return fmt.Errorf("compose: brush %q: build pattern array: %w", b.Name, err)
		}

		var sizeEffector []byte
		if b.Options.SizePressure {
			sizeEffector, err = effector.EncodeCurve(true, nil)
			if err != nil {
				return fmt.Errorf("compose: brush %q: size effector: %w", b.Name, err)
			}
		}
		var flowEffector []byte
		if b.Options.OpacityPressure {
			flowEffector, err = effector.EncodeCurve(true, nil)
			if err != nil {
				return fmt.Errorf("compose: brush %q: flow effector: %w", b.Name, err)
			}
		}

		usePattern := 0
		if hasImage {
			usePattern = 1
		}

		for _, variantID := range []int{currentVariantID, initialVariantID} {
			if _, err := tx.Exec(
				`INSERT INTO Variant (VariantID, Opacity, AntiAlias, CompositeMode, BrushSize, BrushSizeUnit, BrushSizeEffector, BrushFlow, BrushFlowEffector, BrushHardness, BrushInterval, BrushThickness, BrushRotation, BrushUsePatternImage, BrushPatternImageArray)
				 VALUES (?, ?, 1, 0, ?, 0, ?, ?, ?, ?, ?, 100, ?, ?, ?)`,
				variantID, b.Options.Opacity, b.Options.Size, sizeEffector, b.Options.Opacity, flowEffector,
				b.Options.Hardness, b.Options.Spacing, b.Options.Angle, usePattern, patternArray,
			); err != nil {
				return fmt.Errorf("compose: brush %q: insert variant %d: %w", b.Name, variantID, err)
			}
		}

		nextUUID := zero16 // fixed up below once the next brush is known
		if _, err := tx.Exec(
			`INSERT INTO Node (NodeUuid, NodeName, NodeLock, NodeHidden, NodeInputOp, NodeOutputOp, NodeRangeOp, NodeIcon, NodeIconColor, NodeNextUuid, NodeFirstChildUuid, NodeVariantID, NodeInitVariantID)
			 VALUES (?, ?, 0, 0, 10, 10, 0, 128, 0, ?, NULL, ?, ?)`,
			brushUUID[:], b.Name, nextUUID, currentVariantID, initialVariantID,
		); err != nil {
			return fmt.Errorf("compose: brush %q: insert node: %w", b.Name, err)
		}

		if havePrev {
			if _, err := tx.Exec(`UPDATE Node SET NodeNextUuid = ? WHERE NodeUuid = ?`, brushUUID[:], prevBrushUUID[:]); err != nil {
				return fmt.Errorf("compose: brush %q: link previous sibling: %w", b.Name, err)
			}
		}
		prevBrushUUID = brushUUID
		havePrev = true

		if i == 0 {
			firstBrushUUID = brushUUID
			firstCurrentVariantID = currentVariantID
			hasBrush = true
		}
	}

	if hasBrush {
		if _, err := tx.Exec(`UPDATE Node SET NodeFirstChildUuid = ? WHERE NodeUuid = ?`, firstBrushUUID[:], rootUUID[:]); err != nil {
			return fmt.Errorf("compose: link root first child: %w", err)
		}
	}

	currentNodeUUID := zero16
	commonVariantID := defaultCommonVariantID
	if hasBrush {
		currentNodeUUID = firstBrushUUID[:]
		commonVariantID = firstCurrentVariantID
	}
	if _, err := tx.Exec(
		`UPDATE Manager SET MaxVariantID = ?, CurrentNodeUuid = ?, CommonVariantID = ?`,
		counter, currentNodeUUID, commonVariantID,
	); err != nil {
		return fmt.Errorf("compose: finalize manager: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("compose: commit: %w", err)
	}
	committed = true
	return nil
}
