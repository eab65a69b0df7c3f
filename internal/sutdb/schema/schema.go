// Package schema installs the pragmas and table layout a Clip Studio
// Paint Sub Tool file expects: Manager, Node, Variant, MaterialFile,
// each with _PW_ID INTEGER PRIMARY KEY AUTOINCREMENT.
package schema

import (
	"database/sql"
	"fmt"
)

// Pragmas are applied before the schema is created, matching the exact
// settings the editor checks on open (page_size, encoding) plus
// foreign_keys=OFF since the tables' cross-references are maintained by
// the composer, not enforced by SQLite.
const pragmas = `
PRAGMA page_size = 1024;
PRAGMA encoding = 'UTF-8';
PRAGMA foreign_keys = OFF;
`

// ddl creates the four tables. Variant carries the superset of brush
// parameter columns a full editor install declares; C9 only ever
// populates the subset named in spec.md §6.5, the rest default NULL so
// the consuming editor never meets an unknown-column error.
const ddl = `
CREATE TABLE Manager (
	_PW_ID INTEGER PRIMARY KEY AUTOINCREMENT,
	ToolType INTEGER,
	Version INTEGER,
	RootUuid BLOB,
	CurrentNodeUuid BLOB,
	MaxVariantID INTEGER,
	CommonVariantID INTEGER,
	ObjectNodeUuid BLOB,
	PressureGraph BLOB,
	SavedCount INTEGER
);

CREATE TABLE Node (
	_PW_ID INTEGER PRIMARY KEY AUTOINCREMENT,
	NodeUuid BLOB,
	NodeName TEXT,
	NodeLock INTEGER,
	NodeHidden INTEGER,
	NodeInputOp INTEGER,
	NodeOutputOp INTEGER,
	NodeRangeOp INTEGER,
	NodeIcon INTEGER,
	NodeIconColor INTEGER,
	NodeNextUuid BLOB,
	NodeFirstChildUuid BLOB,
	NodeVariantID INTEGER,
	NodeInitVariantID INTEGER
);

CREATE TABLE Variant (
	_PW_ID INTEGER PRIMARY KEY AUTOINCREMENT,
	VariantID INTEGER,
	Opacity INTEGER,
	AntiAlias INTEGER,
	CompositeMode INTEGER,
	BrushSize REAL,
	BrushSizeUnit INTEGER,
	BrushSizeEffector BLOB,
	BrushFlow INTEGER,
	BrushFlowEffector BLOB,
	BrushHardness INTEGER,
	BrushInterval REAL,
	BrushThickness INTEGER,
	BrushRotation REAL,
	BrushUsePatternImage INTEGER,
	BrushPatternImageArray BLOB,
	BrushDensity INTEGER DEFAULT NULL,
	BrushDensityEffector BLOB DEFAULT NULL,
	BrushMinimumSize INTEGER DEFAULT NULL,
	BrushColorBlend INTEGER DEFAULT NULL,
	BrushColorBlendEffector BLOB DEFAULT NULL,
	BrushColorJitter BLOB DEFAULT NULL,
	BrushDirectionalFlip INTEGER DEFAULT NULL,
	BrushRepeatMethod INTEGER DEFAULT NULL,
	BrushEdgeBlend INTEGER DEFAULT NULL
);

CREATE TABLE MaterialFile (
	_PW_ID INTEGER PRIMARY KEY AUTOINCREMENT,
	InstallFolder INTEGER,
	OriginalPath TEXT,
	CatalogPath TEXT,
	FileData BLOB,
	MaterialUuid BLOB DEFAULT NULL,
	OldMaterial BLOB DEFAULT NULL
);
`

// Install applies the pragmas and creates all four tables on an
// otherwise-empty database connection.
func Install(db *sql.DB) error {
	if _, err := db.Exec(pragmas); err != nil {
		return fmt.Errorf("schema: apply pragmas: %w", err)
	}
	if _, err := db.Exec(ddl); err != nil {
		return fmt.Errorf("schema: create tables: %w", err)
	}
	return nil
}
