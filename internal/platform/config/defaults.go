package config

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/hclsimple"

	"github.com/csp-tools/sutbuild/internal/sutdb/compose"
)

// BrushDefaults is the optional HCL file shape accepted by the CLI's
// --defaults flag, letting an operator pin non-default brush options
// for every build without repeating flags.
type BrushDefaults struct {
	Size            *float32 `hcl:"size,optional"`
	Opacity         *uint8   `hcl:"opacity,optional"`
	Hardness        *uint8   `hcl:"hardness,optional"`
	Spacing         *float32 `hcl:"spacing,optional"`
	Angle           *float32 `hcl:"angle,optional"`
	SizePressure    *bool    `hcl:"size_pressure,optional"`
	OpacityPressure *bool    `hcl:"opacity_pressure,optional"`
}

// LoadDefaults parses an HCL file at path into compose.Options, starting
// from compose.DefaultOptions() and overriding only the fields present.
func LoadDefaults(path string) (compose.Options, error) {
	opts := compose.DefaultOptions()

	var file BrushDefaults
	if err := hclsimple.DecodeFile(path, nil, &file); err != nil {
		return opts, fmt.Errorf("config: decode defaults file %s: %w", path, err)
	}

	if file.Size != nil {
		opts.Size = *file.Size
	}
	if file.Opacity != nil {
		opts.Opacity = *file.Opacity
	}
	if file.Hardness != nil {
		opts.Hardness = *file.Hardness
	}
	if file.Spacing != nil {
		opts.Spacing = *file.Spacing
	}
	if file.Angle != nil {
		opts.Angle = *file.Angle
	}
	if file.SizePressure != nil {
		opts.SizePressure = *file.SizePressure
	}
	if file.OpacityPressure != nil {
		opts.OpacityPressure = *file.OpacityPressure
	}
	return opts, nil
}
