// Package settings decodes the optional `settings` JSON blob accepted
// by the HTTP and MCP surfaces into a compose.Options value. Decoding is
// lenient: unknown keys are ignored and out-of-range values are clamped
// rather than rejected, per spec.md §9's settings Open Question.
package settings

import (
	"fmt"

	"github.com/ohler55/ojg/oj"

	"github.com/csp-tools/sutbuild/internal/sutdb/compose"
)

// Decode parses raw JSON into compose.Options, starting from
// compose.DefaultOptions() and overriding only the recognized fields
// present in the object; opacity and hardness are clamped to [0,100].
func Decode(raw []byte) (compose.Options, error) {
	opts := compose.DefaultOptions()
	if len(raw) == 0 {
		return opts, nil
	}

	parsed, err := oj.Parse(raw)
	if err != nil {
		return opts, fmt.Errorf("settings: parse json: %w", err)
	}

	obj, ok := parsed.(map[string]interface{})
	if !ok {
		return opts, fmt.Errorf("settings: expected a JSON object, got %T", parsed)
	}

	if v, ok := asFloat(obj["size"]); ok {
		opts.Size = v
	}
	if v, ok := asFloat(obj["opacity"]); ok {
		opts.Opacity = clampUint8(v, 0, 100)
	}
	if v, ok := asFloat(obj["hardness"]); ok {
		opts.Hardness = clampUint8(v, 0, 100)
	}
	if v, ok := asFloat(obj["spacing"]); ok {
		opts.Spacing = v
	}
	if v, ok := asFloat(obj["angle"]); ok {
		opts.Angle = v
	}
	if v, ok := obj["size_pressure"].(bool); ok {
		opts.SizePressure = v
	}
	if v, ok := obj["opacity_pressure"].(bool); ok {
		opts.OpacityPressure = v
	}

	return opts, nil
}

func asFloat(v interface{}) (float32, bool) {
	switch n := v.(type) {
	case float64:
		return float32(n), true
	case int64:
		return float32(n), true
	case int:
		return float32(n), true
	default:
		return 0, false
	}
}

func clampUint8(v float32, lo, hi uint8) uint8 {
	if v < float32(lo) {
		return lo
	}
	if v > float32(hi) {
		return hi
	}
	return uint8(v)
}
