// Package effector encodes the optional pressure-curve BLOB stored on a
// Variant row, and the fixed default PressureGraph BLOB stored once on
// Manager (spec.md §4.7).
package effector

import (
	"fmt"

	"github.com/csp-tools/sutbuild/internal/byteio"
)

// Point is one control point of a pressure curve, each axis in [0,1].
type Point struct {
	X float32
	Y float32
}

// DefaultCurve is the identity pressure curve applied when a brush does
// not specify its own: flat response from 0 to 1.
var DefaultCurve = []Point{{X: 0, Y: 0}, {X: 1, Y: 1}}

// maxPoints is the largest point count the CSP reader accepts in a curve.
const maxPoints = 10

// EncodeCurve builds the per-Variant pressure BLOB: u32(enabled) |
// u32(0 mode) | u32(N) | N pairs of f32 LE (x,y). enabled toggles whether
// the editor applies the curve; the curve bytes are present either way.
// Passing a nil or empty points slice uses DefaultCurve.
func EncodeCurve(enabled bool, points []Point) ([]byte, error) {
	if len(points) == 0 {
		points = DefaultCurve
	}
	if len(points) > maxPoints {
		return nil, fmt.Errorf("effector: curve has %d points, max %d", len(points), maxPoints)
	}

	w := byteio.NewWriter(12 + 8*len(points))
	if enabled {
		w.U32LE(1)
	} else {
		w.U32LE(0)
	}
	w.U32LE(0) // mode
	w.U32LE(uint32(len(points)))
	for _, p := range points {
		w.F32LE(p.X)
		w.F32LE(p.Y)
	}
	return w.Bytes(), nil
}

// DefaultManagerPressureGraph returns the fixed 24-byte PressureGraph BLOB
// stored on every Manager row: u32(2) | u32(0) | f32(0.0) | f32(0.0) |
// f32(1.0) | f32(1.0).
func DefaultManagerPressureGraph() []byte {
	w := byteio.NewWriter(16)
	w.U32LE(2)
	w.U32LE(0)
	w.F32LE(0.0)
	w.F32LE(0.0)
	w.F32LE(1.0)
	w.F32LE(1.0)
	return w.Bytes()
}
