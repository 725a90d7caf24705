// Package render turns a molecular structure into flat, renderer-ready
// attribute buffers: positions, normals, colors and per-vertex source
// identity. Representations are built once; coloring and opacity can be
// changed afterwards without regenerating geometry.
package render

import (
	"errors"
	"fmt"

	"github.com/Traksewt/pv/pkg/color"
	"github.com/Traksewt/pv/pkg/mol"
)

// ErrEmptyTrace is returned under Options.Strict when a chain has no
// usable backbone trace for a trace-based representation.
var ErrEmptyTrace = errors.New("empty backbone trace")

// Representation selects the geometric style of a structure rendering.
type Representation uint8

// Available representations.
const (
	RepLines Representation = iota
	RepSpheres
	RepTube
	RepCartoon
	RepTrace
)

// String returns the representation name.
func (r Representation) String() string {
	switch r {
	case RepLines:
		return "lines"
	case RepSpheres:
		return "spheres"
	case RepTube:
		return "tube"
	case RepCartoon:
		return "cartoon"
	case RepTrace:
		return "trace"
	default:
		return fmt.Sprintf("representation(%d)", uint8(r))
	}
}

// ParseRepresentation parses a representation name.
func ParseRepresentation(s string) (Representation, error) {
	switch s {
	case "lines":
		return RepLines, nil
	case "spheres":
		return RepSpheres, nil
	case "tube":
		return RepTube, nil
	case "cartoon":
		return RepCartoon, nil
	case "trace":
		return RepTrace, nil
	}
	return 0, fmt.Errorf("unknown representation %q", s)
}

// Options control geometry construction. The zero value selects the
// defaults.
type Options struct {
	// Color is the coloring operation. Defaults to uniform red.
	Color Colorer
	// Radius is the base cross-section radius for tube and cartoon.
	Radius float32
	// SphereRadius is the impostor radius for the spheres representation.
	SphereRadius float32
	// SplineDetail is the number of spline subdivisions per trace segment.
	SplineDetail int
	// ArcDetail is the number of vertices per cross-section ring.
	ArcDetail int
	// Strict makes a chain without a backbone trace fail the build with
	// ErrEmptyTrace instead of being skipped with a warning.
	Strict bool
}

func (o Options) withDefaults() Options {
	if o.Color == nil {
		o.Color = Uniform(color.Red)
	}
	if o.Radius <= 0 {
		o.Radius = 0.3
	}
	if o.SphereRadius <= 0 {
		o.SphereRadius = 1.5
	}
	if o.SplineDetail <= 0 {
		o.SplineDetail = 8
	}
	if o.ArcDetail <= 0 {
		o.ArcDetail = 8
	}
	return o
}

// Render builds the attribute buffers for one representation of the
// structure. The structure must not be mutated during the call. The
// returned Geometry supports in-place recoloring via ColorBy and
// SetOpacity.
func Render(s *mol.Structure, rep Representation, opts Options) (*Geometry, error) {
	opts = opts.withDefaults()
	switch rep {
	case RepLines:
		return buildLines(s, opts)
	case RepSpheres:
		return buildSpheres(s, opts)
	case RepTube:
		return buildTube(s, opts)
	case RepCartoon:
		return buildCartoon(s, opts)
	case RepTrace:
		return buildTrace(s, opts)
	}
	return nil, fmt.Errorf("unknown representation %v", rep)
}
