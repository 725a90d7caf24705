package render

import (
	"fmt"
	"log/slog"

	"github.com/chewxy/math32"

	"github.com/Traksewt/pv/pkg/math"
	"github.com/Traksewt/pv/pkg/mol"
)

// buildLines emits bonds as line segments. Each bond is split at its
// midpoint so either half carries its own atom's color. Atoms without
// any bond get a small three-axis cross.
func buildLines(s *mol.Structure, o Options) (*Geometry, error) {
	b := newMeshBuilder(TopologyLines)

	src := make(map[*mol.Atom]int32, s.AtomCount())
	s.EachAtom(func(a *mol.Atom) {
		src[a] = b.addSource(Ref{Atom: a, Residue: a.Residue()})
	})

	bonded := make(map[*mol.Atom]bool)
	zero := math.Vec3{}
	for _, bond := range s.Bonds() {
		bonded[bond.A], bonded[bond.B] = true, true
		mid := bond.A.Pos.Lerp(bond.B.Pos, 0.5)
		b.addVertex(bond.A.Pos, zero, src[bond.A])
		b.addVertex(mid, zero, src[bond.A])
		b.addVertex(mid, zero, src[bond.B])
		b.addVertex(bond.B.Pos, zero, src[bond.B])
	}

	const crossSize = 0.35
	s.EachAtom(func(a *mol.Atom) {
		if bonded[a] {
			return
		}
		for _, d := range []math.Vec3{{X: crossSize}, {Y: crossSize}, {Z: crossSize}} {
			b.addVertex(a.Pos.Sub(d), zero, src[a])
			b.addVertex(a.Pos.Add(d), zero, src[a])
		}
	})

	return b.build(s, o.Color)
}

// buildSpheres emits one point-sprite vertex per atom. The renderer
// expands each point to a screen-facing sphere impostor of
// Options.SphereRadius.
func buildSpheres(s *mol.Structure, o Options) (*Geometry, error) {
	b := newMeshBuilder(TopologyPoints)
	zero := math.Vec3{}
	s.EachAtom(func(a *mol.Atom) {
		src := b.addSource(Ref{Atom: a, Residue: a.Residue()})
		b.addVertex(a.Pos, zero, src)
	})
	return b.build(s, o.Color)
}

// buildTrace emits straight line segments between consecutive backbone
// trace points, split at midpoints for per-residue color bands.
func buildTrace(s *mol.Structure, o Options) (*Geometry, error) {
	b := newMeshBuilder(TopologyLines)
	zero := math.Vec3{}
	for _, chain := range s.Chains() {
		trace := chain.BackboneTrace()
		if len(trace) < 2 {
			if err := emptyTrace(chain, o); err != nil {
				return nil, err
			}
			continue
		}
		src := make([]int32, len(trace))
		for i, p := range trace {
			src[i] = b.addSource(Ref{Residue: p.Residue})
		}
		for i := 1; i < len(trace); i++ {
			mid := trace[i-1].Pos.Lerp(trace[i].Pos, 0.5)
			b.addVertex(trace[i-1].Pos, zero, src[i-1])
			b.addVertex(mid, zero, src[i-1])
			b.addVertex(mid, zero, src[i])
			b.addVertex(trace[i].Pos, zero, src[i])
		}
	}
	return b.build(s, o.Color)
}

// buildTube emits a constant-radius tube along the splined backbone.
func buildTube(s *mol.Structure, o Options) (*Geometry, error) {
	return buildExtrusion(s, o, func(mol.SecStructure) (float32, float32) {
		return o.Radius, o.Radius
	})
}

// Cartoon cross-section multipliers relative to Options.Radius.
const (
	cartoonHelixWidth      = 3.5
	cartoonHelixThickness  = 0.8
	cartoonStrandWidth     = 3.0
	cartoonStrandThickness = 0.5
)

// buildCartoon is the tube pipeline with a secondary-structure dependent
// cross-section: wide flat ribbons for helices and strands, a thin tube
// for coil.
func buildCartoon(s *mol.Structure, o Options) (*Geometry, error) {
	return buildExtrusion(s, o, func(ss mol.SecStructure) (float32, float32) {
		switch ss {
		case mol.Helix:
			return o.Radius * cartoonHelixWidth, o.Radius * cartoonHelixThickness
		case mol.Strand:
			return o.Radius * cartoonStrandWidth, o.Radius * cartoonStrandThickness
		default:
			return o.Radius, o.Radius
		}
	})
}

// buildExtrusion splines each chain's trace, computes orientation frames
// and sweeps an elliptical cross-section along them. profile maps a
// residue's secondary structure to the (width, thickness) radii.
func buildExtrusion(s *mol.Structure, o Options, profile func(mol.SecStructure) (float32, float32)) (*Geometry, error) {
	b := newMeshBuilder(TopologyTriangles)
	for _, chain := range s.Chains() {
		trace := chain.BackboneTrace()
		if len(trace) < 2 {
			if err := emptyTrace(chain, o); err != nil {
				return nil, err
			}
			continue
		}

		ctrl := make([]math.Vec3, len(trace))
		for i, p := range trace {
			ctrl[i] = p.Pos
		}
		frames := buildFrames(sampleSpline(ctrl, o.SplineDetail))

		src := make([]int32, len(trace))
		for i, p := range trace {
			src[i] = b.addSource(Ref{Residue: p.Residue})
		}

		var prevRing []uint32
		for _, f := range frames {
			rx, ry := profile(trace[f.src].Residue.SS)
			ring := emitRing(b, f, rx, ry, src[f.src], o.ArcDetail)
			if prevRing != nil {
				stitchRings(b, prevRing, ring)
			} else {
				emitCap(b, f, ring, src[f.src], true)
			}
			prevRing = ring
		}
		emitCap(b, frames[len(frames)-1], prevRing, src[frames[len(frames)-1].src], false)
	}
	return b.build(s, o.Color)
}

// emitRing emits one elliptical cross-section ring around a frame point.
func emitRing(b *meshBuilder, f framePoint, rx, ry float32, src int32, arcDetail int) []uint32 {
	ring := make([]uint32, arcDetail)
	for k := 0; k < arcDetail; k++ {
		theta := 2 * math32.Pi * float32(k) / float32(arcDetail)
		cos, sin := math32.Cos(theta), math32.Sin(theta)
		pos := f.pos.
			Add(f.normal.Scale(cos * rx)).
			Add(f.binormal.Scale(sin * ry))
		// Ellipse surface normal: (ry*cos, rx*sin) in the frame basis.
		normal := f.normal.Scale(ry * cos).Add(f.binormal.Scale(rx * sin)).Normalize()
		ring[k] = b.addVertex(pos, normal, src)
	}
	return ring
}

// stitchRings connects two consecutive rings with a triangle strip.
func stitchRings(b *meshBuilder, prev, cur []uint32) {
	n := len(cur)
	for k := 0; k < n; k++ {
		k1 := (k + 1) % n
		b.addTriangle(prev[k], prev[k1], cur[k])
		b.addTriangle(cur[k], prev[k1], cur[k1])
	}
}

// emitCap closes a tube end with a triangle fan. No ring expansion past
// the curve's parametric ends: the cap is flat at the terminal frame.
func emitCap(b *meshBuilder, f framePoint, ring []uint32, src int32, start bool) {
	capNormal := f.tangent
	if start {
		capNormal = f.tangent.Neg()
	}
	center := b.addVertex(f.pos, capNormal, src)
	n := len(ring)
	for k := 0; k < n; k++ {
		k1 := (k + 1) % n
		if start {
			b.addTriangle(center, ring[k1], ring[k])
		} else {
			b.addTriangle(center, ring[k], ring[k1])
		}
	}
}

// emptyTrace handles a chain with too few trace points for a trace-based
// representation: a hard error under Options.Strict, otherwise the chain
// is skipped with a warning.
func emptyTrace(chain *mol.Chain, o Options) error {
	if o.Strict {
		return fmt.Errorf("%w: chain %q", ErrEmptyTrace, chain.Name)
	}
	slog.Warn("skipping chain without backbone trace", "chain", chain.Name)
	return nil
}
