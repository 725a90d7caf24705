package mol

import "github.com/Traksewt/pv/pkg/math"

// TracePoint is one backbone reference point of a chain trace.
type TracePoint struct {
	// Pos is the reference atom position.
	Pos math.Vec3
	// Residue is the source residue.
	Residue *Residue
	// Ordinal is the point's position within the trace. It counts trace
	// points, not raw residues, so residues excluded for lacking a
	// reference atom do not distort gradient spacing.
	Ordinal int
}

// Trace is an ordered per-chain sequence of backbone reference points,
// used as spline control points by tube and cartoon representations.
type Trace []TracePoint

// traceAtomNames are tried in order when picking a residue's backbone
// reference atom. CA covers amino acids, P covers nucleotides.
var traceAtomNames = []string{"CA", "P"}

// BackboneTrace extracts one reference point per residue. Residues
// lacking a reference atom are excluded, so the trace may be shorter
// than the residue count.
func (c *Chain) BackboneTrace() Trace {
	var trace Trace
	for _, r := range c.residues {
		a := r.traceAtom()
		if a == nil {
			continue
		}
		trace = append(trace, TracePoint{
			Pos:     a.Pos,
			Residue: r,
			Ordinal: len(trace),
		})
	}
	return trace
}

func (r *Residue) traceAtom() *Atom {
	for _, name := range traceAtomNames {
		if a := r.Atom(name); a != nil {
			return a
		}
	}
	return nil
}
