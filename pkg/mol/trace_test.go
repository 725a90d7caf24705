package mol

import (
	"testing"

	"github.com/Traksewt/pv/pkg/math"
)

func TestBackboneTrace(t *testing.T) {
	s := NewStructure()
	c := s.AddChain("A")
	for i := 0; i < 3; i++ {
		r := c.AddResidue("ALA", i+1)
		r.AddAtom("N", "N", math.Vec3{X: float32(i), Y: 1})
		r.AddAtom("CA", "C", math.Vec3{X: float32(i)})
	}

	trace := c.BackboneTrace()
	if len(trace) != 3 {
		t.Fatalf("trace length = %d, want 3", len(trace))
	}
	for i, p := range trace {
		if p.Ordinal != i {
			t.Errorf("point %d ordinal = %d", i, p.Ordinal)
		}
		if p.Pos.X != float32(i) || p.Pos.Y != 0 {
			t.Errorf("point %d picked wrong atom: %v", i, p.Pos)
		}
		if p.Residue != c.Residues()[i] {
			t.Errorf("point %d residue back-reference wrong", i)
		}
	}
}

func TestBackboneTraceExcludesMissing(t *testing.T) {
	s := NewStructure()
	c := s.AddChain("A")
	c.AddResidue("ALA", 1).AddAtom("CA", "C", math.Vec3{X: 0})
	// Residue with no reference atom: excluded, not zero-filled.
	c.AddResidue("HOH", 2).AddAtom("O", "O", math.Vec3{X: 1})
	c.AddResidue("GLY", 3).AddAtom("CA", "C", math.Vec3{X: 2})

	trace := c.BackboneTrace()
	if len(trace) != 2 {
		t.Fatalf("trace length = %d, want 2", len(trace))
	}
	// Ordinals run over trace points, not residues.
	if trace[1].Ordinal != 1 {
		t.Errorf("second point ordinal = %d, want 1", trace[1].Ordinal)
	}
	if trace[1].Residue.Num != 3 {
		t.Errorf("second point residue = %d, want 3", trace[1].Residue.Num)
	}
}

func TestBackboneTraceNucleotide(t *testing.T) {
	s := NewStructure()
	c := s.AddChain("A")
	c.AddResidue("DA", 1).AddAtom("P", "P", math.Vec3{X: 5})

	trace := c.BackboneTrace()
	if len(trace) != 1 || trace[0].Pos.X != 5 {
		t.Errorf("P fallback not used: %v", trace)
	}
}
