package mol

import (
	"testing"

	"github.com/Traksewt/pv/pkg/math"
)

func TestStructureHierarchy(t *testing.T) {
	s := NewStructure()
	ca := s.AddChain("A")
	cb := s.AddChain("B")

	r1 := ca.AddResidue("ALA", 1)
	r2 := ca.AddResidue("GLY", 2)
	r3 := cb.AddResidue("SER", 1)

	a1 := r1.AddAtom("CA", "C", math.Vec3{X: 1})
	a2 := r2.AddAtom("CA", "C", math.Vec3{X: 2})
	a3 := r3.AddAtom("N", "N", math.Vec3{X: 3})

	if s.AtomCount() != 3 {
		t.Errorf("AtomCount = %d, want 3", s.AtomCount())
	}
	if a1.Index != 0 || a2.Index != 1 || a3.Index != 2 {
		t.Errorf("atom indices = %d,%d,%d, want 0,1,2", a1.Index, a2.Index, a3.Index)
	}
	if r1.Index != 0 || r2.Index != 1 || r3.Index != 0 {
		t.Errorf("residue indices = %d,%d,%d, want 0,1,0", r1.Index, r2.Index, r3.Index)
	}
	if a1.Residue() != r1 || r1.Chain() != ca {
		t.Error("back-references broken")
	}
	if s.Chain("B") != cb || s.Chain("C") != nil {
		t.Error("chain lookup broken")
	}
}

func TestStructureOrder(t *testing.T) {
	s := NewStructure()
	for _, name := range []string{"B", "A", "C"} {
		s.AddChain(name)
	}
	var got []string
	for _, c := range s.Chains() {
		got = append(got, c.Name)
	}
	want := []string{"B", "A", "C"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("chain order = %v, want %v (insertion order)", got, want)
		}
	}
}

func TestStructureBounds(t *testing.T) {
	s := NewStructure()
	r := s.AddChain("A").AddResidue("ALA", 1)
	r.AddAtom("N", "N", math.Vec3{X: -1, Y: 0, Z: 2})
	r.AddAtom("CA", "C", math.Vec3{X: 3, Y: -2, Z: 0})

	min, max := s.Bounds()
	if min != (math.Vec3{X: -1, Y: -2, Z: 0}) {
		t.Errorf("min = %v", min)
	}
	if max != (math.Vec3{X: 3, Y: 0, Z: 2}) {
		t.Errorf("max = %v", max)
	}
	center := s.Center()
	if center != (math.Vec3{X: 1, Y: -1, Z: 1}) {
		t.Errorf("center = %v", center)
	}
}

func TestProps(t *testing.T) {
	s := NewStructure()
	r := s.AddChain("A").AddResidue("ALA", 1)
	a := r.AddAtom("CA", "C", math.Vec3{})

	if _, ok := a.Prop("charge"); ok {
		t.Error("unset property should not resolve")
	}
	a.SetProp("charge", -0.5)
	if v, ok := a.Prop("charge"); !ok || v != -0.5 {
		t.Errorf("atom prop = %v,%v, want -0.5,true", v, ok)
	}
	r.SetProp("hydrophobicity", 1.8)
	if v, ok := r.Prop("hydrophobicity"); !ok || v != 1.8 {
		t.Errorf("residue prop = %v,%v, want 1.8,true", v, ok)
	}
}
