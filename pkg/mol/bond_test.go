package mol

import (
	"testing"

	"github.com/Traksewt/pv/pkg/math"
)

func TestBondsWithinResidue(t *testing.T) {
	s := NewStructure()
	r := s.AddChain("A").AddResidue("ALA", 1)
	r.AddAtom("N", "N", math.Vec3{})
	r.AddAtom("CA", "C", math.Vec3{X: 1.46})
	// Far beyond any covalent cutoff.
	r.AddAtom("O", "O", math.Vec3{X: 10})

	bonds := s.Bonds()
	if len(bonds) != 1 {
		t.Fatalf("bonds = %d, want 1", len(bonds))
	}
	if bonds[0].A.Name != "N" || bonds[0].B.Name != "CA" {
		t.Errorf("bonded pair = %s-%s, want N-CA", bonds[0].A.Name, bonds[0].B.Name)
	}
}

func TestBondsPeptideLink(t *testing.T) {
	s := NewStructure()
	c := s.AddChain("A")
	c.AddResidue("ALA", 1).AddAtom("C", "C", math.Vec3{})
	c.AddResidue("GLY", 2).AddAtom("N", "N", math.Vec3{X: 1.33})

	bonds := s.Bonds()
	if len(bonds) != 1 {
		t.Fatalf("bonds = %d, want 1 (peptide link)", len(bonds))
	}
}

func TestBondsNoCrossChain(t *testing.T) {
	s := NewStructure()
	s.AddChain("A").AddResidue("ALA", 1).AddAtom("C", "C", math.Vec3{})
	s.AddChain("B").AddResidue("GLY", 1).AddAtom("N", "N", math.Vec3{X: 1.33})

	if bonds := s.Bonds(); len(bonds) != 0 {
		t.Errorf("bonds = %d, want 0 across chains", len(bonds))
	}
}

func TestCovalentRadiusFallback(t *testing.T) {
	if CovalentRadius("C") != 0.76 {
		t.Errorf("C radius = %v", CovalentRadius("C"))
	}
	if CovalentRadius("XX") != defaultRadius {
		t.Errorf("unknown element should use default radius")
	}
}
