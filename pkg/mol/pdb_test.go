package mol

import (
	"fmt"
	"strings"
	"testing"
)

// atomLine formats a PDB ATOM record with the fixed column layout.
func atomLine(serial int, name, resName, chain string, resNum int, x, y, z float32, element string) string {
	return fmt.Sprintf("ATOM  %5d  %-3s %3s %1s%4d    %8.3f%8.3f%8.3f  1.00  0.00          %2s",
		serial, name, resName, chain, resNum, x, y, z, element)
}

func TestReadPDB(t *testing.T) {
	lines := []string{
		"HEADER    TEST",
		"HELIX    1   1 ALA A    1  GLY A    2  1",
		atomLine(1, "N", "ALA", "A", 1, 0, 0, 0, "N"),
		atomLine(2, "CA", "ALA", "A", 1, 1.5, 0, 0, "C"),
		atomLine(3, "N", "GLY", "A", 2, 2.5, 1, 0, "N"),
		atomLine(4, "CA", "GLY", "A", 2, 3.8, 1, 0, "C"),
		"TER",
		atomLine(5, "CA", "SER", "B", 1, 10, 0, 0, "C"),
		"END",
	}
	s, err := ReadPDB(strings.NewReader(strings.Join(lines, "\n")))
	if err != nil {
		t.Fatalf("ReadPDB error: %v", err)
	}

	if len(s.Chains()) != 2 {
		t.Fatalf("chains = %d, want 2", len(s.Chains()))
	}
	a := s.Chain("A")
	if len(a.Residues()) != 2 {
		t.Fatalf("chain A residues = %d, want 2", len(a.Residues()))
	}
	if s.AtomCount() != 5 {
		t.Errorf("atoms = %d, want 5", s.AtomCount())
	}

	ca := a.Residues()[0].Atom("CA")
	if ca == nil {
		t.Fatal("CA atom missing")
	}
	if ca.Element != "C" {
		t.Errorf("element = %q, want C", ca.Element)
	}
	if ca.Pos.X != 1.5 {
		t.Errorf("CA x = %v, want 1.5", ca.Pos.X)
	}

	// HELIX 1-2 on chain A.
	for _, r := range a.Residues() {
		if r.SS != Helix {
			t.Errorf("residue %d SS = %v, want helix", r.Num, r.SS)
		}
	}
	if s.Chain("B").Residues()[0].SS != Coil {
		t.Error("chain B should default to coil")
	}
}

func TestReadPDBSheet(t *testing.T) {
	lines := []string{
		"SHEET    1   A 1 SER B   1  SER B   1  0",
		atomLine(1, "CA", "SER", "B", 1, 0, 0, 0, "C"),
	}
	s, err := ReadPDB(strings.NewReader(strings.Join(lines, "\n")))
	if err != nil {
		t.Fatalf("ReadPDB error: %v", err)
	}
	if s.Chain("B").Residues()[0].SS != Strand {
		t.Error("SHEET record not applied")
	}
}

func TestReadPDBFirstModelOnly(t *testing.T) {
	lines := []string{
		atomLine(1, "CA", "ALA", "A", 1, 0, 0, 0, "C"),
		"ENDMDL",
		atomLine(2, "CA", "ALA", "A", 2, 5, 0, 0, "C"),
	}
	s, err := ReadPDB(strings.NewReader(strings.Join(lines, "\n")))
	if err != nil {
		t.Fatalf("ReadPDB error: %v", err)
	}
	if s.AtomCount() != 1 {
		t.Errorf("atoms = %d, want 1 (first model only)", s.AtomCount())
	}
}

func TestReadPDBAltLoc(t *testing.T) {
	// Alternate conformation B must be dropped.
	line := atomLine(1, "CA", "ALA", "A", 1, 0, 0, 0, "C")
	alt := []byte(atomLine(2, "CA", "ALA", "A", 1, 9, 9, 9, "C"))
	alt[16] = 'B'
	s, err := ReadPDB(strings.NewReader(line + "\n" + string(alt)))
	if err != nil {
		t.Fatalf("ReadPDB error: %v", err)
	}
	if s.AtomCount() != 1 {
		t.Errorf("atoms = %d, want 1 (altLoc B dropped)", s.AtomCount())
	}
}
