package mol

// Bond is a covalent bond between two atoms.
type Bond struct {
	A, B *Atom
}

// covalentRadii holds approximate covalent radii in Angstroms for the
// elements common in biomolecules. Unknown elements use defaultRadius.
var covalentRadii = map[string]float32{
	"H":  0.31,
	"C":  0.76,
	"N":  0.71,
	"O":  0.66,
	"P":  1.07,
	"S":  1.05,
	"SE": 1.20,
	"F":  0.57,
	"CL": 1.02,
	"BR": 1.20,
	"I":  1.39,
	"FE": 1.32,
	"ZN": 1.22,
	"MG": 1.41,
	"CA": 1.76,
	"NA": 1.66,
	"K":  2.03,
}

const defaultRadius = 0.8

// bondTolerance is added to the summed covalent radii when testing
// whether two atoms are bonded.
const bondTolerance = 0.4

// CovalentRadius returns the covalent radius for an element symbol.
func CovalentRadius(element string) float32 {
	if r, ok := covalentRadii[element]; ok {
		return r
	}
	return defaultRadius
}

// Bonds derives covalent bonds by the distance criterion: two atoms are
// bonded when their distance is below the sum of their covalent radii
// plus a tolerance. Pairs are tested within each residue and between
// consecutive residues of a chain, which covers peptide and nucleotide
// backbone links.
func (s *Structure) Bonds() []Bond {
	var bonds []Bond
	for _, c := range s.chains {
		for i, r := range c.residues {
			bonds = appendResiduePairs(bonds, r.atoms, nil)
			if i+1 < len(c.residues) {
				bonds = appendResiduePairs(bonds, r.atoms, c.residues[i+1].atoms)
			}
		}
	}
	return bonds
}

// appendResiduePairs tests atom pairs within one residue (others == nil)
// or across two residues.
func appendResiduePairs(bonds []Bond, atoms, others []*Atom) []Bond {
	if others == nil {
		for i := 0; i < len(atoms); i++ {
			for j := i + 1; j < len(atoms); j++ {
				if bonded(atoms[i], atoms[j]) {
					bonds = append(bonds, Bond{atoms[i], atoms[j]})
				}
			}
		}
		return bonds
	}
	for _, a := range atoms {
		for _, b := range others {
			if bonded(a, b) {
				bonds = append(bonds, Bond{a, b})
			}
		}
	}
	return bonds
}

func bonded(a, b *Atom) bool {
	cutoff := CovalentRadius(a.Element) + CovalentRadius(b.Element) + bondTolerance
	return a.Pos.Distance(b.Pos) <= cutoff
}
