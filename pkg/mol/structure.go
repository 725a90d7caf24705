// Package mol provides the molecular structure data model: structures,
// chains, residues and atoms, plus backbone traces and bond derivation.
package mol

import (
	"github.com/Traksewt/pv/pkg/math"
)

// SecStructure classifies a residue's secondary structure.
type SecStructure uint8

// Secondary structure classes.
const (
	Coil SecStructure = iota
	Helix
	Strand
)

// String returns the class name.
func (ss SecStructure) String() string {
	switch ss {
	case Helix:
		return "helix"
	case Strand:
		return "strand"
	default:
		return "coil"
	}
}

// Atom is a single atom within a residue.
type Atom struct {
	// Name is the PDB-style atom name, e.g. "CA".
	Name string
	// Element is the chemical element symbol, e.g. "C".
	Element string
	// Pos is the atom position in Angstroms.
	Pos math.Vec3
	// Index is the atom's insertion index within the whole structure.
	Index int

	residue *Residue
	props   map[string]float64
}

// Residue returns the residue the atom belongs to.
func (a *Atom) Residue() *Residue {
	return a.residue
}

// Prop returns the named numeric custom property, if set.
func (a *Atom) Prop(name string) (float64, bool) {
	v, ok := a.props[name]
	return v, ok
}

// SetProp sets a named numeric custom property.
func (a *Atom) SetProp(name string, value float64) {
	if a.props == nil {
		a.props = make(map[string]float64)
	}
	a.props[name] = value
}

// Residue is an ordered set of atoms within a chain.
type Residue struct {
	// Name is the residue name, e.g. "ALA".
	Name string
	// Num is the residue sequence number from the source file.
	Num int
	// Index is the residue's insertion index within its chain.
	Index int
	// SS is the secondary structure classification.
	SS SecStructure

	chain *Chain
	atoms []*Atom
	props map[string]float64
}

// Chain returns the chain the residue belongs to.
func (r *Residue) Chain() *Chain {
	return r.chain
}

// Atoms returns the residue's atoms in insertion order.
func (r *Residue) Atoms() []*Atom {
	return r.atoms
}

// Atom returns the first atom with the given name, or nil.
func (r *Residue) Atom(name string) *Atom {
	for _, a := range r.atoms {
		if a.Name == name {
			return a
		}
	}
	return nil
}

// AddAtom appends an atom to the residue.
func (r *Residue) AddAtom(name, element string, pos math.Vec3) *Atom {
	s := r.chain.structure
	a := &Atom{
		Name:    name,
		Element: element,
		Pos:     pos,
		Index:   s.atomCount,
		residue: r,
	}
	s.atomCount++
	r.atoms = append(r.atoms, a)
	return a
}

// Prop returns the named numeric custom property, if set.
func (r *Residue) Prop(name string) (float64, bool) {
	v, ok := r.props[name]
	return v, ok
}

// SetProp sets a named numeric custom property.
func (r *Residue) SetProp(name string, value float64) {
	if r.props == nil {
		r.props = make(map[string]float64)
	}
	r.props[name] = value
}

// Chain is an ordered sequence of residues. Insertion order is sequence
// order.
type Chain struct {
	// Name is the chain identifier, e.g. "A".
	Name string

	structure *Structure
	residues  []*Residue
}

// Structure returns the owning structure.
func (c *Chain) Structure() *Structure {
	return c.structure
}

// Residues returns the chain's residues in sequence order.
func (c *Chain) Residues() []*Residue {
	return c.residues
}

// AddResidue appends a residue to the chain.
func (c *Chain) AddResidue(name string, num int) *Residue {
	r := &Residue{
		Name:  name,
		Num:   num,
		Index: len(c.residues),
		chain: c,
	}
	c.residues = append(c.residues, r)
	return r
}

// Residue returns the residue with the given sequence number, or nil.
func (c *Chain) Residue(num int) *Residue {
	for _, r := range c.residues {
		if r.Num == num {
			return r
		}
	}
	return nil
}

// Structure is an ordered sequence of chains. It is treated as immutable
// for the duration of one geometry build.
type Structure struct {
	chains    []*Chain
	atomCount int
}

// NewStructure creates an empty structure.
func NewStructure() *Structure {
	return &Structure{}
}

// AddChain appends a chain to the structure.
func (s *Structure) AddChain(name string) *Chain {
	c := &Chain{Name: name, structure: s}
	s.chains = append(s.chains, c)
	return c
}

// Chains returns the structure's chains in insertion order.
func (s *Structure) Chains() []*Chain {
	return s.chains
}

// Chain returns the chain with the given name, or nil.
func (s *Structure) Chain(name string) *Chain {
	for _, c := range s.chains {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// AtomCount returns the number of atoms across all chains.
func (s *Structure) AtomCount() int {
	return s.atomCount
}

// EachAtom calls fn for every atom in structure order.
func (s *Structure) EachAtom(fn func(*Atom)) {
	for _, c := range s.chains {
		for _, r := range c.residues {
			for _, a := range r.atoms {
				fn(a)
			}
		}
	}
}

// EachResidue calls fn for every residue in structure order.
func (s *Structure) EachResidue(fn func(*Residue)) {
	for _, c := range s.chains {
		for _, r := range c.residues {
			fn(r)
		}
	}
}

// Bounds returns the axis-aligned bounding box of all atom positions.
// Returns zero vectors for an empty structure.
func (s *Structure) Bounds() (min, max math.Vec3) {
	if s.atomCount == 0 {
		return math.Vec3{}, math.Vec3{}
	}
	min = math.Vec3{X: 1e10, Y: 1e10, Z: 1e10}
	max = min.Neg()
	s.EachAtom(func(a *Atom) {
		if a.Pos.X < min.X {
			min.X = a.Pos.X
		}
		if a.Pos.Y < min.Y {
			min.Y = a.Pos.Y
		}
		if a.Pos.Z < min.Z {
			min.Z = a.Pos.Z
		}
		if a.Pos.X > max.X {
			max.X = a.Pos.X
		}
		if a.Pos.Y > max.Y {
			max.Y = a.Pos.Y
		}
		if a.Pos.Z > max.Z {
			max.Z = a.Pos.Z
		}
	})
	return min, max
}

// Center returns the center of the structure's bounding box.
func (s *Structure) Center() math.Vec3 {
	min, max := s.Bounds()
	return min.Add(max).Scale(0.5)
}
