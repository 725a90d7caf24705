package render

import (
	"errors"
	"fmt"

	"github.com/Traksewt/pv/pkg/color"
	"github.com/Traksewt/pv/pkg/mol"
)

// ErrUnknownProperty is returned when a property-based coloring operation
// finds its property on no entity at all.
var ErrUnknownProperty = errors.New("unknown property")

// Ref identifies the source entity behind a vertex: an atom for
// atom-based styles, or a residue for trace-based styles (Atom is nil
// then). Residue is always set.
type Ref struct {
	Atom    *mol.Atom
	Residue *mol.Residue
}

// Colorer assigns a color to a source entity. ColorFor writes exactly
// 4 floats (RGBA) at out[offset..offset+3]. It is invoked exactly once
// per distinct source entity, in ascending source-index order.
//
// A Colorer may additionally implement Preparer and Finisher for
// lifecycle hooks around a coloring pass. User-supplied implementations
// receive the same sequencing guarantees as the built-in operations.
type Colorer interface {
	ColorFor(ref Ref, out []float32, offset int)
}

// Preparer is implemented by coloring operations that need a pre-pass
// over the structure, e.g. to count chains or compute a property range.
// Begin is invoked exactly once before any ColorFor call. Each Begin
// must derive its statistics fresh; nothing may leak from a previous
// structure.
type Preparer interface {
	Begin(s *mol.Structure) error
}

// Finisher is implemented by coloring operations with cleanup. End is
// invoked exactly once after all ColorFor calls, even when Begin
// reported an error.
type Finisher interface {
	End()
}

// applyColorer runs the full coloring lifecycle over the per-entity
// color buffer out (4 floats per entity, indexed by source index).
func applyColorer(s *mol.Structure, op Colorer, refs []Ref, out []float32) error {
	if p, ok := op.(Preparer); ok {
		if err := p.Begin(s); err != nil {
			if f, ok := op.(Finisher); ok {
				f.End()
			}
			return fmt.Errorf("coloring begin: %w", err)
		}
	}
	for i, ref := range refs {
		op.ColorFor(ref, out, i*4)
	}
	if f, ok := op.(Finisher); ok {
		f.End()
	}
	return nil
}

// Uniform colors every entity with a single color.
func Uniform(c color.Color) Colorer {
	return uniformColorer{c}
}

type uniformColorer struct {
	c color.Color
}

func (u uniformColorer) ColorFor(_ Ref, out []float32, offset int) {
	u.c.WriteTo(out, offset)
}

// cpkColors maps element symbols to CPK-style colors.
var cpkColors = map[string]color.Color{
	"H":  color.White,
	"C":  {R: 0.78, G: 0.78, B: 0.78, A: 1},
	"N":  {R: 0.56, G: 0.56, B: 1, A: 1},
	"O":  {R: 0.94, G: 0, B: 0, A: 1},
	"S":  {R: 1, G: 0.78, B: 0.2, A: 1},
	"P":  {R: 1, G: 0.65, B: 0, A: 1},
	"F":  color.LightGreen,
	"CL": color.Green,
	"BR": {R: 0.65, G: 0.16, B: 0.16, A: 1},
	"I":  {R: 0.58, G: 0, B: 0.58, A: 1},
	"FE": color.Orange,
	"CA": color.DarkGreen,
	"MG": {R: 0.13, G: 0.55, B: 0.13, A: 1},
	"ZN": {R: 0.65, G: 0.65, B: 0.7, A: 1},
}

// unknownElementColor is the fallback for elements missing from the CPK
// table. Unknown elements do not fail.
var unknownElementColor = color.Color{R: 1, G: 0.08, B: 0.58, A: 1}

// ByElement colors atoms by their element via a CPK-style lookup table.
// For trace-based geometry, where no atom is available, the residue's
// reference falls back to carbon.
func ByElement() Colorer {
	return elementColorer{}
}

type elementColorer struct{}

func (elementColorer) ColorFor(ref Ref, out []float32, offset int) {
	element := "C"
	if ref.Atom != nil {
		element = ref.Atom.Element
	}
	c, ok := cpkColors[element]
	if !ok {
		c = unknownElementColor
	}
	c.WriteTo(out, offset)
}

// ByChain assigns each chain a unique position along the gradient, in
// structure order.
func ByChain(g color.Gradient) Colorer {
	return &chainColorer{gradient: g}
}

type chainColorer struct {
	gradient color.Gradient
	colors   map[*mol.Chain]color.Color
}

func (c *chainColorer) Begin(s *mol.Structure) error {
	chains := s.Chains()
	c.colors = make(map[*mol.Chain]color.Color, len(chains))
	for i, chain := range chains {
		t := float32(0)
		if len(chains) > 1 {
			t = float32(i) / float32(len(chains)-1)
		}
		c.colors[chain] = c.gradient.Sample(t)
	}
	return nil
}

func (c *chainColorer) ColorFor(ref Ref, out []float32, offset int) {
	c.colors[ref.Residue.Chain()].WriteTo(out, offset)
}

func (c *chainColorer) End() {
	c.colors = nil
}

// Secondary structure colors used by BySS.
var ssColors = map[mol.SecStructure]color.Color{
	mol.Helix:  color.Red,
	mol.Strand: color.Yellow,
	mol.Coil:   color.LightGrey,
}

// BySS colors residues by their secondary structure classification.
func BySS() Colorer {
	return ssColorer{}
}

type ssColorer struct{}

func (ssColorer) ColorFor(ref Ref, out []float32, offset int) {
	ssColors[ref.Residue.SS].WriteTo(out, offset)
}

// SSSuccession colors maximal runs of equal non-coil secondary structure
// with successive gradient positions. Coil residues always receive
// coilColor.
func SSSuccession(g color.Gradient, coilColor color.Color) Colorer {
	return &ssSuccessionColorer{gradient: g, coil: coilColor}
}

type ssSuccessionColorer struct {
	gradient color.Gradient
	coil     color.Color
	runIndex map[*mol.Residue]int
	runCount int
}

func (c *ssSuccessionColorer) Begin(s *mol.Structure) error {
	c.runIndex = make(map[*mol.Residue]int)
	c.runCount = 0
	for _, chain := range s.Chains() {
		prev := mol.Coil
		inRun := false
		for _, r := range chain.Residues() {
			if r.SS == mol.Coil {
				prev, inRun = mol.Coil, false
				continue
			}
			if !inRun || r.SS != prev {
				c.runCount++
			}
			c.runIndex[r] = c.runCount - 1
			prev, inRun = r.SS, true
		}
	}
	return nil
}

func (c *ssSuccessionColorer) ColorFor(ref Ref, out []float32, offset int) {
	run, ok := c.runIndex[ref.Residue]
	if !ok {
		c.coil.WriteTo(out, offset)
		return
	}
	t := float32(0)
	if c.runCount > 1 {
		t = float32(run) / float32(c.runCount-1)
	}
	c.gradient.Sample(t).WriteTo(out, offset)
}

func (c *ssSuccessionColorer) End() {
	c.runIndex = nil
}

// Rainbow colors residues by their position along their chain. Position
// is taken over backbone trace points when the chain has a trace, so
// residues excluded from the trace do not distort the spacing; excluded
// residues, and every residue of a chain without a trace, fall back to
// raw residue-order position.
func Rainbow(g color.Gradient) Colorer {
	return &rainbowColorer{gradient: g}
}

type rainbowColorer struct {
	gradient color.Gradient
	pos      map[*mol.Residue]float32
}

func (c *rainbowColorer) Begin(s *mol.Structure) error {
	c.pos = make(map[*mol.Residue]float32)
	for _, chain := range s.Chains() {
		trace := chain.BackboneTrace()
		residues := chain.Residues()
		for _, p := range trace {
			t := float32(0)
			if len(trace) > 1 {
				t = float32(p.Ordinal) / float32(len(trace)-1)
			}
			c.pos[p.Residue] = t
		}
		// Residues excluded from the trace (no reference atom) take
		// their raw residue-order position, so a gap residue does not
		// read as the chain start.
		for i, r := range residues {
			if _, ok := c.pos[r]; ok {
				continue
			}
			t := float32(0)
			if len(residues) > 1 {
				t = float32(i) / float32(len(residues)-1)
			}
			c.pos[r] = t
		}
	}
	return nil
}

func (c *rainbowColorer) ColorFor(ref Ref, out []float32, offset int) {
	c.gradient.Sample(c.pos[ref.Residue]).WriteTo(out, offset)
}

func (c *rainbowColorer) End() {
	c.pos = nil
}

// missingPropColor is assigned to entities lacking the property of a
// property-based coloring operation.
var missingPropColor = color.Magenta

// ByAtomProp colors atoms by a named numeric custom property, with the
// value range inferred from the structure during Begin.
func ByAtomProp(prop string, g color.Gradient) Colorer {
	return &propColorer{prop: prop, gradient: g, auto: true, residue: false}
}

// ByAtomPropRange is ByAtomProp with an explicit [min, max] range.
func ByAtomPropRange(prop string, g color.Gradient, min, max float64) Colorer {
	return &propColorer{prop: prop, gradient: g, min: min, max: max, residue: false}
}

// ByResidueProp colors residues by a named numeric custom property, with
// the value range inferred from the structure during Begin.
func ByResidueProp(prop string, g color.Gradient) Colorer {
	return &propColorer{prop: prop, gradient: g, auto: true, residue: true}
}

// ByResiduePropRange is ByResidueProp with an explicit [min, max] range.
func ByResiduePropRange(prop string, g color.Gradient, min, max float64) Colorer {
	return &propColorer{prop: prop, gradient: g, min: min, max: max, residue: true}
}

type propColorer struct {
	prop     string
	gradient color.Gradient
	residue  bool
	auto     bool
	min, max float64
}

func (c *propColorer) Begin(s *mol.Structure) error {
	if !c.auto {
		return nil
	}
	found := false
	observe := func(v float64, ok bool) {
		if !ok {
			return
		}
		if !found || v < c.min {
			c.min = v
		}
		if !found || v > c.max {
			c.max = v
		}
		found = true
	}
	if c.residue {
		s.EachResidue(func(r *mol.Residue) {
			v, ok := r.Prop(c.prop)
			observe(v, ok)
		})
	} else {
		s.EachAtom(func(a *mol.Atom) {
			v, ok := a.Prop(c.prop)
			observe(v, ok)
		})
	}
	if !found {
		return fmt.Errorf("%w: %q set on no %s", ErrUnknownProperty, c.prop, c.entityName())
	}
	return nil
}

func (c *propColorer) entityName() string {
	if c.residue {
		return "residue"
	}
	return "atom"
}

func (c *propColorer) ColorFor(ref Ref, out []float32, offset int) {
	var v float64
	var ok bool
	if c.residue {
		v, ok = ref.Residue.Prop(c.prop)
	} else if ref.Atom != nil {
		v, ok = ref.Atom.Prop(c.prop)
	}
	if !ok {
		missingPropColor.WriteTo(out, offset)
		return
	}
	t := float64(0)
	if c.max > c.min {
		t = (v - c.min) / (c.max - c.min)
	}
	c.gradient.Sample(float32(t)).WriteTo(out, offset)
}
