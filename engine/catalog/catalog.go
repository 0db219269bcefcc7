// Package catalog holds the component type table: the single source of truth
// for valid (kind, size) combinations and base difficulties. Every other
// engine package consults it rather than duplicating bounds.
package catalog

import (
	"fmt"

	"github.com/nathoo/phaseforge/types"
)

// Spec describes one component kind: its card-group size bounds, its base
// difficulty contribution, and the noun used to render it.
type Spec struct {
	Kind           types.ComponentKind
	MinSize        int
	MaxSize        int // inclusive
	BaseDifficulty float64
	Noun           string // singular form; plural adds "s"
}

// Describe renders the human-readable phrase for count groups of size cards,
// pluralizing on count ("1 set of 3", "2 sets of 3").
func (s Spec) Describe(count, size int) string {
	noun := s.Noun
	if count != 1 {
		noun += "s"
	}
	return fmt.Sprintf("%d %s of %d", count, noun, size)
}

// Catalog is an ordered component type table. Order is the canonical kind
// priority used when sorting a phase's components. Immutable after
// construction.
type Catalog struct {
	specs []Spec
	index map[types.ComponentKind]int
}

// New builds a catalog from specs in priority order.
func New(specs []Spec) *Catalog {
	c := &Catalog{
		specs: make([]Spec, len(specs)),
		index: make(map[types.ComponentKind]int, len(specs)),
	}
	copy(c.specs, specs)
	for i, s := range specs {
		c.index[s.Kind] = i
	}
	return c
}

// Default returns the built-in six-entry catalog. Base difficulties rise with
// the number of layered constraints; matching sets start lowest because their
// size term grows steeply on its own.
func Default() *Catalog {
	return New([]Spec{
		{Kind: types.MatchingSet, MinSize: 2, MaxSize: 6, BaseDifficulty: 1.0, Noun: "set"},
		{Kind: types.Run, MinSize: 3, MaxSize: 9, BaseDifficulty: 1.5, Noun: "run"},
		{Kind: types.ColorGroup, MinSize: 3, MaxSize: 8, BaseDifficulty: 2.5, Noun: "color group"},
		{Kind: types.ParityGroup, MinSize: 3, MaxSize: 8, BaseDifficulty: 3.0, Noun: "parity group"},
		{Kind: types.ColorRun, MinSize: 3, MaxSize: 7, BaseDifficulty: 5.5, Noun: "color run"},
		{Kind: types.ColorParityGroup, MinSize: 4, MaxSize: 7, BaseDifficulty: 7.0, Noun: "color parity group"},
	})
}

// Specs returns the entries in priority order. Callers must not modify the
// returned slice.
func (c *Catalog) Specs() []Spec { return c.specs }

// Len returns the number of entries.
func (c *Catalog) Len() int { return len(c.specs) }

// Lookup returns the spec for a kind.
func (c *Catalog) Lookup(kind types.ComponentKind) (Spec, bool) {
	i, ok := c.index[kind]
	if !ok {
		return Spec{}, false
	}
	return c.specs[i], true
}

// Priority returns the canonical sort rank of a kind (lower sorts first).
// Unknown kinds rank last.
func (c *Catalog) Priority(kind types.ComponentKind) int {
	if i, ok := c.index[kind]; ok {
		return i
	}
	return len(c.specs)
}

// Render returns the description for a component according to this catalog.
func (c *Catalog) Render(comp types.PhaseComponent) string {
	spec, ok := c.Lookup(comp.Kind)
	if !ok {
		return fmt.Sprintf("%d group(s) of %d", comp.Count, comp.Size)
	}
	return spec.Describe(comp.Count, comp.Size)
}
