// Package engine drives full phase-set generation and per-position rerolls.
// It owns no global state: every random draw flows through an explicit
// rng.Source, so seeded and unseeded generation never interfere.
package engine

import (
	"sort"
	"time"

	"github.com/nathoo/phaseforge/engine/catalog"
	"github.com/nathoo/phaseforge/engine/compose"
	"github.com/nathoo/phaseforge/engine/dedupe"
	"github.com/nathoo/phaseforge/engine/rng"
	"github.com/nathoo/phaseforge/engine/token"
	"github.com/nathoo/phaseforge/types"
)

// Version tags the generation algorithm. Sets produced by different versions
// are not comparable seed-for-seed.
const Version = "2"

// PhaseCount is the fixed number of phases in a set.
const PhaseCount = 10

const (
	candidateAttempts = 20
	collisionRetries  = 10
)

// Generator produces phase sets against a fixed catalog. The zero value is
// not usable; call New.
type Generator struct {
	cat     *catalog.Catalog
	ambient rng.Source
	now     func() time.Time
}

// Option customizes a Generator.
type Option func(*Generator)

// WithCatalog substitutes a custom component catalog (e.g. from a loaded
// pack).
func WithCatalog(cat *catalog.Catalog) Option {
	return func(g *Generator) { g.cat = cat }
}

// WithAmbientSource substitutes the unseeded randomness source. Tests use
// this to make "random" generation reproducible.
func WithAmbientSource(src rng.Source) Option {
	return func(g *Generator) { g.ambient = src }
}

// WithClock substitutes the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// New creates a Generator with the default catalog and a fresh ambient
// source.
func New(opts ...Option) *Generator {
	g := &Generator{
		cat:     catalog.Default(),
		ambient: rng.NewAmbient(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Catalog returns the generator's component catalog.
func (g *Generator) Catalog() *catalog.Catalog { return g.cat }

// Generate produces a fresh random phase set. The set id is a newly
// generated two-segment token.
func (g *Generator) Generate(name string) *types.PhaseSet {
	id := token.NewSetID(g.ambient)
	return g.assemble(id, name, g.ambient)
}

// GenerateFromSeed reproduces a phase set from a seed: the same seed always
// yields the same phases, and the seed is the set id. Reroll tokens in
// rerolls are applied afterwards, position by position in ascending order, so
// a (seed, rerolls) pair is fully reproducible.
func (g *Generator) GenerateFromSeed(seed, name string, rerolls map[int]string) *types.PhaseSet {
	set := g.assemble(seed, name, rng.NewSeeded(seed))

	positions := make([]int, 0, len(rerolls))
	for pos := range rerolls {
		if pos >= 1 && pos <= PhaseCount {
			positions = append(positions, pos)
		}
	}
	sort.Ints(positions)
	for _, pos := range positions {
		phase := g.RerollWithToken(pos, rerolls[pos])
		set.Phases[pos-1] = phase
		if set.Rerolls == nil {
			set.Rerolls = make(map[int]string)
		}
		set.Rerolls[pos] = rerolls[pos]
	}
	return set
}

// assemble runs the ten-position generation loop, resolves collisions, sorts
// by difficulty, and renumbers.
func (g *Generator) assemble(id, name string, src rng.Source) *types.PhaseSet {
	accepted := make([]types.Phase, 0, PhaseCount)
	prevDifficulty := 0

	for pos := 1; pos <= PhaseCount; pos++ {
		phase := g.generatePosition(pos, prevDifficulty, accepted, src)
		prevDifficulty = phase.Difficulty
		accepted = append(accepted, phase)
	}

	// Order by difficulty; ties keep original acceptance order.
	sort.SliceStable(accepted, func(i, j int) bool {
		return accepted[i].Difficulty < accepted[j].Difficulty
	})
	for i := range accepted {
		accepted[i].Position = i + 1
	}

	return &types.PhaseSet{
		ID:        id,
		Name:      name,
		Phases:    accepted,
		CreatedAt: g.now().UTC(),
		Version:   Version,
	}
}

// generatePosition produces one accepted phase for a generation position. It
// tries up to candidateAttempts generations, preferring a non-duplicate
// whose difficulty is no more than one point below the previous phase's;
// failing that it takes the hardest non-duplicate seen, then escapes a
// persistent collision with bounded regeneration and finally forced
// variation.
func (g *Generator) generatePosition(pos, prevDifficulty int, accepted []types.Phase, src rng.Source) types.Phase {
	var best types.Phase
	haveBest := false
	var last types.Phase

	for attempt := 0; attempt < candidateAttempts; attempt++ {
		candidate := compose.AssemblePhase(g.cat, pos, src)
		last = candidate
		if dedupe.Collides(candidate, accepted) {
			continue
		}
		if candidate.Difficulty >= prevDifficulty-1 {
			return candidate
		}
		if !haveBest || candidate.Difficulty > best.Difficulty {
			best = candidate
			haveBest = true
		}
	}
	if haveBest {
		return best
	}

	// Every attempt collided: a few full regenerations usually escape.
	for retry := 0; retry < collisionRetries; retry++ {
		candidate := compose.AssemblePhase(g.cat, pos, src)
		last = candidate
		if !dedupe.Collides(candidate, accepted) {
			return candidate
		}
	}
	return dedupe.Vary(g.cat, last, pos, accepted)
}

// Reroll regenerates the phase at position against its nine siblings using a
// fresh random token, retrying up to candidateAttempts times to avoid a
// duplicate. The returned phase carries the token that produced it; the
// siblings are never touched.
func (g *Generator) Reroll(position int, siblings []types.Phase) types.Phase {
	var phase types.Phase
	for attempt := 0; attempt < candidateAttempts; attempt++ {
		tok := token.NewReroll(g.ambient)
		phase = g.RerollWithToken(position, tok)
		if !dedupe.Collides(phase, siblings) {
			return phase
		}
	}
	// All attempts collided: force variation, keeping the final token's tag.
	varied := dedupe.Vary(g.cat, phase, position, siblings)
	varied.Position = position
	varied.RerollToken = phase.RerollToken
	return varied
}

// RerollWithToken regenerates the phase at position deterministically from a
// caller-supplied token. Supplied tokens are trusted to be intentional, so no
// duplicate check is made.
func (g *Generator) RerollWithToken(position int, tok string) types.Phase {
	phase := compose.AssemblePhase(g.cat, position, rng.NewSeeded(tok))
	phase.Position = position
	phase.RerollToken = tok
	return phase
}

// ApplyReroll replaces one position of a set with a rerolled phase, leaving
// the other nine untouched, and records the token in the set's reroll map.
func (g *Generator) ApplyReroll(set *types.PhaseSet, position int, tok string) (types.Phase, bool) {
	if set == nil || position < 1 || position > len(set.Phases) {
		return types.Phase{}, false
	}

	siblings := make([]types.Phase, 0, len(set.Phases)-1)
	for i, p := range set.Phases {
		if i != position-1 {
			siblings = append(siblings, p)
		}
	}

	var phase types.Phase
	if tok != "" {
		phase = g.RerollWithToken(position, tok)
	} else {
		phase = g.Reroll(position, siblings)
		phase.Position = position
	}

	set.Phases[position-1] = phase
	if set.Rerolls == nil {
		set.Rerolls = make(map[int]string)
	}
	set.Rerolls[position] = phase.RerollToken
	return phase, true
}
