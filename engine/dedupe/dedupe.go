// Package dedupe implements the duplicate guard: the phase identity test and
// the variation ladder that forces a colliding phase to become distinct.
// The ladder mutates component structure and re-renders, never the rendered
// text, so a description is always derivable from its components.
package dedupe

import (
	"strings"

	"github.com/nathoo/phaseforge/engine/catalog"
	"github.com/nathoo/phaseforge/engine/score"
	"github.com/nathoo/phaseforge/types"
)

// Equal reports whether two phases are the same challenge: identical
// description and identical card count.
func Equal(a, b types.Phase) bool {
	return a.Description == b.Description && a.CardCount == b.CardCount
}

// Collides reports whether candidate matches any phase in others.
func Collides(candidate types.Phase, others []types.Phase) bool {
	for _, p := range others {
		if Equal(candidate, p) {
			return true
		}
	}
	return false
}

// Vary forces a colliding phase to differ from every phase in others. It
// first bumps the lead component's size up (if the budget allows) or down,
// then walks a fixed list of synthesized fallbacks keyed off the position.
// The candidate list is longer than any sibling set, so Vary always returns
// a distinct, valid phase.
func Vary(cat *catalog.Catalog, phase types.Phase, position int, others []types.Phase) types.Phase {
	if !Collides(phase, others) {
		return phase
	}

	if phase.CardCount < 9 {
		if bumped, ok := bumpSize(cat, phase, +1); ok && !Collides(bumped, others) {
			return bumped
		}
	}
	if phase.CardCount > 6 {
		if bumped, ok := bumpSize(cat, phase, -1); ok && !Collides(bumped, others) {
			return bumped
		}
	}

	for _, fb := range fallbacks(cat, position) {
		if !Collides(fb, others) {
			return fb
		}
	}
	// Unreachable while others holds at most nine phases: the fallback list
	// carries more than ten distinct (description, cardCount) pairs.
	return phase
}

// bumpSize adjusts the first component's size by delta and re-renders the
// phase. Returns false if the component's kind bounds don't allow it.
func bumpSize(cat *catalog.Catalog, phase types.Phase, delta int) (types.Phase, bool) {
	if len(phase.Components) == 0 {
		return phase, false
	}
	comps := make([]types.PhaseComponent, len(phase.Components))
	copy(comps, phase.Components)

	spec, ok := cat.Lookup(comps[0].Kind)
	if !ok {
		return phase, false
	}
	size := comps[0].Size + delta
	if size < spec.MinSize || size > spec.MaxSize {
		return phase, false
	}
	cards := phase.CardCount + delta*comps[0].Count
	if cards < 6 || cards > 9 {
		return phase, false
	}
	comps[0].Size = size
	return rebuild(cat, comps, phase.RerollToken), true
}

// fallbacks synthesizes the guaranteed-distinct replacement ladder for a
// position: runs sized 6 + position mod 4 first, then the remaining run
// sizes, then color groups.
func fallbacks(cat *catalog.Catalog, position int) []types.Phase {
	var out []types.Phase
	lead := 6 + position%4
	for _, size := range []int{lead, 6, 7, 8, 9} {
		out = append(out, synthesized(cat, types.Run, size))
	}
	for _, size := range []int{6, 7, 8} {
		out = append(out, synthesized(cat, types.ColorGroup, size))
	}
	for _, size := range []int{6, 7, 8} {
		out = append(out, synthesized(cat, types.ParityGroup, size))
	}
	out = append(out, synthesized(cat, types.MatchingSet, 6))
	return out
}

func synthesized(cat *catalog.Catalog, kind types.ComponentKind, size int) types.Phase {
	comp := types.PhaseComponent{Kind: kind, Count: 1, Size: size}
	return rebuild(cat, []types.PhaseComponent{comp}, "")
}

// rebuild re-renders descriptions, recomputes the card count, and rescores.
func rebuild(cat *catalog.Catalog, comps []types.PhaseComponent, rerollToken string) types.Phase {
	cards := 0
	descs := make([]string, len(comps))
	for i := range comps {
		comps[i].Description = cat.Render(comps[i])
		descs[i] = comps[i].Description
		cards += comps[i].Count * comps[i].Size
	}
	return types.Phase{
		Components:  comps,
		Description: strings.Join(descs, " + "),
		Difficulty:  score.Difficulty(cat, comps),
		CardCount:   cards,
		RerollToken: rerollToken,
	}
}
