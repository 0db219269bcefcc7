// Package compose builds individual phases: it picks requirement components
// under the 6..9 card budget, canonicalizes their order, and scores the
// result. All randomness comes from the caller's rng.Source.
package compose

import (
	"math"
	"sort"
	"strings"

	"github.com/nathoo/phaseforge/engine/catalog"
	"github.com/nathoo/phaseforge/engine/rng"
	"github.com/nathoo/phaseforge/engine/score"
	"github.com/nathoo/phaseforge/types"
)

const (
	// Card budget for a whole phase.
	MinCards = 6
	MaxCards = 9

	maxComponentAttempts = 20
)

// WeightedRandom returns an integer in [min, max], biased by phase position:
// the draw is raised to w = max(0.3, 1 - 0.1*(position-1)) before scaling.
// The exponent schedule is load-bearing for how later positions differ in
// magnitude from earlier ones; keep the formula exact.
func WeightedRandom(min, max, position int, src rng.Source) int {
	if min >= max {
		return min
	}
	w := 1 - 0.1*float64(position-1)
	if w < 0.3 {
		w = 0.3
	}
	span := float64(max - min + 1)
	v := min + int(math.Floor(math.Pow(src.Float64(), w)*span))
	if v > max {
		v = max
	}
	return v
}

// availableKinds returns the catalog subset unlocked at a phase position.
// Positions 1-3 see only sets and runs; color, parity, and the layered kinds
// unlock progressively.
func availableKinds(cat *catalog.Catalog, position int) []catalog.Spec {
	specs := cat.Specs()
	switch {
	case position <= 3:
		return specs[:2]
	case position <= 5:
		return specs[:3]
	case position <= 7:
		return specs[:4]
	default:
		return specs
	}
}

// GenerateComponent picks one requirement component for a phase at the given
// position, taking the already-committed components into account.
func GenerateComponent(cat *catalog.Catalog, position int, committed []types.PhaseComponent, src rng.Source) types.PhaseComponent {
	used := 0
	for _, c := range committed {
		used += c.Count * c.Size
	}
	remaining := MaxCards - used
	if remaining < 2 {
		remaining = 2
	}

	candidates := availableKinds(cat, position)

	// Early positions prefer variety: filter out kinds already in the phase,
	// unless that would leave nothing to pick.
	if position <= 5 && len(candidates) > 1 {
		unused := make([]catalog.Spec, 0, len(candidates))
		for _, spec := range candidates {
			taken := false
			for _, c := range committed {
				if c.Kind == spec.Kind {
					taken = true
					break
				}
			}
			if !taken {
				unused = append(unused, spec)
			}
		}
		if len(unused) > 0 {
			candidates = unused
		}
	}

	// Late positions lean toward the layered kinds 60% of the time.
	if position >= 8 && len(candidates) > 3 {
		if src.Float64() < 0.6 {
			candidates = candidates[2:]
		}
	}

	spec := candidates[int(src.Float64()*float64(len(candidates)))]

	size := pickSize(spec, position, remaining, src)
	count := pickCount(spec, position, size, remaining, src)

	// Safety net: the budget may have shrunk the feasible window below the
	// sampled size.
	upper := spec.MaxSize
	if remaining < upper {
		upper = remaining
	}
	if size > upper {
		size = upper
	}
	if size < spec.MinSize {
		size = spec.MinSize
	}

	comp := types.PhaseComponent{Kind: spec.Kind, Count: count, Size: size}
	comp.Description = spec.Describe(count, size)
	return comp
}

// pickSize samples a group size within the kind's bounds, tightening the
// upper bound for sets and runs at early positions (set difficulty grows
// steeply with size, so big sets arrive late).
func pickSize(spec catalog.Spec, position, remaining int, src rng.Source) int {
	upper := spec.MaxSize
	if remaining < upper {
		upper = remaining
	}
	switch spec.Kind {
	case types.MatchingSet:
		if position <= 3 && upper > 4 {
			upper = 4
		} else if position <= 6 && upper > 5 {
			upper = 5
		}
	case types.Run:
		if position <= 3 && upper > 6 {
			upper = 6
		} else if position <= 6 && upper > 8 {
			upper = 8
		}
	}
	if upper < spec.MinSize {
		upper = spec.MinSize
	}
	return WeightedRandom(spec.MinSize, upper, position, src)
}

// pickCount decides how many disjoint groups of the sampled size to require.
func pickCount(spec catalog.Spec, position, size, remaining int, src rng.Source) int {
	// Large matching sets are always a single group.
	if spec.Kind == types.MatchingSet && size >= 4 {
		return 1
	}
	maxCount := remaining / size
	if maxCount > 2 {
		maxCount = 2
	}
	if maxCount < 1 {
		return 1
	}
	// Small early components get a flat weighted shot at a pair of groups.
	if size <= 3 && position <= 5 && maxCount >= 2 {
		if src.Float64() < 0.4 {
			return 2
		}
		return 1
	}
	return WeightedRandom(1, maxCount, position, src)
}

// componentTarget samples how many components (1-3) a phase at this position
// should attempt. Early positions favor one or two with variety; late
// positions favor a single large requirement.
func componentTarget(position int, src rng.Source) int {
	u := src.Float64()
	switch {
	case position <= 3:
		if u < 0.5 {
			return 1
		}
		return 2
	case position <= 7:
		if u < 0.4 {
			return 1
		}
		if u < 0.8 {
			return 2
		}
		return 3
	default:
		if u < 0.65 {
			return 1
		}
		if u < 0.9 {
			return 2
		}
		return 3
	}
}

// AssemblePhase builds one complete phase for a position. Position and
// RerollToken are left for the caller to fill.
func AssemblePhase(cat *catalog.Catalog, position int, src rng.Source) types.Phase {
	target := componentTarget(position, src)

	var comps []types.PhaseComponent
	cards := 0

	for attempts := 0; attempts < maxComponentAttempts && len(comps) < target; attempts++ {
		comp := GenerateComponent(cat, position, comps, src)
		need := comp.Count * comp.Size

		if cards+need > MaxCards {
			if len(comps) > 0 {
				continue
			}
			// First component: shrink to fit instead of discarding.
			comp = shrinkToFit(cat, comp)
			need = comp.Count * comp.Size
			if need > MaxCards {
				continue
			}
		}

		comps = append(comps, comp)
		cards += need
		if cards >= MinCards {
			break
		}
	}

	comps, cards = recoverBudget(cat, comps, cards)
	canonicalize(cat, comps)

	descs := make([]string, len(comps))
	for i, c := range comps {
		descs[i] = c.Description
	}

	return types.Phase{
		Components:  comps,
		Description: strings.Join(descs, " + "),
		Difficulty:  score.Difficulty(cat, comps),
		CardCount:   cards,
	}
}

// shrinkToFit reduces an oversized first component until it fits the budget.
func shrinkToFit(cat *catalog.Catalog, comp types.PhaseComponent) types.PhaseComponent {
	spec, ok := cat.Lookup(comp.Kind)
	if !ok {
		return comp
	}
	if comp.Count > 1 && comp.Count*comp.Size > MaxCards {
		comp.Count = 1
	}
	if comp.Size > MaxCards {
		comp.Size = MaxCards
	}
	for comp.Count*comp.Size > MaxCards && comp.Size > spec.MinSize {
		comp.Size--
	}
	comp.Description = spec.Describe(comp.Count, comp.Size)
	return comp
}

// recoverBudget repairs an under-budget phase: grow an existing component up to its
// kind's bound, and if nothing can grow enough, fall back to the canonical
// single run of 6.
func recoverBudget(cat *catalog.Catalog, comps []types.PhaseComponent, cards int) ([]types.PhaseComponent, int) {
	if len(comps) > 0 && cards >= MinCards {
		return comps, cards
	}

	for i := range comps {
		spec, ok := cat.Lookup(comps[i].Kind)
		if !ok {
			continue
		}
		for cards < MinCards && comps[i].Size < spec.MaxSize && cards+comps[i].Count <= MaxCards {
			comps[i].Size++
			cards += comps[i].Count
		}
		comps[i].Description = spec.Describe(comps[i].Count, comps[i].Size)
		if cards >= MinCards {
			return comps, cards
		}
	}

	// Canonical fallback: 1 run of 6.
	spec, _ := cat.Lookup(types.Run)
	fallback := types.PhaseComponent{Kind: types.Run, Count: 1, Size: MinCards}
	fallback.Description = spec.Describe(1, MinCards)
	return []types.PhaseComponent{fallback}, MinCards
}

// canonicalize orders components by kind priority, then count descending,
// then size descending, so equal requirement lists always render identically.
func canonicalize(cat *catalog.Catalog, comps []types.PhaseComponent) {
	sort.SliceStable(comps, func(i, j int) bool {
		pi, pj := cat.Priority(comps[i].Kind), cat.Priority(comps[j].Kind)
		if pi != pj {
			return pi < pj
		}
		if comps[i].Count != comps[j].Count {
			return comps[i].Count > comps[j].Count
		}
		return comps[i].Size > comps[j].Size
	})
}
