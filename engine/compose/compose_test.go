package compose

import (
	"strings"
	"testing"

	"github.com/nathoo/phaseforge/engine/catalog"
	"github.com/nathoo/phaseforge/engine/rng"
	"github.com/nathoo/phaseforge/types"
)

func TestWeightedRandom_Range(t *testing.T) {
	src := rng.NewSeeded("range-check")
	for pos := 1; pos <= 10; pos++ {
		for i := 0; i < 200; i++ {
			v := WeightedRandom(2, 6, pos, src)
			if v < 2 || v > 6 {
				t.Fatalf("position %d: value out of [2,6]: %d", pos, v)
			}
		}
	}
}

func TestWeightedRandom_DegenerateRange(t *testing.T) {
	src := rng.NewSeeded("degenerate")
	for i := 0; i < 10; i++ {
		if v := WeightedRandom(4, 4, 1, src); v != 4 {
			t.Fatalf("min==max should return min, got %d", v)
		}
	}
}

func TestWeightedRandom_ExponentSchedule(t *testing.T) {
	// The exponent drops from 1.0 at position 1 to the 0.3 floor at
	// position 8+. With w < 1, u^w exceeds u, so later positions should pull
	// the mean draw upward. Verify the statistical direction, not exact
	// values.
	mean := func(pos int) float64 {
		src := rng.NewSeeded("schedule")
		total := 0
		const trials = 5000
		for i := 0; i < trials; i++ {
			total += WeightedRandom(1, 10, pos, src)
		}
		return float64(total) / trials
	}
	early := mean(1)
	late := mean(10)
	if late <= early {
		t.Errorf("expected later positions to draw higher on average: pos1=%v pos10=%v", early, late)
	}
}

func TestGenerateComponent_WithinCatalogBounds(t *testing.T) {
	cat := catalog.Default()
	src := rng.NewSeeded("bounds-run")
	for pos := 1; pos <= 10; pos++ {
		for i := 0; i < 100; i++ {
			comp := GenerateComponent(cat, pos, nil, src)
			spec, ok := cat.Lookup(comp.Kind)
			if !ok {
				t.Fatalf("position %d: unknown kind %q", pos, comp.Kind)
			}
			if comp.Size < spec.MinSize || comp.Size > spec.MaxSize {
				t.Fatalf("position %d: %q size %d outside [%d,%d]", pos, comp.Kind, comp.Size, spec.MinSize, spec.MaxSize)
			}
			if comp.Count < 1 || comp.Count > 2 {
				t.Fatalf("position %d: count %d outside [1,2]", pos, comp.Count)
			}
			if comp.Description == "" {
				t.Fatalf("position %d: empty description", pos)
			}
		}
	}
}

func TestGenerateComponent_EarlyPositionsOnlySetsAndRuns(t *testing.T) {
	cat := catalog.Default()
	src := rng.NewSeeded("early-kinds")
	for pos := 1; pos <= 3; pos++ {
		for i := 0; i < 200; i++ {
			comp := GenerateComponent(cat, pos, nil, src)
			if comp.Kind != types.MatchingSet && comp.Kind != types.Run {
				t.Fatalf("position %d produced %q; only sets and runs unlock this early", pos, comp.Kind)
			}
		}
	}
}

func TestGenerateComponent_LargeSetsAreSingleGroup(t *testing.T) {
	cat := catalog.Default()
	src := rng.NewSeeded("single-group")
	for i := 0; i < 500; i++ {
		comp := GenerateComponent(cat, 9, nil, src)
		if comp.Kind == types.MatchingSet && comp.Size >= 4 && comp.Count != 1 {
			t.Fatalf("matching set of %d must be a single group, got count %d", comp.Size, comp.Count)
		}
	}
}

func TestGenerateComponent_PrefersUnusedKindsEarly(t *testing.T) {
	cat := catalog.Default()
	src := rng.NewSeeded("variety")
	committed := []types.PhaseComponent{{Kind: types.MatchingSet, Count: 1, Size: 2}}
	for i := 0; i < 100; i++ {
		comp := GenerateComponent(cat, 2, committed, src)
		if comp.Kind == types.MatchingSet {
			t.Fatalf("position 2 with a set committed should prefer the run kind")
		}
	}
}

func TestAssemblePhase_BudgetInvariant(t *testing.T) {
	cat := catalog.Default()
	src := rng.NewSeeded("budget-sweep")
	for pos := 1; pos <= 10; pos++ {
		for i := 0; i < 100; i++ {
			p := AssemblePhase(cat, pos, src)
			if p.CardCount < MinCards || p.CardCount > MaxCards {
				t.Fatalf("position %d: card count %d outside [%d,%d] (%s)", pos, p.CardCount, MinCards, MaxCards, p.Description)
			}
			if p.Difficulty < 1 || p.Difficulty > 10 {
				t.Fatalf("position %d: difficulty %d outside [1,10]", pos, p.Difficulty)
			}
			if len(p.Components) < 1 || len(p.Components) > 3 {
				t.Fatalf("position %d: %d components", pos, len(p.Components))
			}
			sum := 0
			for _, c := range p.Components {
				sum += c.Count * c.Size
			}
			if sum != p.CardCount {
				t.Fatalf("position %d: card count %d does not match components (%d)", pos, p.CardCount, sum)
			}
		}
	}
}

func TestAssemblePhase_DescriptionMatchesComponents(t *testing.T) {
	cat := catalog.Default()
	src := rng.NewSeeded("descriptions")
	for i := 0; i < 200; i++ {
		p := AssemblePhase(cat, 5, src)
		var parts []string
		for _, c := range p.Components {
			parts = append(parts, c.Description)
		}
		if want := strings.Join(parts, " + "); p.Description != want {
			t.Fatalf("description %q does not match components %q", p.Description, want)
		}
	}
}

func TestAssemblePhase_CanonicalOrder(t *testing.T) {
	cat := catalog.Default()
	src := rng.NewSeeded("canonical")
	for i := 0; i < 300; i++ {
		p := AssemblePhase(cat, 6, src)
		for j := 1; j < len(p.Components); j++ {
			a, b := p.Components[j-1], p.Components[j]
			pa, pb := cat.Priority(a.Kind), cat.Priority(b.Kind)
			switch {
			case pa < pb:
				// ordered by kind priority
			case pa == pb && a.Count > b.Count:
				// ordered by count desc
			case pa == pb && a.Count == b.Count && a.Size >= b.Size:
				// ordered by size desc
			default:
				t.Fatalf("components out of canonical order: %q", p.Description)
			}
		}
	}
}

func TestAssemblePhase_Deterministic(t *testing.T) {
	cat := catalog.Default()
	a := AssemblePhase(cat, 4, rng.NewSeeded("xyz789"))
	b := AssemblePhase(cat, 4, rng.NewSeeded("xyz789"))
	if a.Description != b.Description || a.CardCount != b.CardCount || a.Difficulty != b.Difficulty {
		t.Fatalf("same seed produced different phases: %+v vs %+v", a, b)
	}
}
