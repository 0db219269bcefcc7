// Package score maps a phase's component list to an integer difficulty in
// [1, 10]. Scoring is pure: the same components always yield the same score.
package score

import (
	"math"

	"github.com/nathoo/phaseforge/engine/catalog"
	"github.com/nathoo/phaseforge/types"
)

const (
	setSizeExponent   = 1.8 // matching-set size difficulty grows steeply
	linearSizeFactor  = 0.4
	extraCountFactor  = 1.2
	comboFactor       = 1.0
	cardBudgetFactor  = 0.3
	scaleFactor       = 0.8
	baselineCardCount = 6
)

// Difficulty scores a component list on the 1..10 scale.
func Difficulty(cat *catalog.Catalog, comps []types.PhaseComponent) int {
	var total float64
	totalCards := 0

	for _, comp := range comps {
		spec, ok := cat.Lookup(comp.Kind)
		if !ok {
			continue
		}
		complexity := spec.BaseDifficulty

		if comp.Kind == types.MatchingSet {
			complexity += math.Pow(float64(comp.Size-2), setSizeExponent)
		} else {
			complexity += float64(comp.Size-spec.MinSize) * linearSizeFactor
		}

		if comp.Count > 1 {
			complexity += float64(comp.Count-1) * extraCountFactor
		}

		total += complexity
		totalCards += comp.Count * comp.Size
	}

	if len(comps) > 1 {
		total += float64(len(comps)-1) * comboFactor
	}
	if totalCards > baselineCardCount {
		total += float64(totalCards-baselineCardCount) * cardBudgetFactor
	}

	scaled := total*scaleFactor + 1
	if scaled < 1 {
		scaled = 1
	}
	if scaled > 10 {
		scaled = 10
	}
	return int(math.Round(scaled))
}
