// Package export implements JSON serialization and deserialization of phase
// sets. The in-memory record stays the source of truth; this is only the
// interchange shape front ends write and read.
package export

import (
	"encoding/json"
	"fmt"

	"github.com/nathoo/phaseforge/types"
)

// Marshal serializes a phase set to indented JSON.
func Marshal(set *types.PhaseSet) ([]byte, error) {
	if set == nil {
		return nil, fmt.Errorf("nil phase set")
	}
	return json.MarshalIndent(set, "", "  ")
}

// Unmarshal deserializes JSON bytes into a phase set and normalizes the
// collection fields so callers never see nil maps or slices.
func Unmarshal(data []byte) (*types.PhaseSet, error) {
	var set types.PhaseSet
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("decoding phase set: %w", err)
	}
	if set.Phases == nil {
		set.Phases = []types.Phase{}
	}
	for i := range set.Phases {
		if set.Phases[i].Components == nil {
			set.Phases[i].Components = []types.PhaseComponent{}
		}
	}
	if set.Rerolls == nil {
		set.Rerolls = map[int]string{}
	}
	return &set, nil
}
