// Package types defines the shared data structures for the PhaseForge engine.
// This package contains only type definitions — no logic, no methods.
package types

import "time"

// ComponentKind identifies a requirement component family.
type ComponentKind string

// The six component kinds, in canonical priority order.
const (
	MatchingSet      ComponentKind = "matchingSet"
	Run              ComponentKind = "run"
	ColorGroup       ComponentKind = "colorGroup"
	ParityGroup      ComponentKind = "parityGroup"
	ColorRun         ComponentKind = "colorRun"
	ColorParityGroup ComponentKind = "colorParityGroup"
)

// PhaseComponent is one requirement clause within a phase.
// Owned exclusively by the Phase that contains it; never shared.
type PhaseComponent struct {
	Kind        ComponentKind `json:"kind"`
	Count       int           `json:"count"` // disjoint groups of this requirement, >= 1
	Size        int           `json:"size"`  // cards per group
	Description string        `json:"description"`
}

// Phase is one of the ten ordered challenges a player must clear in sequence.
type Phase struct {
	Position    int              `json:"position"` // 1..10, reassigned after the final sort
	Components  []PhaseComponent `json:"components"`
	Description string           `json:"description"` // component descriptions joined by " + "
	Difficulty  int              `json:"difficulty"`  // 1..10
	CardCount   int              `json:"card_count"`  // sum of count*size, 6..9
	RerollToken string           `json:"reroll_token,omitempty"`
}

// PhaseSet is a complete generated set of ten phases.
type PhaseSet struct {
	ID        string         `json:"id"` // caller seed, or a fresh two-segment token
	Name      string         `json:"name"`
	Phases    []Phase        `json:"phases"`
	CreatedAt time.Time      `json:"created_at"`
	Version   string         `json:"version"`
	Rerolls   map[int]string `json:"rerolls,omitempty"` // position -> reroll token
}
