// Package rng provides the explicit random-draw state objects used by every
// sampling call in the engine. There is no ambient/global source: each caller
// owns a Source value, so seeded and unseeded generation can never interfere
// with one another.
package rng

import (
	"crypto/rand"
	"encoding/binary"
	mathrand "math/rand/v2"
)

// Source produces uniform draws in [0, 1). Position increments with every
// call, which tests use to verify draw accounting.
type Source interface {
	Float64() float64
	Position() int64
}

// LCG parameters shared with the historical generator; the seed accumulator
// is the sum of the seed string's byte values.
const (
	lcgMultiplier = 9301
	lcgIncrement  = 49297
	lcgModulus    = 233280
)

// Seeded is a deterministic Source: the same seed string always yields the
// same draw sequence.
type Seeded struct {
	acc int64
	pos int64
}

// NewSeeded creates a deterministic Source from an opaque seed string.
func NewSeeded(seed string) *Seeded {
	var acc int64
	for _, b := range []byte(seed) {
		acc += int64(b)
	}
	return &Seeded{acc: acc}
}

// Float64 advances the linear-congruential recurrence and returns the next
// draw in [0, 1).
func (s *Seeded) Float64() float64 {
	s.acc = (s.acc*lcgMultiplier + lcgIncrement) % lcgModulus
	s.pos++
	return float64(s.acc) / lcgModulus
}

// Position returns the number of draws made since creation.
func (s *Seeded) Position() int64 { return s.pos }

// Ambient is a non-deterministic Source backed by math/rand/v2, seeded once
// from crypto/rand at construction.
type Ambient struct {
	r   *mathrand.Rand
	pos int64
}

// NewAmbient creates a fresh non-deterministic Source.
func NewAmbient() *Ambient {
	var buf [16]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// crypto/rand is the only entropy input; on the rare failure fall
		// back to a fixed-seed PCG rather than aborting generation.
		return &Ambient{r: mathrand.New(mathrand.NewPCG(lcgMultiplier, lcgIncrement))}
	}
	hi := binary.BigEndian.Uint64(buf[:8])
	lo := binary.BigEndian.Uint64(buf[8:])
	return &Ambient{r: mathrand.New(mathrand.NewPCG(hi, lo))}
}

// Float64 returns the next draw in [0, 1).
func (a *Ambient) Float64() float64 {
	a.pos++
	return a.r.Float64()
}

// Position returns the number of draws made since creation.
func (a *Ambient) Position() int64 { return a.pos }
