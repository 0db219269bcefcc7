// Package token defines the opaque identifier shapes shared with the URL
// collaborator layer: set seeds/ids and per-phase reroll tokens.
package token

import (
	"regexp"
	"strings"

	"github.com/nathoo/phaseforge/engine/rng"
)

const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// Token shapes. A set id is two dash-joined lowercase alphanumeric segments;
// freshly generated reroll tokens are always six characters.
var (
	setIDPattern  = regexp.MustCompile(`^[a-z0-9]{3,12}-[a-z0-9]{6}$`)
	rerollPattern = regexp.MustCompile(`^[a-z0-9]{3,8}$`)
)

// rejectedSeedPrefix marks seeds the upstream layer must treat as absent.
const rejectedSeedPrefix = "invalid"

// ValidSeed reports whether s is a well-formed set seed/id.
func ValidSeed(s string) bool {
	if !setIDPattern.MatchString(s) {
		return false
	}
	return strings.SplitN(s, "-", 2)[0] != rejectedSeedPrefix
}

// ValidReroll reports whether s is a well-formed reroll token.
func ValidReroll(s string) bool {
	return rerollPattern.MatchString(s)
}

// segment draws n characters from the token alphabet.
func segment(n int, src rng.Source) string {
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		b.WriteByte(alphabet[int(src.Float64()*float64(len(alphabet)))])
	}
	return b.String()
}

// NewSetID generates a fresh two-segment set id: a 3-12 character first
// segment and an exactly-6-character second segment.
func NewSetID(src rng.Source) string {
	n := 3 + int(src.Float64()*10) // 3..12
	first := segment(n, src)
	for first == rejectedSeedPrefix {
		first = segment(n, src)
	}
	return first + "-" + segment(6, src)
}

// NewReroll generates a fresh six-character reroll token.
func NewReroll(src rng.Source) string {
	return segment(6, src)
}
