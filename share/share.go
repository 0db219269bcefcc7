// Package share is the URL query-string collaborator layer: it writes a
// phase set's identity (seed/id plus explicit reroll tokens) into query
// parameters and reads them back. Malformed values are never an error — they
// are simply treated as absent, which triggers fresh random generation
// upstream.
package share

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/nathoo/phaseforge/engine/token"
	"github.com/nathoo/phaseforge/types"
)

const (
	setParam     = "set"
	rerollPrefix = "r" // r1..r10
)

// Params is the decoded identity of a shareable set.
type Params struct {
	Seed    string         // empty if absent or malformed
	Rerolls map[int]string // only well-formed tokens at positions 1..10
}

// Decode reads set identity from query values, dropping anything malformed.
func Decode(values url.Values) Params {
	p := Params{Rerolls: map[int]string{}}

	if seed := values.Get(setParam); token.ValidSeed(seed) {
		p.Seed = seed
	}

	for pos := 1; pos <= 10; pos++ {
		tok := values.Get(rerollPrefix + strconv.Itoa(pos))
		if token.ValidReroll(tok) {
			p.Rerolls[pos] = tok
		}
	}
	return p
}

// Encode writes a set's identity into query values: its id plus one r<pos>
// parameter per explicitly rerolled position.
func Encode(set *types.PhaseSet) url.Values {
	values := url.Values{}
	if set == nil {
		return values
	}
	values.Set(setParam, set.ID)
	for pos := 1; pos <= 10; pos++ {
		if tok, ok := set.Rerolls[pos]; ok && token.ValidReroll(tok) {
			values.Set(rerollPrefix+strconv.Itoa(pos), tok)
		}
	}
	return values
}

// URL builds a full share link for a set against a base address.
func URL(base string, set *types.PhaseSet) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parsing base url %q: %w", base, err)
	}
	u.RawQuery = Encode(set).Encode()
	return u.String(), nil
}
