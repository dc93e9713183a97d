// Package roomcode generates room identifiers: short human-shareable word
// codes for links people read out loud, and opaque random tokens for
// programmatic use. The coordinator never requires ids to come from here;
// clients may bring their own.
package roomcode

import (
	"crypto/rand"
	"fmt"
	"log"
	"math/big"

	"github.com/google/uuid"
)

// Taken reports whether an id is already in use, so the generator can
// avoid handing out a live room's id.
type Taken func(id string) bool

// Generate returns a shareable code of the form adjective-creature-place
// (e.g. "misty-otter-lagoon") that taken reports as free.
func Generate(taken Taken) string {
	for {
		code := fmt.Sprintf("%s-%s-%s",
			adjectives[randomIndex(len(adjectives))],
			creatures[randomIndex(len(creatures))],
			places[randomIndex(len(places))],
		)
		if taken == nil || !taken(code) {
			return code
		}
	}
}

// Token returns an opaque random room token.
func Token() string {
	return uuid.NewString()
}

// randomIndex returns a cryptographically secure random index in [0, max).
func randomIndex(max int) int {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		log.Panic("failed to generate random index:", err)
	}
	return int(n.Int64())
}
