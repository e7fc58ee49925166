package tests

import (
	"math/rand/v2"
	"strings"
)

//nolint:gochecknoglobals
var words = []string{
	"hoy", "suerte", "camino", "sol", "nuevo", "amigo", "sorpresa",
	"viaje", "luz", "tiempo", "sonrisa", "puerta", "mañana", "paz",
}

// Randomizer is a seeded source for tests: the same seed gives the same
// sequence, so failures are reproducible.
type Randomizer struct {
	rnd *rand.Rand
}

func NewRandomizer(seed uint64) Randomizer {
	return Randomizer{rnd: rand.New(rand.NewPCG(seed, seed)) /* #nosec G404 */} //nolint:gosec // for tests
}

func (r Randomizer) IntN(n int) int {
	return r.rnd.IntN(n)
}

func (r Randomizer) Bool() bool {
	return r.rnd.IntN(2) == 0 //nolint:mnd // skip
}

// Phrase returns a few lowercase words joined by spaces.
func (r Randomizer) Phrase() string {
	n := 2 + r.rnd.IntN(4) //nolint:mnd // skip
	parts := make([]string, n)

	for i := range parts {
		parts[i] = words[r.rnd.IntN(len(words))]
	}

	return strings.Join(parts, " ")
}
