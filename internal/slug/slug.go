// Package slug generates the human-readable identifiers that make schedules
// shareable: two lowercase words plus a two-digit suffix, easy to read
// aloud and paste into a URL.
package slug

import (
	"fmt"
	"math/rand"
)

var adjectives = []string{
	"amber", "bold", "brisk", "calm", "clever", "cosmic", "crisp", "eager",
	"fuzzy", "gentle", "golden", "happy", "keen", "lively", "lucky", "mellow",
	"noble", "quiet", "rapid", "shiny", "solid", "sunny", "swift", "vivid",
}

var nouns = []string{
	"badger", "beacon", "breeze", "canyon", "cedar", "comet", "falcon",
	"garden", "harbor", "lagoon", "meadow", "orchid", "otter", "pebble",
	"pinecone", "prairie", "raven", "ridge", "river", "sparrow", "summit",
	"thicket", "tundra", "willow",
}

// Generator produces random slugs from a seedable source.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator builds a Generator around the given random source.
func NewGenerator(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

// Next returns a fresh candidate slug such as "sunny-otter-42". Uniqueness
// is the caller's concern; candidates collide rarely but must still be
// checked against the store.
func (g *Generator) Next() string {
	adjective := adjectives[g.rng.Intn(len(adjectives))]
	noun := nouns[g.rng.Intn(len(nouns))]
	return fmt.Sprintf("%s-%s-%02d", adjective, noun, g.rng.Intn(100))
}
