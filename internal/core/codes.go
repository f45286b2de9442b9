package core

import (
	"fmt"
	"math/rand"

	"github.com/dkeye/Sprint/internal/domain"
)

// Word pools for readable room codes like "brave-river-ember".
var adjectives = []string{
	"brave", "silent", "wild", "clever", "mighty", "ancient", "bright",
	"fuzzy", "gentle", "swift", "crimson", "frozen", "amber", "lone", "shadow",
}

var nouns = []string{
	"falcon", "river", "forest", "mountain", "ember", "meadow", "storm",
	"canyon", "cloud", "stone", "hollow", "valley", "echo", "spire", "grove",
}

func generateCode(rng *rand.Rand) domain.RoomCode {
	a := adjectives[rng.Intn(len(adjectives))]
	n1 := nouns[rng.Intn(len(nouns))]
	n2 := nouns[rng.Intn(len(nouns))]
	return domain.RoomCode(fmt.Sprintf("%s-%s-%s", a, n1, n2))
}
