package game

import (
	"math"
	"math/rand"

	"gravedelve/internal/generate"
)

// MaxDepth is the deepest level of the barrow. The end boss waits there.
const MaxDepth = 25

// depthConfig builds a generate.Config for the given depth. Maps grow and
// leaves shrink as the delve deepens, so deep levels are larger and mazier.
func depthConfig(depth int, rng *rand.Rand) *generate.Config {
	t := float64(depth-1) / float64(MaxDepth-1)

	cfg := generate.DefaultConfig(depth, rng)
	cfg.MapWidth = lerpi(50, 90, t)
	cfg.MapHeight = lerpi(28, 48, t)
	cfg.MaxLeafSize = lerpi(22, 14, t)
	return cfg
}

func lerpi(a, b int, t float64) int {
	return int(math.Round(float64(a) + t*float64(b-a)))
}
