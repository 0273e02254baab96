// Package dice holds the randomness primitives shared by combat and loot:
// dice-pool rolls, the d20 attack die, and weighted random selection.
package dice

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
)

// Roll describes a dice pool: Count dice with Sides faces plus a flat Bonus.
type Roll struct {
	Count int
	Sides int
	Bonus int
}

// Parse reads a pool expression such as "2d6", "1d8+2" or "3d4-1".
func Parse(expr string) (Roll, error) {
	s := strings.ToLower(strings.TrimSpace(expr))
	var r Roll

	dIdx := strings.IndexByte(s, 'd')
	if dIdx <= 0 {
		return r, fmt.Errorf("dice: malformed expression %q", expr)
	}
	count, err := strconv.Atoi(s[:dIdx])
	if err != nil || count <= 0 {
		return r, fmt.Errorf("dice: bad die count in %q", expr)
	}

	rest := s[dIdx+1:]
	bonus := 0
	if i := strings.IndexAny(rest, "+-"); i >= 0 {
		bonus, err = strconv.Atoi(rest[i:])
		if err != nil {
			return r, fmt.Errorf("dice: bad modifier in %q", expr)
		}
		rest = rest[:i]
	}
	sides, err := strconv.Atoi(rest)
	if err != nil || sides <= 0 {
		return r, fmt.Errorf("dice: bad die size in %q", expr)
	}

	return Roll{Count: count, Sides: sides, Bonus: bonus}, nil
}

// Total rolls the pool and returns the sum plus the bonus. A zero-value Roll
// totals zero.
func (r Roll) Total(rng *rand.Rand) int {
	total := r.Bonus
	for i := 0; i < r.Count; i++ {
		total += rng.Intn(r.Sides) + 1
	}
	return total
}

// String renders the pool back as an expression, e.g. "2d6+1".
func (r Roll) String() string {
	s := fmt.Sprintf("%dd%d", r.Count, r.Sides)
	if r.Bonus != 0 {
		s += fmt.Sprintf("%+d", r.Bonus)
	}
	return s
}

// D20 rolls the attack die: an integer in [1, 20].
func D20(rng *rand.Rand) int {
	return rng.Intn(20) + 1
}

// WeightedIndex picks an index in [0, n) with probability proportional to
// weights[i]. When the weight list doesn't match n, or carries no positive
// weight, it falls back to a uniform pick — malformed config never fails
// the roll.
func WeightedIndex(rng *rand.Rand, n int, weights []int) int {
	if n <= 0 {
		return 0
	}
	if len(weights) != n {
		return rng.Intn(n)
	}
	total := 0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total == 0 {
		return rng.Intn(n)
	}
	pick := rng.Intn(total)
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		pick -= w
		if pick < 0 {
			return i
		}
	}
	return n - 1
}

// WeightedRange draws an integer in [min, max] using the given weights, with
// the same uniform fallback as WeightedIndex.
func WeightedRange(rng *rand.Rand, min, max int, weights []int) int {
	if max < min {
		return min
	}
	return min + WeightedIndex(rng, max-min+1, weights)
}
