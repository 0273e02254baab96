// Package run holds the per-run session context. Everything that used to be
// tempting to make a package-level global — the live world, the pity
// counters, the player-death flag — lives here and is passed explicitly.
package run

import (
	"fmt"
	"math/rand"

	"gravedelve/internal/ecs"
	"gravedelve/internal/gamemap"
	"gravedelve/internal/loot"
)

// SpawnMonsterFunc is the entity-factory boundary: instantiate a combatant of
// the given kind at (x, y), scaled for the current depth.
type SpawnMonsterFunc func(kind string, x, y int) ecs.EntityID

// SpawnItemFunc places a ground item by registry ID at (x, y).
type SpawnItemFunc func(itemID string, x, y int) ecs.EntityID

// Run owns all mutable state for one game run. It is created at run start,
// mutated only from the single game-loop goroutine, and discarded on new
// game.
type Run struct {
	World *ecs.World
	Map   *gamemap.GameMap
	Rand  *rand.Rand
	Pity  *loot.Pity
	Depth int

	// Log receives formatted combat/event text. May be nil (discard).
	Log func(string)

	// Factory callbacks, wired by the game layer at depth load.
	SpawnMonster SpawnMonsterFunc
	SpawnItem    SpawnItemFunc

	// OnPlayerDeath runs end-of-run bookkeeping. Invoked at most once.
	OnPlayerDeath func(cause string)

	playerDead bool
	deathCause string
}

// New creates a run context around a fresh world.
func New(rng *rand.Rand, reg *loot.Registry) *Run {
	return &Run{
		World: ecs.NewWorld(),
		Rand:  rng,
		Pity:  loot.NewPity(reg),
	}
}

// Logf formats a message into the run's sink, if one is attached.
func (r *Run) Logf(format string, args ...any) {
	if r.Log == nil {
		return
	}
	r.Log(fmt.Sprintf(format, args...))
}

// SetPlayerDead records the player's death and runs end-of-run bookkeeping.
// Only the first call has any effect.
func (r *Run) SetPlayerDead(cause string) {
	if r.playerDead {
		return
	}
	r.playerDead = true
	r.deathCause = cause
	if r.OnPlayerDeath != nil {
		r.OnPlayerDeath(cause)
	}
}

// PlayerDead reports whether this run has ended in the player's death.
func (r *Run) PlayerDead() bool { return r.playerDead }

// DeathCause returns what killed the player, or "" while alive.
func (r *Run) DeathCause() string { return r.deathCause }

// ResetWorld swaps in a fresh world for a new depth. Pity state and death
// flags survive; they are per-run, not per-depth.
func (r *Run) ResetWorld() {
	r.World = ecs.NewWorld()
}
