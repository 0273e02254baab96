package loot

import (
	"log/slog"

	"gravedelve/internal/gamemap"
)

// PityState holds the rooms-since-last-drop counters for the four guaranteed
// categories. It is the only state in this package that persists across
// save/load.
type PityState struct {
	Healing       int `yaml:"healing"`
	Panic         int `yaml:"panic"`
	WeaponUpgrade int `yaml:"weaponUpgrade"`
	ArmorUpgrade  int `yaml:"armorUpgrade"`
}

// Reset zeroes every counter. Called on new game.
func (s *PityState) Reset() {
	*s = PityState{}
}

// counter returns the counter cell for a guaranteed category, or nil for
// categories the scheduler doesn't track.
func (s *PityState) counter(c Category) *int {
	switch c {
	case CatHealing:
		return &s.Healing
	case CatPanic:
		return &s.Panic
	case CatWeaponUpgrade:
		return &s.WeaponUpgrade
	case CatArmorUpgrade:
		return &s.ArmorUpgrade
	}
	return nil
}

// PityTriggerStats counts scheduler activity for one run. Observational only;
// gameplay never reads it.
type PityTriggerStats struct {
	Fired          map[Category]int
	RoomsProcessed int
	RoomsSkipped   int
}

// NewPityTriggerStats returns zeroed stats.
func NewPityTriggerStats() *PityTriggerStats {
	return &PityTriggerStats{Fired: make(map[Category]int)}
}

// pityThresholds gives, per category, the counter value at which a drop is
// forced, indexed by band-1. Lower bands are more lenient (higher threshold),
// tightening as the band increases.
var pityThresholds = map[Category][5]int{
	CatHealing:       {6, 5, 4, 4, 3},
	CatPanic:         {8, 7, 6, 5, 4},
	CatWeaponUpgrade: {10, 9, 8, 7, 6},
	CatArmorUpgrade:  {12, 11, 10, 9, 8},
}

// Threshold returns the forced-drop threshold for a category at a band.
// Out-of-range bands clamp to the nearest edge.
func Threshold(c Category, band int) int {
	t, ok := pityThresholds[c]
	if !ok {
		return 0
	}
	if band < 1 {
		band = 1
	}
	if band > 5 {
		band = 5
	}
	return t[band-1]
}

// SpawnFunc places one forced item of a category into the current room,
// returning false when no placement was possible.
type SpawnFunc func() bool

// PityResult reports what the scheduler did for one room.
type PityResult struct {
	Skipped  bool
	Fired    bool
	Category Category // set only when Fired
}

// Pity is the per-run scheduler. State and Stats are owned by the run
// context; the registry is shared static data.
type Pity struct {
	State    *PityState
	Stats    *PityTriggerStats
	Registry *Registry
}

// NewPity creates a scheduler with fresh counters and stats.
func NewPity(reg *Registry) *Pity {
	return &Pity{
		State:    &PityState{},
		Stats:    NewPityTriggerStats(),
		Registry: reg,
	}
}

// CheckAndApply runs the scheduler for one room, after the room's natural
// loot has been decided. Special or exempt rooms are skipped entirely:
// counters neither advance nor reset there. Otherwise counters whose
// category spawned naturally reset, all others increment, and the first
// category at or past its band threshold fires its spawn callback. A
// successful callback resets that counter and ends the pass; at most one
// category fires per room.
func (p *Pity) CheckAndApply(depth, band int, role gamemap.RoomRole, exempt bool,
	spawnedItemIDs []string, spawn map[Category]SpawnFunc, roomID string) PityResult {

	if role.Special() || exempt {
		p.Stats.RoomsSkipped++
		return PityResult{Skipped: true}
	}
	p.Stats.RoomsProcessed++

	natural := p.naturalCategories(spawnedItemIDs)
	for _, c := range GuaranteedOrder {
		ctr := p.State.counter(c)
		if natural[c] {
			*ctr = 0
		} else {
			*ctr++
		}
	}

	for _, c := range GuaranteedOrder {
		ctr := p.State.counter(c)
		// Counters advance before this check, so a threshold of N forces the
		// drop in the room after N consecutive dry rooms.
		if *ctr <= Threshold(c, band) {
			continue
		}
		cb := spawn[c]
		if cb == nil {
			slog.Warn("pity category has no spawn callback", "category", c, "room", roomID)
			continue
		}
		if !cb() {
			// Placement failed; the counter survives so the category is
			// retried next room.
			slog.Warn("pity spawn callback failed", "category", c, "room", roomID, "depth", depth)
			continue
		}
		*ctr = 0
		p.Stats.Fired[c]++
		return PityResult{Fired: true, Category: c}
	}
	return PityResult{}
}

// naturalCategories maps each guaranteed category present in the room's
// natural spawns. Unknown item IDs are ignored.
func (p *Pity) naturalCategories(itemIDs []string) map[Category]bool {
	present := make(map[Category]bool)
	for _, id := range itemIDs {
		tags, ok := p.Registry.GetLootTags(id)
		if !ok {
			continue
		}
		for _, c := range GuaranteedOrder {
			if tags.Has(c) {
				present[c] = true
			}
		}
	}
	return present
}
