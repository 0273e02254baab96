package component

import "gravedelve/internal/ecs"

const (
	CLootCarry ecs.ComponentType = 10
	CItem      ecs.ComponentType = 11
)

// LootCarry lists item IDs a monster drops into the world when it dies.
type LootCarry struct {
	ItemIDs []string
}

func (LootCarry) Type() ecs.ComponentType { return CLootCarry }

// Item marks a ground item and names it for the loot-category registry.
type Item struct {
	ID   string
	Name string
}

func (Item) Type() ecs.ComponentType { return CItem }
