package component

import "gravedelve/internal/ecs"

const (
	CTagPlayer   ecs.ComponentType = 12
	CTagBlocking ecs.ComponentType = 13
	CTagStairs   ecs.ComponentType = 14
)

// TagPlayer marks the player-controlled entity.
type TagPlayer struct{}

func (TagPlayer) Type() ecs.ComponentType { return CTagPlayer }

// TagBlocking marks an entity that occupies its tile (blocks movement).
type TagBlocking struct{}

func (TagBlocking) Type() ecs.ComponentType { return CTagBlocking }

// TagStairs marks the staircase to the next depth.
type TagStairs struct{}

func (TagStairs) Type() ecs.ComponentType { return CTagStairs }
