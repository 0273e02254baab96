package component

import "gravedelve/internal/ecs"

const CSplit ecs.ComponentType = 6

// Split configures the split-under-pressure mechanic. Once Done is set it is
// never cleared: an entity splits at most once, and entities without this
// component never split.
type Split struct {
	// TriggerPct is the fraction of BaseMax HP below which the split fires.
	TriggerPct float64

	ChildKind   string
	MinChildren int
	MaxChildren int

	// Weights biases the child-count draw across [MinChildren, MaxChildren].
	// A list whose length doesn't match the range degrades to uniform.
	Weights []int

	Done bool
}

func (Split) Type() ecs.ComponentType { return CSplit }
