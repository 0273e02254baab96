package component

import (
	"gravedelve/internal/dice"
	"gravedelve/internal/ecs"
)

const CCombat ecs.ComponentType = 4

// DamageType tags a damage source so targets can apply a per-type multiplier.
type DamageType uint8

const (
	DamagePhysical DamageType = iota
	DamageSlashing
	DamagePiercing
	DamageBludgeoning
	DamageFire
	DamageArcane
)

var damageTypeNames = map[DamageType]string{
	DamagePhysical:    "physical",
	DamageSlashing:    "slashing",
	DamagePiercing:    "piercing",
	DamageBludgeoning: "bludgeoning",
	DamageFire:        "fire",
	DamageArcane:      "arcane",
}

func (d DamageType) String() string {
	if s, ok := damageTypeNames[d]; ok {
		return s
	}
	return "unknown"
}

// DamageTypeFromName maps a definition-file name to a DamageType, defaulting
// to physical for unknown names.
func DamageTypeFromName(name string) DamageType {
	for t, s := range damageTypeNames {
		if s == name {
			return t
		}
	}
	return DamagePhysical
}

// Weapon is one attack profile: its damage pool and damage type.
type Weapon struct {
	Name string
	Dice dice.Roll
	Type DamageType
}

// Combat holds everything the attack resolver reads and writes for one
// combatant. ArmorBonus is owned by the shield-wall recompute; nothing else
// writes it.
type Combat struct {
	Accuracy   int
	Evasion    int
	BaseArmor  int
	ArmorBonus int
	Power      int
	Weapon     Weapon

	// Resist maps damage type to a multiplier on incoming damage. A missing
	// entry means 1.0. The map is built once at spawn and read-only after.
	Resist map[DamageType]float64

	// PlagueChance is the percent chance per landed hit to infect the target.
	PlagueChance int

	// XP awarded to the killer when this combatant dies.
	XP int
}

func (Combat) Type() ecs.ComponentType { return CCombat }

// ArmorClass returns the to-hit target number: base armor plus the
// shield-wall bonus plus innate evasion.
func (c Combat) ArmorClass() int {
	return c.BaseArmor + c.ArmorBonus + c.Evasion
}

// ResistFor returns the multiplier for a damage type, 1.0 when unlisted.
func (c Combat) ResistFor(t DamageType) float64 {
	if c.Resist == nil {
		return 1.0
	}
	if m, ok := c.Resist[t]; ok {
		return m
	}
	return 1.0
}
