// Package assets holds the static monster and item definitions, decoded once
// from embedded YAML into an immutable Library.
package assets

import (
	_ "embed"
	"fmt"
	"sort"

	"gravedelve/internal/loot"

	"gopkg.in/yaml.v3"
)

//go:embed data/monsters.yaml
var monstersYAML []byte

//go:embed data/items.yaml
var itemsYAML []byte

// SplitDef configures split-under-pressure for a monster kind.
type SplitDef struct {
	TriggerPct  float64 `yaml:"trigger_pct"`
	ChildKind   string  `yaml:"child_kind"`
	MinChildren int     `yaml:"min_children"`
	MaxChildren int     `yaml:"max_children"`
	Weights     []int   `yaml:"weights"`
}

// CarryDef is one item a monster kind may carry to its grave.
type CarryDef struct {
	Item   string `yaml:"item"`
	Chance int    `yaml:"chance"` // 0-100 percent
}

// MonsterDef is the static template for one monster kind. Stats are depth-1
// values; the scale fields are added per depth beyond the first.
type MonsterDef struct {
	Kind  string `yaml:"kind"`
	Name  string `yaml:"name"`
	Glyph string `yaml:"glyph"`

	MaxHP      int `yaml:"max_hp"`
	HPScale    int `yaml:"hp_scale"`
	ConBonus   int `yaml:"con_bonus"`
	Accuracy   int `yaml:"accuracy"`
	Evasion    int `yaml:"evasion"`
	BaseArmor  int `yaml:"base_armor"`
	Power      int `yaml:"power"`
	PowerScale int `yaml:"power_scale"`

	Dice       string             `yaml:"dice"`
	DamageType string             `yaml:"damage_type"`
	Resist     map[string]float64 `yaml:"resist"`

	PlagueChance int `yaml:"plague_chance"`
	XP           int `yaml:"xp"`
	Sight        int `yaml:"sight"`
	Threat       int `yaml:"threat"`
	MinDepth     int `yaml:"min_depth"`

	ShieldWall     bool `yaml:"shield_wall"`
	AllyArmorBonus int  `yaml:"ally_armor_bonus"`
	Stationary     bool `yaml:"stationary"`

	Split *SplitDef  `yaml:"split"`
	Carry []CarryDef `yaml:"carry"`
}

// ItemDef is the static template for one ground item.
type ItemDef struct {
	Name      string `yaml:"name"`
	Glyph     string `yaml:"glyph"`
	loot.Tags `yaml:",inline"`
}

// PlayerDef is the delver's starting statline.
type PlayerDef struct {
	Name      string
	Glyph     string
	MaxHP     int
	ConBonus  int
	Accuracy  int
	BaseArmor int
	Power     int
	Dice      string
	Sight     int
}

// Library is the decoded, immutable definition set.
type Library struct {
	monsters map[string]MonsterDef
	order    []string // kinds in file order, for stable spawn tables
	items    map[string]ItemDef
	registry *loot.Registry
}

type monsterFile struct {
	Monsters []MonsterDef `yaml:"monsters"`
}

type itemFile struct {
	Items map[string]ItemDef `yaml:"items"`
}

// Load decodes the embedded definition files.
func Load() (*Library, error) {
	var mf monsterFile
	if err := yaml.Unmarshal(monstersYAML, &mf); err != nil {
		return nil, fmt.Errorf("decode monster definitions: %w", err)
	}
	var itf itemFile
	if err := yaml.Unmarshal(itemsYAML, &itf); err != nil {
		return nil, fmt.Errorf("decode item definitions: %w", err)
	}

	lib := &Library{
		monsters: make(map[string]MonsterDef, len(mf.Monsters)),
		items:    itf.Items,
	}
	tags := make(map[string]loot.Tags, len(itf.Items))
	for id, def := range itf.Items {
		tags[id] = def.Tags
	}
	lib.registry = loot.NewRegistry(tags)

	for _, m := range mf.Monsters {
		if m.Kind == "" {
			return nil, fmt.Errorf("monster definition without a kind")
		}
		if _, dup := lib.monsters[m.Kind]; dup {
			return nil, fmt.Errorf("duplicate monster kind %q", m.Kind)
		}
		lib.monsters[m.Kind] = m
		lib.order = append(lib.order, m.Kind)
	}
	for kind, m := range lib.monsters {
		if m.Split != nil {
			if _, ok := lib.monsters[m.Split.ChildKind]; !ok {
				return nil, fmt.Errorf("monster %q splits into unknown kind %q", kind, m.Split.ChildKind)
			}
		}
	}
	return lib, nil
}

// Monster returns the definition for a kind.
func (l *Library) Monster(kind string) (MonsterDef, bool) {
	m, ok := l.monsters[kind]
	return m, ok
}

// MonstersForDepth returns every kind allowed at the given depth, in
// definition-file order.
func (l *Library) MonstersForDepth(depth int) []MonsterDef {
	var out []MonsterDef
	for _, kind := range l.order {
		if m := l.monsters[kind]; m.MinDepth <= depth {
			out = append(out, m)
		}
	}
	return out
}

// Item returns the definition for an item ID.
func (l *Library) Item(id string) (ItemDef, bool) {
	it, ok := l.items[id]
	return it, ok
}

// ItemIDs returns every defined item ID, sorted.
func (l *Library) ItemIDs() []string {
	out := make([]string, 0, len(l.items))
	for id := range l.items {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Registry exposes the loot-category registry built from the item table.
func (l *Library) Registry() *loot.Registry {
	return l.registry
}

// Player returns the delver's starting definition.
func (l *Library) Player() PlayerDef {
	return PlayerDef{
		Name:      "the delver",
		Glyph:     "🥷",
		MaxHP:     28,
		ConBonus:  4,
		Accuracy:  4,
		BaseArmor: 13,
		Power:     2,
		Dice:      "1d8",
		Sight:     8,
	}
}
