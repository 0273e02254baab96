// Package loot classifies items into drop categories and runs the pity
// scheduler that guarantees critical categories keep appearing.
package loot

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// Category buckets items for drop logic. The four guaranteed categories are
// the ones the pity scheduler tracks.
type Category string

const (
	CatHealing       Category = "healing"
	CatPanic         Category = "panic"
	CatOffensive     Category = "offensive"
	CatDefensive     Category = "defensive"
	CatUtility       Category = "utility"
	CatWeaponUpgrade Category = "weapon-upgrade"
	CatArmorUpgrade  Category = "armor-upgrade"
	CatRare          Category = "rare"
	CatKey           Category = "key"
)

// GuaranteedOrder is the fixed priority in which pity categories are
// evaluated. At most one fires per room, highest priority first.
var GuaranteedOrder = []Category{CatHealing, CatPanic, CatWeaponUpgrade, CatArmorUpgrade}

// Tags is the registry metadata for one item.
type Tags struct {
	Categories []Category `yaml:"categories"`
	BandMin    int        `yaml:"band_min"`
	BandMax    int        `yaml:"band_max"`
	Weight     int        `yaml:"weight"`
}

// Has reports whether the item belongs to the given category.
func (t Tags) Has(c Category) bool {
	for _, have := range t.Categories {
		if have == c {
			return true
		}
	}
	return false
}

// Registry is the static item-to-category lookup table. Immutable after load.
type Registry struct {
	items map[string]Tags
}

type registryFile struct {
	Items map[string]Tags `yaml:"items"`
}

// NewRegistry builds a registry from an item-to-tags table, filling in
// default band bounds and weight.
func NewRegistry(items map[string]Tags) *Registry {
	r := &Registry{items: make(map[string]Tags, len(items))}
	for id, tags := range items {
		if tags.BandMin == 0 {
			tags.BandMin = 1
		}
		if tags.BandMax == 0 {
			tags.BandMax = 5
		}
		if tags.Weight == 0 {
			tags.Weight = 1
		}
		r.items[id] = tags
	}
	return r
}

// LoadRegistry decodes the YAML item table.
func LoadRegistry(data []byte) (*Registry, error) {
	var f registryFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode loot registry: %w", err)
	}
	return NewRegistry(f.Items), nil
}

// GetLootTags returns the registry entry for an item ID.
func (r *Registry) GetLootTags(id string) (Tags, bool) {
	t, ok := r.items[id]
	return t, ok
}

// IDsInBand returns every item ID of the given category whose band range
// contains band, sorted so seeded generation stays reproducible.
func (r *Registry) IDsInBand(c Category, band int) []string {
	var out []string
	for id, tags := range r.items {
		if tags.Has(c) && tags.BandMin <= band && band <= tags.BandMax {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

// BandForDepth maps a dungeon depth to a difficulty band in [1, 5]. Depths
// advance one band every five levels.
func BandForDepth(depth int) int {
	if depth < 1 {
		return 1
	}
	band := (depth-1)/5 + 1
	if band > 5 {
		return 5
	}
	return band
}
