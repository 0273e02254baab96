package loot

import (
	"fmt"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// Storage keys for the persisted pity counters.
const (
	pityObject   = "run"
	pityProperty = "pity"
)

// LoadPityState restores the saved counters. A nil manager (degraded mode,
// save dir unavailable) or a missing save yields fresh counters and no error;
// only a corrupt save reports one, alongside fresh counters so a run can
// always start.
func LoadPityState(m *gdata.Manager) (*PityState, error) {
	st := &PityState{}
	if m == nil {
		return st, nil
	}
	if !m.ObjectPropExists(pityObject, pityProperty) {
		return st, nil
	}
	data, err := m.LoadObjectProp(pityObject, pityProperty)
	if err != nil {
		return st, fmt.Errorf("load pity counters: %w", err)
	}
	if err := yaml.Unmarshal(data, st); err != nil {
		return &PityState{}, fmt.Errorf("decode pity counters: %w", err)
	}
	return st, nil
}

// SavePityState writes the counters. Nil manager is a no-op.
func SavePityState(m *gdata.Manager, st *PityState) error {
	if m == nil {
		return nil
	}
	data, err := yaml.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode pity counters: %w", err)
	}
	if err := m.SaveObjectProp(pityObject, pityProperty, data); err != nil {
		return fmt.Errorf("save pity counters: %w", err)
	}
	return nil
}
