package config

import (
	"fmt"
	"sort"
)

var Presets = map[string]*Config{
	"default": {
		Life: DefaultLife, Multiplier: DefaultMultiplier, Leaves: []string{"&"},
		Base: BaseBig, TimeStep: DefaultTimeStep, Wait: DefaultWait, Theme: "classic",
	},
	"sapling": {
		Life: 16, Multiplier: 3, Leaves: []string{"&", "."},
		Base: BaseSmall, TimeStep: 0.05, Wait: DefaultWait, Theme: "classic",
	},
	"ancient": {
		Life: 80, Multiplier: 12, Leaves: []string{"&", "%", "@"},
		Base: BaseBig, TimeStep: 0.01, Wait: 8, Theme: "autumn",
	},
	"weeping": {
		Life: 48, Multiplier: 2, Leaves: []string{"~", "&"},
		Base: BaseBig, TimeStep: DefaultTimeStep, Wait: DefaultWait, Theme: "classic",
	},
	"sakura": {
		Life: 40, Multiplier: 6, Leaves: []string{"*", "&", "@"},
		Base: BaseSmall, TimeStep: DefaultTimeStep, Wait: DefaultWait, Theme: "sakura",
	},
}

// GetPreset returns a copy of the named preset.
func GetPreset(name string) (*Config, error) {
	p, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %v)", ErrUnknownPreset, name, ListPresets())
	}
	cfg := *p
	cfg.Leaves = append([]string(nil), p.Leaves...)
	return &cfg, nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
