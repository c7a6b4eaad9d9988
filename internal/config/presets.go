package config

import "sort"

var Presets = map[string]*Config{
	"small": {
		Name: "small", Element: "int", Ints: []int{1, 2, 3}, Appends: 2,
		Allocator: AllocatorConfig{Name: "heap"},
	},
	"reserved": {
		Name: "reserved", Element: "int", Reserve: 10, Appends: 10,
		Allocator: AllocatorConfig{Name: "heap"},
	},
	"strings": {
		Name: "strings", Element: "string", Strings: []string{"hello"}, Appends: 7,
		Allocator: AllocatorConfig{Name: "pool"},
	},
	"stress": {
		Name: "stress", Element: "int", Appends: 100000,
		Allocator: AllocatorConfig{Name: "pool"},
	},
	"limited": {
		Name: "limited", Element: "int", Appends: 1000,
		Allocator: AllocatorConfig{Name: "limited", LimitBytes: 4096},
	},
}

// GetPreset returns a copy of the named preset with defaults filled in, or
// nil if there is no such preset.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Name = p.Name
	cfg.Element = p.Element
	cfg.Ints = append([]int(nil), p.Ints...)
	cfg.Strings = append([]string(nil), p.Strings...)
	cfg.Reserve = p.Reserve
	cfg.Appends = p.Appends
	cfg.Allocator = p.Allocator
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
