package config

import "sort"

// Presets are named generator settings used on the bench.
var Presets = map[string]*Config{
	"bench":       {Voltage: 400, Frequency: 32.3},
	"nominal":     {Voltage: 400, Frequency: 50},
	"half":        {Voltage: 200, Frequency: 25},
	"standstill":  {Voltage: 400, Frequency: 0},
	"deenergized": {Voltage: 0, Frequency: 50},
	"overfluxed":  {Voltage: 400, Frequency: 10},
}

// GetPreset returns a copy of the defaults with the preset applied, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Voltage = p.Voltage
	cfg.Frequency = p.Frequency
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
