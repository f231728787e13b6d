package config

var Presets = map[string]*Config{
	"default": {
		Count: 1000, Radius: 3, Speed: 10, Dt: 0.2,
		Width: 700, Height: 700, Steps: 500,
	},
	"sparse": {
		Count: 200, Radius: 3, Speed: 10, Dt: 0.2,
		Width: 700, Height: 700, Steps: 500,
	},
	"dense": {
		Count: 2500, Radius: 3, Speed: 8, Dt: 0.2,
		Width: 700, Height: 700, Steps: 500,
	},
	"fast": {
		Count: 500, Radius: 3, Speed: 30, Dt: 0.1,
		Width: 700, Height: 700, Steps: 1000,
	},
	"billiards": {
		Count: 16, Radius: 12, Speed: 25, Dt: 0.1,
		Width: 400, Height: 200, Steps: 2000,
	},
}

// GetPreset returns a copy of the named preset, or nil if it does not
// exist. Callers may mutate the result freely.
func GetPreset(name string) *Config {
	preset, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *preset
	return &cfg
}

// ListPresets returns the available preset names in map order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
