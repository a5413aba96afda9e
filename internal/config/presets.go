package config

// Presets are named parameter sets spanning the wheel's qualitative regimes.
var Presets = map[string]*Config{
	"classic": {
		NCups: 12, Radius: 1.0, G: 9.81, Damping: 1.0, LeakRate: 1.0,
		InflowRate: 5.0, Inertia: 1.0, Omega0: 0.1,
		TStart: 0, TEnd: 40, NFrames: 1000, StepsPerFrame: 4,
	},
	"gentle": {
		NCups: 8, Radius: 1.0, G: 9.81, Damping: 3.0, LeakRate: 0.5,
		InflowRate: 1.0, Inertia: 2.0, Omega0: 0.0,
		TStart: 0, TEnd: 30, NFrames: 600, StepsPerFrame: 4,
	},
	"chaotic": {
		NCups: 12, Radius: 1.0, G: 9.81, Damping: 0.8, LeakRate: 1.2,
		InflowRate: 8.0, Inertia: 0.8, Omega0: 0.05,
		TStart: 0, TEnd: 120, NFrames: 3000, StepsPerFrame: 8,
	},
	"spinup": {
		NCups: 16, Radius: 1.5, G: 9.81, Damping: 0.2, LeakRate: 2.0,
		InflowRate: 10.0, Inertia: 0.5, Omega0: 1.0,
		TStart: 0, TEnd: 20, NFrames: 800, StepsPerFrame: 4,
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
