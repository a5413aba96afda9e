package wheel

import "fmt"

// Required keys for ConfigFromMap, matching the names host bindings use.
const (
	KeyNCups      = "N_CUPS"
	KeyRadius     = "RADIUS"
	KeyG          = "G"
	KeyDamping    = "DAMPING"
	KeyLeakRate   = "LEAK_RATE"
	KeyInflowRate = "INFLOW_RATE"
	KeyInertia    = "INERTIA"
	KeyOmega0     = "OMEGA0"
	KeyTStart     = "T_START"
	KeyTEnd       = "T_END"
	KeyNFrames    = "N_FRAMES"
)

// ConfigFromMap builds a Config from a loosely typed key/value mapping, the
// form in which configuration crosses a binding boundary (JSON object, script
// dictionary). A missing key or a value that is not numeric is reported as
// ErrInvalidConfig naming the key. stepsPerFrame <= 0 selects
// DefaultStepsPerFrame. The result is validated before it is returned.
func ConfigFromMap(data map[string]any, stepsPerFrame int) (Config, error) {
	var cfg Config
	var err error

	intField := func(dst *int, key string) {
		if err != nil {
			return
		}
		var v float64
		if v, err = lookupNumber(data, key); err == nil {
			*dst = int(v)
		}
	}
	floatField := func(dst *float64, key string) {
		if err != nil {
			return
		}
		*dst, err = lookupNumber(data, key)
	}

	intField(&cfg.NCups, KeyNCups)
	floatField(&cfg.Radius, KeyRadius)
	floatField(&cfg.G, KeyG)
	floatField(&cfg.Damping, KeyDamping)
	floatField(&cfg.LeakRate, KeyLeakRate)
	floatField(&cfg.InflowRate, KeyInflowRate)
	floatField(&cfg.Inertia, KeyInertia)
	floatField(&cfg.Omega0, KeyOmega0)
	floatField(&cfg.TStart, KeyTStart)
	floatField(&cfg.TEnd, KeyTEnd)
	intField(&cfg.NFrames, KeyNFrames)
	if err != nil {
		return Config{}, err
	}

	if stepsPerFrame <= 0 {
		stepsPerFrame = DefaultStepsPerFrame
	}
	cfg.StepsPerFrame = stepsPerFrame

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func lookupNumber(data map[string]any, key string) (float64, error) {
	raw, ok := data[key]
	if !ok {
		return 0, fmt.Errorf("%w: missing key %s", ErrInvalidConfig, key)
	}
	switch v := raw.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("%w: key %s is not numeric (got %T)", ErrInvalidConfig, key, raw)
	}
}
