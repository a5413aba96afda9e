package wheel

// Result holds the sampled trajectory of one run. Times and Theta have
// NFrames elements each. Masses is a flat cup-major table of
// NCups*NFrames elements: cup i's full time series occupies
// Masses[i*NFrames : (i+1)*NFrames].
type Result struct {
	NCups   int
	NFrames int
	Times   []float64
	Theta   []float64
	Masses  []float64
}

// Mass returns the mass of cup at the given frame.
func (r *Result) Mass(cup, frame int) float64 {
	return r.Masses[cup*r.NFrames+frame]
}

// CupSeries returns the time series for one cup as a view into Masses.
func (r *Result) CupSeries(cup int) []float64 {
	return r.Masses[cup*r.NFrames : (cup+1)*r.NFrames]
}

// Simulate integrates the wheel over [TStart, TEnd] and samples NFrames
// evenly spaced frames. The configuration is validated first; on rejection
// no state is allocated and no partial result is returned.
//
// Time advances by repeated addition of the sub-step, so intermediate
// timestamps may drift from the nominal spacing by float rounding. Theta
// accumulates without wrapping.
func Simulate(cfg Config) (*Result, error) {
	if err := Validate(cfg); err != nil {
		return nil, err
	}

	state := cfg.initialState()
	integ := newRK4(len(state))

	frameDt := (cfg.TEnd - cfg.TStart) / float64(cfg.NFrames-1)
	subDt := frameDt / float64(cfg.StepsPerFrame)

	result := &Result{
		NCups:   cfg.NCups,
		NFrames: cfg.NFrames,
		Times:   make([]float64, cfg.NFrames),
		Theta:   make([]float64, cfg.NFrames),
		Masses:  make([]float64, cfg.NCups*cfg.NFrames),
	}

	t := cfg.TStart
	for frame := 0; frame < cfg.NFrames; frame++ {
		result.Times[frame] = t
		result.Theta[frame] = state[0]
		for cup := 0; cup < cfg.NCups; cup++ {
			result.Masses[cup*cfg.NFrames+frame] = state[2+cup]
		}

		if frame+1 == cfg.NFrames {
			break
		}

		for step := 0; step < cfg.StepsPerFrame; step++ {
			integ.step(state, subDt, cfg)
			t += subDt
		}
	}

	return result, nil
}
