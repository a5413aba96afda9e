package wheel

// Stepper drives the same integrator as Simulate one step at a time, for
// callers with their own clock (the live view). It owns its state vector;
// the frame-sampling fields of the Config (NFrames, StepsPerFrame, TEnd) are
// not consulted.
type Stepper struct {
	cfg   Config
	state []float64
	integ *rk4
	t     float64
}

// NewStepper validates cfg and returns a stepper positioned at TStart with
// the initial state (all cups empty, omega = Omega0).
func NewStepper(cfg Config) (*Stepper, error) {
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	state := cfg.initialState()
	return &Stepper{
		cfg:   cfg,
		state: state,
		integ: newRK4(len(state)),
		t:     cfg.TStart,
	}, nil
}

// Step advances the wheel by dt.
func (s *Stepper) Step(dt float64) {
	s.integ.step(s.state, dt, s.cfg)
	s.t += dt
}

func (s *Stepper) Time() float64  { return s.t }
func (s *Stepper) Theta() float64 { return s.state[0] }
func (s *Stepper) Omega() float64 { return s.state[1] }

// Masses copies the current cup masses into a fresh slice.
func (s *Stepper) Masses() []float64 {
	m := make([]float64, s.cfg.NCups)
	copy(m, s.state[2:])
	return m
}

// TotalMass is the water currently held by all cups.
func (s *Stepper) TotalMass() float64 {
	sum := 0.0
	for _, m := range s.state[2:] {
		sum += m
	}
	return sum
}

// Reset returns the stepper to TStart and the initial state.
func (s *Stepper) Reset() {
	for i := range s.state {
		s.state[i] = 0
	}
	s.state[1] = s.cfg.Omega0
	s.t = s.cfg.TStart
}
