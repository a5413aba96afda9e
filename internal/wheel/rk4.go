package wheel

// rk4 holds the per-stage buffers for a fixed-step classical Runge-Kutta
// integrator. Buffers are reused across steps so the integration loop does
// not allocate.
type rk4 struct {
	k1, k2, k3, k4 []float64
	scratch        []float64
}

func newRK4(n int) *rk4 {
	return &rk4{
		k1:      make([]float64, n),
		k2:      make([]float64, n),
		k3:      make([]float64, n),
		k4:      make([]float64, n),
		scratch: make([]float64, n),
	}
}

// step advances state in place by dt.
func (r *rk4) step(state []float64, dt float64, cfg Config) {
	n := len(state)
	halfDt := dt * 0.5

	derivatives(state, r.k1, cfg)

	for i := 0; i < n; i++ {
		r.scratch[i] = state[i] + halfDt*r.k1[i]
	}
	derivatives(r.scratch, r.k2, cfg)

	for i := 0; i < n; i++ {
		r.scratch[i] = state[i] + halfDt*r.k2[i]
	}
	derivatives(r.scratch, r.k3, cfg)

	for i := 0; i < n; i++ {
		r.scratch[i] = state[i] + dt*r.k3[i]
	}
	derivatives(r.scratch, r.k4, cfg)

	dt6 := dt / 6.0
	for i := 0; i < n; i++ {
		state[i] += dt6 * (r.k1[i] + 2*r.k2[i] + 2*r.k3[i] + r.k4[i])
	}
}
