// Package wheel implements the Lorenz water wheel: a damped rotating wheel
// with equally spaced cups that fill under a fixed inflow spout and leak
// continuously. The wheel state [theta, omega, m_0..m_{n-1}] is advanced
// with a fixed-step classical RK4 integrator.
//
// The package has two entry points. [Simulate] runs a whole trajectory and
// returns sampled frames:
//
//	cfg := wheel.Config{NCups: 12, Radius: 1, G: 9.81, ...}
//	res, err := wheel.Simulate(cfg)
//
// [Stepper] exposes the same integrator incrementally for callers that drive
// their own clock, such as a live view.
//
// All arithmetic is float64. A call owns its state and result buffers
// exclusively, so concurrent calls with separate configs are safe.
package wheel
