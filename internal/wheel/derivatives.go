package wheel

import "math"

// derivatives writes the time-derivative of state into out. The state layout
// is [theta, omega, m_0..m_{NCups-1}]; cup i sits at angle theta + i*2π/N.
// theta itself is never wrapped; only the per-cup inflow test uses the angle
// reduced to [0, 2π).
func derivatives(state, out []float64, cfg Config) {
	theta := state[0]
	omega := state[1]
	angleStep := twoPi / float64(cfg.NCups)

	torque := 0.0
	for i := 0; i < cfg.NCups; i++ {
		angle := theta + angleStep*float64(i)
		torque += state[2+i] * cfg.G * cfg.Radius * math.Sin(angle)
	}

	out[0] = omega
	out[1] = (-cfg.Damping*omega + torque) / cfg.Inertia

	for i := 0; i < cfg.NCups; i++ {
		angle := theta + angleStep*float64(i)
		phi := math.Mod(angle, twoPi)
		if phi < 0 {
			phi += twoPi
		}
		mass := state[2+i]
		if phi < inflowHalfWidth || phi > twoPi-inflowHalfWidth {
			out[2+i] = cfg.InflowRate - cfg.LeakRate*mass
		} else {
			out[2+i] = -cfg.LeakRate * mass
		}
	}
}
