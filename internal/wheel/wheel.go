package wheel

import (
	"errors"
	"fmt"
	"math"
)

const twoPi = 2 * math.Pi

// inflowHalfWidth is the angular half-width of the inflow window: a cup whose
// wrapped angle lies within this distance of angle 0 receives inflow. It is a
// constant of the physical model, not a tunable.
const inflowHalfWidth = 0.1

// DefaultStepsPerFrame is used when a caller leaves the sub-step count unset.
const DefaultStepsPerFrame = 4

// ErrInvalidConfig is wrapped by every configuration rejection.
var ErrInvalidConfig = errors.New("wheel: invalid configuration")

// Config fully determines a simulation run.
type Config struct {
	NCups         int     // cups mounted at equal angular spacing
	Radius        float64 // axle-to-cup distance
	G             float64 // gravitational acceleration
	Damping       float64 // linear drag on angular velocity
	LeakRate      float64 // fractional mass loss per unit time, every cup
	InflowRate    float64 // mass per unit time while a cup is under the spout
	Inertia       float64 // rotational inertia of the wheel
	Omega0        float64 // initial angular velocity
	TStart        float64
	TEnd          float64
	NFrames       int // output samples, evenly spaced over [TStart, TEnd]
	StepsPerFrame int // RK4 sub-steps between consecutive frames
}

// Validate rejects configurations the integrator cannot run. It checks only
// structural fields; physical parameters such as Inertia are taken as given
// and a zero inertia propagates as IEEE inf/NaN.
func Validate(cfg Config) error {
	if cfg.NCups < 1 {
		return fmt.Errorf("%w: n_cups must be positive, got %d", ErrInvalidConfig, cfg.NCups)
	}
	if cfg.NFrames < 2 {
		return fmt.Errorf("%w: n_frames must be at least 2, got %d", ErrInvalidConfig, cfg.NFrames)
	}
	if cfg.TEnd <= cfg.TStart {
		return fmt.Errorf("%w: t_end must be greater than t_start", ErrInvalidConfig)
	}
	if cfg.StepsPerFrame < 1 {
		return fmt.Errorf("%w: steps_per_frame must be positive, got %d", ErrInvalidConfig, cfg.StepsPerFrame)
	}
	return nil
}

// StateDim is the length of the state vector for this configuration.
func (c Config) StateDim() int { return c.NCups + 2 }

func (c Config) initialState() []float64 {
	state := make([]float64, c.StateDim())
	state[1] = c.Omega0
	return state
}
