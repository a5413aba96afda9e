package wheel

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func validConfig() Config {
	return Config{
		NCups:         2,
		Radius:        1.0,
		G:             9.81,
		Damping:       0.05,
		LeakRate:      0.02,
		InflowRate:    0.5,
		Inertia:       1.5,
		Omega0:        0.0,
		TStart:        0.0,
		TEnd:          1.0,
		NFrames:       5,
		StepsPerFrame: 2,
	}
}

var _ = Describe("Validate", func() {
	It("accepts a valid configuration", func() {
		Expect(Validate(validConfig())).To(Succeed())
	})

	DescribeTable("rejects structurally invalid configurations",
		func(mutate func(*Config)) {
			cfg := validConfig()
			mutate(&cfg)
			Expect(Validate(cfg)).To(MatchError(ErrInvalidConfig))
		},
		Entry("zero cups", func(c *Config) { c.NCups = 0 }),
		Entry("negative cups", func(c *Config) { c.NCups = -3 }),
		Entry("single frame", func(c *Config) { c.NFrames = 1 }),
		Entry("collapsed time interval", func(c *Config) { c.TEnd = c.TStart }),
		Entry("reversed time interval", func(c *Config) { c.TEnd = c.TStart - 1 }),
		Entry("zero sub-steps", func(c *Config) { c.StepsPerFrame = 0 }),
	)

	It("does not reject zero inertia", func() {
		cfg := validConfig()
		cfg.Inertia = 0
		Expect(Validate(cfg)).To(Succeed())
	})
})

var _ = Describe("derivatives", func() {
	It("computes torque, angular acceleration, and inflow for a cup under the spout", func() {
		cfg := validConfig()
		cfg.NCups = 1
		cfg.Inertia = 2.0
		cfg.Damping = 0.5
		cfg.LeakRate = 0.1
		cfg.InflowRate = 1.0

		state := []float64{0.0, 1.0, 2.0}
		out := make([]float64, len(state))
		derivatives(state, out, cfg)

		Expect(out[0]).To(Equal(1.0))
		Expect(out[1]).To(BeNumerically("~", -0.25, 1e-9))
		Expect(out[2]).To(BeNumerically("~", 0.8, 1e-9))
	})

	It("applies pure leak outside the inflow window", func() {
		cfg := validConfig()
		cfg.NCups = 1
		cfg.LeakRate = 0.25
		cfg.InflowRate = 2.0

		state := []float64{0.2, 0.0, 4.0}
		out := make([]float64, len(state))
		derivatives(state, out, cfg)

		Expect(out[2]).To(BeNumerically("~", -1.0, 1e-9))
	})

	It("feeds a cup whose wrapped angle is just below 2π", func() {
		cfg := validConfig()
		cfg.NCups = 1
		cfg.LeakRate = 0.0
		cfg.InflowRate = 3.0

		// Several turns plus a hair under a full circle: phi > 2π - 0.1.
		state := []float64{4*twoPi - 0.05, 0.0, 0.0}
		out := make([]float64, len(state))
		derivatives(state, out, cfg)

		Expect(out[2]).To(BeNumerically("~", 3.0, 1e-9))
	})

	It("spaces cups evenly around the wheel", func() {
		cfg := validConfig()
		cfg.NCups = 4
		cfg.G = 10.0
		cfg.Radius = 1.0
		cfg.Damping = 0.0
		cfg.Inertia = 1.0

		// One unit mass in the cup at angle π/2; torque = g*R*sin(π/2).
		state := []float64{0, 0, 0, 1, 0, 0}
		out := make([]float64, len(state))
		derivatives(state, out, cfg)

		Expect(out[1]).To(BeNumerically("~", 10.0, 1e-9))
	})
})

var _ = Describe("rk4 step", func() {
	It("advances the angle under constant angular velocity", func() {
		cfg := validConfig()
		cfg.NCups = 1
		cfg.Damping = 0.0
		cfg.LeakRate = 0.0
		cfg.InflowRate = 0.0
		cfg.Inertia = 1.0

		state := []float64{0.0, 1.0, 0.0}
		integ := newRK4(len(state))
		integ.step(state, 0.1, cfg)

		Expect(state[0]).To(BeNumerically("~", 0.1, 1e-6))
		Expect(state[1]).To(BeNumerically("~", 1.0, 1e-9))
		Expect(state[2]).To(BeNumerically("~", 0.0, 1e-9))
	})
})

var _ = Describe("Simulate", func() {
	It("rejects an invalid configuration before allocating anything", func() {
		cfg := validConfig()
		cfg.NCups = 0
		res, err := Simulate(cfg)
		Expect(err).To(MatchError(ErrInvalidConfig))
		Expect(res).To(BeNil())
	})

	It("returns series of the documented lengths", func() {
		cfg := validConfig()
		cfg.NCups = 3
		cfg.NFrames = 7

		res, err := Simulate(cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Times).To(HaveLen(7))
		Expect(res.Theta).To(HaveLen(7))
		Expect(res.Masses).To(HaveLen(21))
	})

	It("produces the expected frames and angles for a freewheeling cup", func() {
		cfg := validConfig()
		cfg.NCups = 1
		cfg.StepsPerFrame = 5
		cfg.NFrames = 3
		cfg.Omega0 = 1.0
		cfg.Damping = 0.0
		cfg.Inertia = 1.0
		cfg.LeakRate = 0.0
		cfg.InflowRate = 0.0
		cfg.TEnd = 1.0

		res, err := Simulate(cfg)
		Expect(err).NotTo(HaveOccurred())

		Expect(res.Times[0]).To(Equal(0.0))
		Expect(res.Times[1]).To(BeNumerically("~", 0.5, 1e-12))
		Expect(res.Times[2]).To(BeNumerically("~", 1.0, 1e-12))

		Expect(res.Theta[0]).To(BeNumerically("~", 0.0, 1e-9))
		Expect(res.Theta[1]).To(BeNumerically("~", 0.5, 1e-6))
		Expect(res.Theta[2]).To(BeNumerically("~", 1.0, 1e-6))

		for _, m := range res.Masses {
			Expect(m).To(Equal(0.0))
		}
	})

	It("grows theta linearly when all forces are off", func() {
		cfg := Config{
			NCups: 4, Radius: 1, G: 0, Damping: 0, LeakRate: 0,
			InflowRate: 0, Inertia: 1, Omega0: 2.0,
			TStart: 1.0, TEnd: 3.0, NFrames: 9, StepsPerFrame: 3,
		}
		res, err := Simulate(cfg)
		Expect(err).NotTo(HaveOccurred())
		for k := range res.Times {
			Expect(res.Theta[k]).To(BeNumerically("~", cfg.Omega0*(res.Times[k]-cfg.TStart), 1e-9))
		}
	})

	It("keeps every cup empty when inflow and leak are zero", func() {
		cfg := validConfig()
		cfg.NCups = 5
		cfg.InflowRate = 0
		cfg.LeakRate = 0
		cfg.Omega0 = 3.0
		cfg.NFrames = 20

		res, err := Simulate(cfg)
		Expect(err).NotTo(HaveOccurred())
		for _, m := range res.Masses {
			Expect(m).To(Equal(0.0))
		}
	})

	It("samples frames at uniform spacing", func() {
		cfg := validConfig()
		cfg.TStart = 2.0
		cfg.TEnd = 6.0
		cfg.NFrames = 11

		res, err := Simulate(cfg)
		Expect(err).NotTo(HaveOccurred())

		frameDt := (cfg.TEnd - cfg.TStart) / float64(cfg.NFrames-1)
		for k, tk := range res.Times {
			Expect(tk).To(BeNumerically("~", cfg.TStart+float64(k)*frameDt, 1e-9))
		}
	})

	It("lays masses out cup-major", func() {
		cfg := validConfig()
		cfg.NCups = 3
		cfg.NFrames = 4
		cfg.Omega0 = 1.0

		res, err := Simulate(cfg)
		Expect(err).NotTo(HaveOccurred())
		for cup := 0; cup < cfg.NCups; cup++ {
			series := res.CupSeries(cup)
			Expect(series).To(HaveLen(cfg.NFrames))
			for frame := 0; frame < cfg.NFrames; frame++ {
				Expect(res.Mass(cup, frame)).To(Equal(series[frame]))
			}
		}
	})

	It("is deterministic across repeated calls", func() {
		cfg := Config{
			NCups: 12, Radius: 1, G: 9.81, Damping: 1, LeakRate: 1,
			InflowRate: 5, Inertia: 1, Omega0: 0.1,
			TStart: 0, TEnd: 10, NFrames: 100, StepsPerFrame: 4,
		}

		a, err := Simulate(cfg)
		Expect(err).NotTo(HaveOccurred())
		b, err := Simulate(cfg)
		Expect(err).NotTo(HaveOccurred())

		Expect(b.Times).To(Equal(a.Times))
		Expect(b.Theta).To(Equal(a.Theta))
		Expect(b.Masses).To(Equal(a.Masses))
	})

	It("stays finite and moves water in the driven regime", func() {
		cfg := Config{
			NCups: 12, Radius: 1, G: 9.81, Damping: 1, LeakRate: 1,
			InflowRate: 5, Inertia: 1, Omega0: 0.1,
			TStart: 0, TEnd: 40, NFrames: 400, StepsPerFrame: 4,
		}
		res, err := Simulate(cfg)
		Expect(err).NotTo(HaveOccurred())

		for _, v := range res.Theta {
			Expect(math.IsNaN(v) || math.IsInf(v, 0)).To(BeFalse())
		}
		total := 0.0
		for cup := 0; cup < cfg.NCups; cup++ {
			total += res.Mass(cup, cfg.NFrames-1)
		}
		Expect(total).To(BeNumerically(">", 0))
	})
})

var _ = Describe("Stepper", func() {
	It("matches Simulate step for step", func() {
		cfg := validConfig()
		cfg.NCups = 3
		cfg.Omega0 = 0.5
		cfg.NFrames = 6
		cfg.StepsPerFrame = 2

		res, err := Simulate(cfg)
		Expect(err).NotTo(HaveOccurred())

		st, err := NewStepper(cfg)
		Expect(err).NotTo(HaveOccurred())

		frameDt := (cfg.TEnd - cfg.TStart) / float64(cfg.NFrames-1)
		subDt := frameDt / float64(cfg.StepsPerFrame)

		Expect(st.Theta()).To(Equal(res.Theta[0]))
		for frame := 1; frame < cfg.NFrames; frame++ {
			for s := 0; s < cfg.StepsPerFrame; s++ {
				st.Step(subDt)
			}
			Expect(st.Theta()).To(Equal(res.Theta[frame]))
			masses := st.Masses()
			for cup := range masses {
				Expect(masses[cup]).To(Equal(res.Mass(cup, frame)))
			}
		}
	})

	It("rejects invalid configurations", func() {
		cfg := validConfig()
		cfg.StepsPerFrame = 0
		_, err := NewStepper(cfg)
		Expect(err).To(MatchError(ErrInvalidConfig))
	})

	It("resets to the initial state", func() {
		cfg := validConfig()
		cfg.Omega0 = 1.5
		st, err := NewStepper(cfg)
		Expect(err).NotTo(HaveOccurred())

		st.Step(0.05)
		st.Step(0.05)
		st.Reset()

		Expect(st.Time()).To(Equal(cfg.TStart))
		Expect(st.Theta()).To(Equal(0.0))
		Expect(st.Omega()).To(Equal(1.5))
		Expect(st.TotalMass()).To(Equal(0.0))
	})
})

var _ = Describe("ConfigFromMap", func() {
	fullMap := func() map[string]any {
		return map[string]any{
			"N_CUPS": 12, "RADIUS": 1.0, "G": 9.81, "DAMPING": 1.0,
			"LEAK_RATE": 1.0, "INFLOW_RATE": 5.0, "INERTIA": 1.0,
			"OMEGA0": 0.1, "T_START": 0.0, "T_END": 40.0, "N_FRAMES": 1000,
		}
	}

	It("coerces a complete mapping", func() {
		cfg, err := ConfigFromMap(fullMap(), 8)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.NCups).To(Equal(12))
		Expect(cfg.G).To(Equal(9.81))
		Expect(cfg.NFrames).To(Equal(1000))
		Expect(cfg.StepsPerFrame).To(Equal(8))
	})

	It("defaults the sub-step count when unset", func() {
		cfg, err := ConfigFromMap(fullMap(), 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.StepsPerFrame).To(Equal(DefaultStepsPerFrame))
	})

	It("names a missing key", func() {
		m := fullMap()
		delete(m, "INERTIA")
		_, err := ConfigFromMap(m, 4)
		Expect(err).To(MatchError(ErrInvalidConfig))
		Expect(err.Error()).To(ContainSubstring("INERTIA"))
	})

	It("names a non-numeric value", func() {
		m := fullMap()
		m["RADIUS"] = "wide"
		_, err := ConfigFromMap(m, 4)
		Expect(err).To(MatchError(ErrInvalidConfig))
		Expect(err.Error()).To(ContainSubstring("RADIUS"))
	})

	It("rejects mappings that fail validation", func() {
		m := fullMap()
		m["N_FRAMES"] = 1
		_, err := ConfigFromMap(m, 4)
		Expect(err).To(MatchError(ErrInvalidConfig))
	})
})

var _ = Describe("numeric conventions", func() {
	It("leaves theta unwrapped past a full turn", func() {
		cfg := Config{
			NCups: 1, Radius: 1, G: 0, Damping: 0, LeakRate: 0,
			InflowRate: 0, Inertia: 1, Omega0: 4.0,
			TStart: 0, TEnd: 10, NFrames: 5, StepsPerFrame: 4,
		}
		res, err := Simulate(cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Theta[len(res.Theta)-1]).To(BeNumerically(">", twoPi))
	})

	It("propagates zero inertia as non-finite values rather than failing", func() {
		cfg := validConfig()
		cfg.Inertia = 0
		cfg.Omega0 = 1.0

		res, err := Simulate(cfg)
		Expect(err).NotTo(HaveOccurred())

		last := res.Theta[len(res.Theta)-1]
		Expect(math.IsNaN(last) || math.IsInf(last, 0)).To(BeTrue())
	})
})
