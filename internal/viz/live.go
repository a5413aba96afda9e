package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/wheely/internal/wheel"
)

const (
	canvasWidth  = 48
	canvasHeight = 22
	historyCap   = 120
	tickRate     = time.Second / 30
	substeps     = 4
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	pausedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model animates a wheel.Stepper at wall-clock rate.
type Model struct {
	stepper      *wheel.Stepper
	cfg          wheel.Config
	speed        float64
	paused       bool
	canvas       *Canvas
	omegaHistory []float64
}

// NewModel builds the live view; cfg must already validate.
func NewModel(cfg wheel.Config) (Model, error) {
	stepper, err := wheel.NewStepper(cfg)
	if err != nil {
		return Model{}, err
	}
	return Model{
		stepper:      stepper,
		cfg:          cfg,
		speed:        1.0,
		canvas:       NewCanvas(canvasWidth, canvasHeight),
		omegaHistory: make([]float64, 0, historyCap),
	}, nil
}

func tick() tea.Cmd {
	return tea.Tick(tickRate, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "r":
			m.stepper.Reset()
			m.omegaHistory = m.omegaHistory[:0]
		case "+", "=":
			if m.speed < 16 {
				m.speed *= 2
			}
		case "-", "_":
			if m.speed > 0.125 {
				m.speed /= 2
			}
		}
		return m, nil

	case TickMsg:
		if !m.paused {
			dt := m.speed * tickRate.Seconds() / substeps
			for i := 0; i < substeps; i++ {
				m.stepper.Step(dt)
			}
			m.omegaHistory = append(m.omegaHistory, m.stepper.Omega())
			if len(m.omegaHistory) > historyCap {
				m.omegaHistory = m.omegaHistory[1:]
			}
		}
		return m, tick()
	}

	return m, nil
}

func (m Model) View() string {
	m.drawWheel()

	var stats strings.Builder
	stats.WriteString(headerStyle.Render("lorenz water wheel"))
	stats.WriteByte('\n')

	row := func(label, value string) {
		stats.WriteString(labelStyle.Render(label))
		stats.WriteString(valueStyle.Render(value))
		stats.WriteByte('\n')
	}

	theta := m.stepper.Theta()
	row("t", fmt.Sprintf("%.2f s", m.stepper.Time()))
	row("theta", fmt.Sprintf("%.2f rad (%.2f turns)", wrapAngle(theta), theta/(2*math.Pi)))
	row("omega", fmt.Sprintf("%.3f rad/s", m.stepper.Omega()))
	row("water", fmt.Sprintf("%.2f", m.stepper.TotalMass()))
	row("speed", fmt.Sprintf("%.3gx", m.speed))
	if m.paused {
		stats.WriteString(pausedStyle.Render("paused"))
		stats.WriteByte('\n')
	}

	if len(m.omegaHistory) >= 2 {
		graph := asciigraph.Plot(m.omegaHistory,
			asciigraph.Height(6),
			asciigraph.Width(36),
			asciigraph.Caption("omega"),
		)
		stats.WriteString(graphStyle.Render(graph))
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		canvasStyle.Render(m.canvas.String()),
		statsStyle.Render(stats.String()),
	)

	help := helpStyle.Render("space pause · r reset · +/- speed · q quit")
	return body + "\n" + help + "\n"
}

// drawWheel places the rim, the cups at their rotated positions, and the
// inflow spout marker at angle 0 (to the right of the axle).
func (m Model) drawWheel() {
	m.canvas.Clear()

	cx := float64(canvasWidth) / 2
	cy := float64(canvasHeight) / 2
	// Cell aspect: use the vertical radius and double it horizontally.
	ry := float64(canvasHeight)/2 - 2
	rx := 2 * ry

	for i := 0; i < 72; i++ {
		a := 2 * math.Pi * float64(i) / 72
		m.canvas.Set(int(cx+rx*math.Cos(a)), int(cy-ry*math.Sin(a)), '·')
	}

	masses := m.stepper.Masses()
	maxMass := 0.0
	for _, v := range masses {
		if v > maxMass {
			maxMass = v
		}
	}

	theta := m.stepper.Theta()
	angleStep := 2 * math.Pi / float64(m.cfg.NCups)
	for i, mass := range masses {
		a := theta + angleStep*float64(i)
		x := int(cx + rx*math.Cos(a))
		y := int(cy - ry*math.Sin(a))
		m.canvas.Set(x, y, cupGlyph(mass, maxMass))
	}

	// Spout, just outside the rim.
	m.canvas.Set(int(cx+rx)+3, int(cy), '>')
	m.canvas.Set(int(cx), int(cy), '+')
}

func cupGlyph(mass, maxMass float64) rune {
	if maxMass <= 0 {
		return 'o'
	}
	switch f := mass / maxMass; {
	case f < 0.25:
		return 'o'
	case f < 0.5:
		return 'O'
	case f < 0.75:
		return '0'
	default:
		return '@'
	}
}

func wrapAngle(a float64) float64 {
	wrapped := math.Mod(a, 2*math.Pi)
	if wrapped < 0 {
		wrapped += 2 * math.Pi
	}
	return wrapped
}
