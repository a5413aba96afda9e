package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/wheely/internal/wheel"
)

// WheelSVG renders one frame of a run as an SVG snapshot: the rim, the cups
// at their rotated positions with radius scaled by held mass, and the inflow
// spout marker at angle 0.
func WheelSVG(result *wheel.Result, frame, size int) string {
	if frame < 0 || frame >= result.NFrames {
		return ""
	}

	center := float64(size) / 2
	rim := float64(size) * 0.38
	theta := result.Theta[frame]

	maxMass := 0.0
	for cup := 0; cup < result.NCups; cup++ {
		if m := result.Mass(cup, frame); m > maxMass {
			maxMass = m
		}
	}
	if maxMass == 0 {
		maxMass = 1
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<circle cx="%.1f" cy="%.1f" r="%.1f" fill="none" stroke="#333333" stroke-width="2"/>
`, size, size, size, size, center, center, rim))

	// Inflow spout marker, just outside the rim at angle 0.
	sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="#4488ff"/>
`, center+rim*1.12, center, float64(size)*0.015))

	angleStep := 2 * math.Pi / float64(result.NCups)
	minDot := float64(size) * 0.006
	maxDot := float64(size) * 0.035

	for cup := 0; cup < result.NCups; cup++ {
		angle := theta + angleStep*float64(cup)
		// Screen y grows downward.
		x := center + rim*math.Cos(angle)
		y := center - rim*math.Sin(angle)

		mass := result.Mass(cup, frame)
		r := minDot + (maxDot-minDot)*mass/maxMass

		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="#00ff88"/>
`, x, y, r))
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" font-size="%.0f" fill="#888888" text-anchor="middle">%.1f</text>
`, x, y-maxDot-4, float64(size)*0.02, mass))
	}

	sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" font-size="%.0f" fill="#cccccc">t = %.2f</text>
`, float64(size)*0.04, float64(size)*0.95, float64(size)*0.025, result.Times[frame]))

	sb.WriteString("</svg>\n")
	return sb.String()
}
