package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/san-kum/wheely/internal/wheel"
)

type RunData struct {
	ID      string       `json:"id"`
	Config  wheel.Config `json:"config"`
	Times   []float64    `json:"times"`
	Theta   []float64    `json:"theta"`
	Masses  [][]float64  `json:"masses"` // masses[cup][frame]
	NCups   int          `json:"n_cups"`
	NFrames int          `json:"n_frames"`
}

// WriteJSON emits a run as indented JSON. Masses are nested cup-major so the
// layout on the wire matches the engine's flat table.
func WriteJSON(w io.Writer, runID string, cfg wheel.Config, result *wheel.Result) error {
	data := RunData{
		ID:      runID,
		Config:  cfg,
		Times:   result.Times,
		Theta:   result.Theta,
		Masses:  make([][]float64, result.NCups),
		NCups:   result.NCups,
		NFrames: result.NFrames,
	}
	for cup := 0; cup < result.NCups; cup++ {
		data.Masses[cup] = result.CupSeries(cup)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// WriteCSV emits one row per frame: time, theta, m0..m{n-1}.
func WriteCSV(w io.Writer, result *wheel.Result) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"time", "theta"}
	for cup := 0; cup < result.NCups; cup++ {
		header = append(header, fmt.Sprintf("m%d", cup))
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for frame := 0; frame < result.NFrames; frame++ {
		row := []string{
			strconv.FormatFloat(result.Times[frame], 'f', 6, 64),
			strconv.FormatFloat(result.Theta[frame], 'f', 6, 64),
		}
		for cup := 0; cup < result.NCups; cup++ {
			row = append(row, strconv.FormatFloat(result.Mass(cup, frame), 'f', 6, 64))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
