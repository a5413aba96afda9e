package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/wheely/internal/wheel"
)

// Store keeps one directory per run under baseDir: metadata.json with the
// configuration, frames.csv with one row per sampled frame
// (time, theta, m0..m{n-1}).
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string       `json:"id"`
	Timestamp time.Time    `json:"timestamp"`
	Config    wheel.Config `json:"config"`
}

func (s *Store) Save(cfg wheel.Config, result *wheel.Result) (string, error) {
	runID := fmt.Sprintf("wheel_%d", time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Timestamp: time.Now(),
		Config:    cfg,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "frames.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	header := []string{"time", "theta"}
	for cup := 0; cup < result.NCups; cup++ {
		header = append(header, fmt.Sprintf("m%d", cup))
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for frame := 0; frame < result.NFrames; frame++ {
		row := []string{
			strconv.FormatFloat(result.Times[frame], 'g', 17, 64),
			strconv.FormatFloat(result.Theta[frame], 'g', 17, 64),
		}
		for cup := 0; cup < result.NCups; cup++ {
			row = append(row, strconv.FormatFloat(result.Mass(cup, frame), 'g', 17, 64))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	if err := w.Error(); err != nil {
		return "", err
	}
	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadFrames rebuilds the sampled trajectory of a stored run.
func (s *Store) LoadFrames(runID string) (*wheel.Result, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "frames.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("run %s has no frames", runID)
	}

	nFrames := len(records) - 1
	nCups := len(records[0]) - 2
	if nCups < 1 {
		return nil, fmt.Errorf("run %s has a malformed header", runID)
	}

	result := &wheel.Result{
		NCups:   nCups,
		NFrames: nFrames,
		Times:   make([]float64, nFrames),
		Theta:   make([]float64, nFrames),
		Masses:  make([]float64, nCups*nFrames),
	}

	for frame := 0; frame < nFrames; frame++ {
		record := records[frame+1]
		if len(record) != nCups+2 {
			return nil, fmt.Errorf("run %s: frame %d has %d columns, want %d",
				runID, frame, len(record), nCups+2)
		}

		if result.Times[frame], err = strconv.ParseFloat(record[0], 64); err != nil {
			return nil, err
		}
		if result.Theta[frame], err = strconv.ParseFloat(record[1], 64); err != nil {
			return nil, err
		}
		for cup := 0; cup < nCups; cup++ {
			v, err := strconv.ParseFloat(record[2+cup], 64)
			if err != nil {
				return nil, err
			}
			result.Masses[cup*nFrames+frame] = v
		}
	}

	return result, nil
}
