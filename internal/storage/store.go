package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/clothsim/internal/sim"
	"gonum.org/v1/gonum/spatial/r3"
)

var ErrNoFinalFrame = errors.New("storage: result has no final frame")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Dir() string { return s.baseDir }

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunInfo is persisted as metadata.json next to the run's CSV files.
type RunInfo struct {
	ID           string             `json:"id"`
	Preset       string             `json:"preset"`
	Timestamp    time.Time          `json:"timestamp"`
	Width        int                `json:"width"`
	Height       int                `json:"height"`
	Mass         float64            `json:"mass"`
	Scheme       string             `json:"scheme"`
	Dt           float64            `json:"dt"`
	Duration     float64            `json:"duration"`
	Steps        int                `json:"steps"`
	Gravity      [3]float64         `json:"gravity"`
	Pinned       []int              `json:"pinned"`
	SpringCounts map[string]int     `json:"spring_counts"`
	MeshRendered bool               `json:"mesh_rendered"`
	Metrics      map[string]float64 `json:"metrics"`
}

func (s *Store) Save(info RunInfo, result *sim.Result) (string, error) {
	final := result.Final()
	if final == nil {
		return "", ErrNoFinalFrame
	}

	name := info.Preset
	if name == "" {
		name = "cloth"
	}
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", name, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	info.ID = runID
	info.Timestamp = now
	info.Steps = result.StepsTaken
	info.Metrics = result.Metrics

	if err := writeJSON(filepath.Join(runDir, "metadata.json"), info); err != nil {
		return "", err
	}

	series := [][]string{{"time", "cx", "cy", "cz", "min_y"}}
	for i := range result.Times {
		c := result.Centers[i]
		series = append(series, []string{
			formatFloat(result.Times[i]),
			formatFloat(c.X), formatFloat(c.Y), formatFloat(c.Z),
			formatFloat(result.MinY[i]),
		})
	}
	if err := writeCSV(filepath.Join(runDir, "series.csv"), series); err != nil {
		return "", err
	}

	positions := [][]string{{"index", "x", "y", "z"}}
	for i, p := range final.Positions {
		positions = append(positions, []string{
			strconv.Itoa(i), formatFloat(p.X), formatFloat(p.Y), formatFloat(p.Z),
		})
	}
	if err := writeCSV(filepath.Join(runDir, "final.csv"), positions); err != nil {
		return "", err
	}

	return runID, nil
}

// List returns the stored runs, newest first.
func (s *Store) List() ([]RunInfo, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunInfo{}, nil
		}
		return nil, err
	}

	runs := make([]RunInfo, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}

		runs = append(runs, *meta)
	}

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunInfo, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunInfo
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}

	return &meta, nil
}

// Series is the per-step summary of a stored run.
type Series struct {
	Times   []float64
	Centers []r3.Vec
	MinY    []float64
}

func (s *Store) LoadSeries(runID string) (*Series, error) {
	records, err := readCSV(filepath.Join(s.baseDir, runID, "series.csv"))
	if err != nil {
		return nil, err
	}

	out := &Series{}
	for i, record := range records {
		vals, err := parseRow(record, 5)
		if err != nil {
			return nil, fmt.Errorf("series.csv row %d: %w", i+1, err)
		}
		out.Times = append(out.Times, vals[0])
		out.Centers = append(out.Centers, r3.Vec{X: vals[1], Y: vals[2], Z: vals[3]})
		out.MinY = append(out.MinY, vals[4])
	}
	return out, nil
}

func (s *Store) LoadFinal(runID string) ([]r3.Vec, error) {
	records, err := readCSV(filepath.Join(s.baseDir, runID, "final.csv"))
	if err != nil {
		return nil, err
	}

	out := make([]r3.Vec, len(records))
	for i, record := range records {
		vals, err := parseRow(record, 4)
		if err != nil {
			return nil, fmt.Errorf("final.csv row %d: %w", i+1, err)
		}
		idx := int(vals[0])
		if idx < 0 || idx >= len(out) {
			return nil, fmt.Errorf("final.csv row %d: index %d out of range", i+1, idx)
		}
		out[idx] = r3.Vec{X: vals[1], Y: vals[2], Z: vals[3]}
	}
	return out, nil
}

func writeJSON(path string, v interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	return f.Close()
}

// readCSV returns the records after the header line.
func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return [][]string{}, nil
	}
	return records[1:], nil
}

func parseRow(record []string, n int) ([]float64, error) {
	if len(record) != n {
		return nil, fmt.Errorf("want %d fields, got %d", n, len(record))
	}
	vals := make([]float64, n)
	for i, field := range record {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return vals, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
