package export

import (
	"encoding/json"
	"io"

	"github.com/san-kum/clothsim/internal/sim"
	"github.com/san-kum/clothsim/internal/storage"
)

type FrameData struct {
	Step      int          `json:"step"`
	Time      float64      `json:"time"`
	Positions [][3]float64 `json:"positions"`
}

type ExportData struct {
	Run     storage.RunInfo    `json:"run"`
	Steps   int                `json:"steps"`
	Times   []float64          `json:"times"`
	Centers [][3]float64       `json:"centers"`
	MinY    []float64          `json:"min_y"`
	Frames  []FrameData        `json:"frames"`
	Metrics map[string]float64 `json:"metrics"`
}

// WriteJSON encodes a complete run, including every sampled frame.
func WriteJSON(w io.Writer, info storage.RunInfo, result *sim.Result) error {
	data := ExportData{
		Run:     info,
		Steps:   result.StepsTaken,
		Times:   result.Times,
		Centers: make([][3]float64, len(result.Centers)),
		MinY:    result.MinY,
		Frames:  make([]FrameData, len(result.Frames)),
		Metrics: result.Metrics,
	}

	for i, c := range result.Centers {
		data.Centers[i] = [3]float64{c.X, c.Y, c.Z}
	}
	for i, f := range result.Frames {
		fd := FrameData{Step: f.Step, Time: f.Time, Positions: make([][3]float64, len(f.Positions))}
		for j, p := range f.Positions {
			fd.Positions[j] = [3]float64{p.X, p.Y, p.Z}
		}
		data.Frames[i] = fd
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
