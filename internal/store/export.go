// Package store writes recorded scenario traces to JSON or CSV.
package store

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"strconv"

	"github.com/san-kum/motorsim/internal/scenario"
)

type FrameData struct {
	Time      float64  `json:"t"`
	Voltage   float64  `json:"voltage"`
	Frequency float64  `json:"frequency"`
	Angle     float64  `json:"angle"`
	Speed     int      `json:"speed"`
	Ratio     *float64 `json:"ratio"`
}

type ExportData struct {
	Scenario    string      `json:"scenario"`
	Duration    float64     `json:"duration"`
	FPS         int         `json:"fps"`
	StepMode    string      `json:"step_mode"`
	Frames      int         `json:"frames"`
	Notified    int         `json:"notified"`
	Revolutions float64     `json:"revolutions"`
	Trace       []FrameData `json:"trace"`
}

func exportData(t *scenario.Trace) ExportData {
	data := ExportData{
		Scenario:    t.Scenario.Name,
		Duration:    t.Scenario.Duration,
		FPS:         t.Scenario.FPS,
		StepMode:    t.Scenario.StepMode,
		Frames:      len(t.Frames),
		Notified:    t.Notified,
		Revolutions: t.Revolutions(),
		Trace:       make([]FrameData, len(t.Frames)),
	}
	for i, f := range t.Frames {
		fd := FrameData{
			Time:      f.Time,
			Voltage:   f.Voltage,
			Frequency: f.Frequency,
			Angle:     f.Angle,
			Speed:     f.Speed,
		}
		if f.Ratio.Defined {
			r := f.Ratio.Value
			fd.Ratio = &r
		}
		data.Trace[i] = fd
	}
	return data
}

// WriteJSON encodes the trace with its summary. An undefined ratio is
// written as null.
func WriteJSON(w io.Writer, t *scenario.Trace) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(exportData(t))
}

func ExportJSON(path string, t *scenario.Trace) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, t)
}

// WriteCSV writes one row per frame. An undefined ratio is written as the
// placeholder shown on the panel.
func WriteCSV(w io.Writer, t *scenario.Trace) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"t", "voltage", "frequency", "angle", "speed", "ratio"}); err != nil {
		return err
	}
	for _, f := range t.Frames {
		row := []string{
			strconv.FormatFloat(f.Time, 'f', 4, 64),
			strconv.FormatFloat(f.Voltage, 'f', 0, 64),
			strconv.FormatFloat(f.Frequency, 'f', 3, 64),
			strconv.FormatFloat(f.Angle, 'f', 3, 64),
			strconv.Itoa(f.Speed),
			f.Ratio.String(),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func ExportCSV(path string, t *scenario.Trace) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteCSV(file, t); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
