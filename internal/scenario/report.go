package scenario

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
)

// WriteReport prints the state after each scripted step and a plot of the
// speed over the run.
func WriteReport(w io.Writer, t *Trace) error {
	fmt.Fprintf(w, "scenario: %s\n", t.Scenario.Name)
	if t.Scenario.Description != "" {
		fmt.Fprintf(w, "  %s\n", t.Scenario.Description)
	}
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "t (s)\tU (V)\tf (Hz)\tn (tr/min)\tU/f (V/Hz)")
	for _, f := range keyFrames(t) {
		fmt.Fprintf(tw, "%.2f\t%.0f\t%.3f\t%d\t%s\n", f.Time, f.Voltage, f.Frequency, f.Speed, f.Ratio)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nframes: %d  revolutions: %.1f\n", len(t.Frames), t.Revolutions())

	if len(t.Frames) > 1 {
		speeds := make([]float64, len(t.Frames))
		for i, f := range t.Frames {
			speeds[i] = float64(f.Speed)
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, asciigraph.Plot(speeds, asciigraph.Height(10), asciigraph.Width(70), asciigraph.Caption("speed (tr/min)")))
	}
	return nil
}

// keyFrames returns the first frame, every frame where an input changed,
// and the last frame.
func keyFrames(t *Trace) []Frame {
	var out []Frame
	for i, f := range t.Frames {
		if i == 0 || i == len(t.Frames)-1 {
			out = append(out, f)
			continue
		}
		prev := t.Frames[i-1]
		if f.Voltage != prev.Voltage || f.Frequency != prev.Frequency {
			out = append(out, f)
		}
	}
	return out
}
