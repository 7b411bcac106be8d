// Package chart builds the speed characteristic of the motor over a range
// of supply frequencies and renders it for the terminal or as an image.
package chart

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/motorsim/internal/motor"
)

// MaxSamples is the number of distinct settings of the frequency control.
var MaxSamples = int(math.Round((motor.MaxFrequency-motor.MinFrequency)/motor.FrequencyStep)) + 1

// Sample is one operating point of the characteristic.
type Sample struct {
	Frequency float64
	Speed     int
	Ratio     motor.Ratio
}

// Sweep samples the characteristic at constant voltage from lo to hi
// inclusive in steps of step hertz. Bounds are clamped to the frequency
// control range; steps finer than the control resolution are rejected.
func Sweep(voltage, lo, hi, step float64) ([]Sample, error) {
	if math.IsNaN(step) || math.IsInf(step, 0) || step <= 0 {
		return nil, fmt.Errorf("step=%g must be positive: %w", step, motor.ErrOutOfRange)
	}
	if step < motor.FrequencyStep {
		return nil, fmt.Errorf("step=%g below the %g Hz resolution: %w", step, motor.FrequencyStep, motor.ErrOutOfRange)
	}
	lo, hi = motor.ClampFrequency(lo), motor.ClampFrequency(hi)
	if lo > hi {
		return nil, fmt.Errorf("empty range [%g, %g]: %w", lo, hi, motor.ErrOutOfRange)
	}
	v := motor.ClampVoltage(voltage)

	n := int((hi-lo)/step+1e-9) + 1
	if n > MaxSamples {
		n = MaxSamples
	}
	samples := make([]Sample, 0, n)
	for i := 0; i < n; i++ {
		f := motor.ClampFrequency(lo + float64(i)*step)
		samples = append(samples, Sample{Frequency: f, Speed: motor.ComputeSpeed(f), Ratio: motor.ComputeRatio(v, f)})
	}
	return samples, nil
}

// Speeds extracts the speed column as floats for plotting.
func Speeds(samples []Sample) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = float64(s.Speed)
	}
	return out
}

// Plot renders the speed column as a terminal line chart.
func Plot(samples []Sample, width, height int, caption string) string {
	if len(samples) < 2 {
		return ""
	}
	return asciigraph.Plot(Speeds(samples),
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}

// WriteTable prints the samples as aligned columns.
func WriteTable(w io.Writer, samples []Sample) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "f (Hz)\tn (tr/min)\tU/f (V/Hz)")
	for _, s := range samples {
		fmt.Fprintf(tw, "%.3f\t%d\t%s\n", s.Frequency, s.Speed, s.Ratio)
	}
	return tw.Flush()
}
