package chart

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// SavePNG renders the speed characteristic to an image file. The format
// follows the file extension.
func SavePNG(path string, samples []Sample, voltage float64) error {
	if len(samples) < 2 {
		return fmt.Errorf("chart: need at least 2 samples, got %d", len(samples))
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Vitesse du moteur asynchrone (U = %.0f V)", voltage)
	p.X.Label.Text = "f (Hz)"
	p.Y.Label.Text = "n (tr/min)"

	pts := make(plotter.XYs, len(samples))
	for i, s := range samples {
		pts[i].X = s.Frequency
		pts[i].Y = float64(s.Speed)
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	p.Add(plotter.NewGrid(), line)

	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}
