package viz

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/motorsim/internal/scene"
)

// DrawScene rasterizes the scene outlines onto the canvas, scaled so the
// square view box fits the dot grid. Colors come from the elements, with
// the rotor recolored by the theme.
func (c *Canvas) DrawScene(s scene.Scene, theme Theme) {
	side := math.Min(float64(c.DotsWide()), float64(c.DotsHigh()))
	scale := (side - 1) / scene.Size
	offX := (float64(c.DotsWide()) - side) / 2
	offY := (float64(c.DotsHigh()) - side) / 2

	toDot := func(p scene.Point) (int, int) {
		return int(math.Round(offX + p.X*scale)), int(math.Round(offY + p.Y*scale))
	}

	strokes, _ := s.Flatten()
	for _, st := range strokes {
		c.Pen = strokeColor(st, theme)
		n := len(st.Points)
		for i := 0; i+1 < n; i++ {
			x0, y0 := toDot(st.Points[i])
			x1, y1 := toDot(st.Points[i+1])
			c.DrawLine(x0, y0, x1, y1)
		}
		if st.Closed && n > 2 {
			x0, y0 := toDot(st.Points[n-1])
			x1, y1 := toDot(st.Points[0])
			c.DrawLine(x0, y0, x1, y1)
		}
	}
}

func strokeColor(st scene.Stroke, theme Theme) lipgloss.Color {
	switch st.Group {
	case scene.RotorGroup, "hub":
		return theme.Secondary
	case "propeller", "axle":
		return theme.Accent
	case "motor":
		return theme.Muted
	}
	if hex, err := cssToHex(st.Color); err == nil {
		return lipgloss.Color(hex)
	}
	return theme.Text
}

// cssToHex converts "#rgb", "#rrggbb" and "rgba(r,g,b,a)" colors to a hex
// string lipgloss understands. Alpha is dropped.
func cssToHex(s string) (string, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") && (len(s) == 4 || len(s) == 7) {
		return s, nil
	}
	if strings.HasPrefix(s, "rgba(") && strings.HasSuffix(s, ")") {
		parts := strings.Split(s[len("rgba("):len(s)-1], ",")
		if len(parts) != 4 {
			return "", fmt.Errorf("viz: malformed color %q", s)
		}
		var rgb [3]int
		for i := 0; i < 3; i++ {
			v, err := strconv.Atoi(strings.TrimSpace(parts[i]))
			if err != nil || v < 0 || v > 255 {
				return "", fmt.Errorf("viz: malformed color %q", s)
			}
			rgb[i] = v
		}
		return fmt.Sprintf("#%02x%02x%02x", rgb[0], rgb[1], rgb[2]), nil
	}
	return "", fmt.Errorf("viz: unsupported color %q", s)
}

// ParseColor decodes the same color forms as the scene uses, plus theme
// hex strings, into an RGBA value.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "rgba(") {
		hex, err := cssToHex(s)
		if err != nil {
			return color.RGBA{}, err
		}
		c, err := ParseColor(hex)
		if err != nil {
			return color.RGBA{}, err
		}
		parts := strings.Split(s[len("rgba("):len(s)-1], ",")
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil || a < 0 || a > 1 {
			return color.RGBA{}, fmt.Errorf("viz: malformed color %q", s)
		}
		c.A = uint8(math.Round(a * 255))
		return c, nil
	}
	if !strings.HasPrefix(s, "#") {
		return color.RGBA{}, fmt.Errorf("viz: unsupported color %q", s)
	}
	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("viz: malformed color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("viz: malformed color %q", s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}
