package scene

import (
	"fmt"
	"io"
	"strings"
)

// WriteSVG renders the scene as a standalone SVG document. Group rotations
// are emitted as rotate() transforms so the rotor turns about its center.
func WriteSVG(w io.Writer, s Scene) error {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<defs>
<filter id="glow" x="-50%%" y="-50%%" width="200%%" height="200%%">
<feGaussianBlur stdDeviation="3" result="coloredBlur"/>
<feMerge><feMergeNode in="coloredBlur"/><feMergeNode in="SourceGraphic"/></feMerge>
</filter>
</defs>
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, Size, Size, Size, Size))

	writeGroup(&sb, s.Root, 0)
	sb.WriteString("</svg>\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

func writeGroup(sb *strings.Builder, g Group, depth int) {
	indent := strings.Repeat("  ", depth)
	sb.WriteString(indent + "<g")
	if g.Name != "" {
		sb.WriteString(fmt.Sprintf(` class="%s"`, g.Name))
	}
	if g.Transform.Angle != 0 {
		sb.WriteString(fmt.Sprintf(` transform="rotate(%.3f %.0f %.0f)"`, g.Transform.Angle, g.Transform.Center.X, g.Transform.Center.Y))
	}
	if g.Glow {
		sb.WriteString(` filter="url(#glow)"`)
	}
	sb.WriteString(">\n")

	for _, e := range g.Elements {
		sb.WriteString(indent + "  " + elementSVG(e) + "\n")
	}
	for _, child := range g.Groups {
		writeGroup(sb, child, depth+1)
	}
	sb.WriteString(indent + "</g>\n")
}

func elementSVG(e Element) string {
	paint := func() string {
		fill := e.Fill
		if fill == "" {
			fill = "none"
		}
		s := fmt.Sprintf(`fill="%s"`, fill)
		if e.Stroke != "" {
			s += fmt.Sprintf(` stroke="%s" stroke-width="%g"`, e.Stroke, e.StrokeWidth)
		}
		return s
	}

	switch e.Kind {
	case KindCircle:
		return fmt.Sprintf(`<circle cx="%g" cy="%g" r="%g" %s/>`, e.C.X, e.C.Y, e.R, paint())
	case KindEllipse:
		return fmt.Sprintf(`<ellipse cx="%g" cy="%g" rx="%g" ry="%g" %s/>`, e.C.X, e.C.Y, e.RX, e.RY, paint())
	case KindRect:
		return fmt.Sprintf(`<rect x="%g" y="%g" width="%g" height="%g" rx="%g" %s/>`, e.X, e.Y, e.W, e.H, e.R, paint())
	case KindPath:
		var d strings.Builder
		for i, p := range e.Points {
			if i == 0 {
				d.WriteString(fmt.Sprintf("M %g %g", p.X, p.Y))
			} else {
				d.WriteString(fmt.Sprintf(" L %g %g", p.X, p.Y))
			}
		}
		if e.Closed {
			d.WriteString(" Z")
		}
		return fmt.Sprintf(`<path d="%s" %s/>`, d.String(), paint())
	case KindText:
		return fmt.Sprintf(`<text x="%g" y="%g" font-size="%g" font-weight="bold" fill="%s">%s</text>`, e.C.X, e.C.Y, e.FontSize, e.Fill, e.Text)
	}
	return ""
}
