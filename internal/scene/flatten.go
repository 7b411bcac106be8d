package scene

import "math"

// segments used to approximate circles and ellipses.
const curveSegments = 48

// Stroke is an element reduced to a polyline in view-box coordinates with
// every enclosing group transform applied.
type Stroke struct {
	Group  string
	Kind   Kind
	Points []Point
	Closed bool
	Color  string
}

// Label is a text element placed in view-box coordinates.
type Label struct {
	Group string
	At    Point
	Text  string
	Color string
	Size  float64
}

// Flatten walks the scene and returns its outlines and labels.
func (s Scene) Flatten() ([]Stroke, []Label) {
	var strokes []Stroke
	var labels []Label
	flatten(s.Root, nil, &strokes, &labels)
	return strokes, labels
}

func flatten(g Group, parents []Rotation, strokes *[]Stroke, labels *[]Label) {
	chain := parents
	if g.Transform.Angle != 0 {
		chain = append(append([]Rotation(nil), parents...), g.Transform)
	}
	apply := func(p Point) Point {
		for i := len(chain) - 1; i >= 0; i-- {
			p = chain[i].Apply(p)
		}
		return p
	}

	for _, e := range g.Elements {
		if e.Kind == KindText {
			*labels = append(*labels, Label{Group: g.Name, At: apply(e.C), Text: e.Text, Color: e.Fill, Size: e.FontSize})
			continue
		}
		pts, closed := e.Outline()
		for i := range pts {
			pts[i] = apply(pts[i])
		}
		color := e.Stroke
		if color == "" {
			color = e.Fill
		}
		*strokes = append(*strokes, Stroke{Group: g.Name, Kind: e.Kind, Points: pts, Closed: closed, Color: color})
	}
	for _, child := range g.Groups {
		flatten(child, chain, strokes, labels)
	}
}

// Outline returns the element outline in its own group space.
func (e Element) Outline() ([]Point, bool) {
	switch e.Kind {
	case KindCircle:
		return ellipse(e.C, e.R, e.R), true
	case KindEllipse:
		return ellipse(e.C, e.RX, e.RY), true
	case KindRect:
		return box(e.X, e.Y, e.X+e.W, e.Y+e.H), true
	case KindPath:
		pts := make([]Point, len(e.Points))
		copy(pts, e.Points)
		return pts, e.Closed
	}
	return nil, false
}

func ellipse(c Point, rx, ry float64) []Point {
	pts := make([]Point, curveSegments)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / curveSegments
		pts[i] = Point{c.X + rx*math.Cos(a), c.Y + ry*math.Sin(a)}
	}
	return pts
}
