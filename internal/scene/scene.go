// Package scene describes the motor drawing as a small scene graph: a
// stator ring, three stator coils and a rotor assembly that turns about
// the motor's center.
package scene

import "math"

// Size is the side of the square view box in scene units.
const Size = 300.0

// Center is the rotor axis.
var Center = Point{150, 150}

type Point struct {
	X, Y float64
}

type Kind int

const (
	KindCircle Kind = iota
	KindEllipse
	KindRect
	KindPath
	KindText
)

// Element is a single drawable primitive. Which fields are meaningful
// depends on Kind: circles use C and R, ellipses C, RX and RY, rects the
// box X, Y, W, H with corner radius R, paths Points and Closed, text C,
// Text and FontSize.
type Element struct {
	Kind        Kind
	C           Point
	R, RX, RY   float64
	X, Y, W, H  float64
	Points      []Point
	Closed      bool
	Text        string
	FontSize    float64
	Fill        string
	Stroke      string
	StrokeWidth float64
}

// Rotation turns a group by Angle degrees (clockwise on screen, as in SVG)
// about Center.
type Rotation struct {
	Angle  float64
	Center Point
}

// Apply maps a point from group space into parent space.
func (r Rotation) Apply(p Point) Point {
	if r.Angle == 0 {
		return p
	}
	rad := r.Angle * math.Pi / 180
	sin, cos := math.Sincos(rad)
	dx, dy := p.X-r.Center.X, p.Y-r.Center.Y
	return Point{
		X: r.Center.X + dx*cos - dy*sin,
		Y: r.Center.Y + dx*sin + dy*cos,
	}
}

type Group struct {
	Name      string
	Transform Rotation
	Glow      bool
	Elements  []Element
	Groups    []Group
}

type Scene struct {
	Root Group
}

// Find returns the first group with the given name, depth first.
func (s *Scene) Find(name string) *Group {
	return find(&s.Root, name)
}

func find(g *Group, name string) *Group {
	if g.Name == name {
		return g
	}
	for i := range g.Groups {
		if f := find(&g.Groups[i], name); f != nil {
			return f
		}
	}
	return nil
}
