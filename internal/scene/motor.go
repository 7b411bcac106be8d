package scene

import "fmt"

const (
	Phase1Color = "#4CAF50"
	Phase2Color = "#FF5252"
	Phase3Color = "#2196F3"

	ringStroke  = "rgba(100,150,255,0.2)"
	rotorFill   = "#2a3040"
	barFill     = "#555"
	hubFill     = "#1a1f2f"
	bladeFill   = "rgba(200,220,255,0.7)"
	bladeStroke = "rgba(100,150,255,0.8)"
	axleFill    = "rgba(100,150,255,0.6)"
)

const RotorGroup = "rotor"

// Motor builds the motor drawing with the rotor turned by angle degrees.
func Motor(angle float64) Scene {
	return Scene{Root: Group{
		Name: "motor",
		Elements: []Element{
			{Kind: KindCircle, C: Center, R: 130, Stroke: ringStroke, StrokeWidth: 3},
		},
		Groups: []Group{
			rotor(angle),
			{Name: "stator", Groups: []Group{
				coil("phase1", Phase1Color, horizontalCoil(10, 50, 125, 1), Point{35, 120}, "Bobine 1"),
				coil("phase2", Phase2Color, verticalCoil(155, 15, 45), Point{175, 55}, "Bobine 2"),
				coil("phase3", Phase3Color, horizontalCoil(210, 180, 210, -1), Point{185, 255}, "Bobine 3"),
			}},
		},
	}}
}

func rotor(angle float64) Group {
	g := Group{
		Name:      RotorGroup,
		Transform: Rotation{Angle: angle, Center: Center},
		Elements: []Element{
			{Kind: KindCircle, C: Center, R: 80, Fill: rotorFill, Stroke: "rgba(100,150,255,0.4)", StrokeWidth: 2},
		},
	}

	bars := Group{Name: "bars"}
	for i := 0; i < 4; i++ {
		off := 135 + 10*float64(i)
		bars.Elements = append(bars.Elements,
			Element{Kind: KindRect, X: off, Y: 75, W: 4, H: 30, R: 2, Fill: barFill},
			Element{Kind: KindRect, X: off, Y: 195, W: 4, H: 30, R: 2, Fill: barFill},
			Element{Kind: KindRect, X: 75, Y: off, W: 30, H: 4, R: 2, Fill: barFill},
			Element{Kind: KindRect, X: 195, Y: off, W: 30, H: 4, R: 2, Fill: barFill},
		)
	}

	blade := func(cx, cy, rx, ry float64) Element {
		return Element{Kind: KindEllipse, C: Point{cx, cy}, RX: rx, RY: ry, Fill: bladeFill, Stroke: bladeStroke, StrokeWidth: 2}
	}
	propeller := Group{Name: "propeller", Elements: []Element{
		blade(150, 110, 15, 40),
		blade(150, 190, 15, 40),
		blade(110, 150, 40, 15),
		blade(190, 150, 40, 15),
	}}

	g.Groups = []Group{
		bars,
		{Name: "hub", Elements: []Element{
			{Kind: KindCircle, C: Center, R: 25, Fill: hubFill, Stroke: "rgba(100,150,255,0.5)", StrokeWidth: 2},
		}},
		propeller,
		{Name: "axle", Elements: []Element{
			{Kind: KindCircle, C: Center, R: 8, Fill: axleFill},
		}},
	}
	return g
}

// coilGeometry is the winding of one coil: the supply lead, the nested
// winding loops, the connector to the rotor side and the terminal block.
type coilGeometry struct {
	lead      [2]Point
	loops     [][]Point
	connector [2]Point
	terminal  Element
}

func coil(name, color string, geo coilGeometry, labelAt Point, label string) Group {
	g := Group{Name: name, Glow: true}
	g.Elements = append(g.Elements, Element{Kind: KindPath, Points: geo.lead[:], Stroke: barFill, StrokeWidth: 3})
	for _, loop := range geo.loops {
		g.Elements = append(g.Elements, Element{Kind: KindPath, Points: loop, Closed: true, Stroke: color, StrokeWidth: 2.5})
	}
	g.Elements = append(g.Elements,
		Element{Kind: KindPath, Points: geo.connector[:], Stroke: color, StrokeWidth: 4},
		geo.terminal,
		Element{Kind: KindText, C: labelAt, Text: label, FontSize: 14, Fill: color},
	)
	return g
}

// horizontalCoil lays out a coil whose lead runs along y=145 (dir=1,
// entering from the left) or y=225 (dir=-1, entering from the right).
func horizontalCoil(leadStart, loopEdge, loopTop float64, dir float64) coilGeometry {
	var geo coilGeometry
	if dir > 0 {
		y := 145.0
		geo.lead = [2]Point{{leadStart, y}, {loopEdge, y}}
		for i := 0; i < 5; i++ {
			d := 2 * float64(i)
			geo.loops = append(geo.loops, box(loopEdge+d, loopTop+d, loopEdge+20-d, loopTop+40-d))
		}
		geo.connector = [2]Point{{loopEdge + 20, y}, {loopEdge + 30, y}}
		geo.terminal = terminal(loopEdge-2, y-5, 24, 10)
		return geo
	}
	y := 225.0
	geo.lead = [2]Point{{leadStart, y}, {loopEdge, y}}
	for i := 0; i < 5; i++ {
		d := 2 * float64(i)
		geo.loops = append(geo.loops, box(loopEdge-20+d, loopTop+d, loopEdge-d, loopTop+30-d))
	}
	geo.connector = [2]Point{{loopEdge - 20, y}, {loopEdge - 30, y}}
	geo.terminal = terminal(loopEdge-2, y-5, 24, 10)
	return geo
}

// verticalCoil lays out the top coil, whose lead drops along x.
func verticalCoil(x, leadStart, loopTop float64) coilGeometry {
	var geo coilGeometry
	geo.lead = [2]Point{{x, leadStart}, {x, loopTop}}
	for i := 0; i < 5; i++ {
		d := 2 * float64(i)
		geo.loops = append(geo.loops, box(x-15+d, loopTop+d, x+15-d, loopTop+20-d))
	}
	geo.connector = [2]Point{{x, loopTop + 20}, {x, loopTop + 30}}
	geo.terminal = terminal(x-5, loopTop-2, 10, 24)
	return geo
}

func box(x0, y0, x1, y1 float64) []Point {
	return []Point{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}
}

func terminal(x, y, w, h float64) Element {
	return Element{Kind: KindRect, X: x, Y: y, W: w, H: h, R: 2, Fill: "#666", Stroke: "#888", StrokeWidth: 1}
}

func (k Kind) String() string {
	switch k {
	case KindCircle:
		return "circle"
	case KindEllipse:
		return "ellipse"
	case KindRect:
		return "rect"
	case KindPath:
		return "path"
	case KindText:
		return "text"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}
