package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/motorsim/internal/motor"
	"github.com/san-kum/motorsim/internal/panel"
	"github.com/san-kum/motorsim/internal/scene"
	"github.com/san-kum/motorsim/internal/viz"
)

// motor drawing area
const (
	motorX    = 440
	motorY    = 130
	motorSide = 400
)

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	a.drawGenerator()
	a.drawMotor()
	a.drawTachymeter()
	a.drawHUD()

	rl.EndDrawing()
}

func (a *App) color(s string, fallback rl.Color) rl.Color {
	c, err := viz.ParseColor(s)
	if err != nil {
		return fallback
	}
	return rl.NewColor(c.R, c.G, c.B, c.A)
}

func (a *App) box(x, y, w, h int32, title string) {
	rl.DrawRectangleRounded(rl.NewRectangle(float32(x), float32(y), float32(w), float32(h)), 0.04, 8, ColPanel)
	rl.DrawText(title, x+20, y+16, 20, a.color(string(a.Theme.Primary), ColSelect))
}

func (a *App) drawGenerator() {
	a.box(30, 110, 370, 460, "Générateur Triphasé")
	for i, s := range a.Sliders {
		y := int32(s.Bounds.Y)
		label := ColText
		if i == a.Focus {
			label = ColSelect
		}
		rl.DrawText(fmt.Sprintf("%s (%s)", s.Label, s.Unit), 60, y-40, 18, label)
		rl.DrawText(fmt.Sprintf(s.Format+" %s", s.Get(), s.Unit), 260, y-40, 18, ColLed)

		track := s.Bounds
		rl.DrawRectangleRounded(track, 1, 8, ColTextDim)
		fill := track
		fill.Width *= s.fraction()
		rl.DrawRectangleRounded(fill, 1, 8, a.color(string(a.Theme.Accent), ColAccent))
		knobX := int32(track.X + fill.Width)
		rl.DrawCircle(knobX, int32(track.Y+track.Height/2), 10, ColSelect)
	}

	snap := a.Panel.Snapshot()
	a.led(60, 380, fmt.Sprintf("U = %.0f V", snap.Voltage))
	a.led(60, 440, fmt.Sprintf("f = %.1f Hz", snap.Frequency))
}

func (a *App) led(x, y int32, text string) {
	rl.DrawRectangle(x, y, 300, 44, rl.Black)
	rl.DrawRectangleLines(x, y, 300, 44, ColTextDim)
	rl.DrawText(text, x+16, y+10, 24, ColLed)
}

func (a *App) drawMotor() {
	a.box(motorX-20, 110, motorSide+40, 460, "Moteur Asynchrone Triphasé")

	snap := a.Panel.Snapshot()
	scale := float32(motorSide) / scene.Size
	toScreen := func(p scene.Point) rl.Vector2 {
		return rl.NewVector2(motorX+float32(p.X)*scale, motorY+30+float32(p.Y)*scale)
	}

	strokes, labels := scene.Motor(motor.NormalizeAngle(snap.Angle)).Flatten()
	for _, st := range strokes {
		col := a.color(st.Color, ColAccent)
		switch st.Group {
		case scene.RotorGroup, "hub":
			col = a.color(string(a.Theme.Secondary), col)
		case "propeller", "axle":
			col = a.color(string(a.Theme.Accent), col)
		}
		n := len(st.Points)
		for i := 0; i+1 < n; i++ {
			rl.DrawLineEx(toScreen(st.Points[i]), toScreen(st.Points[i+1]), 2, col)
		}
		if st.Closed && n > 2 {
			rl.DrawLineEx(toScreen(st.Points[n-1]), toScreen(st.Points[0]), 2, col)
		}
	}
	for _, l := range labels {
		at := toScreen(l.At)
		size := int32(l.Size * float64(scale))
		w := rl.MeasureText(l.Text, size)
		rl.DrawText(l.Text, int32(at.X)-w/2, int32(at.Y)-size/2, size, a.color(l.Color, ColText))
	}
}

func (a *App) drawTachymeter() {
	a.box(880, 110, 370, 460, "Tachymètre")
	snap := a.Panel.Snapshot()

	rl.DrawText("Vitesse", 910, 170, 18, ColText)
	rl.DrawText(fmt.Sprintf("%d tr/min", snap.Speed), 910, 196, 36, ColLed)
	rl.DrawText("Rapport U/f", 910, 260, 18, ColText)
	rl.DrawText(snap.Ratio.String()+" V/Hz", 910, 286, 30, ColSelect)

	// speed history
	gx, gy, gw, gh := float32(910), float32(360), float32(310), float32(160)
	rl.DrawRectangleLines(int32(gx), int32(gy), int32(gw), int32(gh), ColTextDim)
	full := float64(motor.ComputeSpeed(motor.MaxFrequency))
	col := a.color(string(a.Theme.Speed), ColLed)
	for i := 1; i < len(a.History); i++ {
		x0 := gx + gw*float32(i-1)/maxHistory
		x1 := gx + gw*float32(i)/maxHistory
		y0 := gy + gh - gh*float32(a.History[i-1]/full)
		y1 := gy + gh - gh*float32(a.History[i]/full)
		rl.DrawLineEx(rl.NewVector2(x0, y0), rl.NewVector2(x1, y1), 2, col)
	}
}

func (a *App) drawHUD() {
	rl.DrawText("motorsim", 30, 30, 24, ColSelect)
	rl.DrawText(fmt.Sprintf(":: %s", a.Theme.Name), 160, 34, 16, ColText)

	status, col := "RUNNING", ColSelect
	if a.Anim.State() != panel.Running {
		status, col = "STOPPED", ColTextDim
	}
	rl.DrawText(status, 1150, 30, 16, col)

	if a.Hum != nil {
		rl.DrawText(fmt.Sprintf("HUM %.0f Hz", a.Hum.Pitch()), 30, 650, 14, ColAccent)
	} else {
		rl.DrawText("HUM [OFF]", 30, 650, 14, rl.Red)
	}

	if a.ShowDiagram {
		rl.DrawRectangle(0, 0, screenWidth, screenHeight, rl.NewColor(0, 0, 0, 200))
		rl.DrawText(wiring, 80, 200, 16, ColAccent)
	}

	rl.DrawText("[DRAG/←→] ADJUST  [TAB] SELECT  [S] MOTOR  [D] DIAGRAM  [T] THEME  [Q] QUIT", 560, 680, 14, ColTextDim)
	rl.DrawText(fmt.Sprintf("%d FPS", int32(rl.GetFPS())), 30, 680, 14, ColTextDim)
}

// raylib's default font has no box drawing glyphs.
const wiring = `GENERATEUR 3~            MOTEUR 3~ (p=2)          TACHYMETRE
 U 0..400 V   L1 ------- U1 |            |
 f 0..50 Hz   L2 ------- V1 |   rotor    |===== shaft ===== n tr/min
              L3 ------- W1 |            |`
