package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/san-kum/motorsim/internal/motor"
	"github.com/san-kum/motorsim/internal/panel"
	"github.com/san-kum/motorsim/internal/scene"
	"github.com/san-kum/motorsim/internal/viz"
)

const (
	liveWidth   = 36
	liveHeight  = 18
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// LiveRenderer redraws the motor as plain ANSI text. It is a panel
// observer for runs without a bubbletea program.
type LiveRenderer struct {
	out       io.Writer
	frameRate int
	ansi      bool
	now       func() time.Time
	lastFrame time.Time
	canvas    *viz.Canvas
	frames    int
}

// NewLiveRenderer draws at most frameRate frames per second to out. With
// ansi off it prints one status line per frame and no drawing.
func NewLiveRenderer(out io.Writer, frameRate int, ansi bool) *LiveRenderer {
	if frameRate <= 0 {
		frameRate = 10
	}
	return &LiveRenderer{
		out:       out,
		frameRate: frameRate,
		ansi:      ansi,
		now:       time.Now,
		canvas:    viz.NewCanvas(liveWidth, liveHeight),
	}
}

func (r *LiveRenderer) OnSnapshot(s panel.Snapshot) {
	now := r.now()
	if !r.lastFrame.IsZero() && now.Sub(r.lastFrame) < time.Second/time.Duration(r.frameRate) {
		return
	}
	r.lastFrame = now
	r.frames++

	if !r.ansi {
		fmt.Fprintln(r.out, statusLine(s))
		return
	}

	r.canvas.Clear()
	r.canvas.DrawScene(scene.Motor(motor.NormalizeAngle(s.Angle)), viz.ThemeMinimal)

	var b strings.Builder
	b.WriteString(clearScreen)
	b.WriteString("  Moteur Asynchrone Triphasé\n")
	b.WriteString("  " + strings.Repeat("-", liveWidth) + "\n")
	for _, row := range strings.Split(strings.TrimRight(r.canvas.String(), "\n"), "\n") {
		b.WriteString("  " + row + "\n")
	}
	b.WriteString("  " + strings.Repeat("-", liveWidth) + "\n")
	b.WriteString("  " + statusLine(s) + "\n")
	fmt.Fprint(r.out, b.String())
}

// Frames reports how many snapshots were drawn.
func (r *LiveRenderer) Frames() int { return r.frames }

func (r *LiveRenderer) Start() {
	if r.ansi {
		fmt.Fprint(r.out, hideCursor)
	}
}

func (r *LiveRenderer) Stop() {
	if r.ansi {
		fmt.Fprint(r.out, showCursor)
	}
}

func statusLine(s panel.Snapshot) string {
	return fmt.Sprintf("U=%.0f V  f=%.3f Hz  n=%d tr/min  U/f=%s V/Hz  θ=%.1f°",
		s.Voltage, s.Frequency, s.Speed, s.Ratio, motor.NormalizeAngle(s.Angle))
}
