package gui

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/rs/zerolog"

	"github.com/san-kum/motorsim/internal/audio"
	"github.com/san-kum/motorsim/internal/config"
	"github.com/san-kum/motorsim/internal/motor"
	"github.com/san-kum/motorsim/internal/panel"
	"github.com/san-kum/motorsim/internal/viz"
)

const (
	screenWidth  = 1280
	screenHeight = 720
	maxHistory   = 300
)

var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColPanel   = rl.NewColor(22, 22, 26, 255)
	ColAccent  = rl.NewColor(180, 180, 180, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColLed     = rl.NewColor(0, 255, 140, 255)
)

type slider struct {
	Label    string
	Unit     string
	Min, Max float64
	Bounds   rl.Rectangle
	Get      func() float64
	Set      func(float64)
	Format   string
}

func (s *slider) valueAt(x float32) float64 {
	t := float64((x - s.Bounds.X) / s.Bounds.Width)
	return s.Min + t*(s.Max-s.Min)
}

func (s *slider) fraction() float32 {
	return float32((s.Get() - s.Min) / (s.Max - s.Min))
}

type App struct {
	Panel   *panel.Panel
	Anim    *panel.Animation
	Mode    motor.StepMode
	Theme   viz.Theme
	Sliders []*slider
	Focus   int
	Drag    int
	History []float64

	ShowDiagram bool
	Hum         *audio.Hum
	Log         zerolog.Logger

	unsubscribe func()
}

func initWindow(fps int) {
	rl.InitWindow(screenWidth, screenHeight, "motorsim")
	rl.SetTargetFPS(int32(fps))
	rl.SetExitKey(0)
}

// NewApp builds the panel from cfg, mounts its animation and, when the
// config asks for it, starts the hum.
func NewApp(cfg *config.Config, log zerolog.Logger) *App {
	p := panel.New(cfg.Voltage, cfg.Frequency, panel.WithLogger(log))
	a := &App{
		Panel:   p,
		Mode:    cfg.Mode(),
		Theme:   viz.GetTheme(cfg.Theme),
		Drag:    -1,
		History: make([]float64, 0, maxHistory),
		Log:     log,
	}
	a.Sliders = []*slider{
		{
			Label: "Tension", Unit: "V", Format: "%.0f",
			Min: motor.MinVoltage, Max: motor.MaxVoltage,
			Bounds: rl.NewRectangle(60, 200, 300, 12),
			Get:    p.Voltage, Set: p.SetVoltage,
		},
		{
			Label: "Fréquence", Unit: "Hz", Format: "%.3f",
			Min: motor.MinFrequency, Max: motor.MaxFrequency,
			Bounds: rl.NewRectangle(60, 300, 300, 12),
			Get:    p.Frequency, Set: p.SetFrequency,
		},
	}

	if cfg.Hum {
		a.Hum = audio.NewHum(log)
		if err := a.Hum.Start(); err != nil {
			log.Warn().Err(err).Msg("hum disabled")
			a.Hum = nil
		}
	}
	a.unsubscribe = p.Subscribe(func(s panel.Snapshot) {
		if a.Hum != nil {
			a.Hum.Set(s.Voltage, s.Frequency)
		}
	})
	if a.Hum != nil {
		a.Hum.Set(p.Voltage(), p.Frequency())
	}

	a.Anim = p.Mount(a.Mode)
	return a
}

// Run opens the window and blocks until it is closed.
func Run(cfg *config.Config, log zerolog.Logger) {
	initWindow(cfg.FPS)
	defer rl.CloseWindow()

	app := NewApp(cfg, log)
	defer app.Close()
	app.RunLoop()
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if !a.Update() {
			return
		}
		a.Draw()
	}
}

// Close unmounts the panel and releases audio.
func (a *App) Close() {
	a.Panel.Unmount()
	if a.unsubscribe != nil {
		a.unsubscribe()
	}
	if a.Hum != nil {
		a.Hum.Stop()
	}
}

// Update handles input and advances one frame. It reports false once the
// user asked to quit.
func (a *App) Update() bool {
	if rl.IsKeyPressed(rl.KeyQ) || rl.IsKeyPressed(rl.KeyEscape) {
		return false
	}
	a.handleMouse()
	a.handleKeys()

	if a.Anim.Tick(time.Now()) {
		a.History = append(a.History, float64(a.Panel.Speed()))
		if len(a.History) > maxHistory {
			a.History = a.History[len(a.History)-maxHistory:]
		}
	}
	return true
}

func (a *App) handleMouse() {
	mouse := rl.GetMousePosition()
	if !rl.IsMouseButtonDown(rl.MouseLeftButton) {
		a.Drag = -1
		return
	}
	if a.Drag < 0 {
		for i, s := range a.Sliders {
			hit := s.Bounds
			hit.Y -= 10
			hit.Height += 20
			if rl.CheckCollisionPointRec(mouse, hit) {
				a.Drag, a.Focus = i, i
				break
			}
		}
	}
	if a.Drag >= 0 {
		s := a.Sliders[a.Drag]
		s.Set(s.valueAt(mouse.X))
	}
}

func (a *App) handleKeys() {
	s := a.Sliders[a.Focus]
	small, large := 1.0, 10.0
	if a.Focus == 1 {
		small, large = 0.1, 1
	}
	step := small
	if rl.IsKeyDown(rl.KeyLeftShift) {
		step = large
	}

	switch {
	case rl.IsKeyPressed(rl.KeyTab), rl.IsKeyPressed(rl.KeyUp), rl.IsKeyPressed(rl.KeyDown):
		a.Focus = (a.Focus + 1) % len(a.Sliders)
	case rl.IsKeyPressed(rl.KeyRight), rl.IsKeyPressed(rl.KeyL):
		s.Set(s.Get() + step)
	case rl.IsKeyPressed(rl.KeyLeft), rl.IsKeyPressed(rl.KeyH):
		s.Set(s.Get() - step)
	case rl.IsKeyPressed(rl.KeyRightBracket):
		a.Panel.SetFrequency(a.Panel.Frequency() + motor.FrequencyStep)
	case rl.IsKeyPressed(rl.KeyLeftBracket):
		a.Panel.SetFrequency(a.Panel.Frequency() - motor.FrequencyStep)
	case rl.IsKeyPressed(rl.KeyS):
		if a.Anim.State() == panel.Running {
			a.Panel.Unmount()
		} else {
			a.Anim = a.Panel.Mount(a.Mode)
		}
	case rl.IsKeyPressed(rl.KeyD):
		a.ShowDiagram = !a.ShowDiagram
	case rl.IsKeyPressed(rl.KeyT):
		a.Theme = viz.NextTheme(a.Theme.Name)
	}
}
