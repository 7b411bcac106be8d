package tui

import (
	_ "embed"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/rs/zerolog"

	"github.com/san-kum/motorsim/internal/config"
	"github.com/san-kum/motorsim/internal/motor"
	"github.com/san-kum/motorsim/internal/panel"
	"github.com/san-kum/motorsim/internal/scene"
	"github.com/san-kum/motorsim/internal/viz"
)

//go:embed assets/wiring.txt
var wiringDiagram string

const (
	canvasWidth     = 40
	canvasHeight    = 20
	sliderWidth     = 28
	historyCapacity = 120
)

type control int

const (
	controlVoltage control = iota
	controlFrequency
)

// Hum receives the generator settings whenever they change.
type Hum interface {
	Set(voltage, frequency float64)
}

// tickMsg is one display frame for the animation of generation gen.
type tickMsg struct {
	gen uint64
	t   time.Time
}

func tick(gen uint64, fps int) tea.Cmd {
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg { return tickMsg{gen: gen, t: t} })
}

// view holds render state shared by every copy of the model. The panel
// observer keeps it current.
type view struct {
	canvas  *viz.Canvas
	theme   viz.Theme
	history []float64
	hum     Hum
}

func (v *view) redraw(s panel.Snapshot) {
	v.canvas.Clear()
	v.canvas.DrawScene(scene.Motor(motor.NormalizeAngle(s.Angle)), v.theme)
	if v.hum != nil {
		v.hum.Set(s.Voltage, s.Frequency)
	}
}

type model struct {
	panel       *panel.Panel
	anim        *panel.Animation
	unsubscribe func()
	mode        motor.StepMode
	fps         int

	view  *view
	focus control

	editing bool
	editBuf string

	showDiagram bool
	showHelp    bool

	width, height int
	log           zerolog.Logger
}

type Option func(*model)

func WithHum(h Hum) Option {
	return func(m *model) { m.view.hum = h }
}

func WithLogger(l zerolog.Logger) Option {
	return func(m *model) { m.log = l }
}

// NewModel builds the panel described by cfg and mounts its animation.
func NewModel(cfg *config.Config, opts ...Option) model {
	m := model{
		mode:   cfg.Mode(),
		fps:    cfg.FPS,
		view:   &view{canvas: viz.NewCanvas(canvasWidth, canvasHeight), theme: viz.GetTheme(cfg.Theme)},
		width:  120,
		height: 40,
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	if m.fps <= 0 {
		m.fps = config.DefaultFPS
	}

	m.panel = panel.New(cfg.Voltage, cfg.Frequency, panel.WithLogger(m.log))
	m.unsubscribe = m.panel.Subscribe(m.view.redraw)
	m.view.redraw(m.panel.Snapshot())
	m.anim = m.panel.Mount(m.mode)
	return m
}

func (m model) Init() tea.Cmd { return tick(m.anim.Generation(), m.fps) }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case tickMsg:
		// frames of a stopped or replaced animation are dropped and not rescheduled
		if msg.gen != m.anim.Generation() || !m.anim.Tick(msg.t) {
			return m, nil
		}
		m.record()
		return m, tick(m.anim.Generation(), m.fps)
	}
	return m, nil
}

func (m model) record() {
	h := append(m.view.history, float64(m.panel.Speed()))
	if len(h) > historyCapacity {
		h = h[len(h)-historyCapacity:]
	}
	m.view.history = h
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	if m.editing {
		return m.editKey(msg)
	}
	switch msg.String() {
	case "q", "ctrl+c":
		m.teardown()
		return m, tea.Quit
	case "tab", "up", "down", "k", "j":
		m.focus = 1 - m.focus
	case "left", "h":
		m.nudge(-1, smallStep)
	case "right", "l":
		m.nudge(1, smallStep)
	case "shift+left", "H":
		m.nudge(-1, largeStep)
	case "shift+right", "L":
		m.nudge(1, largeStep)
	case "[":
		m.nudge(-1, fineStep)
	case "]":
		m.nudge(1, fineStep)
	case "home", "0":
		m.set(m.min())
	case "end", "$":
		m.set(m.max())
	case "enter":
		m.editing = true
		m.editBuf = m.format(m.value())
	case "s":
		return m.toggleMotor()
	case "d":
		m.showDiagram = !m.showDiagram
	case "t":
		m.view.theme = viz.NextTheme(m.view.theme.Name)
		m.view.redraw(m.panel.Snapshot())
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

func (m model) editKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.editing, m.editBuf = false, ""
		m.teardown()
		return m, tea.Quit
	case "enter":
		if v, err := strconv.ParseFloat(strings.TrimSpace(m.editBuf), 64); err == nil {
			m.set(v)
		} else {
			m.log.Debug().Str("input", m.editBuf).Msg("ignored non-numeric entry")
		}
		m.editing, m.editBuf = false, ""
	case "esc":
		m.editing, m.editBuf = false, ""
	case "backspace":
		if len(m.editBuf) > 0 {
			m.editBuf = m.editBuf[:len(m.editBuf)-1]
		}
	default:
		if len(msg.String()) == 1 {
			c := msg.String()[0]
			if (c >= '0' && c <= '9') || c == '.' {
				m.editBuf += string(c)
			}
		}
	}
	return m, nil
}

type stepSize int

const (
	fineStep stepSize = iota
	smallStep
	largeStep
)

// step sizes per control: voltage moves by whole volts, frequency down to
// the control resolution.
func (m model) step(s stepSize) float64 {
	if m.focus == controlVoltage {
		switch s {
		case largeStep:
			return 10
		default:
			return motor.VoltageStep
		}
	}
	switch s {
	case fineStep:
		return motor.FrequencyStep
	case largeStep:
		return 1
	default:
		return 0.1
	}
}

func (m model) nudge(dir float64, s stepSize) {
	m.set(m.value() + dir*m.step(s))
}

func (m model) value() float64 {
	if m.focus == controlVoltage {
		return m.panel.Voltage()
	}
	return m.panel.Frequency()
}

func (m model) set(v float64) {
	if m.focus == controlVoltage {
		m.panel.SetVoltage(v)
		return
	}
	m.panel.SetFrequency(v)
}

func (m model) min() float64 {
	if m.focus == controlVoltage {
		return motor.MinVoltage
	}
	return motor.MinFrequency
}

func (m model) max() float64 {
	if m.focus == controlVoltage {
		return motor.MaxVoltage
	}
	return motor.MaxFrequency
}

func (m model) format(v float64) string {
	if m.focus == controlVoltage {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'f', 3, 64)
}

// toggleMotor unmounts a running animation or mounts a fresh one.
func (m model) toggleMotor() (model, tea.Cmd) {
	if m.anim.State() == panel.Running {
		m.panel.Unmount()
		return m, nil
	}
	m.anim = m.panel.Mount(m.mode)
	return m, tick(m.anim.Generation(), m.fps)
}

func (m *model) teardown() {
	m.panel.Unmount()
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

func (m model) View() string {
	th := m.view.theme
	title := lipgloss.NewStyle().Foreground(th.Primary).Bold(true)
	label := lipgloss.NewStyle().Foreground(th.Muted)
	text := lipgloss.NewStyle().Foreground(th.Text)
	box := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(th.Muted).Padding(0, 1)

	s := m.panel.Snapshot()

	var gen strings.Builder
	gen.WriteString(title.Render("Générateur Triphasé") + "\n\n")
	gen.WriteString(m.slider("Tension (V)", fmt.Sprintf("%.0f V", s.Voltage), s.Voltage/motor.MaxVoltage, controlVoltage, th.Voltage) + "\n\n")
	gen.WriteString(m.slider("Fréquence (Hz)", fmt.Sprintf("%.3f Hz", s.Frequency), s.Frequency/motor.MaxFrequency, controlFrequency, th.Frequency) + "\n\n")
	led := lipgloss.NewStyle().Foreground(th.Speed).Background(th.Background).Bold(true).Padding(0, 1)
	gen.WriteString(led.Render(fmt.Sprintf("U = %.0f V", s.Voltage)) + " " + led.Render(fmt.Sprintf("f = %.1f Hz", s.Frequency)))

	status := lipgloss.NewStyle().Foreground(th.Speed).Render(viz.Spinner(m.anim.Frames()) + " en marche")
	if m.anim.State() != panel.Running {
		status = label.Render("○ arrêté")
	}
	var mot strings.Builder
	mot.WriteString(title.Render("Moteur Asynchrone Triphasé") + "  " + status + "\n")
	mot.WriteString(m.view.canvas.Render() + "\n")
	mot.WriteString(coilLegend())

	var tach strings.Builder
	tach.WriteString(title.Render("Tachymètre") + "\n\n")
	tach.WriteString(label.Render("Vitesse") + "\n")
	tach.WriteString(lipgloss.NewStyle().Foreground(th.Speed).Bold(true).Render(fmt.Sprintf("%d tr/min", s.Speed)) + "\n\n")
	tach.WriteString(label.Render("Rapport U/f") + "\n")
	tach.WriteString(text.Bold(true).Render(s.Ratio.String()+" V/Hz") + "\n\n")
	tach.WriteString(label.Render(fmt.Sprintf("Rotor %6.1f°", motor.NormalizeAngle(s.Angle))) + "\n")
	if len(m.view.history) > 1 {
		graph := asciigraph.Plot(m.view.history, asciigraph.Height(5), asciigraph.Width(24), asciigraph.Caption("n (tr/min)"))
		tach.WriteString("\n" + lipgloss.NewStyle().Foreground(th.Secondary).Render(graph))
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		box.Render(gen.String()),
		box.Render(mot.String()),
		box.Render(tach.String()),
	)

	var b strings.Builder
	b.WriteString(body + "\n")
	if m.showDiagram {
		b.WriteString(box.Render(text.Render(strings.TrimRight(wiringDiagram, "\n"))) + "\n")
	}
	if m.showHelp {
		b.WriteString(helpText + "\n")
	}
	b.WriteString(label.Render(" tab:control  ←→:±small  HL:±large  []:±0.001 Hz  enter:type  s:motor  d:diagram  t:theme  ?:help  q:quit"))
	return b.String()
}

func (m model) slider(name, value string, ratio float64, c control, color lipgloss.Color) string {
	th := m.view.theme
	bar := viz.Gauge(ratio, sliderWidth, color, th.Muted)

	cursor := "  "
	nameStyle := lipgloss.NewStyle().Foreground(th.Muted)
	if c == m.focus {
		cursor = lipgloss.NewStyle().Foreground(th.Accent).Bold(true).Render("▸ ")
		nameStyle = lipgloss.NewStyle().Foreground(th.Text).Bold(true)
	}
	if m.editing && c == m.focus {
		value = m.editBuf + "▋"
	}
	head := fmt.Sprintf("%-16s", name)
	return cursor + nameStyle.Render(head) + lipgloss.NewStyle().Foreground(color).Bold(true).Render(value) + "\n  " + bar
}

func coilLegend() string {
	dot := func(hex, name string) string {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("■ " + name)
	}
	return dot(scene.Phase1Color, "Bobine 1") + "  " + dot(scene.Phase2Color, "Bobine 2") + "  " + dot(scene.Phase3Color, "Bobine 3")
}

const helpText = `
╔══════════════════════════════════════════╗
║            KEYBOARD SHORTCUTS            ║
╠══════════════════════════════════════════╣
║  Tab/↑↓   - Select voltage or frequency  ║
║  ←→/h l   - Adjust (1 V or 0.1 Hz)       ║
║  H L      - Adjust (10 V or 1 Hz)        ║
║  [ ]      - Fine frequency (0.001 Hz)    ║
║  0 / $    - Minimum / maximum            ║
║  Enter    - Type a value                 ║
║  S        - Stop / start the rotor       ║
║  D        - Toggle wiring diagram        ║
║  T        - Cycle themes                 ║
║  Q        - Quit                         ║
╚══════════════════════════════════════════╝`

// Run starts the interactive panel and blocks until the user quits. The
// panel animation is released before Run returns.
func Run(cfg *config.Config, opts ...Option) error {
	m := NewModel(cfg, opts...)
	defer m.teardown()

	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
