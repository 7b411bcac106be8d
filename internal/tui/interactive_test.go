package tui

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/motorsim/internal/config"
	"github.com/san-kum/motorsim/internal/panel"
)

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func update(t *testing.T, m model, msg tea.Msg) (model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

func backspaces(n int) []tea.KeyMsg {
	keys := make([]tea.KeyMsg, n)
	for i := range keys {
		keys[i] = tea.KeyMsg{Type: tea.KeyBackspace}
	}
	return keys
}

type recordingHum struct {
	voltage, frequency float64
	calls              int
}

func (h *recordingHum) Set(v, f float64) {
	h.voltage, h.frequency = v, f
	h.calls++
}

func TestModel_InitialView(t *testing.T) {
	m := NewModel(config.DefaultConfig())
	defer m.teardown()

	if m.Init() == nil {
		t.Fatal("Init should schedule the first frame")
	}
	out := m.View()
	for _, want := range []string{"915 tr/min", "12.38 V/Hz", "Générateur Triphasé", "Tachymètre", "400 V", "32.300 Hz"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestModel_Keys(t *testing.T) {
	tests := []struct {
		name      string
		keys      []tea.KeyMsg
		voltage   float64
		frequency float64
	}{
		{"voltage down", []tea.KeyMsg{{Type: tea.KeyLeft}}, 399, 32.3},
		{"voltage clamps at max", []tea.KeyMsg{{Type: tea.KeyRight}}, 400, 32.3},
		{"voltage large step", []tea.KeyMsg{runes("H"), runes("H")}, 380, 32.3},
		{"voltage to zero", []tea.KeyMsg{{Type: tea.KeyHome}}, 0, 32.3},
		{"frequency fine", []tea.KeyMsg{{Type: tea.KeyTab}, runes("]")}, 400, 32.301},
		{"frequency small", []tea.KeyMsg{{Type: tea.KeyTab}, runes("h")}, 400, 32.2},
		{"frequency max", []tea.KeyMsg{{Type: tea.KeyTab}, {Type: tea.KeyEnd}}, 400, 50},
		{"focus wraps", []tea.KeyMsg{{Type: tea.KeyTab}, {Type: tea.KeyTab}, {Type: tea.KeyLeft}}, 399, 32.3},
		{"typed voltage", []tea.KeyMsg{{Type: tea.KeyEnter}, {Type: tea.KeyBackspace}, {Type: tea.KeyBackspace}, {Type: tea.KeyBackspace}, runes("2"), runes("3"), runes("0"), {Type: tea.KeyEnter}}, 230, 32.3},
		{"typed value clamps", append(append([]tea.KeyMsg{{Type: tea.KeyTab}, {Type: tea.KeyEnter}}, backspaces(6)...), runes("9"), runes("9"), tea.KeyMsg{Type: tea.KeyEnter}), 400, 50},
		{"edit canceled", []tea.KeyMsg{{Type: tea.KeyEnter}, runes("1"), {Type: tea.KeyEscape}}, 400, 32.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewModel(config.DefaultConfig())
			defer m.teardown()
			for _, k := range tt.keys {
				m, _ = update(t, m, k)
			}
			if got := m.panel.Voltage(); math.Abs(got-tt.voltage) > 1e-9 {
				t.Errorf("voltage = %v, want %v", got, tt.voltage)
			}
			if got := m.panel.Frequency(); math.Abs(got-tt.frequency) > 1e-9 {
				t.Errorf("frequency = %v, want %v", got, tt.frequency)
			}
		})
	}
}

func TestModel_TickAdvancesRotor(t *testing.T) {
	m := NewModel(config.DefaultConfig())
	defer m.teardown()

	m, cmd := update(t, m, tickMsg{gen: m.anim.Generation(), t: time.Unix(0, 0)})
	if cmd == nil {
		t.Fatal("a live frame should schedule the next one")
	}
	if got := m.panel.Angle(); math.Abs(got-32.3*0.6) > 1e-9 {
		t.Errorf("angle = %v, want %v", got, 32.3*0.6)
	}
	if len(m.view.history) != 1 || m.view.history[0] != 915 {
		t.Errorf("history = %v", m.view.history)
	}
}

func TestModel_StaleTickDropped(t *testing.T) {
	m := NewModel(config.DefaultConfig())
	defer m.teardown()

	m, _ = update(t, m, runes("s"))
	if m.anim.State() != panel.Stopped {
		t.Fatalf("state = %v, want stopped", m.anim.State())
	}
	old := m.anim.Generation()

	m, cmd := update(t, m, tickMsg{gen: old, t: time.Now()})
	if cmd != nil || m.panel.Angle() != 0 {
		t.Error("frame of a stopped animation should be ignored")
	}

	m, cmd = update(t, m, runes("s"))
	if cmd == nil || m.anim.Generation() != old+1 {
		t.Fatalf("restart: gen = %d, cmd = %v", m.anim.Generation(), cmd)
	}
	m, cmd = update(t, m, tickMsg{gen: old, t: time.Now()})
	if cmd != nil || m.panel.Angle() != 0 {
		t.Error("frame of a replaced animation should be ignored")
	}
}

func TestModel_QuitStopsAnimation(t *testing.T) {
	m := NewModel(config.DefaultConfig())
	gen := m.anim.Generation()

	m, cmd := update(t, m, runes("q"))
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if m.anim.State() != panel.Stopped {
		t.Errorf("state = %v, want stopped", m.anim.State())
	}
	m, cmd = update(t, m, tickMsg{gen: gen, t: time.Now()})
	if cmd != nil || m.panel.Angle() != 0 {
		t.Error("frames after quit should be ignored")
	}
}

func TestModel_QuitWhileEditing(t *testing.T) {
	m := NewModel(config.DefaultConfig())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(t, m, runes("1"))
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("ctrl+c should quit while editing")
	}
	if m.editing || m.anim.State() != panel.Stopped {
		t.Errorf("editing = %v, state = %v", m.editing, m.anim.State())
	}
	if m.panel.Voltage() != 400 {
		t.Errorf("partial entry applied: %v", m.panel.Voltage())
	}
}

func TestModel_Hum(t *testing.T) {
	hum := &recordingHum{}
	m := NewModel(config.DefaultConfig(), WithHum(hum))
	defer m.teardown()

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	if hum.voltage != 399 || hum.frequency != 32.3 {
		t.Errorf("hum = (%v, %v), want (399, 32.3)", hum.voltage, hum.frequency)
	}
	if hum.calls < 2 {
		t.Errorf("calls = %d", hum.calls)
	}
}

func TestModel_Toggles(t *testing.T) {
	m := NewModel(config.DefaultConfig())
	defer m.teardown()

	m, _ = update(t, m, runes("d"))
	if !strings.Contains(m.View(), "U1") {
		t.Error("diagram not shown")
	}
	m, _ = update(t, m, runes("t"))
	if m.view.theme.Name == "lab" {
		t.Error("theme did not change")
	}
	m, _ = update(t, m, runes("?"))
	if !strings.Contains(m.View(), "KEYBOARD SHORTCUTS") {
		t.Error("help not shown")
	}
}

func TestLiveRenderer_Throttle(t *testing.T) {
	var buf bytes.Buffer
	r := NewLiveRenderer(&buf, 10, false)
	clock := time.Unix(100, 0)
	r.now = func() time.Time { return clock }

	p := panel.NewDefault()
	p.Subscribe(r.OnSnapshot)

	p.SetVoltage(400)
	clock = clock.Add(50 * time.Millisecond)
	p.SetVoltage(300)
	clock = clock.Add(100 * time.Millisecond)
	p.SetVoltage(200)

	if r.Frames() != 2 {
		t.Fatalf("frames = %d, want 2", r.Frames())
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %q", lines)
	}
	if !strings.Contains(lines[1], "U=200 V") || !strings.Contains(lines[1], "n=915 tr/min") {
		t.Errorf("status = %q", lines[1])
	}
}

func TestLiveRenderer_ANSI(t *testing.T) {
	var buf bytes.Buffer
	r := NewLiveRenderer(&buf, 30, true)
	r.Start()
	r.OnSnapshot(panel.NewDefault().Snapshot())
	r.Stop()

	out := buf.String()
	if !strings.HasPrefix(out, hideCursor) || !strings.HasSuffix(out, showCursor) {
		t.Error("cursor not hidden and restored")
	}
	if !strings.Contains(out, "Moteur Asynchrone Triphasé") || !strings.Contains(out, "12.38") {
		t.Errorf("frame = %q", out)
	}
}
