package scenario

import (
	"bytes"
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/san-kum/motorsim/internal/motor"
)

const rampYAML = `
name: ramp
description: start the motor and reduce the voltage
voltage: 400
frequency: 0
duration: 2
fps: 10
steps:
  - at: 1.0
    voltage: 200
  - at: 0.5
    frequency: 10
`

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadScenario(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t, rampYAML))
	if err != nil {
		t.Fatalf("LoadScenario: %v", err)
	}
	if sc.Name != "ramp" || len(sc.Steps) != 2 {
		t.Fatalf("unexpected scenario %+v", sc)
	}
	if sc.Steps[0].At != 0.5 {
		t.Errorf("steps should be sorted by time, first at %v", sc.Steps[0].At)
	}
	if sc.Steps[0].Voltage != nil || *sc.Steps[0].Frequency != 10 {
		t.Errorf("unexpected first step %+v", sc.Steps[0])
	}
}

func TestLoadScenario_Defaults(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t, "duration: 1\n"))
	if err != nil {
		t.Fatalf("LoadScenario: %v", err)
	}
	if sc.Voltage != 400 || sc.Frequency != 32.3 || sc.FPS != 60 {
		t.Errorf("expected bench defaults, got %+v", sc)
	}
}

func TestLoadScenario_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		want error
	}{
		{"no duration", "voltage: 100\n", ErrEmptyScenario},
		{"voltage", "duration: 1\nvoltage: 500\n", motor.ErrOutOfRange},
		{"step frequency", "duration: 1\nsteps:\n  - at: 0.5\n    frequency: 60\n", motor.ErrOutOfRange},
		{"step time", "duration: 1\nsteps:\n  - at: 3\n    voltage: 10\n", motor.ErrOutOfRange},
		{"step at end", "duration: 1\nsteps:\n  - at: 1\n    voltage: 10\n", motor.ErrOutOfRange},
		{"step mode", "duration: 1\nstep_mode: vsync\n", motor.ErrUnknownStepMode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadScenario(writeScenario(t, tt.body)); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestRun(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t, rampYAML))
	if err != nil {
		t.Fatal(err)
	}

	trace, err := Run(context.Background(), sc, zerolog.Nop())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(trace.Frames) != 20 {
		t.Fatalf("expected 20 frames, got %d", len(trace.Frames))
	}

	// standstill until the frequency step at 0.5 s
	for _, f := range trace.Frames[:5] {
		if f.Angle != 0 || f.Speed != 0 || f.Ratio.Defined {
			t.Fatalf("rotor should stand still at t=%v: %+v", f.Time, f)
		}
	}

	mid := trace.Frames[7]
	if mid.Frequency != 10 || mid.Voltage != 400 || mid.Ratio.String() != "40.00" {
		t.Errorf("unexpected frame at t=%v: %+v", mid.Time, mid)
	}

	last := trace.Frames[len(trace.Frames)-1]
	if last.Voltage != 200 || last.Ratio.String() != "20.00" || last.Speed != motor.ComputeSpeed(10) {
		t.Errorf("unexpected last frame %+v", last)
	}
	// 15 frames at 10 Hz, 6 degrees each
	if math.Abs(last.Angle-90) > 1e-9 {
		t.Errorf("expected 90 degrees, got %v", last.Angle)
	}
	if trace.Revolutions() != 0.25 {
		t.Errorf("expected 0.25 revolutions, got %v", trace.Revolutions())
	}
	if trace.Notified != 2+15 {
		t.Errorf("expected 17 notifications, got %d", trace.Notified)
	}
}

func TestRun_StepOnTime(t *testing.T) {
	ten := 10.0
	sc := &Scenario{Voltage: 400, Frequency: 0, Duration: 2, FPS: 60, Steps: []Step{{At: 1.0, Frequency: &ten}}}
	if err := sc.Validate(); err != nil {
		t.Fatal(err)
	}

	trace, err := Run(context.Background(), sc, zerolog.Nop())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(trace.Frames) != 120 {
		t.Fatalf("expected 120 frames, got %d", len(trace.Frames))
	}
	if f := trace.Frames[59]; f.Frequency != 0 {
		t.Errorf("step applied early at t=%v", f.Time)
	}
	if f := trace.Frames[60]; f.Time != 1.0 || f.Frequency != 10 || f.Angle != 6 {
		t.Errorf("expected step applied at t=1: %+v", f)
	}
}

func TestRun_Canceled(t *testing.T) {
	sc := &Scenario{Voltage: 400, Frequency: 10, Duration: 1, FPS: 60}
	if err := sc.Validate(); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	trace, err := Run(ctx, sc, zerolog.Nop())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(trace.Frames) != 0 {
		t.Errorf("expected no frames, got %d", len(trace.Frames))
	}
}

func TestWriteReport(t *testing.T) {
	sc, _ := LoadScenario(writeScenario(t, rampYAML))
	trace, _ := Run(context.Background(), sc, zerolog.Nop())

	var buf bytes.Buffer
	if err := WriteReport(&buf, trace); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"scenario: ramp", "40.00", "20.00", "—", "revolutions: ", "speed (tr/min)"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
	if got := len(keyFrames(trace)); got != 4 {
		t.Errorf("expected 4 key frames, got %d", got)
	}
}
