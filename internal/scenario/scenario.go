// Package scenario replays scripted panel adjustments on a virtual frame
// clock, so a lesson sequence can be checked without a terminal.
package scenario

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/san-kum/motorsim/internal/motor"
	"github.com/san-kum/motorsim/internal/panel"
	"gopkg.in/yaml.v3"
)

var ErrEmptyScenario = errors.New("scenario: duration must be positive")

// Scenario defines a scripted sequence of control changes
type Scenario struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Voltage     float64 `yaml:"voltage"`
	Frequency   float64 `yaml:"frequency"`
	Duration    float64 `yaml:"duration"`
	FPS         int     `yaml:"fps"`
	StepMode    string  `yaml:"step_mode"`
	Steps       []Step  `yaml:"steps"`
}

// Step sets one or both controls at time At (seconds from start).
type Step struct {
	At        float64  `yaml:"at"`
	Voltage   *float64 `yaml:"voltage"`
	Frequency *float64 `yaml:"frequency"`
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	sc := &Scenario{
		Voltage:   panel.DefaultVoltage,
		Frequency: panel.DefaultFrequency,
		FPS:       int(motor.NominalFrameRate),
	}
	if err := yaml.Unmarshal(data, sc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := sc.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}

// Validate checks ranges and sorts the steps by time. Steps must fall
// before the end of the run.
func (s *Scenario) Validate() error {
	if s.Duration <= 0 {
		return ErrEmptyScenario
	}
	if s.FPS <= 0 {
		s.FPS = int(motor.NominalFrameRate)
	}
	if _, err := motor.ParseStepMode(s.StepMode); err != nil {
		return err
	}
	if err := motor.CheckVoltage(s.Voltage); err != nil {
		return err
	}
	if err := motor.CheckFrequency(s.Frequency); err != nil {
		return err
	}
	for i, st := range s.Steps {
		if st.At < 0 || st.At >= s.Duration {
			return fmt.Errorf("step %d: at=%g not in [0, %g): %w", i+1, st.At, s.Duration, motor.ErrOutOfRange)
		}
		if st.Voltage != nil {
			if err := motor.CheckVoltage(*st.Voltage); err != nil {
				return fmt.Errorf("step %d: %w", i+1, err)
			}
		}
		if st.Frequency != nil {
			if err := motor.CheckFrequency(*st.Frequency); err != nil {
				return fmt.Errorf("step %d: %w", i+1, err)
			}
		}
	}
	sort.SliceStable(s.Steps, func(i, j int) bool { return s.Steps[i].At < s.Steps[j].At })
	return nil
}

// Frame is the panel state recorded after one animation frame.
type Frame struct {
	Time float64
	panel.Snapshot
}

// Trace is the recorded run of a scenario.
type Trace struct {
	Scenario *Scenario
	Frames   []Frame
	Notified int
}

// Revolutions is the number of rotor turns at the end of the trace.
func (t *Trace) Revolutions() float64 {
	if len(t.Frames) == 0 {
		return 0
	}
	return t.Frames[len(t.Frames)-1].Angle / 360
}

// Run replays the scenario frame by frame. The panel is mounted for the
// duration of the run and unmounted before Run returns.
func Run(ctx context.Context, s *Scenario, log zerolog.Logger) (*Trace, error) {
	p := panel.New(s.Voltage, s.Frequency, panel.WithLogger(log))
	trace := &Trace{Scenario: s}
	unsubscribe := p.Subscribe(func(panel.Snapshot) { trace.Notified++ })
	defer unsubscribe()

	mode, _ := motor.ParseStepMode(s.StepMode)
	anim := p.Mount(mode)
	defer p.Unmount()

	frames := int(s.Duration*float64(s.FPS) + 1e-9)
	start := time.Unix(0, 0)
	next := 0

	for i := 0; i < frames; i++ {
		if err := ctx.Err(); err != nil {
			return trace, err
		}
		t := float64(i) / float64(s.FPS)
		now := start.Add(time.Duration(math.Round(t * float64(time.Second))))

		for next < len(s.Steps) && s.Steps[next].At <= t {
			st := s.Steps[next]
			log.Info().Int("step", next+1).Float64("at", st.At).Msg("scenario step")
			if st.Voltage != nil {
				p.SetVoltage(*st.Voltage)
			}
			if st.Frequency != nil {
				p.SetFrequency(*st.Frequency)
			}
			next++
		}

		anim.Tick(now)
		trace.Frames = append(trace.Frames, Frame{Time: t, Snapshot: p.Snapshot()})
	}
	return trace, nil
}
