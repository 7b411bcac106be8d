package panel

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/san-kum/motorsim/internal/motor"
)

type manualSource struct {
	ch    chan time.Time
	stops int
}

func newManualSource() *manualSource {
	return &manualSource{ch: make(chan time.Time)}
}

func (m *manualSource) Frames() <-chan time.Time { return m.ch }
func (m *manualSource) Stop()                    { m.stops++ }

func TestDriverRun(t *testing.T) {
	p := NewDefault()
	src := newManualSource()
	inputs := make(chan Input)
	seen := make(chan Snapshot, 8)
	p.Subscribe(func(s Snapshot) { seen <- s })

	errc := make(chan error, 1)
	go func() { errc <- NewDriver(p, src, motor.StepFixed).Run(context.Background(), inputs) }()

	inputs <- Input{Kind: InputFrequency, Value: 10}
	if s := <-seen; s.Frequency != 10 {
		t.Fatalf("expected frequency 10, got %v", s.Frequency)
	}

	src.ch <- time.Now()
	if s := <-seen; s.Angle != 6 {
		t.Fatalf("expected angle 6 after one frame, got %v", s.Angle)
	}

	inputs <- Input{Kind: InputVoltage, Value: 230}
	if s := <-seen; s.Voltage != 230 || s.Ratio.String() != "23.00" {
		t.Fatalf("unexpected snapshot %+v", s)
	}

	close(inputs)
	if err := <-errc; err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if src.stops != 1 {
		t.Errorf("expected frame source stopped once, got %d", src.stops)
	}
	anim := p.Animation()
	if anim.State() != Stopped {
		t.Errorf("expected animation stopped, got %s", anim.State())
	}
	if anim.Tick(time.Now()) {
		t.Error("tick after teardown should be ignored")
	}
	if p.Angle() != 6 {
		t.Errorf("rotor moved after teardown: %v", p.Angle())
	}
}

func TestDriverRun_Canceled(t *testing.T) {
	p := NewDefault()
	src := newManualSource()
	ctx, cancel := context.WithCancel(context.Background())

	errc := make(chan error, 1)
	go func() { errc <- NewDriver(p, src, motor.StepFixed).Run(ctx, nil) }()

	src.ch <- time.Now()
	cancel()

	if err := <-errc; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if src.stops != 1 {
		t.Errorf("expected frame source stopped once, got %d", src.stops)
	}
	angle := p.Angle()
	if p.Animation().Tick(time.Now()) || p.Angle() != angle {
		t.Error("rotor moved after cancellation")
	}
}

func TestTickerSource_StopTwice(t *testing.T) {
	src := NewTickerSource(120)
	select {
	case <-src.Frames():
	case <-time.After(time.Second):
		t.Fatal("no frame delivered")
	}
	src.Stop()
	src.Stop()
}
