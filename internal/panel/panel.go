package panel

import (
	"sort"

	"github.com/rs/zerolog"
	"github.com/san-kum/motorsim/internal/motor"
)

// Snapshot is a consistent view of the panel inputs, the rotor angle and
// the values derived from them.
type Snapshot struct {
	Voltage   float64
	Frequency float64
	Angle     float64
	Speed     int
	Ratio     motor.Ratio
}

// Observer is notified after every state mutation.
type Observer func(Snapshot)

// Panel holds the generator inputs and the rotor angle. It is owned by a
// single event loop and is not safe for concurrent use.
type Panel struct {
	voltage   float64
	frequency float64
	angle     float64

	observers map[int]Observer
	nextID    int

	anim *Animation
	log  zerolog.Logger
}

type Option func(*Panel)

func WithLogger(l zerolog.Logger) Option {
	return func(p *Panel) { p.log = l }
}

// New creates a panel with clamped initial inputs and the rotor at rest.
func New(voltage, frequency float64, opts ...Option) *Panel {
	p := &Panel{
		voltage:   motor.ClampVoltage(voltage),
		frequency: motor.ClampFrequency(frequency),
		observers: make(map[int]Observer),
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewDefault creates a panel with the bench defaults: 400 V, 32.3 Hz.
func NewDefault(opts ...Option) *Panel {
	return New(DefaultVoltage, DefaultFrequency, opts...)
}

const (
	DefaultVoltage   = 400.0
	DefaultFrequency = 32.3
)

func (p *Panel) Voltage() float64   { return p.voltage }
func (p *Panel) Frequency() float64 { return p.frequency }
func (p *Panel) Angle() float64     { return p.angle }

// SetVoltage replaces the voltage. Out-of-range values are clamped to the
// control range.
func (p *Panel) SetVoltage(v float64) {
	p.voltage = motor.ClampVoltage(v)
	p.log.Debug().Float64("voltage", p.voltage).Msg("voltage set")
	p.notify()
}

// SetFrequency replaces the frequency. The running animation picks up the
// new value on its next frame.
func (p *Panel) SetFrequency(f float64) {
	p.frequency = motor.ClampFrequency(f)
	p.log.Debug().Float64("frequency", p.frequency).Msg("frequency set")
	p.notify()
}

// Speed is recomputed from the current frequency on every call.
func (p *Panel) Speed() int {
	return motor.ComputeSpeed(p.frequency)
}

// Ratio is recomputed from the current inputs on every call.
func (p *Panel) Ratio() motor.Ratio {
	return motor.ComputeRatio(p.voltage, p.frequency)
}

func (p *Panel) Snapshot() Snapshot {
	return Snapshot{
		Voltage:   p.voltage,
		Frequency: p.frequency,
		Angle:     p.angle,
		Speed:     p.Speed(),
		Ratio:     p.Ratio(),
	}
}

// Subscribe registers fn for change notifications. The returned function
// removes it; calling it more than once is harmless.
func (p *Panel) Subscribe(fn Observer) (cancel func()) {
	id := p.nextID
	p.nextID++
	p.observers[id] = fn
	return func() { delete(p.observers, id) }
}

func (p *Panel) notify() {
	if len(p.observers) == 0 {
		return
	}
	ids := make([]int, 0, len(p.observers))
	for id := range p.observers {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	snap := p.Snapshot()
	for _, id := range ids {
		if fn, ok := p.observers[id]; ok {
			fn(snap)
		}
	}
}

// advance moves the rotor by one frame. Only the animation calls it.
func (p *Panel) advance(elapsed float64, mode motor.StepMode) bool {
	next := motor.AdvanceRotor(p.angle, p.frequency, elapsed, mode)
	if next == p.angle {
		return false
	}
	p.angle = next
	p.notify()
	return true
}
