package panel

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/san-kum/motorsim/internal/motor"
)

// FrameSource delivers display frames. Stop releases the underlying clock
// and must be safe to call more than once.
type FrameSource interface {
	Frames() <-chan time.Time
	Stop()
}

type tickerSource struct {
	ticker *time.Ticker
	once   sync.Once
}

// NewTickerSource returns a wall-clock frame source at fps frames per
// second.
func NewTickerSource(fps int) FrameSource {
	if fps <= 0 {
		fps = int(motor.NominalFrameRate)
	}
	return &tickerSource{ticker: time.NewTicker(time.Second / time.Duration(fps))}
}

func (s *tickerSource) Frames() <-chan time.Time { return s.ticker.C }
func (s *tickerSource) Stop()                    { s.once.Do(s.ticker.Stop) }

type InputKind int

const (
	InputVoltage InputKind = iota
	InputFrequency
)

// Input is a user adjustment of one of the two controls.
type Input struct {
	Kind  InputKind
	Value float64
}

// Driver runs a panel without a terminal: it owns the frame source for the
// lifetime of Run and applies inputs between frames.
type Driver struct {
	panel  *Panel
	source FrameSource
	mode   motor.StepMode
	log    zerolog.Logger
}

func NewDriver(p *Panel, source FrameSource, mode motor.StepMode) *Driver {
	return &Driver{panel: p, source: source, mode: mode, log: p.log}
}

// Run mounts the panel and processes frames and inputs until ctx is done
// or inputs is closed. The frame source is stopped and the panel unmounted
// before Run returns.
func (d *Driver) Run(ctx context.Context, inputs <-chan Input) error {
	anim := d.panel.Mount(d.mode)
	defer d.panel.Unmount()
	defer d.source.Stop()

	frames := d.source.Frames()
	for {
		select {
		case <-ctx.Done():
			d.log.Debug().Err(ctx.Err()).Msg("driver canceled")
			return ctx.Err()
		case in, ok := <-inputs:
			if !ok {
				d.log.Debug().Msg("input closed")
				return nil
			}
			d.apply(in)
		case now := <-frames:
			anim.Tick(now)
		}
	}
}

func (d *Driver) apply(in Input) {
	switch in.Kind {
	case InputVoltage:
		d.panel.SetVoltage(in.Value)
	case InputFrequency:
		d.panel.SetFrequency(in.Value)
	default:
		d.log.Warn().Int("kind", int(in.Kind)).Msg("unknown input ignored")
	}
}
