package audio

import (
	"fmt"
	"math"
	"math/cmplx"
	"sync"

	"github.com/gordonklaus/portaudio"
	"github.com/mjibson/go-dsp/fft"
	"github.com/rs/zerolog"

	"github.com/san-kum/motorsim/internal/motor"
)

const (
	SampleRate = 44100
	BufferSize = 1024

	// AnalysisSize is the window used for pitch estimation.
	AnalysisSize = 8192

	// RotorBars matches the bars drawn on the rotor.
	RotorBars = 16

	slotGain = 0.25
	volume   = 0.3
	levelTau = 0.02
)

// Hum synthesizes the magnetic noise of the motor: a tone at twice the
// supply frequency plus a quieter rotor slot harmonic, both scaled by
// the supply voltage.
type Hum struct {
	stream *portaudio.Stream

	mu        sync.Mutex
	voltage   float64
	frequency float64

	level      float64
	humPhase   float64
	slotPhase  float64
	recent     []float32
	recentHead int

	active bool
	log    zerolog.Logger
}

func NewHum(log zerolog.Logger) *Hum {
	return &Hum{
		recent: make([]float32, AnalysisSize),
		log:    log,
	}
}

func (h *Hum) Start() error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("audio init: %w", err)
	}
	stream, err := portaudio.OpenDefaultStream(0, 2, SampleRate, BufferSize, h.process)
	if err != nil {
		portaudio.Terminate()
		return fmt.Errorf("audio open: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return fmt.Errorf("audio start: %w", err)
	}

	h.stream = stream
	h.active = true
	h.log.Info().Int("sample_rate", SampleRate).Msg("hum started")
	return nil
}

func (h *Hum) Stop() {
	if !h.active {
		return
	}
	h.stream.Stop()
	h.stream.Close()
	portaudio.Terminate()
	h.active = false
	h.log.Info().Msg("hum stopped")
}

// Set updates the generator settings the hum follows.
func (h *Hum) Set(voltage, frequency float64) {
	h.mu.Lock()
	h.voltage = voltage
	h.frequency = frequency
	h.mu.Unlock()
}

func (h *Hum) process(out [][]float32) {
	mono := make([]float32, len(out[0]))
	h.Render(mono)
	for _, ch := range out {
		copy(ch, mono)
	}
}

// Render fills buf with the next samples of the hum.
func (h *Hum) Render(buf []float32) {
	h.mu.Lock()
	defer h.mu.Unlock()

	target := h.voltage / motor.MaxVoltage
	humHz := 2 * h.frequency
	slotHz := RotorBars * float64(motor.ComputeSpeed(h.frequency)) / 60
	dt := 1.0 / SampleRate
	alpha := 1 - math.Exp(-dt/levelTau)

	for i := range buf {
		h.level += (target - h.level) * alpha
		s := math.Sin(2*math.Pi*h.humPhase) + slotGain*math.Sin(2*math.Pi*h.slotPhase)
		buf[i] = float32(s * h.level * volume)

		h.humPhase = math.Mod(h.humPhase+humHz*dt, 1)
		h.slotPhase = math.Mod(h.slotPhase+slotHz*dt, 1)

		h.recent[h.recentHead] = buf[i]
		h.recentHead = (h.recentHead + 1) % len(h.recent)
	}
}

// Pitch estimates the dominant frequency of the most recent output.
func (h *Hum) Pitch() float64 {
	h.mu.Lock()
	window := make([]float32, len(h.recent))
	n := copy(window, h.recent[h.recentHead:])
	copy(window[n:], h.recent[:h.recentHead])
	h.mu.Unlock()
	return Dominant(window)
}

// Dominant returns the frequency of the strongest bin of a Hann-windowed
// spectrum of samples, or 0 for silence.
func Dominant(samples []float32) float64 {
	n := len(samples)
	if n < 2 {
		return 0
	}
	x := make([]float64, n)
	for i, v := range samples {
		w := 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
		x[i] = float64(v) * w
	}
	spectrum := fft.FFTReal(x)

	best, bestMag := 0, 1e-9
	for i := 1; i < n/2; i++ {
		if mag := cmplx.Abs(spectrum[i]); mag > bestMag {
			best, bestMag = i, mag
		}
	}
	return float64(best) * SampleRate / float64(n)
}

func (h *Hum) Active() bool { return h.active }
