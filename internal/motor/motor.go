package motor

import (
	"math"
	"strconv"
)

// Motor characteristics of the bench machine. These are fixed by the
// hardware and are not user-configurable.
const (
	PolePairs = 2
	Slip      = 0.0559

	// RotorGain is the rotor advance in degrees per hertz per frame.
	RotorGain = 0.6
	// NominalFrameRate is the display rate RotorGain was tuned for.
	NominalFrameRate = 60.0
)

const (
	MinVoltage    = 0.0
	MaxVoltage    = 400.0
	VoltageStep   = 1.0
	MinFrequency  = 0.0
	MaxFrequency  = 50.0
	FrequencyStep = 0.001
)

// Placeholder is shown in place of a ratio that cannot be computed.
const Placeholder = "—"

// Ratio is a volts-per-hertz reading. The zero value is undefined.
type Ratio struct {
	Value   float64
	Defined bool
}

// String renders the ratio with two decimals, or Placeholder.
func (r Ratio) String() string {
	if !r.Defined {
		return Placeholder
	}
	return strconv.FormatFloat(r.Value, 'f', 2, 64)
}

// ComputeSpeed returns the slip-corrected synchronous speed in tr/min.
func ComputeSpeed(frequency float64) int {
	if frequency == 0 {
		return 0
	}
	return int(math.Round(60 * frequency / PolePairs * (1 - Slip)))
}

// ComputeRatio returns voltage/frequency rounded to two decimals.
func ComputeRatio(voltage, frequency float64) Ratio {
	if frequency == 0 {
		return Ratio{}
	}
	return Ratio{Value: round2(voltage / frequency), Defined: true}
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// StepMode selects how the rotor advance is scaled per frame.
type StepMode string

const (
	// StepFixed advances by one fixed increment per frame regardless of
	// the measured frame interval.
	StepFixed StepMode = "fixed"
	// StepElapsed scales the increment by the measured frame interval,
	// normalized so that a 60 Hz frame equals one fixed increment.
	StepElapsed StepMode = "elapsed"
)

// AdvanceRotor returns the rotor angle after one frame. elapsed is ignored
// in StepFixed mode. A zero frequency never moves the rotor.
func AdvanceRotor(angle, frequency, elapsed float64, mode StepMode) float64 {
	if frequency == 0 {
		return angle
	}
	scale := 1.0
	if mode == StepElapsed {
		if elapsed <= 0 {
			return angle
		}
		scale = elapsed * NominalFrameRate
	}
	return angle + frequency*RotorGain*scale
}

// NormalizeAngle wraps an angle in degrees into [0, 360).
func NormalizeAngle(deg float64) float64 {
	a := math.Mod(deg, 360)
	if a < 0 {
		a += 360
	}
	return a
}

// ClampVoltage bounds v to the voltage control range and snaps it to the
// control step.
func ClampVoltage(v float64) float64 {
	return quantize(clamp(v, MinVoltage, MaxVoltage), VoltageStep)
}

// ClampFrequency bounds f to the frequency control range and snaps it to
// the control step.
func ClampFrequency(f float64) float64 {
	return quantize(clamp(f, MinFrequency, MaxFrequency), FrequencyStep)
}

func clamp(x, lo, hi float64) float64 {
	if math.IsNaN(x) {
		return lo
	}
	return math.Max(lo, math.Min(hi, x))
}

func quantize(x, step float64) float64 {
	inv := math.Round(1 / step)
	return math.Round(x*inv) / inv
}
