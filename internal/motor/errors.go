package motor

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrOutOfRange indicates a value outside its control range.
	ErrOutOfRange = errors.New("motor: value out of range")

	// ErrInvalidValue indicates a NaN or infinite value.
	ErrInvalidValue = errors.New("motor: invalid value (NaN or Inf)")

	// ErrUnknownStepMode indicates an unrecognized rotor step mode.
	ErrUnknownStepMode = errors.New("motor: unknown step mode")
)

// RangeError reports which input was rejected and its bounds.
type RangeError struct {
	Name     string
	Value    float64
	Min, Max float64
	Wrapped  error
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s=%g not in [%g, %g]: %v", e.Name, e.Value, e.Min, e.Max, e.Wrapped)
}

func (e *RangeError) Unwrap() error {
	return e.Wrapped
}

// CheckVoltage validates a voltage coming from outside the panel controls.
func CheckVoltage(v float64) error {
	return checkRange("voltage", v, MinVoltage, MaxVoltage)
}

// CheckFrequency validates a frequency coming from outside the panel controls.
func CheckFrequency(f float64) error {
	return checkRange("frequency", f, MinFrequency, MaxFrequency)
}

func checkRange(name string, x, lo, hi float64) error {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return &RangeError{Name: name, Value: x, Min: lo, Max: hi, Wrapped: ErrInvalidValue}
	}
	if x < lo || x > hi {
		return &RangeError{Name: name, Value: x, Min: lo, Max: hi, Wrapped: ErrOutOfRange}
	}
	return nil
}

// ParseStepMode maps a flag or config value to a StepMode.
func ParseStepMode(s string) (StepMode, error) {
	switch StepMode(s) {
	case StepFixed, "":
		return StepFixed, nil
	case StepElapsed:
		return StepElapsed, nil
	}
	return "", fmt.Errorf("%q: %w", s, ErrUnknownStepMode)
}
