package config

import (
	"fmt"
	"os"

	"github.com/san-kum/motorsim/internal/motor"
	"gopkg.in/yaml.v3"
)

const (
	DefaultVoltage   = 400.0
	DefaultFrequency = 32.3
	DefaultFPS       = 60
	DefaultTheme     = "lab"
	DefaultLogLevel  = "info"
	MaxFPS           = 240
)

type Config struct {
	Voltage   float64   `yaml:"voltage"`
	Frequency float64   `yaml:"frequency"`
	FPS       int       `yaml:"fps"`
	StepMode  string    `yaml:"step_mode"`
	Theme     string    `yaml:"theme"`
	Hum       bool      `yaml:"hum"`
	Log       LogConfig `yaml:"log"`
}

type LogConfig struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

func DefaultConfig() *Config {
	return &Config{
		Voltage:   DefaultVoltage,
		Frequency: DefaultFrequency,
		FPS:       DefaultFPS,
		StepMode:  string(motor.StepFixed),
		Theme:     DefaultTheme,
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}

// Load reads a YAML file over the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks values that did not come through the panel controls.
func (c *Config) Validate() error {
	if err := motor.CheckVoltage(c.Voltage); err != nil {
		return err
	}
	if err := motor.CheckFrequency(c.Frequency); err != nil {
		return err
	}
	if c.FPS <= 0 || c.FPS > MaxFPS {
		return fmt.Errorf("fps=%d not in [1, %d]: %w", c.FPS, MaxFPS, motor.ErrOutOfRange)
	}
	if _, err := motor.ParseStepMode(c.StepMode); err != nil {
		return err
	}
	return nil
}

// Mode returns the parsed rotor step mode. Validate must have passed.
func (c *Config) Mode() motor.StepMode {
	m, _ := motor.ParseStepMode(c.StepMode)
	return m
}
