package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/san-kum/motorsim/internal/motor"
	"github.com/san-kum/motorsim/internal/panel"
)

// parseInput reads one command line of the headless mode: "v 230",
// "voltage 230", "f 12.5" or "frequency 12.5".
func parseInput(line string) (panel.Input, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return panel.Input{}, fmt.Errorf("want \"v <volts>\" or \"f <hertz>\", got %q", line)
	}
	value, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return panel.Input{}, fmt.Errorf("%q: %w", fields[1], motor.ErrInvalidValue)
	}

	switch strings.ToLower(fields[0]) {
	case "v", "u", "voltage":
		return panel.Input{Kind: panel.InputVoltage, Value: value}, nil
	case "f", "freq", "frequency":
		return panel.Input{Kind: panel.InputFrequency, Value: value}, nil
	}
	return panel.Input{}, fmt.Errorf("unknown control %q", fields[0])
}

// readInputs forwards parsed lines from r until r is exhausted or ctx is
// done, then closes out. Bad lines are logged and skipped.
func readInputs(ctx context.Context, r io.Reader, out chan<- panel.Input, log zerolog.Logger) {
	defer close(out)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		in, err := parseInput(line)
		if err != nil {
			log.Warn().Err(err).Msg("input ignored")
			continue
		}
		select {
		case out <- in:
		case <-ctx.Done():
			return
		}
	}
}
