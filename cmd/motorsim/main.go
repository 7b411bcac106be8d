package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/san-kum/motorsim/internal/audio"
	"github.com/san-kum/motorsim/internal/chart"
	"github.com/san-kum/motorsim/internal/config"
	"github.com/san-kum/motorsim/internal/gui"
	"github.com/san-kum/motorsim/internal/logging"
	"github.com/san-kum/motorsim/internal/motor"
	"github.com/san-kum/motorsim/internal/panel"
	"github.com/san-kum/motorsim/internal/scenario"
	"github.com/san-kum/motorsim/internal/scene"
	"github.com/san-kum/motorsim/internal/store"
	"github.com/san-kum/motorsim/internal/tui"
	"github.com/san-kum/motorsim/internal/viz"
)

var (
	logFile  string
	logLevel string
	logger   = zerolog.Nop()
	closeLog = func() error { return nil }

	configFile string
	preset     string
	voltage    float64
	frequency  float64
	fps        int
	stepMode   string
	theme      string
	hum        bool

	sweepLo    float64
	sweepHi    float64
	sweepStep  float64
	sweepPNG   string
	svgAngle   float64
	outputFile string

	traceJSON string
	traceCSV  string

	headlessFor  time.Duration
	headlessRate int
	headlessANSI bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "motorsim",
		Short:        "three-phase induction motor bench",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, closer, err := logging.Open(logFile, logLevel)
			if err != nil {
				return err
			}
			logger, closeLog = l, closer
			return nil
		},
		RunE: runTUI,
	}
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	panelFlags(rootCmd)

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interactive terminal panel",
		RunE:  runTUI,
	}
	panelFlags(tuiCmd)

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "open the panel in a window",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			gui.Run(cfg, logger)
			return nil
		},
	}
	panelFlags(guiCmd)

	headlessCmd := &cobra.Command{
		Use:   "headless",
		Short: "run the panel without a UI, reading \"v <volts>\" and \"f <hertz>\" lines from stdin until EOF",
		RunE:  runHeadless,
	}
	panelFlags(headlessCmd)
	headlessCmd.Flags().DurationVar(&headlessFor, "for", 0, "stop after this long (0 runs until stdin ends or an interrupt)")
	headlessCmd.Flags().IntVar(&headlessRate, "print-rate", 2, "status lines per second")
	headlessCmd.Flags().BoolVar(&headlessANSI, "ansi", false, "redraw the motor with ANSI escapes")

	computeCmd := &cobra.Command{
		Use:   "compute",
		Short: "print speed and U/f ratio for a setting",
		RunE:  runCompute,
	}
	computeCmd.Flags().Float64Var(&voltage, "voltage", config.DefaultVoltage, "supply voltage (V)")
	computeCmd.Flags().Float64Var(&frequency, "frequency", config.DefaultFrequency, "supply frequency (Hz)")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "speed and U/f characteristic over a frequency range",
		RunE:  runSweep,
	}
	sweepCmd.Flags().Float64Var(&voltage, "voltage", config.DefaultVoltage, "supply voltage (V)")
	sweepCmd.Flags().Float64Var(&sweepLo, "from", 0, "first frequency (Hz)")
	sweepCmd.Flags().Float64Var(&sweepHi, "to", motor.MaxFrequency, "last frequency (Hz)")
	sweepCmd.Flags().Float64Var(&sweepStep, "step", 1, "frequency step (Hz)")
	sweepCmd.Flags().StringVar(&sweepPNG, "png", "", "also render the characteristic to this PNG file")

	svgCmd := &cobra.Command{
		Use:   "export-svg",
		Short: "write the motor drawing as SVG",
		RunE:  runExportSVG,
	}
	svgCmd.Flags().Float64Var(&svgAngle, "angle", 0, "rotor angle (degrees)")
	svgCmd.Flags().StringVarP(&outputFile, "output", "o", "motor.svg", "output file (- for stdout)")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file.yaml]",
		Short: "replay a scripted input scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	scenarioCmd.Flags().StringVar(&traceJSON, "json", "", "write the trace as JSON to this file")
	scenarioCmd.Flags().StringVar(&traceCSV, "csv", "", "write the trace as CSV to this file")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list generator presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				p := config.Presets[name]
				fmt.Printf("  %-12s U=%3.0f V  f=%4.1f Hz  n=%4d tr/min  U/f=%s\n",
					name, p.Voltage, p.Frequency, motor.ComputeSpeed(p.Frequency), motor.ComputeRatio(p.Voltage, p.Frequency))
			}
		},
	}

	rootCmd.AddCommand(tuiCmd, guiCmd, headlessCmd, computeCmd, sweepCmd, svgCmd, scenarioCmd, presetsCmd)

	err := rootCmd.Execute()
	closeLog()
	if err != nil {
		os.Exit(1)
	}
}

func panelFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "start from a preset ("+strings.Join(config.ListPresets(), ", ")+")")
	cmd.Flags().Float64Var(&voltage, "voltage", config.DefaultVoltage, "initial voltage (V)")
	cmd.Flags().Float64Var(&frequency, "frequency", config.DefaultFrequency, "initial frequency (Hz)")
	cmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "frames per second")
	cmd.Flags().StringVar(&stepMode, "step-mode", string(motor.StepFixed), "rotor step mode (fixed, elapsed)")
	cmd.Flags().StringVar(&theme, "theme", config.DefaultTheme, "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")
	cmd.Flags().BoolVar(&hum, "hum", false, "play the motor hum")
}

// resolveConfig layers the config file, the preset and explicitly set
// flags, in that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		cfg = loaded
		logger.Info().Str("path", configFile).Msg("config loaded")
	}
	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset %q (available: %s)", preset, strings.Join(config.ListPresets(), ", "))
		}
		cfg.Voltage, cfg.Frequency = p.Voltage, p.Frequency
	}

	flags := cmd.Flags()
	if flags.Changed("voltage") {
		cfg.Voltage = voltage
	}
	if flags.Changed("frequency") {
		cfg.Frequency = frequency
	}
	if flags.Changed("fps") {
		cfg.FPS = fps
	}
	if flags.Changed("step-mode") {
		cfg.StepMode = stepMode
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("hum") {
		cfg.Hum = hum
	}
	if _, ok := viz.LookupTheme(cfg.Theme); !ok {
		return nil, fmt.Errorf("unknown theme %q (available: %s)", cfg.Theme, strings.Join(viz.ThemeNames(), ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	opts := []tui.Option{tui.WithLogger(logger)}
	if cfg.Hum {
		h := audio.NewHum(logger)
		if err := h.Start(); err != nil {
			logger.Warn().Err(err).Msg("hum disabled")
		} else {
			defer h.Stop()
			opts = append(opts, tui.WithHum(h))
		}
	}
	return tui.Run(cfg, opts...)
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if headlessFor > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, headlessFor)
		defer cancel()
	}

	p := panel.New(cfg.Voltage, cfg.Frequency, panel.WithLogger(logger))
	r := tui.NewLiveRenderer(os.Stdout, headlessRate, headlessANSI)
	unsubscribe := p.Subscribe(r.OnSnapshot)
	defer unsubscribe()
	r.Start()
	defer r.Stop()

	inputs := make(chan panel.Input)
	go readInputs(ctx, os.Stdin, inputs, logger)

	err = panel.NewDriver(p, panel.NewTickerSource(cfg.FPS), cfg.Mode()).Run(ctx, inputs)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

func runCompute(cmd *cobra.Command, args []string) error {
	if err := motor.CheckVoltage(voltage); err != nil {
		return err
	}
	if err := motor.CheckFrequency(frequency); err != nil {
		return err
	}
	fmt.Printf("voltage:   %.0f V\n", voltage)
	fmt.Printf("frequency: %.3f Hz\n", frequency)
	fmt.Printf("speed:     %d tr/min\n", motor.ComputeSpeed(frequency))
	fmt.Printf("U/f:       %s V/Hz\n", motor.ComputeRatio(voltage, frequency))
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	if err := motor.CheckVoltage(voltage); err != nil {
		return err
	}
	samples, err := chart.Sweep(voltage, sweepLo, sweepHi, sweepStep)
	if err != nil {
		return err
	}
	if err := chart.WriteTable(os.Stdout, samples); err != nil {
		return err
	}
	fmt.Println()
	fmt.Println(chart.Plot(samples, 60, 12, fmt.Sprintf("speed (tr/min) vs frequency, U=%.0f V", voltage)))

	if sweepPNG != "" {
		if err := chart.SavePNG(sweepPNG, samples, voltage); err != nil {
			return fmt.Errorf("png: %w", err)
		}
		fmt.Printf("\nsaved %s\n", sweepPNG)
	}
	return nil
}

func runExportSVG(cmd *cobra.Command, args []string) error {
	s := scene.Motor(motor.NormalizeAngle(svgAngle))
	if outputFile == "-" {
		return scene.WriteSVG(os.Stdout, s)
	}
	f, err := os.Create(outputFile)
	if err != nil {
		return err
	}
	if err := scene.WriteSVG(f, s); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Printf("saved %s\n", outputFile)
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	s, err := scenario.LoadScenario(args[0])
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	trace, err := scenario.Run(ctx, s, logger)
	if err != nil {
		return err
	}
	if err := scenario.WriteReport(os.Stdout, trace); err != nil {
		return err
	}

	if traceJSON != "" {
		if err := store.ExportJSON(traceJSON, trace); err != nil {
			return fmt.Errorf("json: %w", err)
		}
		fmt.Printf("saved %s\n", traceJSON)
	}
	if traceCSV != "" {
		if err := store.ExportCSV(traceCSV, trace); err != nil {
			return fmt.Errorf("csv: %w", err)
		}
		fmt.Printf("saved %s\n", traceCSV)
	}
	return nil
}
