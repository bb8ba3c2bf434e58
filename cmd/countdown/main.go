package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ensigniasec/countdown/internal/config"
	"github.com/ensigniasec/countdown/internal/countdown"
	"github.com/ensigniasec/countdown/internal/metrics"
	"github.com/ensigniasec/countdown/internal/picker"
	"github.com/ensigniasec/countdown/internal/tui"
)

//nolint:gochecknoglobals // Cobra requires package-level vars for flag bindings in current structure.
var (
	// Version metadata populated at build time via -ldflags.
	releaseVersion = "dev"
	commit         = "none"
	date           = "unknown"

	// Used for flags.
	configPath  = config.DefaultPath
	verbose     bool
	minutes     int
	seconds     int
	jsonOutput  bool
	allTicks    bool
	metricsAddr string

	// cfg is loaded once per invocation in PersistentPreRun.
	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:   "countdown",
		Short: "A minutes/seconds countdown timer for the terminal.",
		Long: `Pick a duration with the minutes/seconds picker, start the countdown and get an alert when time runs out.
Running without a subcommand opens the interactive timer; 'run' counts down headless and streams the remaining time to stdout.`,
		Args:             cobra.NoArgs,
		PersistentPreRun: setup,
		Run: func(cmd *cobra.Command, args []string) {
			sel := resolveSelection(cmd)
			engine := countdown.New(countdown.WithLogger(logrus.WithField("component", "countdown")))
			if err := tui.Run(cmd.Context(), engine, sel, nil); err != nil {
				logrus.Fatalf("TUI mode failed: %v", err)
			}
		},
	}
)

//nolint:gochecknoinits // Cobra command wiring performed in init in current structure.
func init() {
	// Route logs to stderr to avoid polluting stdout, especially for --json output.
	logrus.SetOutput(os.Stderr)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable detailed logging output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "Path to the preferences file")

	for _, c := range []*cobra.Command{rootCmd, runCmd} {
		c.Flags().IntVarP(&minutes, "minutes", "m", 0, "Minutes to count down (0-60). Defaults to the configured preference")
		c.Flags().IntVarP(&seconds, "seconds", "s", 0, "Seconds to count down (0-59). Defaults to the configured preference")
	}
	runCmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit one JSON object per event instead of plain text")
	runCmd.Flags().BoolVar(&allTicks, "all-ticks", false, "Emit every tick instead of one line per whole second")
	runCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Optional: serve Prometheus metrics on this address (e.g. :9090) while counting down")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(formatCmd)
	rootCmd.AddCommand(configCmd)

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetDefaultCmd)
	configCmd.AddCommand(configResetCmd)

	// Built-in version flag: set version string and a custom template.
	rootCmd.Version = releaseVersion
	rootCmd.Annotations = map[string]string{"commit": commit, "date": date}
	rootCmd.SetVersionTemplate("{{printf \"%s %s\\ncommit: %s\\ndate: %s\\n\" .DisplayName .Version (index .Annotations \"commit\") (index .Annotations \"date\")}}")
}

// setup loads preferences and applies the log level. 'config reset' skips the
// load so it can recover from an unreadable file.
func setup(cmd *cobra.Command, args []string) {
	load := config.New
	if cmd == configResetCmd {
		load = config.NewDefault
	}
	c, err := load(configPath)
	if err != nil {
		logrus.Fatalf("Unable to load config: %v", err)
	}
	cfg = c

	switch {
	case verbose:
		logrus.SetLevel(logrus.DebugLevel)
	case cfg.Data.LogLevel != "":
		if lvl, err := logrus.ParseLevel(cfg.Data.LogLevel); err == nil {
			logrus.SetLevel(lvl)
		}
	}
}

// resolveSelection merges --minutes/--seconds over the configured default.
func resolveSelection(cmd *cobra.Command) picker.Selection {
	sel := cfg.Data.Selection()
	if cmd.Flags().Changed("minutes") || cmd.Flags().Changed("seconds") {
		sel = picker.Selection{Minutes: minutes, Seconds: seconds}
	}
	if err := sel.Validate(); err != nil {
		logrus.Fatal(err)
	}
	return sel
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logrus.Fatal(err)
	}
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Count down without the interactive UI, printing the remaining time.",
	Long:  "Start a countdown immediately and stream the remaining time to stdout. Prints 'Timer Finished' when time runs out. Ctrl+C resets and exits.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		sel := resolveSelection(cmd)
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := runHeadless(ctx, sel); err != nil {
			logrus.Fatal(err)
		}
	},
}

func runHeadless(ctx context.Context, sel picker.Selection) error {
	engine := countdown.New(countdown.WithLogger(logrus.WithField("component", "countdown")))
	engine.SetDuration(sel.Duration())

	out := newEventPrinter(os.Stdout, jsonOutput, allTicks)
	finished := make(chan struct{})
	var obs countdown.Observer = countdown.ObserverFuncs{
		Tick: out.tick,
		Finish: func() {
			out.finish()
			close(finished)
		},
	}

	if metricsAddr != "" {
		reg := prometheus.NewRegistry()
		m, err := metrics.NewObserver(reg, obs)
		if err != nil {
			return fmt.Errorf("register metrics: %w", err)
		}
		obs = m
		go func() {
			if err := metrics.Serve(ctx, metricsAddr, reg); err != nil {
				logrus.Warnf("metrics server stopped: %v", err)
			}
		}()
	}
	engine.SetObserver(obs)

	out.start(engine.Duration())
	engine.Start()
	logrus.WithField("run_id", engine.RunID().String()).Debugf("counting down %s", sel)

	select {
	case <-finished:
		return out.err
	case <-ctx.Done():
		engine.SetObserver(nil)
		engine.Reset()
		logrus.Warn("Countdown interrupted; timer reset.")
		return nil
	}
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var formatCmd = &cobra.Command{
	Use:   "format [SPAN]",
	Short: "Print a span as HH:mm:ss.ss",
	Long:  "Format a span given in seconds (e.g. 90, 1.25) or as a Go duration (e.g. 1m30s) the way the timer displays it.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		d, err := parseSpan(args[0])
		if err != nil {
			logrus.Fatal(err)
		}
		fmt.Fprintln(os.Stdout, countdown.Format(d))
	},
}

// parseSpan accepts plain seconds or a Go duration string.
func parseSpan(s string) (time.Duration, error) {
	if secs, err := strconv.ParseFloat(s, 64); err == nil {
		return time.Duration(secs * float64(time.Second)), nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid span %q: expected seconds (90) or a duration (1m30s)", s)
	}
	return d, nil
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage timer preferences",
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the configured default duration",
	Run: func(cmd *cobra.Command, args []string) {
		sel := cfg.Data.Selection()
		fmt.Fprintf(os.Stdout, "default: %s (%s)\n", sel, countdown.Format(sel.Duration()))
		if cfg.Data.LogLevel != "" {
			fmt.Fprintf(os.Stdout, "log_level: %s\n", cfg.Data.LogLevel)
		}
		fmt.Fprintf(os.Stdout, "file: %s\n", cfg.Path)
	},
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var configSetDefaultCmd = &cobra.Command{
	Use:   "set-default [MINUTES] [SECONDS]",
	Short: "Persist the initial picker selection",
	Args:  cobra.ExactArgs(2), //nolint:mnd // minutes and seconds
	Run: func(cmd *cobra.Command, args []string) {
		m, err := strconv.Atoi(args[0])
		if err != nil {
			logrus.Fatalf("Invalid minutes: %q", args[0])
		}
		s, err := strconv.Atoi(args[1])
		if err != nil {
			logrus.Fatalf("Invalid seconds: %q", args[1])
		}
		c, err := config.NewOrExisting(configPath)
		if err != nil {
			logrus.Fatal(err)
		}
		sel := picker.Selection{Minutes: m, Seconds: s}
		if err := c.SetDefault(sel); err != nil {
			logrus.Fatal(err)
		}
		fmt.Fprintf(os.Stdout, "Default duration set to %s\n", sel)
	},
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore default preferences",
	Run: func(cmd *cobra.Command, args []string) {
		c, err := config.NewDefault(configPath)
		if err != nil {
			logrus.Fatal(err)
		}
		if err := c.Reset(); err != nil {
			logrus.Fatal(err)
		}
		fmt.Fprintf(os.Stdout, "Preferences reset to %s\n", c.Data.Selection())
	},
}

func main() {
	Execute()
}
