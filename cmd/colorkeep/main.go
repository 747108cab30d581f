//go:build windows

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/colorkeep/colorkeep/internal/config"
	"github.com/colorkeep/colorkeep/internal/display"
	"github.com/colorkeep/colorkeep/internal/events"
	"github.com/colorkeep/colorkeep/internal/logging"
	"github.com/colorkeep/colorkeep/internal/notify"
	"github.com/colorkeep/colorkeep/internal/pipeline"
	"github.com/colorkeep/colorkeep/internal/profile"
	"github.com/colorkeep/colorkeep/internal/refresh"
	"github.com/colorkeep/colorkeep/internal/service"
	"github.com/colorkeep/colorkeep/internal/winevents"
	"github.com/colorkeep/colorkeep/pkg/types"
)

func main() {
	ctx := context.Background()

	if len(os.Args) < 2 {
		// The service control manager starts the binary with no arguments.
		if isService, _ := service.IsWindowsService(); isService {
			if err := runService(nil); err != nil {
				fmt.Fprintf(os.Stderr, "service failed: %v\n", err)
				os.Exit(1)
			}
			return
		}
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	var err error

	switch cmd {
	case "run":
		err = runService(os.Args[2:])
	case "watch":
		err = watch(ctx, os.Args[2:])
	case "apply":
		err = apply(ctx, os.Args[2:])
	case "monitors":
		err = listMonitors(os.Args[2:])
	case "init":
		err = initConfig(os.Args[2:])
	case "-h", "--help", "help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "command %s failed: %v\n", cmd, err)
		os.Exit(1)
	}
}

func runService(args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	configPath := fs.String("config", config.Path(), "Path to configuration file")

	if err := fs.Parse(args); err != nil {
		return err
	}

	isService, err := service.IsWindowsService()
	if err != nil {
		return fmt.Errorf("detect service environment: %w", err)
	}
	if !isService {
		return fmt.Errorf("run is the service entry point; use %q for a foreground session", "colorkeep watch")
	}

	logger := logging.New()
	loop, cleanup := buildLoop(*configPath, logger)
	defer cleanup()

	return service.Run(loop, logger)
}

func watch(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	configPath := fs.String("config", config.Path(), "Path to configuration file")

	if err := fs.Parse(args); err != nil {
		return err
	}

	logger := logging.New()
	loop, cleanup := buildLoop(*configPath, logger)
	defer cleanup()

	runCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Printf("watching for display and session events (Ctrl+C to stop)")
	if err := loop.Run(runCtx); err != nil {
		return err
	}

	logger.Printf("stopped")
	return nil
}

// apply runs a single reapply cycle immediately, without waiting for an
// event. Useful after editing the profile and from scheduled tasks.
func apply(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("apply", flag.ContinueOnError)
	configPath := fs.String("config", config.Path(), "Path to configuration file")

	if err := fs.Parse(args); err != nil {
		return err
	}

	logger := logging.New()
	cfg := loadConfig(*configPath, logger)

	runner := pipeline.New(pipeline.Dependencies{
		Directory: display.NewWMIDirectory(),
		Store:     profile.NewMscmsStore(),
		Refresher: refresh.NewSignals(),
		Recorder:  events.LogRecorder{Logger: logger},
		Sink:      notify.Sink{Notifier: notify.NewToastNotifier(service.Name), Logger: logger},
		Logger:    logger,
	})

	summary := runner.Run(ctx, cfg, types.MaskDevice, 0)
	if summary.Empty() {
		logger.Printf("no monitors matched %q", cfg.MonitorMatch)
	}
	return applyError(summary)
}

// applyError maps a cycle summary to the command's exit status: success as
// long as at least one monitor toggled, failure only when every attempt
// failed.
func applyError(summary types.CycleSummary) error {
	if summary.Succeeded == 0 && summary.Failed > 0 {
		return fmt.Errorf("%d of %d monitors failed", summary.Failed, len(summary.Outcomes))
	}
	return nil
}

func listMonitors(args []string) error {
	fs := flag.NewFlagSet("monitors", flag.ContinueOnError)
	configPath := fs.String("config", config.Path(), "Path to configuration file")
	match := fs.String("match", "", "Override the configured monitor match pattern (empty lists all)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	logger := logging.New()
	cfg := loadConfig(*configPath, logger)

	pattern := cfg.MonitorMatch
	if flagPassed(fs, "match") {
		pattern = *match
	}

	monitors, err := display.Resolve(display.NewWMIDirectory(), pattern)
	if err != nil {
		return fmt.Errorf("enumerate monitors: %w", err)
	}

	if len(monitors) == 0 {
		fmt.Printf("no monitors match %q\n", pattern)
		return nil
	}
	for _, mon := range monitors {
		fmt.Printf("%s\n  device: %s\n", mon.Name, mon.DeviceKey)
	}
	return nil
}

func initConfig(args []string) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	configPath := fs.String("config", config.Path(), "Path to write the default configuration file")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if _, err := os.Stat(*configPath); err == nil {
		return fmt.Errorf("config already exists at %s", *configPath)
	}

	if err := config.WriteDefault(*configPath); err != nil {
		return err
	}
	fmt.Printf("wrote default config to %s\n", *configPath)
	return nil
}

// buildLoop wires the event adapter, debounce loop and reapply pipeline.
// The pipeline reads the loop's epoch so a cycle started before a newer
// event burst aborts instead of toggling on stale state.
func buildLoop(configPath string, logger *log.Logger) (*service.Loop, func()) {
	cfg := loadConfig(configPath, logger)

	adapter := winevents.New(logger, cfg.Verbose)
	loop := service.NewLoop(cfg, service.Dependencies{
		Source: adapter,
		Logger: logger,
		LoadConfig: func() config.Config {
			return loadConfig(configPath, logger)
		},
	})

	recorders := []events.Recorder{events.LogRecorder{Logger: logger}}
	cleanup := func() {}
	if elog, err := events.OpenEventLog(service.Name); err != nil {
		logger.Printf("windows event log unavailable: %v", err)
	} else {
		recorders = append(recorders, elog)
		cleanup = func() { _ = elog.Close() }
	}

	runner := pipeline.New(pipeline.Dependencies{
		Directory:    display.NewWMIDirectory(),
		Store:        profile.NewMscmsStore(),
		Refresher:    refresh.NewSignals(),
		Recorder:     events.NewMulti(recorders...),
		Sink:         notify.Sink{Notifier: notify.NewToastNotifier(service.Name), Logger: logger},
		Logger:       logger,
		CurrentEpoch: loop.Epoch,
	})
	loop.SetRunner(runner)

	return loop, cleanup
}

func loadConfig(path string, logger *log.Logger) config.Config {
	cfg, err := config.Load(path)
	if err != nil {
		logger.Printf("using default config: %v", err)
	}
	return cfg
}

func flagPassed(fs *flag.FlagSet, name string) bool {
	passed := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			passed = true
		}
	})
	return passed
}

func printUsage() {
	fmt.Println("ColorKeep - keeps a monitor's ICC profile from silently reverting")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  colorkeep run [--config path]       (service control manager entry point)")
	fmt.Println("  colorkeep watch [--config path]     (foreground, Ctrl+C to stop)")
	fmt.Println("  colorkeep apply [--config path]     (one immediate reapply cycle)")
	fmt.Println("  colorkeep monitors [--match text]   (list attached monitors)")
	fmt.Println("  colorkeep init [--config path]      (write the default config file)")
}
