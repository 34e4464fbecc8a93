// Package command provides CLI command definitions for chainmap-cli.
package command

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/chainmap-go/internal/cli/config"
	"github.com/yndnr/chainmap-go/internal/infra/confloader"
	"github.com/yndnr/chainmap-go/internal/telemetry/logger"
	"github.com/yndnr/chainmap-go/internal/telemetry/metric"
	"github.com/yndnr/chainmap-go/internal/workload"
)

// BenchCommand creates the bench command.
func BenchCommand() *cli.Command {
	return &cli.Command{
		Name:  "bench",
		Usage: "Run a concurrent workload against a table and report metrics",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "capacity",
				Usage: "Bucket count of the table under test",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Number of concurrent workers",
			},
			&cli.IntFlag{
				Name:  "ops",
				Usage: "Operations per worker",
			},
			&cli.Int64Flag{
				Name:  "key-space",
				Usage: "Keys are drawn from [0, key-space)",
			},
			&cli.IntFlag{
				Name:  "read-percent",
				Usage: "Percentage of gets in the mix",
			},
			&cli.IntFlag{
				Name:  "delete-percent",
				Usage: "Percentage of deletes in the mix",
			},
			&cli.Float64Flag{
				Name:  "rate",
				Usage: "Aggregate ops/sec limit (0 = unlimited)",
			},
			&cli.Uint64Flag{
				Name:  "seed",
				Usage: "Workload seed for reproducible runs (0 = random)",
			},
			&cli.BoolFlag{
				Name:  "metrics",
				Usage: "Print Prometheus metrics after the run",
				Value: true,
			},
			&cli.BoolFlag{
				Name:  "watch",
				Usage: "Reload log level from the config file while running",
			},
		},
		Action: runBench,
	}
}

func runBench(c *cli.Context) error {
	cfg := getConfig(c)
	applyBenchFlags(c, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	tbl, err := newTable(cfg)
	if err != nil {
		return err
	}

	if c.Bool("watch") {
		stop, err := watchLogLevel(c.String("config"))
		if err != nil {
			return err
		}
		defer stop()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	runner, err := workload.NewRunner(tbl, workload.Config{
		Workers:       cfg.Workload.Workers,
		Ops:           cfg.Workload.Ops,
		KeySpace:      cfg.Workload.KeySpace,
		ReadPercent:   cfg.Workload.ReadPercent,
		DeletePercent: cfg.Workload.DeletePercent,
		Rate:          cfg.Workload.Rate,
		Seed:          cfg.Workload.Seed,
	}, logger.Default())
	if err != nil {
		return err
	}

	res, err := runner.Run(ctx)
	if err != nil {
		return fmt.Errorf("run workload: %w", err)
	}

	opsPerSec := float64(res.Total()) / res.Elapsed.Seconds()
	fmt.Fprintf(c.App.Writer, "run %s: %d ops in %v (%.0f ops/sec)\n",
		res.RunID, res.Total(), res.Elapsed, opsPerSec)
	fmt.Fprintf(c.App.Writer, "  gets=%d puts=%d deletes=%d\n", res.Gets, res.Puts, res.Deletes)
	fmt.Fprintf(c.App.Writer, "  final size=%d ops=%d\n", res.FinalSize, res.FinalOps)

	if c.Bool("metrics") {
		reg, err := metric.NewRegistry(tbl)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.App.Writer)
		if err := metric.WriteText(c.App.Writer, reg); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}

	return nil
}

// applyBenchFlags overlays set flags onto the loaded configuration.
func applyBenchFlags(c *cli.Context, cfg *config.Config) {
	if c.IsSet("capacity") {
		cfg.Table.Capacity = c.Int("capacity")
	}
	if c.IsSet("workers") {
		cfg.Workload.Workers = c.Int("workers")
	}
	if c.IsSet("ops") {
		cfg.Workload.Ops = c.Int("ops")
	}
	if c.IsSet("key-space") {
		cfg.Workload.KeySpace = c.Int64("key-space")
	}
	if c.IsSet("read-percent") {
		cfg.Workload.ReadPercent = c.Int("read-percent")
	}
	if c.IsSet("delete-percent") {
		cfg.Workload.DeletePercent = c.Int("delete-percent")
	}
	if c.IsSet("rate") {
		cfg.Workload.Rate = c.Float64("rate")
	}
	if c.IsSet("seed") {
		cfg.Workload.Seed = c.Uint64("seed")
	}
}

// watchLogLevel watches the config file and applies log.level edits to the
// running process. Returns a stop function.
func watchLogLevel(path string) (func(), error) {
	if path == "" {
		return nil, fmt.Errorf("--watch requires --config")
	}

	w, err := confloader.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create config watcher: %w", err)
	}

	w.OnChange(func(string) {
		cfg, err := config.Load(path)
		if err != nil {
			logger.Default().Warn("config reload failed", "error", err)
			return
		}
		applyLogLevel(cfg.Log.Level)
	})

	if err := w.Watch(path); err != nil {
		w.Stop()
		return nil, fmt.Errorf("watch config file: %w", err)
	}
	w.StartAsync()

	return func() { w.Stop() }, nil
}

// applyLogLevel applies a reloaded log level if it actually differs from the
// active one. Levels are normalized first so aliases ("warning" for "warn")
// do not re-trigger on every file write.
func applyLogLevel(level string) {
	if logger.Normalize(level) == logger.GetLevel() {
		return
	}
	// Set before logging so the announcement survives a raise in verbosity.
	logger.SetLevel(level)
	logger.Default().Info("log level changed", "level", level)
}
