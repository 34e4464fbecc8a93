// Package command provides CLI command definitions for chainmap-cli.
package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/chainmap-go/internal/cli/config"
	"github.com/yndnr/chainmap-go/internal/infra/buildinfo"
	"github.com/yndnr/chainmap-go/internal/telemetry/logger"
	"github.com/yndnr/chainmap-go/pkg/chainmap"
)

// App creates the CLI application.
func App() *cli.App {
	app := &cli.App{
		Name:    "chainmap-cli",
		Usage:   "workbench for the chainmap concurrent hash table",
		Version: buildinfo.String(),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			BenchCommand(),
			ExerciseCommand(),
			DumpCommand(),
			VersionCommand(),
		},
		Metadata: map[string]any{},
		Before:   setup,
	}

	return app
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to a YAML configuration file",
			EnvVars: []string{"CHAINMAP_CONFIG"},
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level: debug, info, warn, error",
		},
		&cli.StringFlag{
			Name:  "log-format",
			Usage: "Log format: text, json",
		},
	}
}

// setup loads configuration and installs the logger before any command runs.
func setup(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	// Flags win over file and environment.
	if c.IsSet("log-level") {
		cfg.Log.Level = c.String("log-level")
	}
	if c.IsSet("log-format") {
		cfg.Log.Format = c.String("log-format")
	}

	logger.SetDefault(logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	}))

	c.App.Metadata["config"] = cfg
	return nil
}

// getConfig retrieves the loaded configuration from app metadata.
func getConfig(c *cli.Context) *config.Config {
	if cfg, ok := c.App.Metadata["config"].(*config.Config); ok {
		return cfg
	}
	return config.Default()
}

// newTable builds a table from the table section of the configuration.
func newTable(cfg *config.Config) (*chainmap.Table[int64, int64], error) {
	var opts []chainmap.Option[int64, int64]
	if cfg.Table.Hasher == config.HasherIdent {
		opts = append(opts, chainmap.WithHasher[int64, int64](chainmap.IntHasher[int64]))
	}

	tbl, err := chainmap.New[int64, int64](cfg.Table.Capacity, opts...)
	if err != nil {
		return nil, fmt.Errorf("create table: %w", err)
	}
	return tbl, nil
}
