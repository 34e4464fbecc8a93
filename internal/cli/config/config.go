// Package config defines the CLI configuration structure.
package config

import (
	"errors"
	"fmt"

	"github.com/yndnr/chainmap-go/internal/infra/confloader"
)

// Hasher selection names accepted in table.hasher.
const (
	HasherMaphash = "maphash"
	HasherIdent   = "ident"
)

// Default configuration values.
const (
	DefaultCapacity      = 1024
	DefaultHasher        = HasherIdent
	DefaultWorkers       = 8
	DefaultOpsPerWorker  = 10000
	DefaultKeySpace      = 4096
	DefaultReadPercent   = 70
	DefaultDeletePercent = 10

	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// Config is the root configuration for chainmap-cli.
type Config struct {
	Table    TableSection    `koanf:"table"`
	Workload WorkloadSection `koanf:"workload"`
	Log      LogSection      `koanf:"log"`
}

// TableSection configures the table under test.
type TableSection struct {
	// Capacity is the fixed bucket count.
	Capacity int `koanf:"capacity"`

	// Hasher selects the bucket hash: "ident" (integer bit pattern) or
	// "maphash" (seeded, spreads skewed keys).
	Hasher string `koanf:"hasher"`
}

// WorkloadSection configures the bench workload shape.
type WorkloadSection struct {
	// Workers is the number of concurrent goroutines.
	Workers int `koanf:"workers"`

	// Ops is the number of operations each worker performs.
	Ops int `koanf:"ops"`

	// KeySpace bounds the keys used by the workload: [0, KeySpace).
	KeySpace int64 `koanf:"key_space"`

	// ReadPercent of operations are gets (0-100).
	ReadPercent int `koanf:"read_percent"`

	// DeletePercent of operations are deletes (0-100); the rest are puts.
	DeletePercent int `koanf:"delete_percent"`

	// Rate limits the aggregate operation rate in ops/sec. 0 means unlimited.
	Rate float64 `koanf:"rate"`

	// Seed makes worker key sequences reproducible. 0 picks a random seed.
	Seed uint64 `koanf:"seed"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Table: TableSection{
			Capacity: DefaultCapacity,
			Hasher:   DefaultHasher,
		},
		Workload: WorkloadSection{
			Workers:       DefaultWorkers,
			Ops:           DefaultOpsPerWorker,
			KeySpace:      DefaultKeySpace,
			ReadPercent:   DefaultReadPercent,
			DeletePercent: DefaultDeletePercent,
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// Load reads configuration from the given file (optional) and the
// environment on top of defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	l := confloader.NewLoader(confloader.WithConfigFile(path))
	if err := l.Load(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the tooling cannot run with.
func (c *Config) Validate() error {
	if c.Table.Capacity <= 0 {
		return errors.New("table.capacity must be positive")
	}
	if c.Table.Hasher != HasherIdent && c.Table.Hasher != HasherMaphash {
		return fmt.Errorf("table.hasher must be %q or %q, got %q",
			HasherIdent, HasherMaphash, c.Table.Hasher)
	}
	if c.Workload.Workers <= 0 {
		return errors.New("workload.workers must be positive")
	}
	if c.Workload.Ops <= 0 {
		return errors.New("workload.ops must be positive")
	}
	if c.Workload.KeySpace <= 0 {
		return errors.New("workload.key_space must be positive")
	}
	if c.Workload.ReadPercent < 0 || c.Workload.ReadPercent > 100 {
		return fmt.Errorf("workload.read_percent must be in [0,100], got %d", c.Workload.ReadPercent)
	}
	if c.Workload.DeletePercent < 0 || c.Workload.DeletePercent > 100 {
		return fmt.Errorf("workload.delete_percent must be in [0,100], got %d", c.Workload.DeletePercent)
	}
	if c.Workload.ReadPercent+c.Workload.DeletePercent > 100 {
		return errors.New("workload.read_percent + workload.delete_percent must not exceed 100")
	}
	if c.Workload.Rate < 0 {
		return errors.New("workload.rate must not be negative")
	}
	return nil
}
