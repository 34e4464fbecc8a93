// Package config provides CLI configuration for chainmap-cli.
//
// This package defines the typed configuration consumed by the commands:
//
//   - table: capacity and hasher of the table under test
//   - workload: worker count, op mix, key space, pacing, seed
//   - log: level and format
//
// Values load through confloader: defaults, then a YAML file, then
// CHAINMAP_* environment variables.
package config
