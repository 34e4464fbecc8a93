// Package command provides CLI command definitions for chainmap-cli.
//
// It uses urfave/cli/v2 for command parsing. Available commands:
//
//   - bench: run a concurrent workload against a table and report metrics
//   - exercise: walk a small scripted put/get/delete sequence step by step
//   - dump: populate a table from key=value arguments and print its buckets
//   - version: print build information
//
// Configuration comes from a YAML file (--config), environment variables
// with the CHAINMAP_ prefix, and command flags, in increasing priority.
package command
