// Package main provides the entry point for chainmap-cli.
//
// chainmap-cli is a workbench for the chainmap concurrent hash table:
//
//   - Benchmarking concurrent workloads against a table
//   - Walking a scripted example that demonstrates bucket chaining
//   - Dumping the bucket layout of a populated table
//
// Usage:
//
//	chainmap-cli [command] [flags]
//	chainmap-cli bench --workers 16 --ops 100000
//	chainmap-cli dump 5=100 9=200
//
// Configuration comes from a YAML file (--config), CHAINMAP_* environment
// variables, and flags, in increasing priority.
package main
