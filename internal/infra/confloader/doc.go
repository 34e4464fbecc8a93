// Package confloader provides configuration loading mechanism.
//
// It uses koanf to load configuration from multiple sources and unmarshal it
// into typed structs.
//
// Priority (highest to lowest):
//
//  1. Environment variables (CHAINMAP_ prefix)
//  2. Configuration file (YAML)
//  3. Default values
//
// A file watcher (fsnotify) is available for reacting to config file edits
// while a long-running command is in flight, e.g. to adjust the log level of
// a running benchmark.
package confloader
