// Package logger provides structured logging for chainmap tooling.
//
// Features:
//
//   - JSON or text output via log/slog handlers
//   - Dynamic global level adjustment (SetLevel), usable from config reloads
//   - A process-wide default logger for packages without injected loggers
package logger
