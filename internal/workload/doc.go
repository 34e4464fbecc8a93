// Package workload drives concurrent operation mixes against a chainmap
// table.
//
// A Runner spawns N workers that issue a configurable get/put/delete mix over
// a bounded key space, optionally paced by a shared rate limiter. Each run is
// tagged with a ULID so log lines from one run can be correlated. After the
// workers finish, the runner cross-checks the table's operation counter
// against the operations it issued.
//
// Used by the chainmap-cli bench command and by stress tests.
package workload
