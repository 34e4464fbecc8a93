// Package metric provides Prometheus metrics for chainmap tables.
//
// It exposes table aggregates as collect-time metrics:
//
//   - chainmap_entries: current number of live keys (gauge)
//   - chainmap_buckets: fixed bucket count (gauge)
//   - chainmap_ops_total: completed get/put/delete operations (counter)
//   - chainmap_chain_length: per-bucket chain length distribution (histogram)
//
// The collector reads table stats when scraped, so registering it adds no
// overhead to table operations. There is no network listener in this system;
// WriteText renders a gathered registry in the Prometheus text exposition
// format for printing to a terminal or file.
package metric
