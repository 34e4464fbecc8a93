// Package metric provides Prometheus metrics for chainmap tables.
package metric

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/yndnr/chainmap-go/pkg/chainmap"
)

// chainLengthBuckets are the histogram bucket bounds for chain lengths.
// Anything past the last bound indicates heavy key skew.
var chainLengthBuckets = []float64{0, 1, 2, 4, 8, 16, 32, 64}

// TableStats is the diagnostic surface a table exposes to the collector.
// chainmap.Table implements it for any key/value types.
type TableStats interface {
	Len() int
	Cap() int
	Ops() uint64
	Stats() []chainmap.BucketStat
}

// Collector collects metrics from a table at scrape time.
type Collector struct {
	table TableStats

	entries     *prometheus.Desc
	buckets     *prometheus.Desc
	ops         *prometheus.Desc
	chainLength *prometheus.Desc
}

// NewCollector creates a collector for the given table.
func NewCollector(table TableStats) *Collector {
	return &Collector{
		table: table,
		entries: prometheus.NewDesc(
			"chainmap_entries",
			"Current number of live keys in the table.",
			nil, nil,
		),
		buckets: prometheus.NewDesc(
			"chainmap_buckets",
			"Fixed bucket count of the table.",
			nil, nil,
		),
		ops: prometheus.NewDesc(
			"chainmap_ops_total",
			"Completed get/put/delete operations, hit or miss.",
			nil, nil,
		),
		chainLength: prometheus.NewDesc(
			"chainmap_chain_length",
			"Distribution of per-bucket chain lengths.",
			nil, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.entries
	ch <- c.buckets
	ch <- c.ops
	ch <- c.chainLength
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.entries, prometheus.GaugeValue, float64(c.table.Len()))
	ch <- prometheus.MustNewConstMetric(c.buckets, prometheus.GaugeValue, float64(c.table.Cap()))
	ch <- prometheus.MustNewConstMetric(c.ops, prometheus.CounterValue, float64(c.table.Ops()))

	stats := c.table.Stats()
	counts := make(map[float64]uint64, len(chainLengthBuckets))
	var sum float64
	for _, bound := range chainLengthBuckets {
		counts[bound] = 0
	}
	for _, s := range stats {
		sum += float64(s.Length)
		for _, bound := range chainLengthBuckets {
			if float64(s.Length) <= bound {
				counts[bound]++
			}
		}
	}

	ch <- prometheus.MustNewConstHistogram(c.chainLength, uint64(len(stats)), sum, counts)
}

// NewRegistry creates a registry with a table collector registered.
func NewRegistry(table TableStats) (*prometheus.Registry, error) {
	reg := prometheus.NewRegistry()
	if err := reg.Register(NewCollector(table)); err != nil {
		return nil, fmt.Errorf("register table collector: %w", err)
	}
	return reg, nil
}

// WriteText gathers the registry and writes it to w in the Prometheus text
// exposition format.
func WriteText(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}

	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("encode %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
