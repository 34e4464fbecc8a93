// Package workload drives concurrent operation mixes against a chainmap table.
package workload

import (
	"context"
	crand "crypto/rand"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/yndnr/chainmap-go/internal/telemetry/logger"
	"github.com/yndnr/chainmap-go/pkg/chainmap"
)

// ErrInvalidWorkload is returned for workload shapes that cannot run.
var ErrInvalidWorkload = errors.New("workload: invalid configuration")

// Config describes the workload shape.
type Config struct {
	// Workers is the number of concurrent goroutines.
	Workers int

	// Ops is the number of operations each worker performs.
	Ops int

	// KeySpace bounds workload keys to [0, KeySpace).
	KeySpace int64

	// ReadPercent of operations are gets, DeletePercent are deletes;
	// the remainder are puts. Both in [0,100], summing to at most 100.
	ReadPercent   int
	DeletePercent int

	// Rate limits aggregate throughput in ops/sec. 0 means unlimited.
	Rate float64

	// Seed makes worker key sequences reproducible. 0 picks a random seed.
	Seed uint64
}

// Result summarizes a completed run.
type Result struct {
	RunID   string
	Gets    uint64
	Puts    uint64
	Deletes uint64
	Elapsed time.Duration

	// Table aggregates observed after the run quiesced.
	FinalSize int
	FinalOps  uint64
}

// Total returns the number of operations issued by the run.
func (r *Result) Total() uint64 {
	return r.Gets + r.Puts + r.Deletes
}

// Runner executes a workload against one table.
type Runner struct {
	cfg     Config
	table   *chainmap.Table[int64, int64]
	log     logger.Logger
	limiter *rate.Limiter
}

// NewRunner creates a runner. The table is shared by all workers.
func NewRunner(table *chainmap.Table[int64, int64], cfg Config, log logger.Logger) (*Runner, error) {
	if table == nil {
		return nil, fmt.Errorf("%w: nil table", ErrInvalidWorkload)
	}
	if cfg.Workers <= 0 || cfg.Ops <= 0 || cfg.KeySpace <= 0 {
		return nil, fmt.Errorf("%w: workers, ops and key space must be positive", ErrInvalidWorkload)
	}
	if cfg.ReadPercent < 0 || cfg.DeletePercent < 0 || cfg.ReadPercent+cfg.DeletePercent > 100 {
		return nil, fmt.Errorf("%w: read/delete mix must fit in [0,100]", ErrInvalidWorkload)
	}
	if cfg.Rate < 0 {
		return nil, fmt.Errorf("%w: rate must not be negative", ErrInvalidWorkload)
	}

	if log == nil {
		log = logger.Default()
	}

	r := &Runner{
		cfg:   cfg,
		table: table,
		log:   log,
	}
	if cfg.Rate > 0 {
		// Burst of one per worker keeps pacing smooth without letting
		// the whole run fire at once.
		r.limiter = rate.NewLimiter(rate.Limit(cfg.Rate), cfg.Workers)
	}
	return r, nil
}

// newRunID generates a ULID for log correlation.
func newRunID() string {
	entropy := ulid.Monotonic(crand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "run-unknown"
	}
	return "run-" + strings.ToLower(id.String())
}

// Run executes the workload and blocks until every worker finishes or the
// context is canceled. On cancellation the first context error is returned.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	runID := newRunID()
	log := r.log.With("run_id", runID)

	seed := r.cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	log.Info("workload starting",
		"workers", r.cfg.Workers,
		"ops_per_worker", r.cfg.Ops,
		"key_space", r.cfg.KeySpace,
		"read_percent", r.cfg.ReadPercent,
		"delete_percent", r.cfg.DeletePercent,
		"rate", r.cfg.Rate,
		"seed", seed,
	)

	opsBefore := r.table.Ops()
	var gets, puts, deletes atomic.Uint64

	start := time.Now()
	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < r.cfg.Workers; w++ {
		g.Go(func() error {
			// Per-worker PCG stream: reproducible for a fixed seed,
			// uncorrelated across workers.
			rng := rand.New(rand.NewPCG(seed, uint64(w)))

			for i := 0; i < r.cfg.Ops; i++ {
				if r.limiter != nil {
					if err := r.limiter.Wait(ctx); err != nil {
						return err
					}
				} else if err := ctx.Err(); err != nil {
					return err
				}

				key := rng.Int64N(r.cfg.KeySpace)
				switch roll := rng.IntN(100); {
				case roll < r.cfg.ReadPercent:
					r.table.Get(key)
					gets.Add(1)
				case roll < r.cfg.ReadPercent+r.cfg.DeletePercent:
					r.table.Delete(key)
					deletes.Add(1)
				default:
					r.table.Put(key, key)
					puts.Add(1)
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.Warn("workload aborted", "error", err)
		return nil, err
	}

	res := &Result{
		RunID:     runID,
		Gets:      gets.Load(),
		Puts:      puts.Load(),
		Deletes:   deletes.Load(),
		Elapsed:   time.Since(start),
		FinalSize: r.table.Len(),
		FinalOps:  r.table.Ops(),
	}

	// The table's op counter must account for exactly the operations this
	// run issued on top of whatever ran before.
	if got := res.FinalOps - opsBefore; got != res.Total() {
		return nil, fmt.Errorf("workload: op counter drifted: table counted %d, issued %d", got, res.Total())
	}

	log.Info("workload finished",
		"gets", res.Gets,
		"puts", res.Puts,
		"deletes", res.Deletes,
		"elapsed", res.Elapsed,
		"final_size", res.FinalSize,
		"final_ops", res.FinalOps,
	)
	return res, nil
}
