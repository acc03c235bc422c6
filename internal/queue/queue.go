package queue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/chronostack/chronostack/internal/chronology"
	"github.com/chronostack/chronostack/internal/config"
	"github.com/chronostack/chronostack/internal/dispatch"
	"github.com/chronostack/chronostack/internal/metrics"
	"github.com/chronostack/chronostack/internal/store"
)

// ErrFull is returned by Enqueue when the job buffer has no room.
var ErrFull = errors.New("queue: buffer full")

// Job is one pending chronology calculation.
type Job struct {
	RequestID int
	Text      string
	Purpose   string
}

// Deliverer sends a finished result to the collector.
// Satisfied by *dispatch.Dispatcher; abstracted for tests.
type Deliverer interface {
	Deliver(ctx context.Context, res dispatch.Result) error
}

// Queue buffers calculation jobs and processes them with a worker pool.
type Queue struct {
	jobs      chan Job
	workers   int
	fallback  *chronology.Fallback
	deliverer Deliverer
	records   *store.Store
	metrics   *metrics.Metrics
	seq       atomic.Int64
}

// New creates a Queue with the configured buffer size and worker count.
func New(cfg config.QueueConfig, fb *chronology.Fallback, d Deliverer, st *store.Store, m *metrics.Metrics) *Queue {
	return &Queue{
		jobs:      make(chan Job, cfg.BufferSize),
		workers:   cfg.Workers,
		fallback:  fb,
		deliverer: d,
		records:   st,
		metrics:   m,
	}
}

// Enqueue adds a job to the buffer without blocking and returns its task
// ID. A full buffer rejects the job with ErrFull.
func (q *Queue) Enqueue(job Job) (string, error) {
	taskID := "task-" + strconv.Itoa(job.RequestID) + "-" + strconv.FormatInt(q.seq.Add(1), 10)
	select {
	case q.jobs <- job:
		q.metrics.QueueDepth.Set(float64(len(q.jobs)))
		slog.Info("queue: job accepted",
			"request_id", job.RequestID, "task_id", taskID, "depth", len(q.jobs))
		return taskID, nil
	default:
		return "", fmt.Errorf("%w: %d jobs pending", ErrFull, len(q.jobs))
	}
}

// Depth returns the number of jobs currently buffered.
func (q *Queue) Depth() int { return len(q.jobs) }

// Run starts the worker pool and blocks until ctx is cancelled and all
// workers have returned.
func (q *Queue) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < q.workers; i++ {
		worker := i
		g.Go(func() error {
			q.runWorker(ctx, worker)
			return nil
		})
	}
	return g.Wait()
}

func (q *Queue) runWorker(ctx context.Context, id int) {
	for {
		select {
		case <-ctx.Done():
			return
		case job := <-q.jobs:
			q.metrics.QueueDepth.Set(float64(len(q.jobs)))
			q.process(ctx, job)
		}
	}
}

// process runs one calculation end to end: estimate, fallback, record,
// deliver. Delivery exhaustion marks the record as an error — the result
// was computed, but the collector never confirmed receipt.
func (q *Queue) process(ctx context.Context, job Job) {
	start := time.Now()

	year, matched := chronology.Estimate(job.Text)
	if matched == 0 {
		q.metrics.FallbacksTotal.Inc()
	}
	year, matched = q.fallback.Apply(year, matched)

	rec := store.Record{
		RequestID:     job.RequestID,
		Purpose:       job.Purpose,
		FromYear:      year,
		ToYear:        year + chronology.RangeSpan,
		MatchedLayers: matched,
		Status:        store.StatusSuccess,
	}

	err := q.deliverer.Deliver(ctx, dispatch.Result{
		RequestID:     job.RequestID,
		FromYear:      rec.FromYear,
		ToYear:        rec.ToYear,
		MatchedLayers: rec.MatchedLayers,
	})
	if err != nil {
		rec.Status = store.StatusError
		rec.Error = err.Error()
		q.metrics.DispatchesTotal.WithLabelValues("failed").Inc()
		slog.Error("queue: result delivery failed after all attempts",
			"request_id", job.RequestID, "err", err)
	} else {
		q.metrics.DispatchesTotal.WithLabelValues("delivered").Inc()
	}

	q.records.Put(rec)
	q.metrics.CalculationsTotal.WithLabelValues(rec.Status).Inc()
	q.metrics.EstimatedYears.WithLabelValues(strconv.Itoa(year)).Inc()
	q.metrics.CalcDuration.Observe(time.Since(start).Seconds())

	slog.Info("queue: calculation finished",
		"request_id", job.RequestID,
		"from_year", rec.FromYear,
		"matched_layers", rec.MatchedLayers,
		"status", rec.Status,
	)
}
