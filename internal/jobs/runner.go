// Package jobs drives the periodic refresh cycle: full re-sync, holiday
// refresh and the notification digest each run on their own ticker.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kellyson71/electron-supaco-IFRN-API/internal/observability"
)

var (
	runs = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "supaco", Name: "job_runs_total", Help: "Background job runs by job and outcome",
	}, []string{"job", "outcome"})
	duration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "supaco", Name: "job_duration_seconds", Help: "Background job duration in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"job"})
	lastSuccess = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "supaco", Name: "job_last_success_timestamp_seconds",
		Help: "Unix time of the last successful run; a stale value means the sync loop is stuck",
	}, []string{"job"})
)

func init() {
	prometheus.MustRegister(runs, duration, lastSuccess)
}

type Job func(ctx context.Context) error

type Runner struct {
	ctx context.Context
}

func New(ctx context.Context) *Runner { return &Runner{ctx: ctx} }

// Every runs fn on a ticker until the runner context ends. A panicking job
// is reported and the loop keeps going.
func (r *Runner) Every(interval time.Duration, name string, fn Job) {
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-r.ctx.Done():
				return
			case <-t.C:
				start := time.Now()
				err := runSafe(r.ctx, name, fn)
				duration.WithLabelValues(name).Observe(time.Since(start).Seconds())
				if err != nil {
					runs.WithLabelValues(name, "error").Inc()
					observability.CaptureErr(err)
					continue
				}
				runs.WithLabelValues(name, "ok").Inc()
				lastSuccess.WithLabelValues(name).SetToCurrentTime()
			}
		}
	}()
}

func runSafe(ctx context.Context, name string, fn Job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in job %s: %v", name, r)
		}
	}()
	return fn(ctx)
}
