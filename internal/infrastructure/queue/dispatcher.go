// Package queue runs QR rendering off the request path. Rendering is
// CPU-bound image composition and must never run under a store lock; workers
// hand finished images back through the job's Attach hook, which the stores
// refuse when the target entry is gone.
package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/coinboard/coinboard/internal/api/metrics"
	"github.com/coinboard/coinboard/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 64
)

// Dispatcher routes render jobs to a fixed set of workers using consistent
// hashing on the job key, so repeated renders for the same token or username
// are applied in order.
type Dispatcher struct {
	workers  []chan ports.RenderJob
	renderer ports.CodeRenderer
	log      zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, renderer ports.CodeRenderer, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:  make([]chan ports.RenderJob, numWorkers),
		renderer: renderer,
		log:      log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.RenderJob, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends a job to the worker responsible for its key. The call is
// non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(job ports.RenderJob) {
	idx := d.shardIndex(job.Key)
	d.workers[idx] <- job
	metrics.RenderQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

// shardIndex maps a job key deterministically to a worker index.
func (d *Dispatcher) shardIndex(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.RenderJob) {
	workerID := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-ch:
			if !ok {
				return
			}
			metrics.RenderQueueDepth.WithLabelValues(workerID).Set(float64(len(ch)))
			d.process(id, job)
		}
	}
}

func (d *Dispatcher) process(id int, job ports.RenderJob) {
	start := time.Now()
	png, err := d.renderer.Render(job.Payload, job.Caption)
	if err != nil {
		metrics.RenderErrorsTotal.Inc()
		d.log.Error().Err(err).
			Str("key", job.Key).
			Int("worker_id", id).
			Msg("render failed")
		return
	}
	metrics.RenderDuration.Observe(time.Since(start).Seconds())

	if !job.Attach(png) {
		// Entry disappeared while rendering; the image is dropped.
		d.log.Debug().Str("key", job.Key).Msg("render target gone, image discarded")
	}
}
