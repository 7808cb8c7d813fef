package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskbid/marketplace/internal/api/metrics"
	"github.com/taskbid/marketplace/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes settlement callbacks to a fixed set of workers using
// consistent hashing on the task title, guaranteeing per-task ordering of
// settlement processing. Callbacks arrive out-of-band relative to the checkout
// request, so they are applied here asynchronously.
type Dispatcher struct {
	workers []chan ports.SettlementInput
	service ports.SettlementService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.SettlementService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.SettlementInput, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.SettlementInput, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends a callback to the worker responsible for its task title.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(input ports.SettlementInput) {
	i := d.shardIndex(input.TaskTitle)
	d.workers[i] <- input
	metrics.SettlementQueueDepth.WithLabelValues(strconv.Itoa(i)).Set(float64(len(d.workers[i])))
}

// shardIndex maps a task title deterministically to a worker index.
func (d *Dispatcher) shardIndex(taskTitle string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(taskTitle))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.SettlementInput) {
	for {
		select {
		case <-ctx.Done():
			return
		case input, ok := <-ch:
			if !ok {
				return
			}
			start := time.Now()
			result := input.Status
			if err := d.service.Process(ctx, input); err != nil {
				result = "error"
				d.log.Error().Err(err).
					Str("task", input.TaskTitle).
					Str("user", input.Username).
					Int("worker_id", id).
					Msg("settlement processing failed")
			}
			metrics.SettlementsTotal.WithLabelValues(result).Inc()
			metrics.SettlementProcessingDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())
			metrics.SettlementQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
		}
	}
}
