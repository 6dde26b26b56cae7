package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/kudoshq/kudos-api/internal/api/metrics"
	"github.com/kudoshq/kudos-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes kudo notifications to a fixed set of workers using
// consistent hashing on the recipient id, guaranteeing per-recipient
// delivery ordering.
type Dispatcher struct {
	workers   []chan ports.KudoNotification
	processor ports.NotificationProcessor
	log       zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, processor ports.NotificationProcessor, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:   make([]chan ports.KudoNotification, numWorkers),
		processor: processor,
		log:       log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.KudoNotification, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends a notification to the worker responsible for its recipient.
// The call is non-blocking up to channelBuffer capacity; beyond that the
// notification is dropped with a warning rather than stalling kudo creation.
func (d *Dispatcher) Enqueue(n ports.KudoNotification) {
	idx := d.shard(n.RecipientID)
	select {
	case d.workers[idx] <- n:
		metrics.NotificationQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		d.log.Warn().
			Str("kudo_id", n.KudoID).
			Int("worker_id", idx).
			Msg("notification queue full, dropping")
	}
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch chan ports.KudoNotification) {
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			d.log.Info().Int("worker_id", id).Msg("notification worker stopping")
			return
		case n := <-ch:
			metrics.NotificationQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
			if err := d.processor.ProcessNotification(ctx, n); err != nil {
				d.log.Error().
					Err(err).
					Str("kudo_id", n.KudoID).
					Int("worker_id", id).
					Msg("notification processing failed")
			}
		}
	}
}

func (d *Dispatcher) shard(recipientID string) int {
	h := fnv.New32a()
	h.Write([]byte(recipientID))
	return int(h.Sum32() % uint32(len(d.workers)))
}
