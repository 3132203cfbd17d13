package notify

import (
	"context"
	"sync"

	"findjob-backend/internal/metrics"

	"github.com/rs/zerolog"
)

const (
	defaultWorkers = 2
	channelBuffer  = 256
)

// Dispatcher sends queued emails from a fixed set of workers fed by one
// buffered channel.
type Dispatcher struct {
	queue   chan Email
	mailer  Mailer
	workers int
	log     zerolog.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher creates a Dispatcher. Non-positive values fall back to defaults.
func NewDispatcher(mailer Mailer, workers, buffer int, log zerolog.Logger) *Dispatcher {
	if workers <= 0 {
		workers = defaultWorkers
	}
	if buffer <= 0 {
		buffer = channelBuffer
	}
	return &Dispatcher{
		queue:   make(chan Email, buffer),
		mailer:  mailer,
		workers: workers,
		log:     log,
	}
}

// Start launches the workers. They exit when ctx is cancelled or Stop drains the queue.
func (d *Dispatcher) Start(ctx context.Context) {
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.runWorker(ctx, i)
	}
}

// Enqueue queues e without blocking. It reports false when the email was
// dropped because the queue is full or the dispatcher is stopped.
func (d *Dispatcher) Enqueue(e Email) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		metrics.EmailsTotal.WithLabelValues("dropped").Inc()
		d.log.Warn().Str("to", e.To).Msg("email dispatcher stopped, email dropped")
		return false
	}
	select {
	case d.queue <- e:
		metrics.EmailQueueDepth.Set(float64(len(d.queue)))
		return true
	default:
		metrics.EmailsTotal.WithLabelValues("dropped").Inc()
		d.log.Warn().Str("to", e.To).Msg("email queue full, email dropped")
		return false
	}
}

// Stop refuses new emails, lets workers finish what is queued and waits for them.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()
	d.wg.Wait()
}

func (d *Dispatcher) runWorker(ctx context.Context, id int) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-d.queue:
			if !ok {
				return
			}
			metrics.EmailQueueDepth.Set(float64(len(d.queue)))
			d.deliver(ctx, id, e)
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, id int, e Email) {
	if err := d.mailer.Send(ctx, e); err != nil {
		metrics.EmailsTotal.WithLabelValues("failed").Inc()
		d.log.Error().Err(err).
			Str("to", e.To).
			Int("worker_id", id).
			Msg("email delivery failed")
		return
	}
	metrics.EmailsTotal.WithLabelValues("sent").Inc()
}
