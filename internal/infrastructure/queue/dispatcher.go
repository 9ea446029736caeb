package queue

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/catalogshop/catalog-api/internal/api/metrics"
	"github.com/catalogshop/catalog-api/internal/core/domain"
)

const (
	defaultWorkers = 2
	defaultBuffer  = 64
	sendTimeout    = 30 * time.Second
)

// Sender delivers a single mail.
type Sender interface {
	Send(ctx context.Context, m domain.Mail) error
}

// Dispatcher hands notification mail to a fixed pool of workers. Notify
// never blocks: when the buffer is full the mail is dropped.
type Dispatcher struct {
	jobs    chan domain.Mail
	workers int
	sender  Sender
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher. Non-positive sizes fall back to the
// defaults.
func NewDispatcher(workers, buffer int, sender Sender, log zerolog.Logger) *Dispatcher {
	if workers <= 0 {
		workers = defaultWorkers
	}
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	return &Dispatcher{
		jobs:    make(chan domain.Mail, buffer),
		workers: workers,
		sender:  sender,
		log:     log,
	}
}

// Start launches the workers. They stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.runWorker(ctx, i)
	}
}

// Wait blocks until every worker has returned.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Notify queues m and reports whether it was accepted.
func (d *Dispatcher) Notify(m domain.Mail) bool {
	select {
	case d.jobs <- m:
		metrics.MailQueueDepth.Set(float64(len(d.jobs)))
		return true
	default:
		metrics.MailNotificationsTotal.WithLabelValues("dropped").Inc()
		return false
	}
}

func (d *Dispatcher) runWorker(ctx context.Context, id int) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case m := <-d.jobs:
			metrics.MailQueueDepth.Set(float64(len(d.jobs)))
			d.send(ctx, id, m)
		}
	}
}

func (d *Dispatcher) send(ctx context.Context, id int, m domain.Mail) {
	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	if err := d.sender.Send(ctx, m); err != nil {
		metrics.MailNotificationsTotal.WithLabelValues("failed").Inc()
		d.log.Warn().Err(err).
			Str("to", m.To).
			Str("subject", m.Subject).
			Int("worker_id", id).
			Msg("notification mail failed")
		return
	}
	metrics.MailNotificationsTotal.WithLabelValues("sent").Inc()
	d.log.Debug().Str("to", m.To).Str("subject", m.Subject).Msg("notification mail sent")
}
