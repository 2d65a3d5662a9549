package broadcast

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"kanban-api/domain"
)

const (
	defaultWorkers = 4
	defaultBuffer  = 256
	publishTimeout = 5 * time.Second
)

// Dispatcher decouples event publishing from the mutating request: the
// response returns as soon as the store mutation completes, and workers
// push the notification afterwards. A saturated buffer drops the event,
// which the delivery contract allows.
type Dispatcher struct {
	jobs   chan domain.Event
	target domain.Publisher
	logger *log.Logger

	wg        sync.WaitGroup
	closeOnce sync.Once
}

var _ domain.Publisher = (*Dispatcher)(nil)

// NewDispatcher starts the worker pool over the target publisher.
func NewDispatcher(target domain.Publisher, workers, buffer int, logger *log.Logger) *Dispatcher {
	if workers <= 0 {
		workers = defaultWorkers
	}
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	if logger == nil {
		logger = log.StandardLogger()
	}
	d := &Dispatcher{
		jobs:   make(chan domain.Event, buffer),
		target: target,
		logger: logger,
	}
	for i := 0; i < workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
	return d
}

// Publish hands the event to a worker without blocking the caller.
func (d *Dispatcher) Publish(ctx context.Context, ev domain.Event) {
	select {
	case d.jobs <- ev:
	default:
		d.logger.WithField("board", ev.BoardID).Warn("dispatch buffer saturated, dropping board event")
	}
}

// Close stops the workers after draining queued events.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() { close(d.jobs) })
	d.wg.Wait()
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for ev := range d.jobs {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		d.target.Publish(ctx, ev)
		cancel()
	}
}
