package daemon

import (
	"context"
	"errors"
	"log/slog"

	"github.com/1broseidon/tilewm/internal/events"
)

// ErrDisplayClosed is returned by Pump.Run when the display goes away.
var ErrDisplayClosed = errors.New("display connection closed")

// EventSource is a blocking, pull-based source of event items.
type EventSource interface {
	NextEvents() []events.Item
	Closed() bool
}

// Handler consumes items in arrival order.
type Handler func(events.Item)

// Pump moves items from an EventSource to a Handler on one goroutine.
type Pump struct {
	source  EventSource
	handler Handler
	logger  *slog.Logger
}

// NewPump creates a pump. A nil logger uses slog.Default.
func NewPump(source EventSource, handler Handler, logger *slog.Logger) *Pump {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pump{source: source, handler: handler, logger: logger}
}

// Run pulls batches until ctx is cancelled or the source closes. NextEvents
// blocks, so cancellation is only noticed between batches.
func (p *Pump) Run(ctx context.Context) error {
	p.logger.Info("event pump started")
	for {
		select {
		case <-ctx.Done():
			p.logger.Info("event pump stopped")
			return ctx.Err()
		default:
		}

		for _, item := range p.source.NextEvents() {
			p.dispatch(item)
		}

		if p.source.Closed() {
			p.logger.Info("event pump stopped: display closed")
			return ErrDisplayClosed
		}
	}
}

// dispatch hands one item to the handler, keeping the pump alive if the
// handler panics.
func (p *Pump) dispatch(item events.Item) {
	defer func() {
		if err := recover(); err != nil {
			p.logger.Error("event handler panic recovered", "kind", item.Kind(), "error", err)
		}
	}()
	p.handler(item)
}
