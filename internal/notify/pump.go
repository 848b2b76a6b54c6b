package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/lib/pq"

	"github.com/alfredjeanlab/chatwire/internal/events"
)

const (
	// Reconnect backoff bounds for the underlying pq.Listener.
	minReconnectInterval = 10 * time.Second
	maxReconnectInterval = time.Minute

	// pingInterval bounds how long a dead connection can go unnoticed while
	// no notifications arrive.
	pingInterval = 90 * time.Second
)

// Sink receives resolved events. Implemented by the subscriber registry;
// Publish must never block.
type Sink interface {
	Publish(userID int64, ev *events.AppEvent)
}

// Pump owns the LISTEN connection to Postgres and drives the
// decode -> resolve -> publish loop.
type Pump struct {
	listener *pq.Listener
	sink     Sink
	mirror   events.Publisher
	logger   *slog.Logger
}

// NewPump connects to the database at databaseURL and registers LISTEN on the
// chat notification channels. Events are published to sink for every resolved
// recipient and mirrored to mirror.
func NewPump(databaseURL string, sink Sink, mirror events.Publisher, logger *slog.Logger) (*Pump, error) {
	listener := pq.NewListener(databaseURL, minReconnectInterval, maxReconnectInterval,
		func(ev pq.ListenerEventType, err error) {
			if err != nil {
				logger.Warn("notification listener event", "event", ev, "error", err)
			}
		})

	for _, ch := range Channels {
		if err := listener.Listen(ch); err != nil {
			listener.Close()
			return nil, fmt.Errorf("listen on %s: %w", ch, err)
		}
	}

	return &Pump{
		listener: listener,
		sink:     sink,
		mirror:   mirror,
		logger:   logger,
	}, nil
}

// Run consumes notifications until ctx is canceled or the listener fails.
// The returned error is fatal to the pump session; there is no buffering of
// missed notifications across restarts.
func (p *Pump) Run(ctx context.Context) error {
	defer p.listener.Close()

	ping := time.NewTicker(pingInterval)
	defer ping.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case n, ok := <-p.listener.Notify:
			if !ok {
				return errors.New("notify: listener channel closed")
			}
			if n == nil {
				// lib/pq sends nil after re-establishing the connection.
				// Notifications raised in the gap are gone; clients see a gap.
				p.logger.Warn("notification connection re-established, events may have been missed")
				continue
			}
			p.handle(ctx, n.Channel, n.Extra)

		case <-ping.C:
			if err := p.listener.Ping(); err != nil {
				return fmt.Errorf("pinging notification connection: %w", err)
			}
		}
	}
}

// handle processes one raw notification. A decode or resolve failure drops
// that single notification so one bad payload cannot stall the stream.
func (p *Pump) handle(ctx context.Context, channel, payload string) {
	change, err := Decode(channel, payload)
	if err != nil {
		p.logger.Warn("dropping notification", "channel", channel, "error", err)
		return
	}

	recipients := Resolve(change)
	if len(recipients) == 0 {
		return
	}

	ev := change.Event()
	for _, id := range recipients.IDs() {
		p.sink.Publish(id, ev)
	}

	if err := p.mirror.Publish(ctx, ev); err != nil {
		p.logger.Warn("failed to mirror event", "type", ev.Type, "error", err)
	}
}
