package events

import (
	"context"
	"fmt"

	"github.com/nats-io/nats.go"
)

// SubjectPrefix is prepended to the event type to form the NATS subject,
// e.g. "chat.events.NewMessage".
const SubjectPrefix = "chat.events."

// NATSPublisher mirrors domain events to NATS subjects.
type NATSPublisher struct {
	conn *nats.Conn
}

// NewNATSPublisher connects to NATS at the given URL.
func NewNATSPublisher(url string) (*NATSPublisher, error) {
	nc, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS at %s: %w", url, err)
	}
	return &NATSPublisher{conn: nc}, nil
}

// Publish sends the event's wire payload to "chat.events.<type>".
func (p *NATSPublisher) Publish(ctx context.Context, ev *AppEvent) error {
	data, err := ev.Wire()
	if err != nil {
		return fmt.Errorf("marshaling event: %w", err)
	}
	return p.conn.Publish(SubjectPrefix+string(ev.Type), data)
}

func (p *NATSPublisher) Close() error {
	p.conn.Close()
	return nil
}
