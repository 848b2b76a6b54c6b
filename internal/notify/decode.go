// Package notify consumes Postgres change notifications and fans the decoded
// domain events out to the subscriber registry.
package notify

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/alfredjeanlab/chatwire/internal/events"
	"github.com/alfredjeanlab/chatwire/internal/model"
)

// Notification channels raised by the database triggers.
const (
	ChannelChatUpdated        = "chat_updated"
	ChannelChatMessageCreated = "chat_message_created"
)

// Channels is the fixed set of channels the pump listens on.
var Channels = []string{ChannelChatUpdated, ChannelChatMessageCreated}

// Decode errors. All are local to a single notification: the caller logs and
// drops the notification, the stream continues.
var (
	ErrUnknownChannel   = errors.New("notify: unknown channel")
	ErrMalformedPayload = errors.New("notify: malformed payload")
	ErrInconsistentDiff = errors.New("notify: inconsistent diff")
)

// Op is the row-level operation reported by the chat_updated trigger.
type Op string

const (
	OpInsert Op = "INSERT"
	OpUpdate Op = "UPDATE"
	OpDelete Op = "DELETE"
)

// ChatDiff is the chat_updated payload: old and new row snapshots around a
// chat mutation.
type ChatDiff struct {
	Op  Op          `json:"op"`
	Old *model.Chat `json:"old"`
	New *model.Chat `json:"new"`
}

// MessageCreated is the chat_message_created payload: the inserted message
// plus the chat's member list at commit time.
type MessageCreated struct {
	Message *model.Message `json:"message"`
	Members []int64        `json:"members"`
}

// Change is a decoded notification. Exactly one of Diff or Message is set.
type Change struct {
	Diff    *ChatDiff
	Message *MessageCreated
}

// Decode parses a raw channel/payload pair into a Change. Pure; no side effects.
func Decode(channel, payload string) (*Change, error) {
	switch channel {
	case ChannelChatUpdated:
		var diff ChatDiff
		if err := json.Unmarshal([]byte(payload), &diff); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
		}
		if err := diff.validate(); err != nil {
			return nil, err
		}
		return &Change{Diff: &diff}, nil

	case ChannelChatMessageCreated:
		var mc MessageCreated
		if err := json.Unmarshal([]byte(payload), &mc); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
		}
		if mc.Message == nil {
			return nil, fmt.Errorf("%w: missing message", ErrMalformedPayload)
		}
		return &Change{Message: &mc}, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownChannel, channel)
	}
}

// validate checks the op/snapshot pairing the trigger is supposed to uphold.
func (d *ChatDiff) validate() error {
	switch d.Op {
	case OpInsert:
		if d.New == nil || d.Old != nil {
			return fmt.Errorf("%w: INSERT requires new without old", ErrInconsistentDiff)
		}
	case OpUpdate:
		if d.Old == nil || d.New == nil {
			return fmt.Errorf("%w: UPDATE requires both old and new", ErrInconsistentDiff)
		}
	case OpDelete:
		if d.Old == nil || d.New != nil {
			return fmt.Errorf("%w: DELETE requires old without new", ErrInconsistentDiff)
		}
	default:
		return fmt.Errorf("%w: unknown op %q", ErrMalformedPayload, d.Op)
	}
	return nil
}

// Event maps the change to its domain event. One call per decoded change; the
// returned event is shared across every recipient of the fan-out.
func (c *Change) Event() *events.AppEvent {
	switch {
	case c.Message != nil:
		return events.NewMessage(c.Message.Message)
	case c.Diff != nil:
		switch c.Diff.Op {
		case OpInsert:
			return events.NewChat(c.Diff.New)
		case OpUpdate:
			return events.AddToChat(c.Diff.New)
		case OpDelete:
			return events.RemoveFromChat(c.Diff.Old)
		}
	}
	return nil
}
