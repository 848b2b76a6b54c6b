// Package events defines the domain events fanned out to connected clients.
package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/alfredjeanlab/chatwire/internal/model"
)

// Type is the wire tag identifying an event variant.
type Type string

const (
	TypeNewChat        Type = "NewChat"
	TypeAddToChat      Type = "AddToChat"
	TypeRemoveFromChat Type = "RemoveFromChat"
	TypeNewMessage     Type = "NewMessage"
)

// AppEvent is one domain event delivered to every affected user. A single
// decode produces a single AppEvent shared by pointer across all recipients;
// Wire marshals the payload at most once regardless of receiver count.
type AppEvent struct {
	Type    Type
	Chat    *model.Chat    // set for chat events, nil otherwise
	Message *model.Message // set for NewMessage, nil otherwise

	once sync.Once
	wire []byte
	err  error
}

// NewChat returns the event for a freshly created chat.
func NewChat(c *model.Chat) *AppEvent {
	return &AppEvent{Type: TypeNewChat, Chat: c}
}

// AddToChat returns the event for a chat whose member list changed.
func AddToChat(c *model.Chat) *AppEvent {
	return &AppEvent{Type: TypeAddToChat, Chat: c}
}

// RemoveFromChat returns the event for a deleted chat.
func RemoveFromChat(c *model.Chat) *AppEvent {
	return &AppEvent{Type: TypeRemoveFromChat, Chat: c}
}

// NewMessage returns the event for a posted message.
func NewMessage(m *model.Message) *AppEvent {
	return &AppEvent{Type: TypeNewMessage, Message: m}
}

// Wire returns the JSON payload sent to clients: the entity's fields plus a
// "type" tag, e.g. {"type":"NewMessage","id":1,"chat_id":2,...}.
func (e *AppEvent) Wire() ([]byte, error) {
	e.once.Do(func() {
		e.wire, e.err = e.marshal()
	})
	return e.wire, e.err
}

func (e *AppEvent) marshal() ([]byte, error) {
	if e.Type == TypeNewMessage {
		return json.Marshal(struct {
			Type Type `json:"type"`
			*model.Message
		}{e.Type, e.Message})
	}
	// The chat's own type enum is emitted as chat_type so it cannot collide
	// with the event tag.
	c := e.Chat
	return json.Marshal(struct {
		Type        Type           `json:"type"`
		ID          int64          `json:"id"`
		WorkspaceID int64          `json:"ws_id"`
		Name        string         `json:"name,omitempty"`
		ChatType    model.ChatType `json:"chat_type"`
		Members     []int64        `json:"members"`
		CreatedAt   time.Time      `json:"created_at"`
	}{e.Type, c.ID, c.WorkspaceID, c.Name, c.Type, c.Members, c.CreatedAt})
}

// Publisher mirrors domain events to an external bus so other processes can
// observe the stream. Mirroring is best-effort egress; it never feeds the
// in-process subscriber registry.
type Publisher interface {
	Publish(ctx context.Context, ev *AppEvent) error
	Close() error
}
