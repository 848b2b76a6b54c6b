package model

import "time"

// ChatType mirrors the chat_type enum in the database.
type ChatType string

const (
	ChatSingle         ChatType = "single"
	ChatGroup          ChatType = "group"
	ChatPrivateChannel ChatType = "private_channel"
	ChatPublicChannel  ChatType = "public_channel"
)

// Chat is a chat room as stored in the chats table. Consumed read-only:
// notification payloads carry full row snapshots, so chatwire never has to
// query the table itself.
type Chat struct {
	ID          int64     `json:"id"`
	WorkspaceID int64     `json:"ws_id"`
	Name        string    `json:"name,omitempty"`
	Type        ChatType  `json:"type"`
	Members     []int64   `json:"members"`
	CreatedAt   time.Time `json:"created_at"`
}
