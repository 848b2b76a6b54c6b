package notify

import (
	"errors"
	"reflect"
	"testing"

	"github.com/alfredjeanlab/chatwire/internal/events"
)

func TestDecode_ChatInsert(t *testing.T) {
	payload := `{"op":"INSERT","old":null,"new":{"id":1,"ws_id":1,"type":"group","members":[1,2,3]}}`

	change, err := Decode(ChannelChatUpdated, payload)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if change.Diff == nil || change.Message != nil {
		t.Fatal("expected a chat diff change")
	}
	if change.Diff.Op != OpInsert {
		t.Errorf("op = %q, want INSERT", change.Diff.Op)
	}
	if change.Diff.New.ID != 1 || len(change.Diff.New.Members) != 3 {
		t.Errorf("unexpected new snapshot: %+v", change.Diff.New)
	}

	if ev := change.Event(); ev.Type != events.TypeNewChat {
		t.Errorf("event type = %q, want NewChat", ev.Type)
	}
}

func TestDecode_ChatUpdate(t *testing.T) {
	payload := `{"op":"UPDATE","old":{"id":1,"members":[1,2]},"new":{"id":1,"members":[1,2,3]}}`

	change, err := Decode(ChannelChatUpdated, payload)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if ev := change.Event(); ev.Type != events.TypeAddToChat || ev.Chat.ID != 1 {
		t.Errorf("got event %+v, want AddToChat for chat 1", ev)
	}
}

func TestDecode_ChatDelete(t *testing.T) {
	payload := `{"op":"DELETE","old":{"id":1,"members":[1,2]},"new":null}`

	change, err := Decode(ChannelChatUpdated, payload)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if ev := change.Event(); ev.Type != events.TypeRemoveFromChat || ev.Chat.ID != 1 {
		t.Errorf("got event %+v, want RemoveFromChat for chat 1", ev)
	}
}

func TestDecode_MessageCreated(t *testing.T) {
	payload := `{"message":{"id":10,"chat_id":1,"sender_id":2,"content":"hello","files":[]},"members":[1,2]}`

	change, err := Decode(ChannelChatMessageCreated, payload)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if change.Message == nil || change.Diff != nil {
		t.Fatal("expected a message change")
	}
	if change.Message.Message.Content != "hello" {
		t.Errorf("content = %q, want hello", change.Message.Message.Content)
	}
	if ev := change.Event(); ev.Type != events.TypeNewMessage {
		t.Errorf("event type = %q, want NewMessage", ev.Type)
	}
}

func TestDecode_UnknownChannel(t *testing.T) {
	for _, ch := range []string{"", "chat_deleted", "CHAT_UPDATED", "users_updated"} {
		_, err := Decode(ch, `{}`)
		if !errors.Is(err, ErrUnknownChannel) {
			t.Errorf("Decode(%q) error = %v, want ErrUnknownChannel", ch, err)
		}
	}
}

func TestDecode_MalformedPayload(t *testing.T) {
	cases := []struct {
		channel string
		payload string
	}{
		{ChannelChatUpdated, `not json`},
		{ChannelChatUpdated, `{"op":"UPSERT","old":null,"new":{"id":1}}`},
		{ChannelChatMessageCreated, `{"members":[1,2]}`}, // missing message
		{ChannelChatMessageCreated, `[]`},
	}
	for _, tc := range cases {
		_, err := Decode(tc.channel, tc.payload)
		if !errors.Is(err, ErrMalformedPayload) {
			t.Errorf("Decode(%s, %s) error = %v, want ErrMalformedPayload", tc.channel, tc.payload, err)
		}
	}
}

func TestDecode_InconsistentDiff(t *testing.T) {
	cases := []string{
		`{"op":"INSERT","old":{"id":1},"new":{"id":1}}`,
		`{"op":"INSERT","old":null,"new":null}`,
		`{"op":"UPDATE","old":{"id":1},"new":null}`,
		`{"op":"UPDATE","old":null,"new":{"id":1}}`,
		`{"op":"DELETE","old":{"id":1},"new":{"id":1}}`,
		`{"op":"DELETE","old":null,"new":null}`,
	}
	for _, payload := range cases {
		_, err := Decode(ChannelChatUpdated, payload)
		if !errors.Is(err, ErrInconsistentDiff) {
			t.Errorf("Decode(%s) error = %v, want ErrInconsistentDiff", payload, err)
		}
	}
}

func TestDecode_Idempotent(t *testing.T) {
	payload := `{"op":"UPDATE","old":{"id":1,"members":[1,2]},"new":{"id":1,"members":[2,3]}}`

	first, err := Decode(ChannelChatUpdated, payload)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	second, err := Decode(ChannelChatUpdated, payload)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Decode not deterministic: %+v vs %+v", first, second)
	}
}
