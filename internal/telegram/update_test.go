package telegram

import "testing"

func TestParseUpdate(t *testing.T) {
	body := []byte(`{
		"update_id": 42,
		"message": {
			"message_id": 7,
			"text": "hi",
			"chat": {"id": 12345},
			"from": {"id": 9, "username": "alice"}
		}
	}`)

	update, err := ParseUpdate(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if update.UpdateID != 42 {
		t.Errorf("update_id = %d", update.UpdateID)
	}
	msg := update.Message
	if msg == nil {
		t.Fatal("message not parsed")
	}
	if msg.MessageID != 7 || msg.Text != "hi" || msg.Chat.ID != 12345 {
		t.Errorf("unexpected message: %+v", msg)
	}
	if msg.Chat.Type != "private" {
		t.Errorf("chat type = %q, want default private", msg.Chat.Type)
	}
	if msg.From.IsBot {
		t.Error("is_bot should default to false")
	}
}

func TestParseUpdateKeepsExplicitChatType(t *testing.T) {
	body := []byte(`{"update_id":1,"message":{"message_id":1,"chat":{"id":1,"type":"group"}}}`)
	update, err := ParseUpdate(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if update.Message.Chat.Type != "group" {
		t.Errorf("chat type = %q", update.Message.Chat.Type)
	}
}

func TestParseUpdateRejectsMalformedJSON(t *testing.T) {
	if _, err := ParseUpdate([]byte("{not json")); err == nil {
		t.Error("expected error for malformed body")
	}
}

func TestParseUpdateWithoutMessage(t *testing.T) {
	update, err := ParseUpdate([]byte(`{"update_id":3}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if update.Message != nil {
		t.Errorf("message = %+v, want nil", update.Message)
	}
}
