package telegram

import (
	"encoding/json"
	"fmt"
)

// Update is the subset of a Telegram webhook payload the bot acts on.
type Update struct {
	UpdateID int64    `json:"update_id"`
	Message  *Message `json:"message"`
}

// Message is an incoming chat message.
type Message struct {
	MessageID int64  `json:"message_id"`
	Text      string `json:"text"`
	Chat      Chat   `json:"chat"`
	From      *User  `json:"from"`
}

// Chat identifies the conversation a message belongs to.
type Chat struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
}

// User is the sender of a message.
type User struct {
	ID       int64  `json:"id"`
	IsBot    bool   `json:"is_bot"`
	Username string `json:"username"`
}

// ParseUpdate decodes a webhook body into an Update. Telegram omits the chat
// type on some payloads; it defaults to private.
func ParseUpdate(body []byte) (*Update, error) {
	var update Update
	if err := json.Unmarshal(body, &update); err != nil {
		return nil, fmt.Errorf("parse update: %w", err)
	}
	if update.Message != nil && update.Message.Chat.Type == "" {
		update.Message.Chat.Type = "private"
	}
	return &update, nil
}
