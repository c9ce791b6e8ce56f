// Package telegram receives bot updates over a webhook and sends replies
// through the Telegram Bot API.
package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Sender sends messages to a Telegram chat.
type Sender interface {
	SendMessage(chatID int64, text string) error
	SendMarkdown(chatID int64, text string) error
}

// Client wraps the Telegram Bot API for sending messages.
type Client struct {
	api *tgbotapi.BotAPI
}

// NewClient creates a Telegram client with the given bot token.
func NewClient(token string) (*Client, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot API: %w", err)
	}
	return &Client{api: api}, nil
}

// SendMessage sends a plain text message to a chat.
func (c *Client) SendMessage(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := c.api.Send(msg); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

// SendMarkdown sends a Markdown-formatted message to a chat.
func (c *Client) SendMarkdown(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := c.api.Send(msg); err != nil {
		return fmt.Errorf("send markdown message: %w", err)
	}
	return nil
}

// Progress sends a plain text progress update. It satisfies the pipeline's
// Notifier interface.
func (c *Client) Progress(_ context.Context, chatID int64, text string) error {
	return c.SendMessage(chatID, text)
}
