package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/fpang/reel-digest/internal/pipeline"
	"github.com/fpang/reel-digest/internal/reel"
)

// User-facing messages.
const (
	MsgGreeting         = "Hello! Send me an Instagram reel link!"
	MsgProcessing       = "Processing your reel..."
	MsgNoShortcode      = "Failed to extract videocode from the URL."
	MsgProcessingFailed = "Failed to process your video."
	MsgDone             = "Done"
	startCommand        = "/start"
)

// Runner executes the reel pipeline for one request.
type Runner interface {
	Run(ctx context.Context, req pipeline.Request) (*pipeline.Result, error)
}

// Handler routes incoming updates: the start command gets a greeting, reel
// links run the pipeline, and everything else is echoed back.
type Handler struct {
	sender Sender
	runner Runner
}

// NewHandler creates an update handler.
func NewHandler(sender Sender, runner Runner) *Handler {
	return &Handler{sender: sender, runner: runner}
}

// HandleUpdate processes one Telegram update. Updates without a text message
// or sent by other bots are ignored.
func (h *Handler) HandleUpdate(ctx context.Context, update *Update) error {
	if update.Message == nil || update.Message.Text == "" {
		log.Debug().Int64("updateID", update.UpdateID).Msg("Ignoring update without text message")
		return nil
	}
	if update.Message.From != nil && update.Message.From.IsBot {
		log.Debug().Int64("updateID", update.UpdateID).Msg("Ignoring message from bot")
		return nil
	}

	chatID := update.Message.Chat.ID
	text := strings.TrimSpace(update.Message.Text)

	if text == startCommand {
		return h.sender.SendMessage(chatID, MsgGreeting)
	}

	if !strings.Contains(text, reel.LinkMarker) {
		return h.sender.SendMessage(chatID, fmt.Sprintf("Echo: %s", text))
	}

	return h.handleReelLink(ctx, chatID, text)
}

func (h *Handler) handleReelLink(ctx context.Context, chatID int64, text string) error {
	if err := h.sender.SendMessage(chatID, MsgProcessing); err != nil {
		return err
	}

	videoCode, err := reel.ExtractShortcode(text)
	if err != nil {
		if errors.Is(err, reel.ErrNoShortcode) {
			log.Warn().Str("text", text).Msg("Could not extract videocode from message")
			return h.sender.SendMessage(chatID, MsgNoShortcode)
		}
		return err
	}

	result, err := h.runner.Run(ctx, pipeline.Request{ChatID: chatID, VideoCode: videoCode})
	if err != nil {
		log.Error().Err(err).
			Int64("chatID", chatID).
			Str("videoCode", videoCode).
			Msg("Pipeline run failed")
		return h.sender.SendMessage(chatID, MsgProcessingFailed)
	}

	if err := h.sender.SendMessage(chatID, fmt.Sprintf("Type : %s", result.Summary.Type)); err != nil {
		return err
	}
	if err := h.sender.SendMarkdown(chatID, FormatSummary(result.Summary)); err != nil {
		return err
	}
	return h.sender.SendMessage(chatID, MsgDone)
}
