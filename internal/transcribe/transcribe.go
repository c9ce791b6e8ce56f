// Package transcribe produces text from reel audio using the OpenAI Whisper
// API. An empty transcript is reported as a typed error rather than an empty
// string so that callers cannot confuse "nothing was said" with "the service
// failed".
package transcribe

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"
)

// ErrEmptyTranscript indicates the service returned no usable text.
var ErrEmptyTranscript = errors.New("transcription returned no text")

// Transcription is the JSON document persisted to blob storage.
type Transcription struct {
	Text            string  `json:"text"`
	Language        string  `json:"language,omitempty"`
	DurationSeconds float64 `json:"duration,omitempty"`
}

// Transcriber wraps the OpenAI client for speech-to-text calls.
type Transcriber struct {
	client *openai.Client
}

// NewTranscriber creates a Transcriber using the given OpenAI client.
func NewTranscriber(client *openai.Client) *Transcriber {
	return &Transcriber{client: client}
}

// Transcribe submits a local media file to Whisper and returns the
// transcription. Returns ErrEmptyTranscript when the service produces no text.
func (t *Transcriber) Transcribe(ctx context.Context, localPath string) (*Transcription, error) {
	start := time.Now()

	resp, err := t.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: localPath,
		Format:   openai.AudioResponseFormatVerboseJSON,
	})
	if err != nil {
		return nil, fmt.Errorf("whisper transcription: %w", err)
	}

	if strings.TrimSpace(resp.Text) == "" {
		return nil, ErrEmptyTranscript
	}

	log.Info().
		Str("localPath", localPath).
		Int("textLength", len(resp.Text)).
		Str("language", resp.Language).
		Dur("duration", time.Since(start)).
		Msg("Transcription complete")

	return &Transcription{
		Text:            resp.Text,
		Language:        resp.Language,
		DurationSeconds: resp.Duration,
	}, nil
}
