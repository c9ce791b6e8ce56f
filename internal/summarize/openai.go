package summarize

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"

	"github.com/fpang/reel-digest/internal/assets"
	"github.com/fpang/reel-digest/internal/jsonutil"
	"github.com/fpang/reel-digest/internal/store"
)

// Summarizer classifies transcripts and generates structured summaries.
type Summarizer struct {
	client *openai.Client
	model  string
}

// NewSummarizer creates a Summarizer using the given OpenAI client and
// chat-completion model.
func NewSummarizer(client *openai.Client, model string) *Summarizer {
	return &Summarizer{client: client, model: model}
}

// Classify labels a transcript as companies, technology, or general.
// Labels outside the known set fall back to general.
func (s *Summarizer) Classify(ctx context.Context, transcript string) (store.SummaryType, error) {
	start := time.Now()

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: assets.ClassificationPrompt},
			{Role: openai.ChatMessageRoleUser, Content: transcript},
		},
	})
	if err != nil {
		return "", fmt.Errorf("classify transcript: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("classify transcript: no choices returned")
	}

	label := store.SummaryType(strings.ToLower(strings.TrimSpace(resp.Choices[0].Message.Content)))
	if !label.Valid() {
		log.Warn().Str("label", string(label)).Msg("Unknown classification label, falling back to general")
		label = store.SummaryGeneral
	}

	log.Info().
		Str("label", string(label)).
		Dur("duration", time.Since(start)).
		Msg("Transcript classified")
	return label, nil
}

// promptFor returns the generation system prompt for a summary type.
func promptFor(t store.SummaryType) string {
	switch t {
	case store.SummaryCompanies:
		return assets.CompanySummaryPrompt
	case store.SummaryTechnology:
		return assets.TechnologySummaryPrompt
	default:
		return assets.GeneralSummaryPrompt
	}
}

// Generate produces a summary of the given type for the transcript and
// validates it against the type's schema. A generation that fails validation
// is rejected with an error; nothing is coerced.
func (s *Summarizer) Generate(ctx context.Context, t store.SummaryType, transcript string) (*Summary, error) {
	start := time.Now()

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: promptFor(t)},
			{Role: openai.ChatMessageRoleUser, Content: transcript},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("generate %s summary: %w", t, err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("generate %s summary: no choices returned", t)
	}

	summary, err := ParseSummary(resp.Choices[0].Message.Content, t)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("type", string(summary.Type)).
		Int("tags", len(summary.Tags)).
		Dur("duration", time.Since(start)).
		Msg("Summary generated")
	return summary, nil
}

// ParseSummary decodes a model response into a Summary of the expected type
// and validates it. A response whose type tag disagrees with the requested
// type is rejected.
func ParseSummary(raw string, want store.SummaryType) (*Summary, error) {
	summary, err := jsonutil.ParseJSON[Summary](raw)
	if err != nil {
		return nil, fmt.Errorf("parse %s summary: %w", want, err)
	}

	if summary.Type == "" {
		summary.Type = want
	}
	if summary.Type != want {
		return nil, fmt.Errorf("summary type mismatch: requested %s, model produced %s", want, summary.Type)
	}
	if summary.Tags == nil {
		summary.Tags = []string{}
	}

	if err := summary.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s summary: %w", want, err)
	}
	return &summary, nil
}
