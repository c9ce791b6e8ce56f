// Package config holds the environment-driven configuration for the bot
// Lambda. Configuration is processed once at cold start and passed explicitly
// into the components that need it; secrets are not part of this struct and
// are loaded separately from SSM Parameter Store.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all non-secret application configuration.
type Config struct {
	// MediaBucket is the S3 bucket holding raw reels, transcriptions, and summaries.
	MediaBucket string `envconfig:"MEDIA_BUCKET_NAME" required:"true"`

	// VideosTable is the DynamoDB table tracking per-(chat, video) processing state.
	VideosTable string `envconfig:"VIDEOS_TABLE_NAME" required:"true"`

	// SSM parameter paths for secrets. Values may be overridden by setting the
	// corresponding *_PARAM environment variables.
	OpenAIKeyParam     string `envconfig:"SSM_OPENAI_API_KEY_PARAM" default:"/reel-digest/prod/openai-api-key"`
	BotTokenParam      string `envconfig:"SSM_BOT_TOKEN_PARAM" default:"/reel-digest/prod/telegram-bot-token"`
	WebhookSecretParam string `envconfig:"SSM_WEBHOOK_SECRET_PARAM" default:"/reel-digest/prod/telegram-webhook-secret"`

	// SummaryModel is the chat-completion model used for classification and
	// summary generation.
	SummaryModel string `envconfig:"SUMMARY_MODEL" default:"gpt-4o-mini"`
}

// Load processes configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}
