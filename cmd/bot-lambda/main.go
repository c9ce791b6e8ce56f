// Package main is the Lambda entry point for the reel digest Telegram bot.
//
// The bot receives Telegram webhook updates through an API Gateway HTTP API.
// Instagram reel links are downloaded, transcribed with Whisper, summarized
// with a chat-completion model, and answered with a formatted summary.
// Processing state per (chat, video) lives in DynamoDB with media and JSON
// artifacts in S3, so a reel that was already processed is answered from
// storage without repeating any model calls.
//
// Secrets are loaded from SSM Parameter Store at cold start:
//   - /reel-digest/prod/openai-api-key
//   - /reel-digest/prod/telegram-bot-token
//   - /reel-digest/prod/telegram-webhook-secret (optional)
package main

import (
	"net/http"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"
	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"

	"github.com/fpang/reel-digest/internal/config"
	"github.com/fpang/reel-digest/internal/lambdaboot"
	"github.com/fpang/reel-digest/internal/logging"
	"github.com/fpang/reel-digest/internal/pipeline"
	"github.com/fpang/reel-digest/internal/reel"
	"github.com/fpang/reel-digest/internal/summarize"
	"github.com/fpang/reel-digest/internal/telegram"
	"github.com/fpang/reel-digest/internal/transcribe"
)

var webhookHandler *telegram.WebhookHandler

func init() {
	initStart := time.Now()
	logging.Init()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	clients := lambdaboot.InitAWS()
	blobs := lambdaboot.InitBlobStore(clients.Config, cfg.MediaBucket)
	videos := lambdaboot.InitVideoStore(clients.Config, cfg.VideosTable)

	openAIKey := lambdaboot.LoadSecret(clients.SSM, "OPENAI_API_KEY", cfg.OpenAIKeyParam)
	botToken := lambdaboot.LoadSecret(clients.SSM, "TELEGRAM_BOT_TOKEN", cfg.BotTokenParam)
	webhookSecret := lambdaboot.LoadOptionalSecret(clients.SSM, "TELEGRAM_WEBHOOK_SECRET", cfg.WebhookSecretParam)

	openAIClient := openai.NewClient(openAIKey)

	tgClient, err := telegram.NewClient(botToken)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create Telegram client")
	}

	pipe := pipeline.New(
		videos,
		blobs,
		reel.NewDownloader(os.TempDir()),
		transcribe.NewTranscriber(openAIClient),
		summarize.NewSummarizer(openAIClient, cfg.SummaryModel),
		tgClient,
	)

	webhookHandler = telegram.NewWebhookHandler(webhookSecret, telegram.NewHandler(tgClient, pipe))

	lambdaboot.StartupLog("bot-lambda", initStart).
		S3Bucket("media", cfg.MediaBucket).
		DynamoTable("videos", cfg.VideosTable).
		SSMParam("openAIKey", cfg.OpenAIKeyParam).
		SSMParam("botToken", cfg.BotTokenParam).
		SSMParam("webhookSecret", cfg.WebhookSecretParam).
		Feature("webhookSecretCheck", webhookSecret != "").
		Config("summaryModel", cfg.SummaryModel).
		Log()
}

func main() {
	mux := http.NewServeMux()
	mux.Handle("/webhook", webhookHandler)

	adapter := httpadapter.NewV2(mux)
	lambda.Start(adapter.ProxyWithContext)
}
