package telegram

import (
	"crypto/subtle"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// maxBodySize is the maximum allowed request body size (1 MB). A single
// Telegram update is far smaller than this.
const maxBodySize = 1 << 20

// secretTokenHeader carries the secret configured via setWebhook, letting the
// handler reject requests that did not come from Telegram.
const secretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"

// WebhookHandler receives Telegram webhook POSTs and dispatches the decoded
// update to the bot handler.
type WebhookHandler struct {
	secretToken string
	handler     *Handler
}

// NewWebhookHandler creates a webhook HTTP handler. secretToken must match
// the secret_token registered with Telegram; an empty value disables the
// check.
func NewWebhookHandler(secretToken string, handler *Handler) *WebhookHandler {
	return &WebhookHandler{secretToken: secretToken, handler: handler}
}

// ServeHTTP validates and processes one webhook request. Telegram retries
// deliveries that do not return 2xx, so handler failures after a valid update
// still return 200; the pipeline's own idempotence makes retries safe but
// there is no value in replaying a failed model call immediately.
func (h *WebhookHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if h.secretToken != "" {
		token := r.Header.Get(secretTokenHeader)
		if subtle.ConstantTimeCompare([]byte(token), []byte(h.secretToken)) != 1 {
			log.Warn().Msg("Webhook request with invalid secret token")
			http.Error(w, "invalid secret token", http.StatusForbidden)
			return
		}
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		log.Error().Err(err).Msg("Webhook: failed to read body")
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if len(body) == 0 {
		log.Warn().Msg("Webhook: empty body")
		http.Error(w, "empty body", http.StatusBadRequest)
		return
	}

	update, err := ParseUpdate(body)
	if err != nil {
		log.Warn().Err(err).Msg("Webhook: malformed update")
		http.Error(w, "malformed update", http.StatusBadRequest)
		return
	}

	// Correlation ID for tracing one update through logs across all stages.
	requestID := uuid.NewString()
	logger := log.With().Str("requestID", requestID).Int64("updateID", update.UpdateID).Logger()
	ctx := logger.WithContext(r.Context())

	if err := h.handler.HandleUpdate(ctx, update); err != nil {
		logger.Error().Err(err).Msg("Update handling failed")
	}

	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
