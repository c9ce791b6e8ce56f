package telegram

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newWebhook(secret string, sender *fakeSender) *WebhookHandler {
	return NewWebhookHandler(secret, NewHandler(sender, &fakeRunner{}))
}

func TestWebhookRejectsNonPost(t *testing.T) {
	h := newWebhook("", &fakeSender{})

	req := httptest.NewRequest(http.MethodGet, "/webhook", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
}

func TestWebhookRejectsBadSecretToken(t *testing.T) {
	h := newWebhook("s3cret", &fakeSender{})

	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(`{"update_id":1}`))
	req.Header.Set("X-Telegram-Bot-Api-Secret-Token", "wrong")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
}

func TestWebhookRejectsEmptyBody(t *testing.T) {
	h := newWebhook("", &fakeSender{})

	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(""))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestWebhookRejectsMalformedUpdate(t *testing.T) {
	h := newWebhook("", &fakeSender{})

	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader("{bad"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestWebhookProcessesUpdate(t *testing.T) {
	sender := &fakeSender{}
	h := newWebhook("s3cret", sender)

	body := `{"update_id":1,"message":{"message_id":1,"text":"/start","chat":{"id":7},"from":{"id":2}}}`
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	req.Header.Set("X-Telegram-Bot-Api-Secret-Token", "s3cret")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got := rec.Body.String(); got != "OK" {
		t.Errorf("body = %q", got)
	}
	if len(sender.sent) != 1 || sender.sent[0].text != MsgGreeting {
		t.Errorf("sent = %+v", sender.sent)
	}
}
