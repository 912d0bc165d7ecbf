package sendgrid

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/statera-app/statera-backend/internal/platform/logger"
)

func testClient(t *testing.T, baseURL string) Client {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	c, err := New(log, Config{
		APIKey:           "sg-test-key",
		BaseURL:          baseURL,
		DefaultFromEmail: "noreply@example.com",
		Timeout:          5 * time.Second,
		MaxRetries:       2,
	})
	if err != nil {
		t.Fatalf("init client: %v", err)
	}
	return c
}

func TestSendSuccess(t *testing.T) {
	var gotAuth string
	var gotBody mailSendRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		w.Header().Set("X-Message-Id", "msg-123")
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	c := testClient(t, srv.URL)
	res, err := c.Send(context.Background(), SendEmailRequest{
		To:      []EmailAddress{{Email: "member@example.com"}},
		Subject: "maintenance window",
		Text:    "body",
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if res.MessageID != "msg-123" || res.StatusCode != http.StatusAccepted {
		t.Fatalf("result = %+v", res)
	}
	if gotAuth != "Bearer sg-test-key" {
		t.Fatalf("authorization = %q", gotAuth)
	}
	if gotBody.From.Email != "noreply@example.com" {
		t.Fatalf("default from not applied: %+v", gotBody.From)
	}
	if len(gotBody.Content) != 1 || gotBody.Content[0].Type != "text/plain" {
		t.Fatalf("content = %+v", gotBody.Content)
	}
}

func TestSendRetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	c := testClient(t, srv.URL)
	_, err := c.Send(context.Background(), SendEmailRequest{
		To:      []EmailAddress{{Email: "member@example.com"}},
		Subject: "retry",
		Text:    "body",
	})
	if err != nil {
		t.Fatalf("send after retries: %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Fatalf("calls = %d, want 3", got)
	}
}

func TestSendDoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	c := testClient(t, srv.URL)
	_, err := c.Send(context.Background(), SendEmailRequest{
		To:      []EmailAddress{{Email: "member@example.com"}},
		Subject: "bad request",
		Text:    "body",
	})
	if err == nil {
		t.Fatalf("400 should be terminal")
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("calls = %d, want 1 (no retry on 4xx)", got)
	}
}

func TestSendValidation(t *testing.T) {
	c := testClient(t, "http://127.0.0.1:0")

	if _, err := c.Send(context.Background(), SendEmailRequest{
		Subject: "no recipients", Text: "body",
	}); err == nil {
		t.Fatalf("missing To should fail")
	}
	if _, err := c.Send(context.Background(), SendEmailRequest{
		To: []EmailAddress{{Email: "member@example.com"}}, Text: "body",
	}); err == nil {
		t.Fatalf("missing Subject should fail")
	}
	if _, err := c.Send(context.Background(), SendEmailRequest{
		To: []EmailAddress{{Email: "member@example.com"}}, Subject: "no content",
	}); err == nil {
		t.Fatalf("missing content should fail")
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("SENDGRID_API_KEY", "sg-env-key")
	t.Setenv("SENDGRID_FROM_EMAIL", "noreply@example.com")
	t.Setenv("SENDGRID_TIMEOUT", "10s")
	t.Setenv("SENDGRID_MAX_RETRIES", "2")

	cfg := ConfigFromEnv()
	if cfg.APIKey != "sg-env-key" || cfg.DefaultFromEmail != "noreply@example.com" {
		t.Fatalf("config = %+v", cfg)
	}
	if cfg.Timeout != 10*time.Second {
		t.Fatalf("timeout = %v, want 10s", cfg.Timeout)
	}
	if cfg.MaxRetries != 2 {
		t.Fatalf("max retries = %d, want 2", cfg.MaxRetries)
	}
}

func TestNewRequiresAPIKey(t *testing.T) {
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	if _, err := New(log, Config{}); err == nil {
		t.Fatalf("missing api key should fail")
	}
}
