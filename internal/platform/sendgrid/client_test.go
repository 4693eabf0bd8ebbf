package sendgrid

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/yungbote/survey-backend/internal/platform/logger"
)

func newTestClient(t *testing.T, baseURL string) Client {
	t.Helper()
	c, err := New(logger.NewNop(), Config{
		APIKey:           "sg-test",
		BaseURL:          baseURL,
		DefaultFromEmail: "surveys@example.com",
		MaxRetries:       2,
		RetryBaseDelay:   time.Millisecond,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestSendBuildsMailSendRequest(t *testing.T) {
	var got mailSendRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v3/mail/send" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer sg-test" {
			t.Errorf("unexpected auth header %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.Header().Set("X-Message-Id", "msg-1")
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	res, err := newTestClient(t, srv.URL).Send(context.Background(), Message{
		To:      Address{Email: "member@example.com"},
		Subject: "New Survey: Pulse",
		Text:    "plain",
		HTML:    "<p>html</p>",
	})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if res.StatusCode != http.StatusAccepted || res.MessageID != "msg-1" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if got.From.Email != "surveys@example.com" {
		t.Fatalf("default from not applied: %+v", got.From)
	}
	if len(got.Content) != 2 || got.Content[0].Type != "text/plain" {
		t.Fatalf("unexpected content: %+v", got.Content)
	}
	if len(got.Personalizations) != 1 || got.Personalizations[0].To[0].Email != "member@example.com" {
		t.Fatalf("unexpected personalizations: %+v", got.Personalizations)
	}
}

func TestSendRetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).Send(context.Background(), Message{
		To: Address{Email: "member@example.com"}, Subject: "s", Text: "t",
	})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Fatalf("expected 2 attempts, got %d", n)
	}
}

func TestSendDoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"errors":[{"message":"invalid to address"}]}`))
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).Send(context.Background(), Message{
		To: Address{Email: "bad"}, Subject: "s", Text: "t",
	})
	var he *HTTPError
	if !errors.As(err, &he) || he.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected HTTPError 400, got %v", err)
	}
	if he.Error() != "sendgrid http 400: invalid to address" {
		t.Fatalf("unexpected message %q", he.Error())
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("expected 1 attempt, got %d", n)
	}
}

func TestSendValidatesMessage(t *testing.T) {
	c := newTestClient(t, "http://127.0.0.1:0")
	if _, err := c.Send(context.Background(), Message{Subject: "s", Text: "t"}); err == nil {
		t.Fatal("expected missing recipient error")
	}
	if _, err := c.Send(context.Background(), Message{To: Address{Email: "a@b.c"}, Text: "t"}); err == nil {
		t.Fatal("expected missing subject error")
	}
}

func TestNewRequiresAPIKey(t *testing.T) {
	if _, err := New(logger.NewNop(), Config{}); err == nil {
		t.Fatal("expected error without api key")
	}
}
