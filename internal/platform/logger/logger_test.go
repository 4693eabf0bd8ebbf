package logger

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestSanitizeKVsRedactsRecipientAddresses(t *testing.T) {
	out := sanitizeKVs([]interface{}{"recipient_email", "a@example.com", "survey_title", "Pulse"})
	if len(out) != 4 {
		t.Fatalf("unexpected length: %d", len(out))
	}
	if out[1] != "[REDACTED]" {
		t.Fatalf("recipient not redacted: %v", out[1])
	}
	if out[3] != "Pulse" {
		t.Fatalf("unrelated value changed: %v", out[3])
	}
}

func TestSanitizeKVsHashesUserIDs(t *testing.T) {
	id := uuid.New()
	out := sanitizeKVs([]interface{}{"user_id", id})
	got, ok := out[1].(string)
	if !ok || !strings.HasPrefix(got, "hash:") {
		t.Fatalf("expected hashed user id, got %v", out[1])
	}
	if again := sanitizeKVs([]interface{}{"user_id", id}); again[1] != got {
		t.Fatalf("hash not stable: %v vs %v", again[1], got)
	}
}

func TestSanitizeKVsKeepsDanglingKey(t *testing.T) {
	out := sanitizeKVs([]interface{}{"status", 200, "orphan"})
	if len(out) != 3 || out[2] != "orphan" {
		t.Fatalf("dangling key lost: %v", out)
	}
}
