package events

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/survey-backend/internal/platform/logger"
)

func TestNoopBusAcceptsEvents(t *testing.T) {
	b := NewNoopBus(nil)
	if err := b.Publish(context.Background(), Event{Type: TypeSurveyPublished, SurveyID: uuid.New()}); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if err := b.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestNewRedisBusValidatesConfig(t *testing.T) {
	if _, err := NewRedisBus(nil, RedisConfig{Addr: "localhost:6379"}); err == nil {
		t.Fatal("expected logger error")
	}
	if _, err := NewRedisBus(logger.NewNop(), RedisConfig{}); err == nil {
		t.Fatal("expected missing addr error")
	}
}

func TestNewRedisBusFailsWhenUnreachable(t *testing.T) {
	if testing.Short() {
		t.Skip("dials a closed port")
	}
	if _, err := NewRedisBus(logger.NewNop(), RedisConfig{Addr: "127.0.0.1:1"}); err == nil {
		t.Fatal("expected ping error")
	}
}
