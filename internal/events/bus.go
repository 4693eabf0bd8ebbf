package events

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/survey-backend/internal/platform/logger"
)

const TypeSurveyPublished = "survey.published"

// Event is the wire shape fanned out to other instances and consumers.
type Event struct {
	Type          string     `json:"type"`
	SurveyID      uuid.UUID  `json:"survey_id"`
	TeamID        *uuid.UUID `json:"team_id,omitempty"`
	PublicationID uuid.UUID  `json:"publication_id"`
	AudienceSize  int        `json:"audience_size"`
	NotifiedCount int        `json:"notified_count"`
	FailedCount   int        `json:"failed_count"`
	OccurredAt    time.Time  `json:"occurred_at"`
}

type Bus interface {
	Publish(ctx context.Context, evt Event) error
	Close() error
}

type noopBus struct {
	log *logger.Logger
}

// NewNoopBus returns a Bus that only logs at debug level.
func NewNoopBus(log *logger.Logger) Bus {
	if log == nil {
		log = logger.NewNop()
	}
	return &noopBus{log: log.With("service", "NoopEventBus")}
}

func (b *noopBus) Publish(_ context.Context, evt Event) error {
	b.log.Debug("event dropped (no bus configured)", "type", evt.Type, "survey_id", evt.SurveyID.String())
	return nil
}

func (b *noopBus) Close() error { return nil }
