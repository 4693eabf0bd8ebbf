package survey

import (
	"time"

	"github.com/google/uuid"
)

// PublishedSurvey is append-only. A nil TeamID means the survey was
// published to every user.
type PublishedSurvey struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	SurveyID  uuid.UUID  `gorm:"type:uuid;not null;index;column:survey_id" json:"survey_id"`
	TeamID    *uuid.UUID `gorm:"type:uuid;index;column:team_id" json:"team_id,omitempty"`
	CreatedAt time.Time  `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (PublishedSurvey) TableName() string { return "published_survey" }
