package survey

import (
	"time"

	"github.com/google/uuid"
)

type Survey struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title     string    `gorm:"column:title;not null" json:"title"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`

	Questions []*Question `gorm:"-" json:"questions"`
}

func (Survey) TableName() string { return "survey" }

// Question belongs to exactly one survey. Position is the 0-based order
// in which the author submitted it.
type Question struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SurveyID  uuid.UUID `gorm:"type:uuid;not null;index;column:survey_id" json:"survey_id"`
	Text      string    `gorm:"column:text;not null" json:"text"`
	Type      string    `gorm:"column:type;not null" json:"type"`
	Position  int       `gorm:"column:position;not null;default:0" json:"position"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (Question) TableName() string { return "question" }

const DefaultQuestionType = "text"
