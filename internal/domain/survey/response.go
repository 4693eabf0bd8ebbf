package survey

import (
	"time"

	"github.com/google/uuid"
)

type Response struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SurveyID  uuid.UUID `gorm:"type:uuid;not null;index;column:survey_id" json:"survey_id"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime;index" json:"created_at"`
}

func (Response) TableName() string { return "response" }

// AnswerValue stores one answer of a response. QuestionID always points
// at a question of the response's survey.
type AnswerValue struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ResponseID uuid.UUID `gorm:"type:uuid;not null;index;column:response_id" json:"response_id"`
	QuestionID uuid.UUID `gorm:"type:uuid;not null;index;column:question_id" json:"question_id"`
	Value      string    `gorm:"column:value;not null" json:"value"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (AnswerValue) TableName() string { return "answer_value" }

// SurveyResponseRecord marks that a user completed a survey. It is not
// linked to a Response row.
type SurveyResponseRecord struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SurveyID  uuid.UUID `gorm:"type:uuid;not null;index;column:survey_id" json:"survey_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (SurveyResponseRecord) TableName() string { return "survey_completion" }
