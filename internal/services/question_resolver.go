package services

import (
	"github.com/google/uuid"

	"github.com/yungbote/survey-backend/internal/data/repos"
	"github.com/yungbote/survey-backend/internal/platform/dbctx"
	"github.com/yungbote/survey-backend/internal/platform/logger"
)

// QuestionResolver maps a submitted question text to the question of the
// given survey. A miss is (uuid.Nil, false, nil).
type QuestionResolver interface {
	Resolve(dbc dbctx.Context, surveyID uuid.UUID, text string) (uuid.UUID, bool, error)
}

type questionResolver struct {
	log       *logger.Logger
	questions repos.QuestionRepo
}

func NewQuestionResolver(baseLog *logger.Logger, questions repos.QuestionRepo) QuestionResolver {
	return &questionResolver{
		log:       baseLog.With("service", "QuestionResolver"),
		questions: questions,
	}
}

func (r *questionResolver) Resolve(dbc dbctx.Context, surveyID uuid.UUID, text string) (uuid.UUID, bool, error) {
	q, err := r.questions.FindBySurveyAndText(dbc, surveyID, text)
	if err != nil {
		return uuid.Nil, false, err
	}
	if q == nil {
		return uuid.Nil, false, nil
	}
	return q.ID, true, nil
}
