package survey

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/survey-backend/internal/domain"
	"github.com/yungbote/survey-backend/internal/platform/dbctx"
	"github.com/yungbote/survey-backend/internal/platform/logger"
)

// QuestionTemplate is a distinct (text, type) pair used across surveys.
type QuestionTemplate struct {
	Text string `json:"text"`
	Type string `json:"type"`
}

type QuestionRepo interface {
	Create(dbc dbctx.Context, questions []*types.Question) ([]*types.Question, error)
	GetBySurveyIDs(dbc dbctx.Context, surveyIDs []uuid.UUID) ([]*types.Question, error)
	FindBySurveyAndText(dbc dbctx.Context, surveyID uuid.UUID, text string) (*types.Question, error)
	ListDistinct(dbc dbctx.Context) ([]QuestionTemplate, error)
}

type questionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuestionRepo(db *gorm.DB, baseLog *logger.Logger) QuestionRepo {
	return &questionRepo{db: db, log: baseLog.With("repo", "QuestionRepo")}
}

func (r *questionRepo) Create(dbc dbctx.Context, questions []*types.Question) ([]*types.Question, error) {
	if len(questions) == 0 {
		return []*types.Question{}, nil
	}
	for _, q := range questions {
		if q != nil && q.ID == uuid.Nil {
			q.ID = uuid.New()
		}
	}
	if err := dbc.Conn(r.db).Create(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

// GetBySurveyIDs returns questions grouped by survey in position order.
func (r *questionRepo) GetBySurveyIDs(dbc dbctx.Context, surveyIDs []uuid.UUID) ([]*types.Question, error) {
	var out []*types.Question
	if len(surveyIDs) == 0 {
		return out, nil
	}
	if err := dbc.Conn(r.db).
		Where("survey_id IN ?", surveyIDs).
		Order("survey_id ASC, position ASC, created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// FindBySurveyAndText is an exact, case-sensitive match. With duplicate
// texts the lowest position wins.
func (r *questionRepo) FindBySurveyAndText(dbc dbctx.Context, surveyID uuid.UUID, text string) (*types.Question, error) {
	if surveyID == uuid.Nil {
		return nil, nil
	}
	var q types.Question
	err := dbc.Conn(r.db).
		Where("survey_id = ? AND text = ?", surveyID, text).
		Order("position ASC, id ASC").
		First(&q).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &q, nil
}

func (r *questionRepo) ListDistinct(dbc dbctx.Context) ([]QuestionTemplate, error) {
	out := []QuestionTemplate{}
	if err := dbc.Conn(r.db).
		Model(&types.Question{}).
		Distinct("text", "type").
		Order("text ASC, type ASC").
		Scan(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
