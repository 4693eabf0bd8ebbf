package survey

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/survey-backend/internal/domain"
	"github.com/yungbote/survey-backend/internal/platform/dbctx"
	"github.com/yungbote/survey-backend/internal/platform/logger"
)

// AnswerRow is one row of the response/answer join. QuestionText and
// Value are nil for a response without answers.
type AnswerRow struct {
	ResponseID   uuid.UUID
	CreatedAt    time.Time
	QuestionText *string
	Value        *string
}

type ResponseRepo interface {
	Create(dbc dbctx.Context, responses []*types.Response) ([]*types.Response, error)
	ListAnswerRows(dbc dbctx.Context, surveyID uuid.UUID) ([]AnswerRow, error)
}

type responseRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewResponseRepo(db *gorm.DB, baseLog *logger.Logger) ResponseRepo {
	return &responseRepo{db: db, log: baseLog.With("repo", "ResponseRepo")}
}

func (r *responseRepo) Create(dbc dbctx.Context, responses []*types.Response) ([]*types.Response, error) {
	if len(responses) == 0 {
		return []*types.Response{}, nil
	}
	for _, resp := range responses {
		if resp != nil && resp.ID == uuid.Nil {
			resp.ID = uuid.New()
		}
	}
	if err := dbc.Conn(r.db).Create(&responses).Error; err != nil {
		return nil, err
	}
	return responses, nil
}

const listAnswerRowsSQL = `
SELECT r.id AS response_id, r.created_at AS created_at, q.text AS question_text, av.value AS value
FROM response r
LEFT JOIN answer_value av ON av.response_id = r.id
LEFT JOIN question q ON q.id = av.question_id AND q.survey_id = r.survey_id
WHERE r.survey_id = ?
ORDER BY r.created_at ASC, r.id ASC, q.position ASC, av.created_at ASC, av.id ASC`

// ListAnswerRows returns one row per stored answer, plus a single row with
// nil text for every response that has none.
func (r *responseRepo) ListAnswerRows(dbc dbctx.Context, surveyID uuid.UUID) ([]AnswerRow, error) {
	out := []AnswerRow{}
	if surveyID == uuid.Nil {
		return out, nil
	}
	if err := dbc.Conn(r.db).Raw(listAnswerRowsSQL, surveyID).Scan(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
