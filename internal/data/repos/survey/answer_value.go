package survey

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/survey-backend/internal/domain"
	"github.com/yungbote/survey-backend/internal/platform/dbctx"
	"github.com/yungbote/survey-backend/internal/platform/logger"
)

type AnswerValueRepo interface {
	Create(dbc dbctx.Context, values []*types.AnswerValue) ([]*types.AnswerValue, error)
}

type answerValueRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAnswerValueRepo(db *gorm.DB, baseLog *logger.Logger) AnswerValueRepo {
	return &answerValueRepo{db: db, log: baseLog.With("repo", "AnswerValueRepo")}
}

func (r *answerValueRepo) Create(dbc dbctx.Context, values []*types.AnswerValue) ([]*types.AnswerValue, error) {
	if len(values) == 0 {
		return []*types.AnswerValue{}, nil
	}
	for _, v := range values {
		if v != nil && v.ID == uuid.Nil {
			v.ID = uuid.New()
		}
	}
	if err := dbc.Conn(r.db).Create(&values).Error; err != nil {
		return nil, err
	}
	return values, nil
}
