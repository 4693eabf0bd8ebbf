package survey

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/survey-backend/internal/domain"
	"github.com/yungbote/survey-backend/internal/platform/dbctx"
	"github.com/yungbote/survey-backend/internal/platform/logger"
)

type CompletionRepo interface {
	Create(dbc dbctx.Context, records []*types.SurveyResponseRecord) ([]*types.SurveyResponseRecord, error)
	CountBySurvey(dbc dbctx.Context, surveyID uuid.UUID) (int64, error)
}

type completionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCompletionRepo(db *gorm.DB, baseLog *logger.Logger) CompletionRepo {
	return &completionRepo{db: db, log: baseLog.With("repo", "CompletionRepo")}
}

func (r *completionRepo) Create(dbc dbctx.Context, records []*types.SurveyResponseRecord) ([]*types.SurveyResponseRecord, error) {
	if len(records) == 0 {
		return []*types.SurveyResponseRecord{}, nil
	}
	for _, rec := range records {
		if rec != nil && rec.ID == uuid.Nil {
			rec.ID = uuid.New()
		}
	}
	if err := dbc.Conn(r.db).Create(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *completionRepo) CountBySurvey(dbc dbctx.Context, surveyID uuid.UUID) (int64, error) {
	var n int64
	if err := dbc.Conn(r.db).
		Model(&types.SurveyResponseRecord{}).
		Where("survey_id = ?", surveyID).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
