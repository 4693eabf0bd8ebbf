package survey

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/survey-backend/internal/domain"
	"github.com/yungbote/survey-backend/internal/platform/dbctx"
	"github.com/yungbote/survey-backend/internal/platform/logger"
)

type SurveyRepo interface {
	Create(dbc dbctx.Context, surveys []*types.Survey) ([]*types.Survey, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Survey, error)
	List(dbc dbctx.Context) ([]*types.Survey, error)
	ListUnpublished(dbc dbctx.Context) ([]*types.Survey, error)
}

type surveyRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSurveyRepo(db *gorm.DB, baseLog *logger.Logger) SurveyRepo {
	return &surveyRepo{db: db, log: baseLog.With("repo", "SurveyRepo")}
}

func (r *surveyRepo) Create(dbc dbctx.Context, surveys []*types.Survey) ([]*types.Survey, error) {
	if len(surveys) == 0 {
		return []*types.Survey{}, nil
	}
	for _, s := range surveys {
		if s != nil && s.ID == uuid.Nil {
			s.ID = uuid.New()
		}
	}
	if err := dbc.Conn(r.db).Create(&surveys).Error; err != nil {
		return nil, err
	}
	return surveys, nil
}

func (r *surveyRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Survey, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var s types.Survey
	err := dbc.Conn(r.db).Where("id = ?", id).First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *surveyRepo) List(dbc dbctx.Context) ([]*types.Survey, error) {
	var out []*types.Survey
	if err := dbc.Conn(r.db).
		Order("created_at ASC, id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// ListUnpublished returns surveys without any published_survey row,
// regardless of team.
func (r *surveyRepo) ListUnpublished(dbc dbctx.Context) ([]*types.Survey, error) {
	var out []*types.Survey
	if err := dbc.Conn(r.db).
		Table("survey AS s").
		Select("s.*").
		Joins("LEFT JOIN published_survey ps ON ps.survey_id = s.id").
		Where("ps.id IS NULL").
		Order("s.created_at ASC, s.id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
