package survey

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/survey-backend/internal/domain"
	"github.com/yungbote/survey-backend/internal/platform/dbctx"
	"github.com/yungbote/survey-backend/internal/platform/logger"
)

type PublicationRepo interface {
	Create(dbc dbctx.Context, pubs []*types.PublishedSurvey) ([]*types.PublishedSurvey, error)
	FindBySurveyAndTeam(dbc dbctx.Context, surveyID uuid.UUID, teamID *uuid.UUID) (*types.PublishedSurvey, error)
	CountBySurvey(dbc dbctx.Context, surveyID uuid.UUID) (int64, error)
	ListBySurvey(dbc dbctx.Context, surveyID uuid.UUID) ([]*types.PublishedSurvey, error)
}

type publicationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPublicationRepo(db *gorm.DB, baseLog *logger.Logger) PublicationRepo {
	return &publicationRepo{db: db, log: baseLog.With("repo", "PublicationRepo")}
}

func (r *publicationRepo) Create(dbc dbctx.Context, pubs []*types.PublishedSurvey) ([]*types.PublishedSurvey, error) {
	if len(pubs) == 0 {
		return []*types.PublishedSurvey{}, nil
	}
	for _, p := range pubs {
		if p != nil && p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
	}
	if err := dbc.Conn(r.db).Create(&pubs).Error; err != nil {
		return nil, err
	}
	return pubs, nil
}

// FindBySurveyAndTeam treats a nil teamID as "published to everyone" and
// matches it against NULL.
func (r *publicationRepo) FindBySurveyAndTeam(dbc dbctx.Context, surveyID uuid.UUID, teamID *uuid.UUID) (*types.PublishedSurvey, error) {
	if surveyID == uuid.Nil {
		return nil, nil
	}
	q := dbc.Conn(r.db).Where("survey_id = ?", surveyID)
	if teamID == nil {
		q = q.Where("team_id IS NULL")
	} else {
		q = q.Where("team_id = ?", *teamID)
	}
	var p types.PublishedSurvey
	if err := q.Order("created_at ASC, id ASC").First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *publicationRepo) CountBySurvey(dbc dbctx.Context, surveyID uuid.UUID) (int64, error) {
	var n int64
	if err := dbc.Conn(r.db).
		Model(&types.PublishedSurvey{}).
		Where("survey_id = ?", surveyID).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (r *publicationRepo) ListBySurvey(dbc dbctx.Context, surveyID uuid.UUID) ([]*types.PublishedSurvey, error) {
	var out []*types.PublishedSurvey
	if err := dbc.Conn(r.db).
		Where("survey_id = ?", surveyID).
		Order("created_at ASC, id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
