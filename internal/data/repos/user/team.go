package user

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/survey-backend/internal/domain"
	"github.com/yungbote/survey-backend/internal/platform/dbctx"
	"github.com/yungbote/survey-backend/internal/platform/logger"
)

type TeamRepo interface {
	Create(dbc dbctx.Context, teams []*types.Team) ([]*types.Team, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Team, error)
	List(dbc dbctx.Context) ([]*types.Team, error)
}

type teamRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTeamRepo(db *gorm.DB, baseLog *logger.Logger) TeamRepo {
	return &teamRepo{db: db, log: baseLog.With("repo", "TeamRepo")}
}

func (r *teamRepo) Create(dbc dbctx.Context, teams []*types.Team) ([]*types.Team, error) {
	if len(teams) == 0 {
		return []*types.Team{}, nil
	}
	for _, t := range teams {
		if t != nil && t.ID == uuid.Nil {
			t.ID = uuid.New()
		}
	}
	if err := dbc.Conn(r.db).Create(&teams).Error; err != nil {
		return nil, err
	}
	return teams, nil
}

func (r *teamRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Team, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var t types.Team
	if err := dbc.Conn(r.db).Where("id = ?", id).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *teamRepo) List(dbc dbctx.Context) ([]*types.Team, error) {
	var out []*types.Team
	if err := dbc.Conn(r.db).Order("name ASC, id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
