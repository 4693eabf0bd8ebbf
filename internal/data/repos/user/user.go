package user

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/survey-backend/internal/domain"
	"github.com/yungbote/survey-backend/internal/platform/dbctx"
	"github.com/yungbote/survey-backend/internal/platform/logger"
)

type UserRepo interface {
	Create(dbc dbctx.Context, users []*types.User) ([]*types.User, error)
	List(dbc dbctx.Context) ([]*types.User, error)
	ListByTeam(dbc dbctx.Context, teamID uuid.UUID) ([]*types.User, error)
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	repoLog := baseLog.With("repo", "UserRepo")
	return &userRepo{db: db, log: repoLog}
}

func (ur *userRepo) Create(dbc dbctx.Context, users []*types.User) ([]*types.User, error) {
	if len(users) == 0 {
		return []*types.User{}, nil
	}
	for _, u := range users {
		if u != nil && u.ID == uuid.Nil {
			u.ID = uuid.New()
		}
	}
	if err := dbc.Conn(ur.db).Create(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (ur *userRepo) List(dbc dbctx.Context) ([]*types.User, error) {
	var results []*types.User
	if err := dbc.Conn(ur.db).
		Order("created_at ASC, email ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ur *userRepo) ListByTeam(dbc dbctx.Context, teamID uuid.UUID) ([]*types.User, error) {
	var results []*types.User
	if teamID == uuid.Nil {
		return results, nil
	}
	if err := dbc.Conn(ur.db).
		Where("team_id = ?", teamID).
		Order("created_at ASC, email ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
