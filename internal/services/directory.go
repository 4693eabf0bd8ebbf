package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/survey-backend/internal/data/repos"
	types "github.com/yungbote/survey-backend/internal/domain"
	"github.com/yungbote/survey-backend/internal/platform/apierr"
	"github.com/yungbote/survey-backend/internal/platform/dbctx"
	"github.com/yungbote/survey-backend/internal/platform/logger"
)

type CreateUserInput struct {
	Email  string
	Name   string
	TeamID *uuid.UUID
}

// DirectoryService owns teams and users, the audience of publications.
type DirectoryService interface {
	ListTeams(ctx context.Context) ([]*types.Team, error)
	CreateTeam(ctx context.Context, name string) (*types.Team, error)
	ListUsers(ctx context.Context, teamID *uuid.UUID) ([]*types.User, error)
	CreateUser(ctx context.Context, in CreateUserInput) (*types.User, error)
}

type directoryService struct {
	db    *gorm.DB
	log   *logger.Logger
	teams repos.TeamRepo
	users repos.UserRepo
}

func NewDirectoryService(db *gorm.DB, baseLog *logger.Logger, teams repos.TeamRepo, users repos.UserRepo) DirectoryService {
	return &directoryService{
		db:    db,
		log:   baseLog.With("service", "DirectoryService"),
		teams: teams,
		users: users,
	}
}

func (s *directoryService) ListTeams(ctx context.Context) ([]*types.Team, error) {
	teams, err := s.teams.List(dbctx.Context{Ctx: ctx})
	if err != nil {
		return nil, apierr.Storage("list teams", err)
	}
	return teams, nil
}

func (s *directoryService) CreateTeam(ctx context.Context, name string) (*types.Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apierr.Invalid("missing_name", "name is required")
	}
	team := &types.Team{ID: uuid.New(), Name: name}
	if _, err := s.teams.Create(dbctx.Context{Ctx: ctx}, []*types.Team{team}); err != nil {
		return nil, apierr.Storage("create team", err)
	}
	s.log.Info("Team created", "team_id", team.ID.String())
	return team, nil
}

func (s *directoryService) ListUsers(ctx context.Context, teamID *uuid.UUID) ([]*types.User, error) {
	dbc := dbctx.Context{Ctx: ctx}
	if teamID == nil {
		users, err := s.users.List(dbc)
		if err != nil {
			return nil, apierr.Storage("list users", err)
		}
		return users, nil
	}
	if err := s.requireTeam(dbc, *teamID); err != nil {
		return nil, err
	}
	users, err := s.users.ListByTeam(dbc, *teamID)
	if err != nil {
		return nil, apierr.Storage("list team users", err)
	}
	return users, nil
}

func (s *directoryService) CreateUser(ctx context.Context, in CreateUserInput) (*types.User, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" {
		return nil, apierr.Invalid("missing_email", "email is required")
	}
	dbc := dbctx.Context{Ctx: ctx}
	if in.TeamID != nil {
		if err := s.requireTeam(dbc, *in.TeamID); err != nil {
			return nil, err
		}
	}
	u := &types.User{ID: uuid.New(), Email: email, Name: strings.TrimSpace(in.Name), TeamID: in.TeamID}
	if _, err := s.users.Create(dbc, []*types.User{u}); err != nil {
		return nil, apierr.Storage("create user", err)
	}
	s.log.Info("User created", "user_id", u.ID.String())
	return u, nil
}

func (s *directoryService) requireTeam(dbc dbctx.Context, teamID uuid.UUID) error {
	team, err := s.teams.GetByID(dbc, teamID)
	if err != nil {
		return apierr.Storage("get team", err)
	}
	if team == nil {
		return apierr.NotFound("team_not_found", "team not found")
	}
	return nil
}
