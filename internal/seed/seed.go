package seed

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/yungbote/survey-backend/internal/platform/logger"
	"github.com/yungbote/survey-backend/internal/services"
)

// File models a seed document:
//
//	teams:
//	  - name: Platform
//	    users:
//	      - email: ana@example.com
//	        name: Ana
//	users:
//	  - email: ops@example.com
//	surveys:
//	  - title: Quarterly pulse
//	    questions:
//	      - text: How are things?
//	        type: text
type File struct {
	Teams   []Team   `yaml:"teams"`
	Users   []User   `yaml:"users"`
	Surveys []Survey `yaml:"surveys"`
}

type Team struct {
	Name  string `yaml:"name"`
	Users []User `yaml:"users"`
}

type User struct {
	Email string `yaml:"email"`
	Name  string `yaml:"name"`
}

type Survey struct {
	Title     string     `yaml:"title"`
	Questions []Question `yaml:"questions"`
}

type Question struct {
	Text string `yaml:"text"`
	Type string `yaml:"type"`
}

type Summary struct {
	Teams   int
	Users   int
	Surveys int
}

func Decode(r io.Reader) (*File, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return &File{}, nil
		}
		return nil, fmt.Errorf("decode seed file: %w", err)
	}
	return &f, nil
}

func Load(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer fh.Close()
	return Decode(fh)
}

type Seeder struct {
	log       *logger.Logger
	directory services.DirectoryService
	surveys   services.SurveyService
}

func NewSeeder(baseLog *logger.Logger, directory services.DirectoryService, surveys services.SurveyService) *Seeder {
	return &Seeder{
		log:       baseLog.With("component", "Seeder"),
		directory: directory,
		surveys:   surveys,
	}
}

// Apply creates everything in f through the services, stopping at the
// first failure. Teams named in f that already exist are reused.
func (s *Seeder) Apply(ctx context.Context, f *File) (Summary, error) {
	var sum Summary
	if f == nil {
		return sum, nil
	}

	existing, err := s.directory.ListTeams(ctx)
	if err != nil {
		return sum, fmt.Errorf("list teams: %w", err)
	}
	byName := make(map[string]uuid.UUID, len(existing))
	for _, t := range existing {
		byName[strings.ToLower(t.Name)] = t.ID
	}

	for _, t := range f.Teams {
		id, ok := byName[strings.ToLower(strings.TrimSpace(t.Name))]
		if !ok {
			team, err := s.directory.CreateTeam(ctx, t.Name)
			if err != nil {
				return sum, fmt.Errorf("create team %q: %w", t.Name, err)
			}
			id = team.ID
			byName[strings.ToLower(team.Name)] = id
			sum.Teams++
		}
		for _, u := range t.Users {
			teamID := id
			if err := s.createUser(ctx, u, &teamID); err != nil {
				return sum, err
			}
			sum.Users++
		}
	}
	for _, u := range f.Users {
		if err := s.createUser(ctx, u, nil); err != nil {
			return sum, err
		}
		sum.Users++
	}

	for _, sv := range f.Surveys {
		in := services.CreateSurveyInput{Title: sv.Title}
		for _, q := range sv.Questions {
			in.Questions = append(in.Questions, services.QuestionInput{Text: q.Text, Type: q.Type})
		}
		created, err := s.surveys.CreateSurvey(ctx, in)
		if err != nil {
			return sum, fmt.Errorf("create survey %q: %w", sv.Title, err)
		}
		s.log.Debug("Seeded survey", "survey_id", created.ID.String(), "questions", len(created.Questions))
		sum.Surveys++
	}

	s.log.Info("Seed applied", "teams", sum.Teams, "users", sum.Users, "surveys", sum.Surveys)
	return sum, nil
}

func (s *Seeder) createUser(ctx context.Context, u User, teamID *uuid.UUID) error {
	if _, err := s.directory.CreateUser(ctx, services.CreateUserInput{
		Email:  u.Email,
		Name:   u.Name,
		TeamID: teamID,
	}); err != nil {
		return fmt.Errorf("create user %q: %w", u.Email, err)
	}
	return nil
}
