package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	types "github.com/yungbote/survey-backend/internal/domain"
	"gorm.io/gorm"
)

func SeedTeam(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *types.Team {
	tb.Helper()
	t := &types.Team{ID: uuid.New(), Name: name}
	if err := tx.WithContext(ctx).Create(t).Error; err != nil {
		tb.Fatalf("seed team: %v", err)
	}
	return t
}

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string, teamID *uuid.UUID) *types.User {
	tb.Helper()
	u := &types.User{ID: uuid.New(), Email: email, Name: "member", TeamID: teamID}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

// SeedSurvey creates a survey with one "text" question per entry of
// questionTexts, positioned in order.
func SeedSurvey(tb testing.TB, ctx context.Context, tx *gorm.DB, title string, questionTexts ...string) *types.Survey {
	tb.Helper()
	s := &types.Survey{ID: uuid.New(), Title: title}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed survey: %v", err)
	}
	for i, text := range questionTexts {
		q := &types.Question{
			ID:       uuid.New(),
			SurveyID: s.ID,
			Text:     text,
			Type:     types.DefaultQuestionType,
			Position: i,
		}
		if err := tx.WithContext(ctx).Create(q).Error; err != nil {
			tb.Fatalf("seed question: %v", err)
		}
		s.Questions = append(s.Questions, q)
	}
	return s
}

func SeedPublication(tb testing.TB, ctx context.Context, tx *gorm.DB, surveyID uuid.UUID, teamID *uuid.UUID) *types.PublishedSurvey {
	tb.Helper()
	p := &types.PublishedSurvey{ID: uuid.New(), SurveyID: surveyID, TeamID: teamID}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed publication: %v", err)
	}
	return p
}

// SeedResponse stores a response with the given answers keyed by
// question id. createdAt pins ordering.
func SeedResponse(tb testing.TB, ctx context.Context, tx *gorm.DB, surveyID uuid.UUID, createdAt time.Time, answers map[uuid.UUID]string) *types.Response {
	tb.Helper()
	r := &types.Response{ID: uuid.New(), SurveyID: surveyID, CreatedAt: createdAt.UTC()}
	if err := tx.WithContext(ctx).Create(r).Error; err != nil {
		tb.Fatalf("seed response: %v", err)
	}
	for qid, v := range answers {
		av := &types.AnswerValue{ID: uuid.New(), ResponseID: r.ID, QuestionID: qid, Value: v}
		if err := tx.WithContext(ctx).Create(av).Error; err != nil {
			tb.Fatalf("seed answer value: %v", err)
		}
	}
	return r
}
