package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/survey-backend/internal/data/repos/testutil"
	"github.com/yungbote/survey-backend/internal/platform/apierr"
)

func TestCreateSurveyKeepsQuestionOrder(t *testing.T) {
	env := newTestEnv(t)
	svc := env.surveyService()
	ctx := context.Background()

	in := CreateSurveyInput{
		Title: "  Quarterly pulse  ",
		Questions: []QuestionInput{
			{Text: "How are you?", Type: "text"},
			{Text: "Rate your week", Type: "scale"},
			{Text: "Anything else?"},
		},
	}
	created, err := svc.CreateSurvey(ctx, in)
	if err != nil {
		t.Fatalf("CreateSurvey: %v", err)
	}
	if created.Title != "Quarterly pulse" {
		t.Fatalf("expected trimmed title, got %q", created.Title)
	}

	got, err := svc.GetSurvey(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetSurvey: %v", err)
	}
	if len(got.Questions) != len(in.Questions) {
		t.Fatalf("expected %d questions, got %d", len(in.Questions), len(got.Questions))
	}
	wantTypes := []string{"text", "scale", "text"}
	for i, q := range got.Questions {
		if q.Text != in.Questions[i].Text || q.Type != wantTypes[i] || q.Position != i {
			t.Fatalf("question %d: got (%q,%q,%d)", i, q.Text, q.Type, q.Position)
		}
	}
}

func TestCreateSurveyValidation(t *testing.T) {
	svc := newTestEnv(t).surveyService()
	tests := []struct {
		name string
		in   CreateSurveyInput
		code string
	}{
		{"blank title", CreateSurveyInput{Title: "   "}, "missing_title"},
		{"blank question", CreateSurveyInput{Title: "t", Questions: []QuestionInput{{Text: " "}}}, "missing_question_text"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateSurvey(context.Background(), tc.in)
			ae := asAPIErr(t, err)
			if ae.Status != http.StatusBadRequest || ae.Code != tc.code {
				t.Fatalf("expected 400 %s, got %d %s", tc.code, ae.Status, ae.Code)
			}
		})
	}
}

func TestCreateSurveyRollsBackOnFailure(t *testing.T) {
	env := newTestEnv(t)
	svc := env.surveyService()
	ctx := context.Background()

	if err := env.db.Migrator().DropTable("question"); err != nil {
		t.Fatalf("drop question: %v", err)
	}
	_, err := svc.CreateSurvey(ctx, CreateSurveyInput{Title: "broken", Questions: []QuestionInput{{Text: "Q1"}}})
	if apierr.StatusOf(err, 0) != http.StatusInternalServerError {
		t.Fatalf("expected storage error, got %v", err)
	}
	var n int64
	if err := env.db.Table("survey").Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected survey insert rolled back, found %d rows", n)
	}
}

func TestGetSurveyNotFound(t *testing.T) {
	_, err := newTestEnv(t).surveyService().GetSurvey(context.Background(), uuid.New())
	if apierr.StatusOf(err, 0) != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", err)
	}
}

func TestListSurveysAndUnpublished(t *testing.T) {
	env := newTestEnv(t)
	svc := env.surveyService()
	ctx := context.Background()

	a := testutil.SeedSurvey(t, ctx, env.db, "A", "Q1", "Q2")
	b := testutil.SeedSurvey(t, ctx, env.db, "B")

	all, err := svc.ListSurveys(ctx)
	if err != nil {
		t.Fatalf("ListSurveys: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 surveys, got %d", len(all))
	}
	for _, s := range all {
		switch s.ID {
		case a.ID:
			if len(s.Questions) != 2 {
				t.Fatalf("survey A: expected 2 questions, got %d", len(s.Questions))
			}
		case b.ID:
			if s.Questions == nil || len(s.Questions) != 0 {
				t.Fatalf("survey B: expected empty question list, got %+v", s.Questions)
			}
		}
	}

	testutil.SeedPublication(t, ctx, env.db, a.ID, nil)
	unpublished, err := svc.ListUnpublished(ctx)
	if err != nil {
		t.Fatalf("ListUnpublished: %v", err)
	}
	if len(unpublished) != 1 || unpublished[0].ID != b.ID {
		t.Fatalf("expected only B unpublished, got %+v", unpublished)
	}
}

func TestListQuestionTemplatesIsDistinct(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	testutil.SeedSurvey(t, ctx, env.db, "A", "Name?", "Team?")
	testutil.SeedSurvey(t, ctx, env.db, "B", "Name?")

	got, err := env.surveyService().ListQuestionTemplates(ctx)
	if err != nil {
		t.Fatalf("ListQuestionTemplates: %v", err)
	}
	if len(got) != 2 || got[0].Text != "Name?" || got[1].Text != "Team?" {
		t.Fatalf("unexpected templates: %+v", got)
	}
}

func asAPIErr(t *testing.T, err error) *apierr.Error {
	t.Helper()
	ae, ok := err.(*apierr.Error)
	if !ok {
		t.Fatalf("expected *apierr.Error, got %T (%v)", err, err)
	}
	return ae
}
