package seed

import (
	"context"
	"strings"
	"testing"

	"github.com/yungbote/survey-backend/internal/data/aggregates"
	"github.com/yungbote/survey-backend/internal/data/repos"
	"github.com/yungbote/survey-backend/internal/data/repos/testutil"
	"github.com/yungbote/survey-backend/internal/services"
)

const sample = `
teams:
  - name: Platform
    users:
      - email: ana@example.com
        name: Ana
      - email: bo@example.com
users:
  - email: ops@example.com
    name: Ops
surveys:
  - title: Quarterly pulse
    questions:
      - text: How are things?
        type: text
      - text: Rate the quarter
        type: rating
`

func TestDecode(t *testing.T) {
	f, err := Decode(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(f.Teams) != 1 || len(f.Teams[0].Users) != 2 || len(f.Users) != 1 || len(f.Surveys) != 1 {
		t.Fatalf("unexpected file: %+v", f)
	}
	if f.Surveys[0].Questions[1].Type != "rating" {
		t.Fatalf("unexpected questions: %+v", f.Surveys[0].Questions)
	}

	if _, err := Decode(strings.NewReader("teams:\n  - name: x\n    colour: red\n")); err == nil {
		t.Fatal("expected unknown field error")
	}
	if f, err := Decode(strings.NewReader("")); err != nil || f == nil {
		t.Fatalf("empty document: %v, %v", f, err)
	}
}

func TestSeederApply(t *testing.T) {
	db := testutil.DB(t)
	log := testutil.Logger(t)
	teams := repos.NewTeamRepo(db, log)
	users := repos.NewUserRepo(db, log)
	directory := services.NewDirectoryService(db, log, teams, users)
	surveys := services.NewSurveyService(db, log, aggregates.NewGormTxRunner(db), repos.NewSurveyRepo(db, log), repos.NewQuestionRepo(db, log))

	f, err := Decode(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	ctx := context.Background()
	sum, err := NewSeeder(log, directory, surveys).Apply(ctx, f)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if sum != (Summary{Teams: 1, Users: 3, Surveys: 1}) {
		t.Fatalf("unexpected summary: %+v", sum)
	}

	listed, err := directory.ListTeams(ctx)
	if err != nil || len(listed) != 1 {
		t.Fatalf("ListTeams: %v, %v", listed, err)
	}
	members, err := directory.ListUsers(ctx, &listed[0].ID)
	if err != nil || len(members) != 2 {
		t.Fatalf("ListUsers: %v, %v", members, err)
	}
	all, err := surveys.ListSurveys(ctx)
	if err != nil || len(all) != 1 || len(all[0].Questions) != 2 {
		t.Fatalf("ListSurveys: %v, %v", all, err)
	}

	// A second run reuses the team but trips over the existing emails.
	if _, err := NewSeeder(log, directory, surveys).Apply(ctx, &File{Teams: []Team{{Name: "platform"}}}); err != nil {
		t.Fatalf("re-apply team only: %v", err)
	}
	if again, _ := directory.ListTeams(ctx); len(again) != 1 {
		t.Fatalf("expected team reuse, got %d teams", len(again))
	}
	if _, err := NewSeeder(log, directory, surveys).Apply(ctx, &File{Users: []User{{Email: "ana@example.com"}}}); err == nil {
		t.Fatal("expected duplicate email error")
	}
}
