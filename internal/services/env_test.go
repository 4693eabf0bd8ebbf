package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"gorm.io/gorm"

	"github.com/yungbote/survey-backend/internal/data/aggregates"
	"github.com/yungbote/survey-backend/internal/data/repos"
	"github.com/yungbote/survey-backend/internal/data/repos/testutil"
	types "github.com/yungbote/survey-backend/internal/domain"
	"github.com/yungbote/survey-backend/internal/events"
	"github.com/yungbote/survey-backend/internal/platform/dbctx"
	"github.com/yungbote/survey-backend/internal/platform/logger"
)

type testEnv struct {
	db  *gorm.DB
	log *logger.Logger
	tx  aggregates.TxRunner

	surveys      repos.SurveyRepo
	questions    repos.QuestionRepo
	responses    repos.ResponseRepo
	answers      repos.AnswerValueRepo
	publications repos.PublicationRepo
	completions  repos.CompletionRepo
	users        repos.UserRepo
	teams        repos.TeamRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	return &testEnv{
		db:           db,
		log:          log,
		tx:           aggregates.NewGormTxRunner(db),
		surveys:      repos.NewSurveyRepo(db, log),
		questions:    repos.NewQuestionRepo(db, log),
		responses:    repos.NewResponseRepo(db, log),
		answers:      repos.NewAnswerValueRepo(db, log),
		publications: repos.NewPublicationRepo(db, log),
		completions:  repos.NewCompletionRepo(db, log),
		users:        repos.NewUserRepo(db, log),
		teams:        repos.NewTeamRepo(db, log),
	}
}

func (e *testEnv) surveyService() SurveyService {
	return NewSurveyService(e.db, e.log, e.tx, e.surveys, e.questions)
}

func (e *testEnv) responseService() ResponseService {
	return NewResponseService(e.db, e.log, e.tx, e.surveys, e.responses, e.answers, e.completions,
		NewQuestionResolver(e.log, e.questions))
}

func (e *testEnv) publicationService(cfg PublicationConfig, n SurveyNotifier, bus events.Bus) PublicationService {
	return NewPublicationService(e.db, e.log, cfg, e.surveys, e.teams, e.users, e.publications, n, bus)
}

// fakeNotifier records recipients and fails for emails listed in failFor.
type fakeNotifier struct {
	mu       sync.Mutex
	failFor  map[string]bool
	notified []string
}

func (f *fakeNotifier) NotifySurveyPublished(_ context.Context, _ *types.Survey, u *types.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFor[u.Email] {
		return errors.Join(ErrNotification, errors.New("gateway down"))
	}
	f.notified = append(f.notified, u.Email)
	return nil
}

func (f *fakeNotifier) emails() map[string]int {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := map[string]int{}
	for _, e := range f.notified {
		out[e]++
	}
	return out
}

type fakeBus struct {
	mu     sync.Mutex
	err    error
	events []events.Event
}

func (b *fakeBus) Publish(_ context.Context, evt events.Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, evt)
	return b.err
}

func (b *fakeBus) Close() error { return nil }

func repoCtx(ctx context.Context) dbctx.Context { return dbctx.Context{Ctx: ctx} }
