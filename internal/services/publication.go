package services

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/yungbote/survey-backend/internal/data/repos"
	types "github.com/yungbote/survey-backend/internal/domain"
	"github.com/yungbote/survey-backend/internal/events"
	"github.com/yungbote/survey-backend/internal/platform/apierr"
	"github.com/yungbote/survey-backend/internal/platform/dbctx"
	"github.com/yungbote/survey-backend/internal/platform/logger"
)

const (
	PublishModeAllowDuplicates = "allow_duplicates"
	PublishModeUpsert          = "upsert"
)

type PublicationConfig struct {
	Mode              string
	NotifyConcurrency int
}

// NormalizePublishMode maps unknown values to allow_duplicates.
func NormalizePublishMode(mode string) string {
	if strings.EqualFold(strings.TrimSpace(mode), PublishModeUpsert) {
		return PublishModeUpsert
	}
	return PublishModeAllowDuplicates
}

type PublishInput struct {
	SurveyID uuid.UUID
	TeamID   *uuid.UUID
}

type PublishResult struct {
	SurveyID         uuid.UUID
	TeamID           *uuid.UUID
	PublicationID    uuid.UUID
	AudienceSize     int
	NotifiedCount    int
	FailedCount      int
	AlreadyPublished bool
}

type PublicationService interface {
	Publish(ctx context.Context, in PublishInput) (*PublishResult, error)
}

type publicationService struct {
	db           *gorm.DB
	log          *logger.Logger
	cfg          PublicationConfig
	surveys      repos.SurveyRepo
	teams        repos.TeamRepo
	users        repos.UserRepo
	publications repos.PublicationRepo
	notifier     SurveyNotifier
	bus          events.Bus
}

func NewPublicationService(
	db *gorm.DB,
	baseLog *logger.Logger,
	cfg PublicationConfig,
	surveys repos.SurveyRepo,
	teams repos.TeamRepo,
	users repos.UserRepo,
	publications repos.PublicationRepo,
	notifier SurveyNotifier,
	bus events.Bus,
) PublicationService {
	cfg.Mode = NormalizePublishMode(cfg.Mode)
	if cfg.NotifyConcurrency <= 0 {
		cfg.NotifyConcurrency = 1
	}
	if bus == nil {
		bus = events.NewNoopBus(baseLog)
	}
	return &publicationService{
		db:           db,
		log:          baseLog.With("service", "PublicationService"),
		cfg:          cfg,
		surveys:      surveys,
		teams:        teams,
		users:        users,
		publications: publications,
		notifier:     notifier,
		bus:          bus,
	}
}

func (s *publicationService) Publish(ctx context.Context, in PublishInput) (_ *PublishResult, err error) {
	ctx, span := tracer.Start(ctx, "PublicationService.Publish",
		trace.WithAttributes(attribute.String("survey.id", in.SurveyID.String())))
	defer func() { endSpan(span, err) }()

	if in.SurveyID == uuid.Nil {
		return nil, apierr.Invalid("missing_survey_id", "surveyId is required")
	}
	dbc := dbctx.Context{Ctx: ctx}

	survey, err := s.surveys.GetByID(dbc, in.SurveyID)
	if err != nil {
		return nil, apierr.Storage("get survey", err)
	}
	if survey == nil {
		return nil, apierr.NotFound("survey_not_found", "survey not found")
	}
	if in.TeamID != nil {
		team, err := s.teams.GetByID(dbc, *in.TeamID)
		if err != nil {
			return nil, apierr.Storage("get team", err)
		}
		if team == nil {
			return nil, apierr.NotFound("team_not_found", "team not found")
		}
	}

	result := &PublishResult{SurveyID: survey.ID, TeamID: in.TeamID}

	if s.cfg.Mode == PublishModeUpsert {
		existing, err := s.publications.FindBySurveyAndTeam(dbc, survey.ID, in.TeamID)
		if err != nil {
			return nil, apierr.Storage("find publication", err)
		}
		if existing != nil {
			result.PublicationID = existing.ID
			result.AlreadyPublished = true
			s.log.Info("Survey already published", "survey_id", survey.ID.String(), "publication_id", existing.ID.String())
			return result, nil
		}
	}

	pub := &types.PublishedSurvey{ID: uuid.New(), SurveyID: survey.ID, TeamID: in.TeamID}
	if _, err := s.publications.Create(dbc, []*types.PublishedSurvey{pub}); err != nil {
		return nil, apierr.Storage("create publication", err)
	}
	result.PublicationID = pub.ID

	audience, err := s.audience(dbc, in.TeamID)
	if err != nil {
		return nil, err
	}
	result.AudienceSize = len(audience)
	// The publication row is committed; a client hanging up must not cut
	// the remaining sends short.
	sendCtx := context.WithoutCancel(ctx)
	result.NotifiedCount, result.FailedCount = s.dispatch(sendCtx, survey, audience)
	span.SetAttributes(
		attribute.Int("publish.audience", result.AudienceSize),
		attribute.Int("publish.notified", result.NotifiedCount),
		attribute.Int("publish.failed", result.FailedCount),
	)

	s.log.Info("Survey published",
		"survey_id", survey.ID.String(),
		"publication_id", pub.ID.String(),
		"audience", result.AudienceSize,
		"notified", result.NotifiedCount,
		"failed", result.FailedCount,
	)
	s.emit(sendCtx, result)
	return result, nil
}

func (s *publicationService) audience(dbc dbctx.Context, teamID *uuid.UUID) ([]*types.User, error) {
	if teamID != nil {
		users, err := s.users.ListByTeam(dbc, *teamID)
		if err != nil {
			return nil, apierr.Storage("list team users", err)
		}
		return users, nil
	}
	users, err := s.users.List(dbc)
	if err != nil {
		return nil, apierr.Storage("list users", err)
	}
	return users, nil
}

// dispatch sends one notification per recipient, at most
// NotifyConcurrency at a time. Failures are logged and counted.
func (s *publicationService) dispatch(ctx context.Context, survey *types.Survey, audience []*types.User) (int, int) {
	if len(audience) == 0 {
		return 0, 0
	}
	if s.notifier == nil {
		s.log.Warn("No notifier configured; skipping notifications", "survey_id", survey.ID.String())
		return 0, len(audience)
	}

	var notified, failed int64
	var g errgroup.Group
	g.SetLimit(s.cfg.NotifyConcurrency)
	for _, u := range audience {
		g.Go(func() error {
			if err := s.notifier.NotifySurveyPublished(ctx, survey, u); err != nil {
				atomic.AddInt64(&failed, 1)
				s.log.Warn("Survey notification failed",
					"survey_id", survey.ID.String(),
					"user_id", u.ID.String(),
					"recipient", u.Email,
					"error", err.Error(),
				)
				return nil
			}
			atomic.AddInt64(&notified, 1)
			return nil
		})
	}
	_ = g.Wait()
	return int(notified), int(failed)
}

func (s *publicationService) emit(ctx context.Context, r *PublishResult) {
	evt := events.Event{
		Type:          events.TypeSurveyPublished,
		SurveyID:      r.SurveyID,
		TeamID:        r.TeamID,
		PublicationID: r.PublicationID,
		AudienceSize:  r.AudienceSize,
		NotifiedCount: r.NotifiedCount,
		FailedCount:   r.FailedCount,
		OccurredAt:    time.Now().UTC(),
	}
	if err := s.bus.Publish(ctx, evt); err != nil {
		s.log.Warn("Publication event not delivered", "survey_id", r.SurveyID.String(), "error", err.Error())
	}
}
