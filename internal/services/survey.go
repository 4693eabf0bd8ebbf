package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/survey-backend/internal/data/aggregates"
	"github.com/yungbote/survey-backend/internal/data/repos"
	types "github.com/yungbote/survey-backend/internal/domain"
	"github.com/yungbote/survey-backend/internal/platform/apierr"
	"github.com/yungbote/survey-backend/internal/platform/dbctx"
	"github.com/yungbote/survey-backend/internal/platform/logger"
)

type QuestionInput struct {
	Text string
	Type string
}

type CreateSurveyInput struct {
	Title     string
	Questions []QuestionInput
}

type SurveyService interface {
	CreateSurvey(ctx context.Context, in CreateSurveyInput) (*types.Survey, error)
	GetSurvey(ctx context.Context, id uuid.UUID) (*types.Survey, error)
	ListSurveys(ctx context.Context) ([]*types.Survey, error)
	ListUnpublished(ctx context.Context) ([]*types.Survey, error)
	ListQuestionTemplates(ctx context.Context) ([]repos.QuestionTemplate, error)
}

type surveyService struct {
	db        *gorm.DB
	log       *logger.Logger
	tx        aggregates.TxRunner
	surveys   repos.SurveyRepo
	questions repos.QuestionRepo
}

func NewSurveyService(
	db *gorm.DB,
	baseLog *logger.Logger,
	tx aggregates.TxRunner,
	surveys repos.SurveyRepo,
	questions repos.QuestionRepo,
) SurveyService {
	return &surveyService{
		db:        db,
		log:       baseLog.With("service", "SurveyService"),
		tx:        tx,
		surveys:   surveys,
		questions: questions,
	}
}

func (s *surveyService) CreateSurvey(ctx context.Context, in CreateSurveyInput) (*types.Survey, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, apierr.Invalid("missing_title", "title is required")
	}
	survey := &types.Survey{ID: uuid.New(), Title: title}
	questions := make([]*types.Question, 0, len(in.Questions))
	for i, q := range in.Questions {
		if strings.TrimSpace(q.Text) == "" {
			return nil, apierr.Invalid("missing_question_text", fmt.Sprintf("question %d has no text", i))
		}
		qType := strings.TrimSpace(q.Type)
		if qType == "" {
			qType = types.DefaultQuestionType
		}
		questions = append(questions, &types.Question{
			ID:       uuid.New(),
			SurveyID: survey.ID,
			Text:     q.Text,
			Type:     qType,
			Position: i,
		})
	}

	err := s.tx.InTx(ctx, func(dbc dbctx.Context) error {
		if _, err := s.surveys.Create(dbc, []*types.Survey{survey}); err != nil {
			return apierr.Storage("create survey", err)
		}
		if _, err := s.questions.Create(dbc, questions); err != nil {
			return apierr.Storage("create questions", err)
		}
		return nil
	})
	if err != nil {
		return nil, apierr.Storage("create survey", err)
	}

	survey.Questions = questions
	s.log.Info("Survey created", "survey_id", survey.ID.String(), "questions", len(questions))
	return survey, nil
}

func (s *surveyService) GetSurvey(ctx context.Context, id uuid.UUID) (*types.Survey, error) {
	dbc := dbctx.Context{Ctx: ctx}
	survey, err := s.surveys.GetByID(dbc, id)
	if err != nil {
		return nil, apierr.Storage("get survey", err)
	}
	if survey == nil {
		return nil, apierr.NotFound("survey_not_found", "survey not found")
	}
	if err := s.attachQuestions(dbc, []*types.Survey{survey}); err != nil {
		return nil, err
	}
	return survey, nil
}

func (s *surveyService) ListSurveys(ctx context.Context) ([]*types.Survey, error) {
	dbc := dbctx.Context{Ctx: ctx}
	surveys, err := s.surveys.List(dbc)
	if err != nil {
		return nil, apierr.Storage("list surveys", err)
	}
	if err := s.attachQuestions(dbc, surveys); err != nil {
		return nil, err
	}
	return surveys, nil
}

func (s *surveyService) ListUnpublished(ctx context.Context) ([]*types.Survey, error) {
	dbc := dbctx.Context{Ctx: ctx}
	surveys, err := s.surveys.ListUnpublished(dbc)
	if err != nil {
		return nil, apierr.Storage("list unpublished surveys", err)
	}
	if err := s.attachQuestions(dbc, surveys); err != nil {
		return nil, err
	}
	return surveys, nil
}

func (s *surveyService) ListQuestionTemplates(ctx context.Context) ([]repos.QuestionTemplate, error) {
	out, err := s.questions.ListDistinct(dbctx.Context{Ctx: ctx})
	if err != nil {
		return nil, apierr.Storage("list question templates", err)
	}
	return out, nil
}

// attachQuestions loads questions for all surveys in one query.
func (s *surveyService) attachQuestions(dbc dbctx.Context, surveys []*types.Survey) error {
	if len(surveys) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, 0, len(surveys))
	for _, sv := range surveys {
		ids = append(ids, sv.ID)
	}
	qs, err := s.questions.GetBySurveyIDs(dbc, ids)
	if err != nil {
		return apierr.Storage("load questions", err)
	}
	bySurvey := make(map[uuid.UUID][]*types.Question, len(surveys))
	for _, q := range qs {
		bySurvey[q.SurveyID] = append(bySurvey[q.SurveyID], q)
	}
	for _, sv := range surveys {
		sv.Questions = bySurvey[sv.ID]
		if sv.Questions == nil {
			sv.Questions = []*types.Question{}
		}
	}
	return nil
}
