package services

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/yungbote/survey-backend/internal/data/aggregates"
	"github.com/yungbote/survey-backend/internal/data/repos"
	types "github.com/yungbote/survey-backend/internal/domain"
	"github.com/yungbote/survey-backend/internal/platform/apierr"
	"github.com/yungbote/survey-backend/internal/platform/dbctx"
	"github.com/yungbote/survey-backend/internal/platform/logger"
)

// SurveyResponse is one respondent's answers keyed by question text.
type SurveyResponse struct {
	ID        uuid.UUID
	CreatedAt time.Time
	Answers   map[string]string
}

type SubmitInput struct {
	SurveyID uuid.UUID
	Answers  map[string]string
	UserID   *uuid.UUID
}

// SubmitResult lists what was stored and which question texts matched
// nothing in the survey.
type SubmitResult struct {
	ResponseID uuid.UUID
	SurveyID   uuid.UUID
	Recorded   map[string]string
	Skipped    []string
}

type ResponseService interface {
	Submit(ctx context.Context, in SubmitInput) (*SubmitResult, error)
	ListResponses(ctx context.Context, surveyID uuid.UUID) ([]SurveyResponse, error)
}

type responseService struct {
	db          *gorm.DB
	log         *logger.Logger
	tx          aggregates.TxRunner
	surveys     repos.SurveyRepo
	responses   repos.ResponseRepo
	answers     repos.AnswerValueRepo
	completions repos.CompletionRepo
	resolver    QuestionResolver
}

func NewResponseService(
	db *gorm.DB,
	baseLog *logger.Logger,
	tx aggregates.TxRunner,
	surveys repos.SurveyRepo,
	responses repos.ResponseRepo,
	answers repos.AnswerValueRepo,
	completions repos.CompletionRepo,
	resolver QuestionResolver,
) ResponseService {
	return &responseService{
		db:          db,
		log:         baseLog.With("service", "ResponseService"),
		tx:          tx,
		surveys:     surveys,
		responses:   responses,
		answers:     answers,
		completions: completions,
		resolver:    resolver,
	}
}

func (s *responseService) Submit(ctx context.Context, in SubmitInput) (_ *SubmitResult, err error) {
	ctx, span := tracer.Start(ctx, "ResponseService.Submit",
		trace.WithAttributes(attribute.String("survey.id", in.SurveyID.String())))
	defer func() { endSpan(span, err) }()

	if in.SurveyID == uuid.Nil {
		return nil, apierr.Invalid("missing_survey_id", "surveyId is required")
	}
	if in.Answers == nil {
		return nil, apierr.Invalid("missing_answers", "responses are required")
	}
	survey, err := s.surveys.GetByID(dbctx.Context{Ctx: ctx}, in.SurveyID)
	if err != nil {
		return nil, apierr.Storage("get survey", err)
	}
	if survey == nil {
		return nil, apierr.NotFound("survey_not_found", "survey not found")
	}

	texts := make([]string, 0, len(in.Answers))
	for text := range in.Answers {
		texts = append(texts, text)
	}
	sort.Strings(texts)

	var result *SubmitResult
	err = s.tx.InTx(ctx, func(dbc dbctx.Context) error {
		resp := &types.Response{ID: uuid.New(), SurveyID: survey.ID}
		if _, err := s.responses.Create(dbc, []*types.Response{resp}); err != nil {
			return apierr.Storage("create response", err)
		}

		res := &SubmitResult{
			ResponseID: resp.ID,
			SurveyID:   survey.ID,
			Recorded:   map[string]string{},
			Skipped:    []string{},
		}
		for _, text := range texts {
			questionID, found, err := s.resolver.Resolve(dbc, survey.ID, text)
			if err != nil {
				return apierr.Storage("resolve question", err)
			}
			if !found {
				res.Skipped = append(res.Skipped, text)
				continue
			}
			value := in.Answers[text]
			if _, err := s.answers.Create(dbc, []*types.AnswerValue{{
				ID:         uuid.New(),
				ResponseID: resp.ID,
				QuestionID: questionID,
				Value:      value,
			}}); err != nil {
				return apierr.Storage("create answer value", err)
			}
			res.Recorded[text] = value
		}

		if in.UserID != nil && *in.UserID != uuid.Nil {
			if _, err := s.completions.Create(dbc, []*types.SurveyResponseRecord{{
				ID:       uuid.New(),
				SurveyID: survey.ID,
				UserID:   *in.UserID,
			}}); err != nil {
				return apierr.Storage("create completion record", err)
			}
		}
		result = res
		return nil
	})
	if err != nil {
		return nil, apierr.Storage("submit response", err)
	}

	if len(result.Skipped) > 0 {
		s.log.Debug("Unmatched answers skipped", "survey_id", survey.ID.String(), "skipped", len(result.Skipped))
	}
	s.log.Info("Response recorded",
		"survey_id", survey.ID.String(),
		"response_id", result.ResponseID.String(),
		"recorded", len(result.Recorded),
	)
	return result, nil
}

func (s *responseService) ListResponses(ctx context.Context, surveyID uuid.UUID) ([]SurveyResponse, error) {
	dbc := dbctx.Context{Ctx: ctx}
	survey, err := s.surveys.GetByID(dbc, surveyID)
	if err != nil {
		return nil, apierr.Storage("get survey", err)
	}
	if survey == nil {
		return nil, apierr.NotFound("survey_not_found", "survey not found")
	}
	rows, err := s.responses.ListAnswerRows(dbc, surveyID)
	if err != nil {
		return nil, apierr.Storage("list answer rows", err)
	}
	return aggregateAnswerRows(rows), nil
}

// aggregateAnswerRows folds row-per-answer results into one entry per
// response, in first-seen order. A later row for the same question text
// overwrites an earlier one; rows without a question text only create the
// entry.
func aggregateAnswerRows(rows []repos.AnswerRow) []SurveyResponse {
	out := []SurveyResponse{}
	index := make(map[uuid.UUID]int, len(rows))
	for _, row := range rows {
		i, ok := index[row.ResponseID]
		if !ok {
			i = len(out)
			index[row.ResponseID] = i
			out = append(out, SurveyResponse{
				ID:        row.ResponseID,
				CreatedAt: row.CreatedAt,
				Answers:   map[string]string{},
			})
		}
		if row.QuestionText == nil {
			continue
		}
		value := ""
		if row.Value != nil {
			value = *row.Value
		}
		out[i].Answers[*row.QuestionText] = value
	}
	return out
}
