package handlers

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/survey-backend/internal/data/repos"
	types "github.com/yungbote/survey-backend/internal/domain"
	"github.com/yungbote/survey-backend/internal/platform/apierr"
	"github.com/yungbote/survey-backend/internal/services"
)

type questionView struct {
	Text string `json:"text"`
	Type string `json:"type"`
}

// surveyQuestionView is a stored question row inside a survey payload.
type surveyQuestionView struct {
	ID       uuid.UUID `json:"id"`
	SurveyID uuid.UUID `json:"survey_id"`
	Text     string    `json:"text"`
	Type     string    `json:"type"`
	Position int       `json:"position"`
}

type surveyView struct {
	ID        uuid.UUID            `json:"id"`
	Title     string               `json:"title"`
	Questions []surveyQuestionView `json:"questions"`
}

func newSurveyView(s *types.Survey) surveyView {
	v := surveyView{ID: s.ID, Title: s.Title, Questions: make([]surveyQuestionView, 0, len(s.Questions))}
	for _, q := range s.Questions {
		if q == nil {
			continue
		}
		v.Questions = append(v.Questions, surveyQuestionView{
			ID:       q.ID,
			SurveyID: q.SurveyID,
			Text:     q.Text,
			Type:     q.Type,
			Position: q.Position,
		})
	}
	return v
}

func newSurveyViews(in []*types.Survey) []surveyView {
	out := make([]surveyView, 0, len(in))
	for _, s := range in {
		if s != nil {
			out = append(out, newSurveyView(s))
		}
	}
	return out
}

func newTemplateViews(in []repos.QuestionTemplate) []questionView {
	out := make([]questionView, 0, len(in))
	for _, t := range in {
		out = append(out, questionView{Text: t.Text, Type: t.Type})
	}
	return out
}

type responseView struct {
	ID        uuid.UUID         `json:"id"`
	CreatedAt time.Time         `json:"created_at"`
	Responses map[string]string `json:"responses"`
}

func newResponseViews(in []services.SurveyResponse) []responseView {
	out := make([]responseView, 0, len(in))
	for _, r := range in {
		answers := r.Answers
		if answers == nil {
			answers = map[string]string{}
		}
		out = append(out, responseView{ID: r.ID, CreatedAt: r.CreatedAt, Responses: answers})
	}
	return out
}

// answerValues flattens submitted answers to their stored text form.
// Strings are kept as-is, numbers keep their literal spelling, booleans
// become "true"/"false", and arrays or objects are stored as compact JSON.
func answerValues(in map[string]json.RawMessage) (map[string]string, error) {
	if in == nil {
		return nil, nil
	}
	out := make(map[string]string, len(in))
	for text, raw := range in {
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		var v any
		if err := dec.Decode(&v); err != nil {
			return nil, apierr.Invalid("invalid_answer_value", "answer for "+strconv.Quote(text)+" is not valid JSON")
		}
		switch val := v.(type) {
		case string:
			out[text] = val
		case json.Number:
			out[text] = val.String()
		case bool:
			out[text] = strconv.FormatBool(val)
		case nil:
			return nil, apierr.Invalid("invalid_answer_value", "answer for "+strconv.Quote(text)+" must not be null")
		default:
			var buf bytes.Buffer
			if err := json.Compact(&buf, raw); err != nil {
				return nil, apierr.Invalid("invalid_answer_value", "answer for "+strconv.Quote(text)+" is not valid JSON")
			}
			out[text] = buf.String()
		}
	}
	return out, nil
}

type teamView struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

func newTeamViews(in []*types.Team) []teamView {
	out := make([]teamView, 0, len(in))
	for _, t := range in {
		if t != nil {
			out = append(out, teamView{ID: t.ID, Name: t.Name})
		}
	}
	return out
}

type userView struct {
	ID     uuid.UUID  `json:"id"`
	Email  string     `json:"email"`
	Name   string     `json:"name"`
	TeamID *uuid.UUID `json:"teamId,omitempty"`
}

func newUserView(u *types.User) userView {
	return userView{ID: u.ID, Email: u.Email, Name: u.Name, TeamID: u.TeamID}
}

func newUserViews(in []*types.User) []userView {
	out := make([]userView, 0, len(in))
	for _, u := range in {
		if u != nil {
			out = append(out, newUserView(u))
		}
	}
	return out
}

// parseID rejects empty and malformed identifiers with a 400.
func parseID(raw, field string) (uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.Nil, apierr.Invalid("missing_"+field, field+" is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apierr.Invalid("invalid_"+field, field+" must be a valid id")
	}
	return id, nil
}

// parseOptionalID returns nil for an absent or blank value.
func parseOptionalID(raw *string, field string) (*uuid.UUID, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	id, err := parseID(*raw, field)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
