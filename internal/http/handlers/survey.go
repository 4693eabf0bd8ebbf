package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/survey-backend/internal/http/response"
	"github.com/yungbote/survey-backend/internal/services"
)

type SurveyHandler struct {
	surveys      services.SurveyService
	publications services.PublicationService
}

func NewSurveyHandler(surveys services.SurveyService, publications services.PublicationService) *SurveyHandler {
	return &SurveyHandler{surveys: surveys, publications: publications}
}

// POST /api/surveys
// body: { "title": "...", "questions": [{ "text": "...", "type": "..." }] }
func (h *SurveyHandler) CreateSurvey(c *gin.Context) {
	var req struct {
		Title     string `json:"title"`
		Questions []struct {
			Text string `json:"text"`
			Type string `json:"type"`
		} `json:"questions"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	in := services.CreateSurveyInput{Title: req.Title}
	for _, q := range req.Questions {
		in.Questions = append(in.Questions, services.QuestionInput{Text: q.Text, Type: q.Type})
	}

	survey, err := h.surveys.CreateSurvey(c.Request.Context(), in)
	if err != nil {
		response.RespondAPIError(c, err, "create_survey_failed")
		return
	}
	response.RespondCreated(c, newSurveyView(survey))
}

// GET /api/surveys
func (h *SurveyHandler) ListSurveys(c *gin.Context) {
	surveys, err := h.surveys.ListSurveys(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, err, "list_surveys_failed")
		return
	}
	response.RespondOK(c, newSurveyViews(surveys))
}

// GET /api/surveys/unpublished
func (h *SurveyHandler) ListUnpublished(c *gin.Context) {
	surveys, err := h.surveys.ListUnpublished(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, err, "list_unpublished_failed")
		return
	}
	response.RespondOK(c, newSurveyViews(surveys))
}

// GET /api/surveys/:id
func (h *SurveyHandler) GetSurvey(c *gin.Context) {
	id, err := parseID(c.Param("id"), "id")
	if err != nil {
		response.RespondAPIError(c, err, "invalid_request")
		return
	}
	survey, err := h.surveys.GetSurvey(c.Request.Context(), id)
	if err != nil {
		response.RespondAPIError(c, err, "get_survey_failed")
		return
	}
	response.RespondOK(c, newSurveyView(survey))
}

// POST /api/surveys/publish
// body: { "surveyId": "...", "teamId": "..." }
func (h *SurveyHandler) PublishSurvey(c *gin.Context) {
	var req struct {
		SurveyID string  `json:"surveyId"`
		TeamID   *string `json:"teamId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	surveyID, err := parseID(req.SurveyID, "surveyId")
	if err != nil {
		response.RespondAPIError(c, err, "invalid_request")
		return
	}
	teamID, err := parseOptionalID(req.TeamID, "teamId")
	if err != nil {
		response.RespondAPIError(c, err, "invalid_request")
		return
	}

	res, err := h.publications.Publish(c.Request.Context(), services.PublishInput{SurveyID: surveyID, TeamID: teamID})
	if err != nil {
		response.RespondAPIError(c, err, "publish_failed")
		return
	}
	msg := "Survey published successfully"
	if res.AlreadyPublished {
		msg = "Survey already published"
	}
	response.RespondOK(c, gin.H{
		"message":          msg,
		"surveyId":         res.SurveyID,
		"teamId":           res.TeamID,
		"publicationId":    res.PublicationID,
		"audienceSize":     res.AudienceSize,
		"notifiedCount":    res.NotifiedCount,
		"failedCount":      res.FailedCount,
		"alreadyPublished": res.AlreadyPublished,
	})
}
