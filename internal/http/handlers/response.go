package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/survey-backend/internal/http/response"
	"github.com/yungbote/survey-backend/internal/services"
)

type ResponseHandler struct {
	responses services.ResponseService
}

func NewResponseHandler(responses services.ResponseService) *ResponseHandler {
	return &ResponseHandler{responses: responses}
}

// GET /api/responses/:surveyId
func (h *ResponseHandler) ListResponses(c *gin.Context) {
	surveyID, err := parseID(c.Param("surveyId"), "surveyId")
	if err != nil {
		response.RespondAPIError(c, err, "invalid_request")
		return
	}
	out, err := h.responses.ListResponses(c.Request.Context(), surveyID)
	if err != nil {
		response.RespondAPIError(c, err, "list_responses_failed")
		return
	}
	response.RespondOK(c, newResponseViews(out))
}

// POST /api/responses
// body: { "surveyId": "...", "responses": { "<question text>": <scalar or JSON> }, "userId": "..." }
func (h *ResponseHandler) SubmitResponse(c *gin.Context) {
	var req struct {
		SurveyID  string                     `json:"surveyId"`
		Responses map[string]json.RawMessage `json:"responses"`
		UserID    *string                    `json:"userId"`
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
	userID, err := parseOptionalID(req.UserID, "userId")
	if err != nil {
		response.RespondAPIError(c, err, "invalid_request")
		return
	}
	answers, err := answerValues(req.Responses)
	if err != nil {
		response.RespondAPIError(c, err, "invalid_request")
		return
	}

	res, err := h.responses.Submit(c.Request.Context(), services.SubmitInput{
		SurveyID: surveyID,
		Answers:  answers,
		UserID:   userID,
	})
	if err != nil {
		response.RespondAPIError(c, err, "submit_response_failed")
		return
	}
	skipped := res.Skipped
	if skipped == nil {
		skipped = []string{}
	}
	response.RespondCreated(c, gin.H{
		"id":        res.ResponseID,
		"surveyId":  res.SurveyID,
		"responses": res.Recorded,
		"skipped":   skipped,
	})
}
