package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/survey-backend/internal/http/response"
	"github.com/yungbote/survey-backend/internal/services"
)

type QuestionHandler struct {
	surveys services.SurveyService
}

func NewQuestionHandler(surveys services.SurveyService) *QuestionHandler {
	return &QuestionHandler{surveys: surveys}
}

// GET /api/questions
// Distinct (text, type) pairs across all surveys.
func (h *QuestionHandler) ListTemplates(c *gin.Context) {
	templates, err := h.surveys.ListQuestionTemplates(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, err, "list_questions_failed")
		return
	}
	response.RespondOK(c, newTemplateViews(templates))
}
