package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/survey-backend/internal/http/handlers"
	httpMW "github.com/yungbote/survey-backend/internal/http/middleware"
	"github.com/yungbote/survey-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log          *logger.Logger
	ServiceName  string
	AllowOrigins []string

	SurveyHandler    *httpH.SurveyHandler
	ResponseHandler  *httpH.ResponseHandler
	QuestionHandler  *httpH.QuestionHandler
	DirectoryHandler *httpH.DirectoryHandler

	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS(cfg.AllowOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// Surveys
		if cfg.SurveyHandler != nil {
			api.POST("/surveys", cfg.SurveyHandler.CreateSurvey)
			api.GET("/surveys", cfg.SurveyHandler.ListSurveys)
			api.GET("/surveys/unpublished", cfg.SurveyHandler.ListUnpublished)
			api.GET("/surveys/:id", cfg.SurveyHandler.GetSurvey)
			api.POST("/surveys/publish", cfg.SurveyHandler.PublishSurvey)
		}

		// Responses
		if cfg.ResponseHandler != nil {
			api.GET("/responses/:surveyId", cfg.ResponseHandler.ListResponses)
			api.POST("/responses", cfg.ResponseHandler.SubmitResponse)
		}

		// Question templates
		if cfg.QuestionHandler != nil {
			api.GET("/questions", cfg.QuestionHandler.ListTemplates)
		}

		// Teams and users
		if cfg.DirectoryHandler != nil {
			api.GET("/teams", cfg.DirectoryHandler.ListTeams)
			api.POST("/teams", cfg.DirectoryHandler.CreateTeam)
			api.GET("/users", cfg.DirectoryHandler.ListUsers)
			api.POST("/users", cfg.DirectoryHandler.CreateUser)
		}
	}

	return r
}
