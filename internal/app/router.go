package app

import (
	"github.com/yungbote/survey-backend/internal/http"
	"github.com/yungbote/survey-backend/internal/platform/logger"
)

func wireServer(log *logger.Logger, cfg Config, handlers Handlers) *http.Server {
	serviceName := ""
	if cfg.Otel.Enabled {
		serviceName = cfg.Otel.ServiceName
	}
	return http.NewServer(":"+cfg.Port, http.RouterConfig{
		Log:              log,
		ServiceName:      serviceName,
		AllowOrigins:     cfg.AllowOrigins,
		SurveyHandler:    handlers.Survey,
		ResponseHandler:  handlers.Response,
		QuestionHandler:  handlers.Question,
		DirectoryHandler: handlers.Directory,
		HealthHandler:    handlers.Health,
	})
}
