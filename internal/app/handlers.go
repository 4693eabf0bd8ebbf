package app

import (
	httpH "github.com/yungbote/survey-backend/internal/http/handlers"
	"github.com/yungbote/survey-backend/internal/platform/logger"
)

type Handlers struct {
	Health    *httpH.HealthHandler
	Survey    *httpH.SurveyHandler
	Response  *httpH.ResponseHandler
	Question  *httpH.QuestionHandler
	Directory *httpH.DirectoryHandler
}

func wireHandlers(log *logger.Logger, services Services, db httpH.Pinger) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:    httpH.NewHealthHandler(db),
		Survey:    httpH.NewSurveyHandler(services.Survey, services.Publication),
		Response:  httpH.NewResponseHandler(services.Response),
		Question:  httpH.NewQuestionHandler(services.Survey),
		Directory: httpH.NewDirectoryHandler(services.Directory),
	}
}
