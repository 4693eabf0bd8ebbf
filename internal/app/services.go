package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/survey-backend/internal/data/aggregates"
	"github.com/yungbote/survey-backend/internal/platform/logger"
	"github.com/yungbote/survey-backend/internal/services"
)

type Services struct {
	Survey      services.SurveyService
	Response    services.ResponseService
	Publication services.PublicationService
	Directory   services.DirectoryService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, repos Repos, clients Clients) Services {
	log.Info("Wiring services...")
	tx := aggregates.NewGormTxRunner(db)
	notifier := services.NewSurveyNotifier(log, clients.Mailer, cfg.AppBaseURL)
	resolver := services.NewQuestionResolver(log, repos.Question)

	return Services{
		Survey: services.NewSurveyService(db, log, tx, repos.Survey, repos.Question),
		Response: services.NewResponseService(
			db, log, tx,
			repos.Survey,
			repos.Response,
			repos.AnswerValue,
			repos.Completion,
			resolver,
		),
		Publication: services.NewPublicationService(
			db, log, cfg.Publication,
			repos.Survey,
			repos.Team,
			repos.User,
			repos.Publication,
			notifier,
			clients.Bus,
		),
		Directory: services.NewDirectoryService(db, log, repos.Team, repos.User),
	}
}
