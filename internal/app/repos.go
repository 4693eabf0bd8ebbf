package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/survey-backend/internal/data/repos"
	"github.com/yungbote/survey-backend/internal/platform/logger"
)

type Repos struct {
	Survey      repos.SurveyRepo
	Question    repos.QuestionRepo
	Response    repos.ResponseRepo
	AnswerValue repos.AnswerValueRepo
	Publication repos.PublicationRepo
	Completion  repos.CompletionRepo
	User        repos.UserRepo
	Team        repos.TeamRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Survey:      repos.NewSurveyRepo(db, log),
		Question:    repos.NewQuestionRepo(db, log),
		Response:    repos.NewResponseRepo(db, log),
		AnswerValue: repos.NewAnswerValueRepo(db, log),
		Publication: repos.NewPublicationRepo(db, log),
		Completion:  repos.NewCompletionRepo(db, log),
		User:        repos.NewUserRepo(db, log),
		Team:        repos.NewTeamRepo(db, log),
	}
}
