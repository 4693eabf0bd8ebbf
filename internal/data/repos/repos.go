package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/survey-backend/internal/data/repos/survey"
	"github.com/yungbote/survey-backend/internal/data/repos/user"
	"github.com/yungbote/survey-backend/internal/platform/logger"
)

type SurveyRepo = survey.SurveyRepo
type QuestionRepo = survey.QuestionRepo
type ResponseRepo = survey.ResponseRepo
type AnswerValueRepo = survey.AnswerValueRepo
type PublicationRepo = survey.PublicationRepo
type CompletionRepo = survey.CompletionRepo

type QuestionTemplate = survey.QuestionTemplate
type AnswerRow = survey.AnswerRow

type UserRepo = user.UserRepo
type TeamRepo = user.TeamRepo

func NewSurveyRepo(db *gorm.DB, baseLog *logger.Logger) SurveyRepo {
	return survey.NewSurveyRepo(db, baseLog)
}
func NewQuestionRepo(db *gorm.DB, baseLog *logger.Logger) QuestionRepo {
	return survey.NewQuestionRepo(db, baseLog)
}
func NewResponseRepo(db *gorm.DB, baseLog *logger.Logger) ResponseRepo {
	return survey.NewResponseRepo(db, baseLog)
}
func NewAnswerValueRepo(db *gorm.DB, baseLog *logger.Logger) AnswerValueRepo {
	return survey.NewAnswerValueRepo(db, baseLog)
}
func NewPublicationRepo(db *gorm.DB, baseLog *logger.Logger) PublicationRepo {
	return survey.NewPublicationRepo(db, baseLog)
}
func NewCompletionRepo(db *gorm.DB, baseLog *logger.Logger) CompletionRepo {
	return survey.NewCompletionRepo(db, baseLog)
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo { return user.NewUserRepo(db, baseLog) }
func NewTeamRepo(db *gorm.DB, baseLog *logger.Logger) TeamRepo { return user.NewTeamRepo(db, baseLog) }
