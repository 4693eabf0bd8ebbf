package db

import (
	types "github.com/yungbote/survey-backend/internal/domain"
	"gorm.io/gorm"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		// Directory
		&types.Team{},
		&types.User{},

		// Surveys
		&types.Survey{},
		&types.Question{},
		&types.PublishedSurvey{},

		// Responses
		&types.Response{},
		&types.AnswerValue{},
		&types.SurveyResponseRecord{},
	)
}
