package domain

import (
	"github.com/yungbote/survey-backend/internal/domain/survey"
	"github.com/yungbote/survey-backend/internal/domain/user"
)

const DefaultQuestionType = survey.DefaultQuestionType

type Survey = survey.Survey
type Question = survey.Question
type Response = survey.Response
type AnswerValue = survey.AnswerValue
type SurveyResponseRecord = survey.SurveyResponseRecord
type PublishedSurvey = survey.PublishedSurvey

type User = user.User
type Team = user.Team
