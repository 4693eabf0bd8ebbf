package services

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	types "github.com/yungbote/survey-backend/internal/domain"
	"github.com/yungbote/survey-backend/internal/platform/logger"
	"github.com/yungbote/survey-backend/internal/platform/sendgrid"
	"github.com/yungbote/survey-backend/internal/platform/smtpmail"
)

// ErrNotification wraps every failure of the notification gateway.
// Publication logs these per recipient and never returns them.
var ErrNotification = errors.New("notification failed")

// Mail is a rendered single-recipient message.
type Mail struct {
	To       string
	ToName   string
	Subject  string
	Text     string
	HTML     string
	SurveyID string
}

// Mailer delivers a rendered message through one provider.
type Mailer interface {
	Send(ctx context.Context, m Mail) error
}

type SurveyNotifier interface {
	NotifySurveyPublished(ctx context.Context, survey *types.Survey, recipient *types.User) error
}

type surveyNotifier struct {
	log     *logger.Logger
	mailer  Mailer
	baseURL string
}

// NewSurveyNotifier renders survey announcements linking to
// <baseURL>/take-survey/<id> and hands them to mailer.
func NewSurveyNotifier(baseLog *logger.Logger, mailer Mailer, baseURL string) SurveyNotifier {
	return &surveyNotifier{
		log:     baseLog.With("service", "SurveyNotifier"),
		mailer:  mailer,
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
	}
}

func (n *surveyNotifier) NotifySurveyPublished(ctx context.Context, survey *types.Survey, recipient *types.User) error {
	if survey == nil {
		return fmt.Errorf("%w: survey required", ErrNotification)
	}
	if recipient == nil || strings.TrimSpace(recipient.Email) == "" {
		return fmt.Errorf("%w: recipient has no email", ErrNotification)
	}
	if n.mailer == nil {
		return fmt.Errorf("%w: no mailer configured", ErrNotification)
	}
	if err := n.mailer.Send(ctx, n.render(survey, recipient)); err != nil {
		return fmt.Errorf("%w: %w", ErrNotification, err)
	}
	return nil
}

func (n *surveyNotifier) render(survey *types.Survey, recipient *types.User) Mail {
	link := fmt.Sprintf("%s/take-survey/%s", n.baseURL, survey.ID.String())
	title := survey.Title
	return Mail{
		To:       recipient.Email,
		ToName:   recipient.Name,
		Subject:  "New Survey: " + title,
		SurveyID: survey.ID.String(),
		Text: fmt.Sprintf(
			"A new survey has been published: %s\n\nTake the survey: %s\n",
			title, link,
		),
		HTML: fmt.Sprintf(
			"<h1>New Survey Available</h1>\n<p>A new survey has been published: %s</p>\n<p><a href=\"%s\">Click here to take the survey</a></p>\n",
			html.EscapeString(title), html.EscapeString(link),
		),
	}
}

// =========================
// Mailers
// =========================

type sendGridMailer struct {
	client sendgrid.Client
}

func NewSendGridMailer(client sendgrid.Client) Mailer {
	return &sendGridMailer{client: client}
}

func (m *sendGridMailer) Send(ctx context.Context, mail Mail) error {
	_, err := m.client.Send(ctx, sendgrid.Message{
		To:         sendgrid.Address{Email: mail.To, Name: mail.ToName},
		Subject:    mail.Subject,
		Text:       mail.Text,
		HTML:       mail.HTML,
		Categories: []string{"survey-published"},
		CustomArgs: map[string]string{"survey_id": mail.SurveyID},
	})
	return err
}

type smtpMailer struct {
	sender *smtpmail.Sender
}

func NewSMTPMailer(sender *smtpmail.Sender) Mailer {
	return &smtpMailer{sender: sender}
}

func (m *smtpMailer) Send(ctx context.Context, mail Mail) error {
	return m.sender.Send(ctx, smtpmail.Message{
		To:      mail.To,
		Subject: mail.Subject,
		Text:    mail.Text,
		HTML:    mail.HTML,
	})
}

type logMailer struct {
	log *logger.Logger
}

// NewLogMailer is used when no provider is configured.
func NewLogMailer(baseLog *logger.Logger) Mailer {
	return &logMailer{log: baseLog.With("service", "LogMailer")}
}

func (m *logMailer) Send(ctx context.Context, mail Mail) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.log.Info("Notification email (not delivered)", "recipient", mail.To, "subject", mail.Subject, "survey_id", mail.SurveyID)
	return nil
}
