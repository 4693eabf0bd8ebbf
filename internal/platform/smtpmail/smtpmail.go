package smtpmail

import (
	"context"
	"fmt"
	"strings"

	gomail "gopkg.in/gomail.v2"

	"github.com/yungbote/survey-backend/internal/platform/ctxutil"
	"github.com/yungbote/survey-backend/internal/platform/envutil"
	"github.com/yungbote/survey-backend/internal/platform/logger"
)

type Config struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

func ConfigFromEnv(log *logger.Logger) Config {
	return Config{
		Host: envutil.String("SMTP_HOST", "", log),
		Port: envutil.Int("SMTP_PORT", 0, log),
		User: envutil.String("SMTP_USER", "", log),
		Pass: envutil.String("SMTP_PASS", "", log),
		From: envutil.String("SMTP_FROM", "", log),
	}
}

// Missing lists the env names of required settings that are unset.
func (c Config) Missing() []string {
	missing := []string{}
	if strings.TrimSpace(c.Host) == "" {
		missing = append(missing, "SMTP_HOST")
	}
	if c.Port == 0 {
		missing = append(missing, "SMTP_PORT")
	}
	if strings.TrimSpace(c.From) == "" {
		missing = append(missing, "SMTP_FROM")
	}
	return missing
}

type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

type Sender struct {
	log    *logger.Logger
	cfg    Config
	dialer *gomail.Dialer
}

func New(log *logger.Logger, cfg Config) (*Sender, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if missing := cfg.Missing(); len(missing) > 0 {
		return nil, fmt.Errorf("missing SMTP env: %s", strings.Join(missing, ", "))
	}
	return &Sender{
		log:    log.With("client", "SMTPSender"),
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Pass),
	}, nil
}

// Send dials the server once per message. The dial itself is not
// cancellable, so ctx is only checked before connecting.
func (s *Sender) Send(ctx context.Context, msg Message) error {
	if err := ctxutil.Default(ctx).Err(); err != nil {
		return err
	}
	m, err := s.build(msg)
	if err != nil {
		return err
	}
	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	s.log.Debug("SMTP message sent", "recipient", msg.To)
	return nil
}

func (s *Sender) build(msg Message) (*gomail.Message, error) {
	to := strings.TrimSpace(msg.To)
	subject := strings.TrimSpace(msg.Subject)
	if to == "" {
		return nil, fmt.Errorf("smtp: To required")
	}
	if subject == "" {
		return nil, fmt.Errorf("smtp: Subject required")
	}
	if strings.TrimSpace(msg.Text) == "" && strings.TrimSpace(msg.HTML) == "" {
		return nil, fmt.Errorf("smtp: Text or HTML content required")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	switch {
	case msg.Text != "" && msg.HTML != "":
		m.SetBody("text/plain", msg.Text)
		m.AddAlternative("text/html", msg.HTML)
	case msg.HTML != "":
		m.SetBody("text/html", msg.HTML)
	default:
		m.SetBody("text/plain", msg.Text)
	}
	return m, nil
}
