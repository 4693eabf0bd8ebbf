package app

import (
	"fmt"
	"strings"

	"github.com/yungbote/survey-backend/internal/events"
	"github.com/yungbote/survey-backend/internal/platform/logger"
	"github.com/yungbote/survey-backend/internal/platform/sendgrid"
	"github.com/yungbote/survey-backend/internal/platform/smtpmail"
	"github.com/yungbote/survey-backend/internal/services"
)

type Clients struct {
	Mailer services.Mailer
	Bus    events.Bus
}

func wireClients(log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")

	mailer, err := newMailer(log, cfg)
	if err != nil {
		return Clients{}, err
	}

	// Redis
	var bus events.Bus
	if strings.TrimSpace(cfg.RedisAddr) != "" {
		b, err := events.NewRedisBus(log, events.RedisConfig{Addr: cfg.RedisAddr, Channel: cfg.RedisChannel})
		if err != nil {
			return Clients{}, fmt.Errorf("init redis event bus: %w", err)
		}
		bus = b
	} else {
		bus = events.NewNoopBus(log)
	}

	return Clients{Mailer: mailer, Bus: bus}, nil
}

func newMailer(log *logger.Logger, cfg Config) (services.Mailer, error) {
	switch cfg.NotifyProvider {
	case NotifyProviderSendGrid:
		client, err := sendgrid.New(log, cfg.SendGrid)
		if err != nil {
			return nil, fmt.Errorf("init sendgrid client: %w", err)
		}
		log.Info("Notifications via SendGrid")
		return services.NewSendGridMailer(client), nil
	case NotifyProviderSMTP:
		sender, err := smtpmail.New(log, cfg.SMTP)
		if err != nil {
			return nil, fmt.Errorf("init smtp sender: %w", err)
		}
		log.Info("Notifications via SMTP", "host", cfg.SMTP.Host)
		return services.NewSMTPMailer(sender), nil
	default:
		log.Warn("No mail provider configured, notifications are only logged")
		return services.NewLogMailer(log), nil
	}
}

func (c *Clients) Close() {
	if c == nil {
		return
	}
	if c.Bus != nil {
		_ = c.Bus.Close()
	}
}
