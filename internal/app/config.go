package app

import (
	"strconv"
	"strings"

	"github.com/yungbote/survey-backend/internal/data/db"
	"github.com/yungbote/survey-backend/internal/http/middleware"
	"github.com/yungbote/survey-backend/internal/observability"
	"github.com/yungbote/survey-backend/internal/platform/envutil"
	"github.com/yungbote/survey-backend/internal/platform/logger"
	"github.com/yungbote/survey-backend/internal/platform/sendgrid"
	"github.com/yungbote/survey-backend/internal/platform/smtpmail"
	"github.com/yungbote/survey-backend/internal/services"
)

const (
	NotifyProviderSendGrid = "sendgrid"
	NotifyProviderSMTP     = "smtp"
	NotifyProviderLog      = "log"
)

type Config struct {
	Port       string
	AppBaseURL string

	DB db.Config

	Publication    services.PublicationConfig
	NotifyProvider string
	SendGrid       sendgrid.Config
	SMTP           smtpmail.Config

	RedisAddr    string
	RedisChannel string

	AllowOrigins []string
	Otel         observability.OtelConfig
}

func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		Port:       envutil.String("PORT", "8080", log),
		AppBaseURL: envutil.String("APP_BASE_URL", "http://localhost:3000", log),
		DB: db.Config{
			Driver: envutil.String("DB_DRIVER", db.DriverPostgres, log),
			Postgres: db.PostgresConfig{
				Host:     envutil.String("POSTGRES_HOST", "localhost", log),
				Port:     envutil.Int("POSTGRES_PORT", 5432, log),
				User:     envutil.String("POSTGRES_USER", "postgres", log),
				Password: envutil.String("POSTGRES_PASSWORD", "", log),
				Name:     envutil.String("POSTGRES_NAME", "surveys", log),
				SSLMode:  envutil.String("POSTGRES_SSLMODE", "disable", log),
			},
			SQLitePath: envutil.String("SQLITE_PATH", "data/surveys.db", log),
		},
		Publication: services.PublicationConfig{
			Mode:              services.NormalizePublishMode(envutil.String("PUBLISH_MODE", services.PublishModeAllowDuplicates, log)),
			NotifyConcurrency: envutil.Int("NOTIFY_CONCURRENCY", 1, log),
		},
		SendGrid:     sendgrid.ConfigFromEnv(log),
		SMTP:         smtpmail.ConfigFromEnv(log),
		RedisAddr:    envutil.String("REDIS_ADDR", "", log),
		RedisChannel: envutil.String("REDIS_CHANNEL", "survey-events", log),
		AllowOrigins: envutil.List("CORS_ALLOW_ORIGINS", middleware.DefaultAllowOrigins, log),
		Otel: observability.OtelConfig{
			Enabled:     envutil.Bool("OTEL_ENABLED", false, log),
			ServiceName: envutil.String("OTEL_SERVICE_NAME", "survey-backend", log),
			Environment: envutil.String("APP_ENV", "development", log),
			Version:     envutil.String("APP_VERSION", "", log),
			SampleRatio: parseRatio(envutil.String("OTEL_SAMPLER_RATIO", "1", log), log),
			Endpoint:    envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", "", log),
			Headers:     observability.ParseHeaders(envutil.String("OTEL_EXPORTER_OTLP_HEADERS", "", log)),
			Insecure:    envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", false, log),
		},
	}
	cfg.NotifyProvider = resolveNotifyProvider(envutil.String("NOTIFY_PROVIDER", "", log), cfg)
	return cfg
}

// resolveNotifyProvider honours an explicit choice, otherwise picks the
// first provider with credentials configured.
func resolveNotifyProvider(explicit string, cfg Config) string {
	switch p := strings.ToLower(strings.TrimSpace(explicit)); p {
	case NotifyProviderSendGrid, NotifyProviderSMTP, NotifyProviderLog:
		return p
	}
	switch {
	case strings.TrimSpace(cfg.SendGrid.APIKey) != "":
		return NotifyProviderSendGrid
	case strings.TrimSpace(cfg.SMTP.Host) != "":
		return NotifyProviderSMTP
	default:
		return NotifyProviderLog
	}
}

func parseRatio(raw string, log *logger.Logger) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		if log != nil {
			log.Warn("OTEL_SAMPLER_RATIO is not a number, using 1", "provided", raw)
		}
		return 1
	}
	return f
}
