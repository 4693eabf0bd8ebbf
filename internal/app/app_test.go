package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/survey-backend/internal/data/db"
	"github.com/yungbote/survey-backend/internal/platform/logger"
	"github.com/yungbote/survey-backend/internal/platform/sendgrid"
	"github.com/yungbote/survey-backend/internal/platform/smtpmail"
	"github.com/yungbote/survey-backend/internal/services"
)

func TestResolveNotifyProvider(t *testing.T) {
	cases := []struct {
		name     string
		explicit string
		cfg      Config
		want     string
	}{
		{"explicit wins", "SMTP", Config{SendGrid: sendgrid.Config{APIKey: "k"}}, NotifyProviderSMTP},
		{"sendgrid key", "", Config{SendGrid: sendgrid.Config{APIKey: "k"}, SMTP: smtpmail.Config{Host: "h"}}, NotifyProviderSendGrid},
		{"smtp host", "", Config{SMTP: smtpmail.Config{Host: "h"}}, NotifyProviderSMTP},
		{"unknown explicit falls back", "carrier-pigeon", Config{}, NotifyProviderLog},
		{"nothing configured", "", Config{}, NotifyProviderLog},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := resolveNotifyProvider(tc.explicit, tc.cfg); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestLoadConfigReadsEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", "/tmp/x.db")
	t.Setenv("PUBLISH_MODE", "UPSERT")
	t.Setenv("NOTIFY_CONCURRENCY", "4")
	t.Setenv("NOTIFY_PROVIDER", "")
	t.Setenv("SENDGRID_API_KEY", "")
	t.Setenv("SMTP_HOST", "")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("OTEL_SAMPLER_RATIO", "abc")

	cfg := LoadConfig(logger.NewNop())
	if cfg.Port != "9090" || cfg.DB.Driver != "sqlite" || cfg.DB.SQLitePath != "/tmp/x.db" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Publication.Mode != services.PublishModeUpsert || cfg.Publication.NotifyConcurrency != 4 {
		t.Fatalf("unexpected publication config: %+v", cfg.Publication)
	}
	if cfg.NotifyProvider != NotifyProviderLog {
		t.Fatalf("expected log provider, got %q", cfg.NotifyProvider)
	}
	if len(cfg.AllowOrigins) != 2 || cfg.AllowOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected origins: %v", cfg.AllowOrigins)
	}
	if cfg.Otel.SampleRatio != 1 {
		t.Fatalf("expected fallback sample ratio, got %v", cfg.Otel.SampleRatio)
	}
}

func TestNewWithConfigServesHealthcheck(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := Config{
		Port:           "0",
		AppBaseURL:     "http://localhost:3000",
		DB:             db.Config{Driver: db.DriverSQLite, SQLitePath: filepath.Join(t.TempDir(), "app.db")},
		NotifyProvider: NotifyProviderLog,
	}
	a, err := NewWithConfig(context.Background(), logger.NewNop(), cfg)
	if err != nil {
		t.Fatalf("NewWithConfig: %v", err)
	}
	defer a.Close()

	rec := httptest.NewRecorder()
	a.Server.Engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestNewWithConfigRejectsBadMailerConfig(t *testing.T) {
	cfg := Config{
		DB:             db.Config{Driver: db.DriverSQLite, SQLitePath: filepath.Join(t.TempDir(), "app.db")},
		NotifyProvider: NotifyProviderSMTP,
	}
	if _, err := NewWithConfig(context.Background(), logger.NewNop(), cfg); err == nil {
		t.Fatal("expected error for incomplete SMTP settings")
	}
}
