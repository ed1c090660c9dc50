package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "data/feedback.db", cfg.Database.Path)
	assert.Equal(t, "none", cfg.Mirror.Backend)
	assert.Equal(t, "memory", cfg.Session.Backend)
	assert.Equal(t, 12*time.Hour, cfg.Session.TTL)
	assert.Equal(t, "feedback_admin_session", cfg.Session.CookieName)
	assert.Equal(t, "firebase", cfg.Admin.IdentityProvider)
	assert.Empty(t, cfg.Admin.Emails)
	assert.Empty(t, cfg.Admin.EmailDomain)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "http://localhost:8108", cfg.Typesense.URL)
}

func TestLoad_AdminAllowList(t *testing.T) {
	t.Setenv("ADMIN_EMAILS", " Boss@Example.com, ,ops@example.com ")
	t.Setenv("ADMIN_EMAIL_DOMAIN", "@Example.COM")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"boss@example.com", "ops@example.com"}, cfg.Admin.Emails)
	assert.Equal(t, "example.com", cfg.Admin.EmailDomain)
}

func TestLoad_FirebaseWebConfig(t *testing.T) {
	t.Setenv("FIREBASE_API_KEY", "key")
	t.Setenv("FIREBASE_PROJECT_ID", "kiosk-prod")
	t.Setenv("FIREBASE_APP_ID", "1:2:web:3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "key", cfg.Firebase.Web.APIKey)
	assert.Equal(t, "kiosk-prod", cfg.Firebase.Web.ProjectID)
	assert.Equal(t, "kiosk-prod", cfg.Firebase.ProjectID)
	assert.Equal(t, "1:2:web:3", cfg.Firebase.Web.AppID)
}

func TestLoad_Durations(t *testing.T) {
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("MIRROR_TIMEOUT", "not-a-duration")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
	assert.Equal(t, 5*time.Second, cfg.Mirror.Timeout)
}

func TestLoad_RejectsUnknownBackends(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"driver", "DB_DRIVER", "oracle"},
		{"mirror", "MIRROR_BACKEND", "s3"},
		{"session", "SESSION_BACKEND", "memcached"},
		{"identity", "IDENTITY_PROVIDER", "okta"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLocation(t *testing.T) {
	loc, err := (&LocaleConfig{TimeZone: "Local"}).Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)

	loc, err = (&LocaleConfig{TimeZone: "UTC"}).Location()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())

	_, err = (&LocaleConfig{TimeZone: "Mars/Olympus"}).Location()
	assert.Error(t, err)
}

func TestDatabaseDSN(t *testing.T) {
	c := &DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", Database: "d", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=d sslmode=disable", c.DatabaseDSN())
}
