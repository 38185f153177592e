package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	for _, k := range []string{"PORT", "DB_NAME", "MAIL_DRIVER", "PASSWORD_RESET_TTL_MIN", "RESET_RATE_LIMIT_PER_HOUR", "FRONTEND_URL", "MIGRATE_ON_START", "SMTP_USER", "MAIL_FROM", "CORS_ORIGINS", "TRUSTED_PROXIES", "RESET_DECOY_DELAY_MIN_MS", "RESET_DECOY_DELAY_MAX_MS"} {
		t.Setenv(k, "")
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "dbaccounting", cfg.DbName)
	assert.Equal(t, "smtp", cfg.MailDriver)
	assert.Equal(t, 10*time.Minute, cfg.ResetTTL())
	assert.Equal(t, 5, cfg.ResetRateLimitPerHour)
	assert.True(t, cfg.MigrateOnStart)
	assert.False(t, cfg.PasswordResetSingleUse)
	assert.Equal(t, "http://localhost:3000/accounting/#/reset-password", cfg.ResetLinkBase())
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
	assert.Empty(t, cfg.TrustedProxies)
	lo, hi := cfg.ResetDecoyDelay()
	assert.Equal(t, 200*time.Millisecond, lo)
	assert.Equal(t, 800*time.Millisecond, hi)
}

func TestLoadConfigOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PASSWORD_RESET_TTL_MIN", "15")
	t.Setenv("FRONTEND_URL", "https://office.example/")
	t.Setenv("ACCESS_TOKEN_EXPIRY", "30m")
	t.Setenv("SMTP_USER", "mailer@example.com")
	t.Setenv("MAIL_FROM", "")
	t.Setenv("CORS_ORIGINS", "")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 127.0.0.1,")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, []string{"https://office.example"}, cfg.CORSOrigins)
	assert.Equal(t, []string{"10.0.0.0/8", "127.0.0.1"}, cfg.TrustedProxies)

	assert.Equal(t, 15*time.Minute, cfg.ResetTTL())
	assert.Equal(t, 30*time.Minute, cfg.AccessTTL())
	assert.Equal(t, "https://office.example/#/", cfg.LoginURL())
	assert.Equal(t, "mailer@example.com", cfg.MailFrom)
}

func TestLoadConfigCORSOrigins(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("FRONTEND_URL", "https://office.example")
	t.Setenv("CORS_ORIGINS", "https://office.example, https://admin.office.example")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://office.example", "https://admin.office.example"}, cfg.CORSOrigins)
}

func TestLoadConfigCORSOriginDropsFrontendPath(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("FRONTEND_URL", "https://office.example:8443/app/")
	t.Setenv("CORS_ORIGINS", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://office.example:8443"}, cfg.CORSOrigins)
}

func TestLoadConfigRejectsBadNumbers(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("RESET_RATE_LIMIT_PER_HOUR", "many")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "RESET_RATE_LIMIT_PER_HOUR")
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			DbHost: "db", DbUser: "u", DbName: "n",
			Env: "prod", MailDriver: "smtp", SMTPHost: "h", SMTPUser: "u",
			JWTSecret: "j", PasswordResetSecret: "s", RedisAddr: "redis:6379",
		}
	}

	warnings, err := base().Validate()
	require.NoError(t, err)
	assert.Empty(t, warnings)

	c := base()
	c.DbHost = ""
	_, err = c.Validate()
	assert.Error(t, err)

	c = base()
	c.PasswordResetSecret = ""
	_, err = c.Validate()
	assert.ErrorContains(t, err, "PASSWORD_RESET_SECRET")

	c.Env = "dev"
	warnings, err = c.Validate()
	require.NoError(t, err)
	assert.Contains(t, warnings, "PASSWORD_RESET_SECRET is empty")

	c = base()
	c.MailDriver = "pigeon"
	_, err = c.Validate()
	assert.Error(t, err)

	c = base()
	c.RedisAddr = ""
	c.PasswordResetSingleUse = true
	_, err = c.Validate()
	assert.ErrorContains(t, err, "REDIS_ADDR")
}

// chdir changes the working directory for the duration of the test
// (equivalent to testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
