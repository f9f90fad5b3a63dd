package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.HTTPBind)
	assert.Equal(t, 8030, cfg.HTTPPort)
	assert.Equal(t, "0 * * * *", cfg.CronSpec)
	assert.Equal(t, "smtp.gmail.com", cfg.SMTPHost)
	assert.Equal(t, 465, cfg.SMTPPort)
	assert.Empty(t, cfg.EmailAddress)
	assert.Empty(t, cfg.EmailPassword)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("BIRTHDAYD_HTTP_PORT", "9999")
	t.Setenv("BIRTHDAYD_EMAIL_ADDRESS", "me@example.com")
	t.Setenv("BIRTHDAYD_CRON_SPEC", "*/5 * * * *")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.HTTPPort)
	assert.Equal(t, "me@example.com", cfg.EmailAddress)
	assert.Equal(t, "*/5 * * * *", cfg.CronSpec)
}

func TestInvalidPort(t *testing.T) {
	t.Setenv("BIRTHDAYD_HTTP_PORT", "70000")

	_, err := New()
	require.Error(t, err)
}

func TestListenAddr(t *testing.T) {
	cfg := &Config{HTTPBind: "0.0.0.0", HTTPPort: 8030}
	assert.Equal(t, "0.0.0.0:8030", cfg.ListenAddr())
}
