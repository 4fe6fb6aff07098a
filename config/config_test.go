package config

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "voucher-jobs", cfg.Kafka.Topic)
	assert.Equal(t, 3, cfg.Kafka.MaxAttempts)
	assert.Equal(t, 30*time.Second, cfg.Kafka.RetryDelay)
	assert.Equal(t, 30*time.Second, cfg.Waha.Timeout)
	assert.Equal(t, "default", cfg.Waha.Session)
	assert.Empty(t, cfg.Waha.APIKey)
	assert.Equal(t, 587, cfg.Mail.Port)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("WAHA_BASE_URL", "http://waha:3000")
	t.Setenv("WAHA_API_KEY", "secret")
	t.Setenv("MAIL_PORT", "2525")
	t.Setenv("DB_HOST", "db")
	t.Setenv("KAFKA_MAX_ATTEMPTS", "5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://waha:3000", cfg.Waha.BaseURL)
	assert.Equal(t, "secret", cfg.Waha.APIKey)
	assert.Equal(t, 2525, cfg.Mail.Port)
	assert.Equal(t, 5, cfg.Kafka.MaxAttempts)
	assert.Contains(t, cfg.DB.DSN(), "host=db ")
}

func TestLoad_InvalidValue(t *testing.T) {
	t.Setenv("MAIL_PORT", "not-a-port")

	_, err := Load()
	assert.Error(t, err)
}

func TestNewLogger_Level(t *testing.T) {
	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"WARN", zerolog.WarnLevel},
		{"", zerolog.InfoLevel},
		{"bogus", zerolog.InfoLevel},
	}

	for _, testCase := range tests {
		t.Run(testCase.level, func(t *testing.T) {
			log := NewLogger(testCase.level)
			assert.Equal(t, testCase.want, log.GetLevel())
		})
	}
}
