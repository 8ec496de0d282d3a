package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	v := newViper()
	v.Set("SECRET_KEY", "s3cret")
	v.Set("DATABASE_URL", "host=localhost dbname=complaints")

	cfg, err := FromViper(v)
	require.NoError(t, err)

	assert.Equal(t, 60*time.Minute, cfg.TokenTTL)
	assert.Equal(t, DefaultLoginMaxAttempts, cfg.LoginMaxAttempts)
	assert.Equal(t, DefaultLoginAttemptWindow, cfg.LoginAttemptWindow)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.False(t, cfg.RedisEnabled())
}

func TestFromViper_FromEnvironment(t *testing.T) {
	t.Setenv("SECRET_KEY", "env-secret")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/complaints")
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "15")
	t.Setenv("REDIS_ADDR", "localhost:6380")
	t.Setenv("LOGIN_ATTEMPT_WINDOW", "2m")

	cfg, err := FromViper(newViper())
	require.NoError(t, err)

	assert.Equal(t, "env-secret", cfg.SecretKey)
	assert.Equal(t, 15*time.Minute, cfg.TokenTTL)
	assert.Equal(t, 2*time.Minute, cfg.LoginAttemptWindow)
	assert.True(t, cfg.RedisEnabled())
}

func TestFromViper_MissingRequired(t *testing.T) {
	_, err := FromViper(viper.New())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "SECRET_KEY")
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestValidate_RejectsNonPositiveTTL(t *testing.T) {
	cfg := &Config{
		SecretKey:          "k",
		DatabaseURL:        "dsn",
		TokenTTL:           0,
		LoginMaxAttempts:   5,
		LoginAttemptWindow: time.Minute,
	}

	err := cfg.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "ACCESS_TOKEN_EXPIRE_MINUTES")
}
