// Package config loads runtime settings from the environment (and an optional .env file).
package config

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	// SecretKey signs session tokens. Required.
	SecretKey string
	// TokenTTL is how long an issued session token stays valid.
	TokenTTL time.Duration

	// DatabaseURL is the PostgreSQL DSN. Required.
	DatabaseURL string

	// Redis is optional; when RedisAddr is empty login throttling is disabled.
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	LoginMaxAttempts   int
	LoginAttemptWindow time.Duration

	HTTPAddr string
	GinMode  string
}

// Load reads .env (if present) and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("ACCESS_TOKEN_EXPIRE_MINUTES", DefaultTokenTTLMinutes)
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("LOGIN_MAX_ATTEMPTS", DefaultLoginMaxAttempts)
	v.SetDefault("LOGIN_ATTEMPT_WINDOW", DefaultLoginAttemptWindow.String())
	v.SetDefault("HTTP_ADDR", DefaultHTTPAddr)
	v.SetDefault("GIN_MODE", "release")
	return v
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		SecretKey:          v.GetString("SECRET_KEY"),
		TokenTTL:           time.Duration(v.GetInt("ACCESS_TOKEN_EXPIRE_MINUTES")) * time.Minute,
		DatabaseURL:        v.GetString("DATABASE_URL"),
		RedisAddr:          v.GetString("REDIS_ADDR"),
		RedisPassword:      v.GetString("REDIS_PASSWORD"),
		RedisDB:            v.GetInt("REDIS_DB"),
		LoginMaxAttempts:   v.GetInt("LOGIN_MAX_ATTEMPTS"),
		LoginAttemptWindow: v.GetDuration("LOGIN_ATTEMPT_WINDOW"),
		HTTPAddr:           v.GetString("HTTP_ADDR"),
		GinMode:            v.GetString("GIN_MODE"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every missing or malformed setting at once.
func (c *Config) Validate() error {
	var errs []error
	if c.SecretKey == "" {
		errs = append(errs, errors.New("SECRET_KEY not found in environment"))
	}
	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_URL not found in environment"))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, fmt.Errorf("ACCESS_TOKEN_EXPIRE_MINUTES must be positive, got %s", c.TokenTTL))
	}
	if c.LoginMaxAttempts <= 0 {
		errs = append(errs, fmt.Errorf("LOGIN_MAX_ATTEMPTS must be positive, got %d", c.LoginMaxAttempts))
	}
	if c.LoginAttemptWindow <= 0 {
		errs = append(errs, fmt.Errorf("LOGIN_ATTEMPT_WINDOW must be positive, got %s", c.LoginAttemptWindow))
	}
	return errors.Join(errs...)
}

// RedisEnabled reports whether a Redis address was configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisAddr != ""
}
