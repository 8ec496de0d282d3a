package config

import "time"

const (
	// Auth
	DefaultTokenTTLMinutes = 60
	MinPasswordLength      = 6
	TokenIssuer            = "complaintbox-service"

	// Login throttling
	DefaultLoginMaxAttempts   = 5
	DefaultLoginAttemptWindow = 15 * time.Minute

	// HTTP
	DefaultHTTPAddr        = ":8080"
	DefaultReadTimeout     = 10 * time.Second
	DefaultWriteTimeout    = 10 * time.Second
	DefaultShutdownTimeout = 5 * time.Second
	MaxHeaderBytes         = 1 << 20
)
