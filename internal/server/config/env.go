package config

import (
	"os"
	"time"
)

// parseEnv overlays Config fields from environment variables. Duration
// values use time.ParseDuration syntax ("15m", "720h"); invalid values are
// ignored in favor of the current setting.
//
// Recognized variables:
//
//	ENDPOINT_ADDR_HTTP       HTTP bind address
//	DATABASE_DSN             PostgreSQL DSN
//	JWT_SECRET               base64-encoded JWT HMAC secret
//	ACCESS_TOKEN_VALIDITY    access token lifetime
//	REFRESH_TOKEN_VALIDITY   refresh token lifetime
//	TOKEN_SWEEP_INTERVAL     expired-token sweep interval
func parseEnv(config *Config) {
	if v := os.Getenv("ENDPOINT_ADDR_HTTP"); v != "" {
		config.EndpointAddrHTTP = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		config.DatabaseDSN = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		config.JWTSecret = v
	}
	if v := os.Getenv("ACCESS_TOKEN_VALIDITY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			config.AccessTokenValidityDuration = d
		}
	}
	if v := os.Getenv("REFRESH_TOKEN_VALIDITY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			config.RefreshTokenValidityDuration = d
		}
	}
	if v := os.Getenv("TOKEN_SWEEP_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			config.TokenSweepInterval = d
		}
	}
}
