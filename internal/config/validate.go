package config

import "fmt"

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if c.Auth.AccessTokenTTL <= 0 {
		return fmt.Errorf("auth.access_token_ttl must be > 0")
	}
	if c.Auth.RefreshTokenTTL <= c.Auth.AccessTokenTTL {
		return fmt.Errorf("auth.refresh_token_ttl must exceed access_token_ttl")
	}

	if c.Trash.RetentionDays < 1 {
		return fmt.Errorf("trash.retention_days must be >= 1 (got %d)", c.Trash.RetentionDays)
	}

	if c.Server.RateLimit < 0 {
		return fmt.Errorf("server.rate_limit must be >= 0 (got %d)", c.Server.RateLimit)
	}

	// Gateway credentials are optional (payments disabled without them),
	// but a partial pair is a deployment mistake.
	if (c.Payment.KeyID == "") != (c.Payment.KeySecret == "") {
		return fmt.Errorf("payment.key_id and payment.key_secret must be set together")
	}

	return nil
}
