package commerce

import "time"

// Config represents the configuration for the commerce API client
type Config struct {
	// BaseURL is the upstream commerce API base URL
	BaseURL string

	// APIKey authenticates this storefront against the upstream API
	APIKey string

	// Timeout bounds every request so a hung upstream call surfaces an
	// error instead of leaving the caller waiting forever
	Timeout time.Duration
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return ErrInvalidRequest
	}
	return nil
}
