package core

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Credentials holds the per-request API credentials for an exchange. They are
// never persisted and never logged; a Credentials value lives only for the
// duration of one snapshot call.
type Credentials struct {
	// APIKey is the public API key identifier.
	APIKey string `json:"apiKey" validate:"required"`
	// APISecret is the private key used for signing requests.
	APISecret string `json:"apiSecret" validate:"required"`
	// Exchange is the client-supplied exchange identifier.
	Exchange string `json:"ex" validate:"required"`
}

// Config contains the per-exchange adapter settings: networking, optional
// outbound rate limiting, and logging.
type Config struct {
	Exchange string `json:"exchange" validate:"required"`
	// BaseURL overrides the protocol's production URL. Used by tests to point
	// an adapter at a local server; empty means the real exchange.
	BaseURL string `json:"base_url" validate:"omitempty,url"`

	// Timeout is the maximum duration for outbound HTTP requests.
	Timeout      time.Duration `json:"timeout" validate:"min=1ms"`
	MaxRetries   int           `json:"max_retries" validate:"min=0"`
	RetryWaitMin time.Duration `json:"retry_wait_min" validate:"min=0"`
	RetryWaitMax time.Duration `json:"retry_wait_max" validate:"min=0"`

	// RateLimitRequests > 0 enables an outbound limiter of that many requests
	// per RateLimitPeriod.
	RateLimitRequests int           `json:"rate_limit_requests" validate:"min=0"`
	RateLimitPeriod   time.Duration `json:"rate_limit_period" validate:"min=0"`

	LogLevel string `json:"log_level" validate:"omitempty,oneof=debug info warn error"`
}

// DefaultConfig returns a Config for the given exchange with a 10s timeout
// and no retries or rate limiting, matching the one-shot request contract.
func DefaultConfig(exchange string) *Config {
	return &Config{
		Exchange: exchange,
		Timeout:  10 * time.Second,
		LogLevel: "info",
	}
}

var validate = validator.New()

// Validate checks the config against its struct tags.
func (c *Config) Validate() error {
	return validate.Struct(c)
}

// WithBaseURL overrides the exchange base URL and returns the config.
func (c *Config) WithBaseURL(u string) *Config {
	c.BaseURL = u
	return c
}

// WithTimeout sets the request timeout and returns the config.
func (c *Config) WithTimeout(timeout time.Duration) *Config {
	c.Timeout = timeout
	return c
}

// WithRateLimit sets outbound rate limiting and returns the config.
func (c *Config) WithRateLimit(requests int, period time.Duration) *Config {
	c.RateLimitRequests = requests
	c.RateLimitPeriod = period
	return c
}
