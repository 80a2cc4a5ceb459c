package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExchangeError_Error(t *testing.T) {
	err := NewExchangeError("gemini", ErrorTypeServerError, 502, "bad gateway")
	assert.Equal(t, "[gemini] SERVER_ERROR (502): bad gateway", err.Error())
}

func TestExchangeError_Error_WithCode(t *testing.T) {
	err := NewExchangeErrorWithCode("binanceus", ErrorTypeAuthentication, 401, "-2015", "Invalid API-key")
	assert.Equal(t, "[binanceus] AUTHENTICATION (401/-2015): Invalid API-key", err.Error())
}

func TestIsAuthenticationError(t *testing.T) {
	err := NewExchangeError("binanceus", ErrorTypeAuthentication, 401, "denied")

	assert.True(t, IsAuthenticationError(err))
	assert.True(t, IsAuthenticationError(fmt.Errorf("fetch account: %w", err)))
	assert.False(t, IsAuthenticationError(errors.New("plain")))
	assert.False(t, IsAuthenticationError(NewExchangeError("binanceus", ErrorTypeRateLimit, 429, "slow down")))
}

func TestIsRateLimitError(t *testing.T) {
	err := NewExchangeError("gemini", ErrorTypeRateLimit, 429, "throttled")

	assert.True(t, IsRateLimitError(err))
	assert.False(t, IsRateLimitError(ErrNoCredentials))
}

func TestErrorType_String(t *testing.T) {
	assert.Equal(t, "UNKNOWN", ErrorTypeUnknown.String())
	assert.Equal(t, "AUTHENTICATION", ErrorTypeAuthentication.String())
	assert.Equal(t, "SERVER_ERROR", ErrorTypeServerError.String())
}
