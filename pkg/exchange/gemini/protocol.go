package gemini

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"resty.dev/v3"

	"github.com/crypto-terminal/crypto-quicktake-lambda/pkg/core"
)

// ProductionURL is the Gemini REST API base URL.
const ProductionURL = "https://api.gemini.com"

const notionalBalancesPath = "/v1/notionalbalances/usd"

// Protocol implements core.Protocol for the Gemini API: request building,
// payload-based HMAC-SHA384 signing, and response parsing.
type Protocol struct {
	// now is swapped in tests to fix the nonce.
	now func() time.Time
}

// NewProtocol creates a new Gemini protocol instance.
func NewProtocol() *Protocol {
	return &Protocol{now: time.Now}
}

// Name returns the exchange identifier "gemini".
func (p *Protocol) Name() string {
	return "gemini"
}

// BaseURL returns the Gemini API base URL.
func (p *Protocol) BaseURL() string {
	return ProductionURL
}

// SupportedOperations returns the operations this protocol supports.
func (p *Protocol) SupportedOperations() []core.Operation {
	return []core.Operation{
		core.OpGetNotionalBalances,
	}
}

// BuildRequest constructs the HTTP request for the given operation.
func (p *Protocol) BuildRequest(_ context.Context, op core.Operation, _ core.Params) (*core.Request, error) {
	switch op {
	case core.OpGetNotionalBalances:
		req := core.NewRequest(http.MethodPost, notionalBalancesPath)
		req.SetRequireAuth(true)
		return req, nil
	default:
		return nil, fmt.Errorf("unsupported operation: %s", op)
	}
}

// signedPayload is the canonical Gemini request payload. Field order matters:
// the exchange verifies the signature over the exact base64 text, so the
// struct is marshaled as {"request":...,"nonce":...} and never reordered.
type signedPayload struct {
	Request string `json:"request"`
	Nonce   string `json:"nonce"`
}

// SignRequest signs the request the way Gemini expects: a base64-encoded JSON
// payload of the target path and a nonce, an HMAC-SHA384 hex digest of that
// base64 text, and the three X-GEMINI-* headers plus fixed content headers.
// The request body stays empty; the payload rides in the header.
func (p *Protocol) SignRequest(req *core.Request, creds core.Credentials) error {
	if creds.APISecret == "" {
		return fmt.Errorf("secret key is required for signing")
	}

	payload, err := sonic.Marshal(signedPayload{
		Request: req.Path,
		Nonce:   p.nonce(),
	})
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	b64 := base64.StdEncoding.EncodeToString(payload)

	req.SetHeader("Content-Type", "text/plain")
	req.SetHeader("Content-Length", "0")
	req.SetHeader("Cache-Control", "no-cache")
	req.SetHeader("X-GEMINI-APIKEY", creds.APIKey)
	req.SetHeader("X-GEMINI-PAYLOAD", b64)
	req.SetHeader("X-GEMINI-SIGNATURE", signPayload(b64, creds.APISecret))

	return nil
}

// nonce returns the wall clock floored to the second, in milliseconds. The
// coarse grain keeps the value monotonic across retries within a session
// while still satisfying Gemini's strictly-increasing requirement between
// seconds.
func (p *Protocol) nonce() string {
	return strconv.FormatInt(p.now().Unix()*1000, 10)
}

// ParseResponse deserializes a Gemini response into []geminiNotionalBalance.
// Error responses map onto the core error taxonomy.
func (p *Protocol) ParseResponse(op core.Operation, resp *resty.Response) (any, error) {
	if resp == nil {
		return nil, fmt.Errorf("nil response")
	}

	if resp.StatusCode() >= 400 {
		return nil, p.parseError(resp)
	}

	switch op {
	case core.OpGetNotionalBalances:
		var rows []geminiNotionalBalance
		if err := sonic.Unmarshal(resp.Bytes(), &rows); err != nil {
			return nil, fmt.Errorf("unmarshal notional balances: %w", err)
		}
		return rows, nil

	default:
		return nil, fmt.Errorf("unsupported operation: %s", op)
	}
}

func (p *Protocol) parseError(resp *resty.Response) error {
	var apiErr geminiAPIError
	if err := sonic.Unmarshal(resp.Bytes(), &apiErr); err == nil && apiErr.Reason != "" {
		return core.NewExchangeErrorWithCode(
			p.Name(),
			mapGeminiReason(apiErr.Reason, resp.StatusCode()),
			resp.StatusCode(),
			apiErr.Reason,
			apiErr.Message,
		)
	}
	return core.NewExchangeError(
		p.Name(),
		core.ErrorTypeServerError,
		resp.StatusCode(),
		fmt.Sprintf("HTTP error: %s", resp.Status()),
	)
}

func signPayload(b64, secret string) string {
	h := hmac.New(sha512.New384, []byte(secret))
	h.Write([]byte(b64))
	return hex.EncodeToString(h.Sum(nil))
}

type geminiAPIError struct {
	Result  string `json:"result"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

func mapGeminiReason(reason string, status int) core.ErrorType {
	switch reason {
	case "InvalidApiKey", "InvalidSignature", "InvalidNonce", "MissingApikeyHeader",
		"MissingPayloadHeader", "MissingSignatureHeader", "InvalidPayload":
		return core.ErrorTypeAuthentication
	case "RateLimited":
		return core.ErrorTypeRateLimit
	case "Maintenance", "System":
		return core.ErrorTypeServerError
	}
	switch {
	case status == http.StatusTooManyRequests:
		return core.ErrorTypeRateLimit
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return core.ErrorTypeAuthentication
	case status >= 500:
		return core.ErrorTypeServerError
	default:
		return core.ErrorTypeBadRequest
	}
}
