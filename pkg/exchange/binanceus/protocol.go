package binanceus

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"resty.dev/v3"

	"github.com/crypto-terminal/crypto-quicktake-lambda/pkg/core"
)

// ProductionURL is the Binance.US REST API base URL.
const ProductionURL = "https://api.binance.us"

const (
	accountPath = "/api/v3/account"
	pricesPath  = "/api/v3/ticker/price"
)

// Protocol implements core.Protocol for the Binance.US API: request building,
// HMAC-SHA256 query signing, and response parsing.
type Protocol struct {
	// now is swapped in tests to fix the signed timestamp.
	now func() time.Time
}

// NewProtocol creates a new Binance.US protocol instance.
func NewProtocol() *Protocol {
	return &Protocol{now: time.Now}
}

// Name returns the exchange identifier "binanceus".
func (p *Protocol) Name() string {
	return "binanceus"
}

// BaseURL returns the Binance.US API base URL.
func (p *Protocol) BaseURL() string {
	return ProductionURL
}

// SupportedOperations returns the operations this protocol supports.
func (p *Protocol) SupportedOperations() []core.Operation {
	return []core.Operation{
		core.OpGetAccount,
		core.OpGetPrices,
	}
}

// BuildRequest constructs the HTTP request for the given operation.
func (p *Protocol) BuildRequest(_ context.Context, op core.Operation, _ core.Params) (*core.Request, error) {
	switch op {
	case core.OpGetAccount:
		req := core.NewRequest(http.MethodGet, accountPath)
		req.SetRequireAuth(true)
		return req, nil
	case core.OpGetPrices:
		return core.NewRequest(http.MethodGet, pricesPath), nil
	default:
		return nil, fmt.Errorf("unsupported operation: %s", op)
	}
}

// SignRequest signs the request the way Binance.US expects: an HMAC-SHA256
// hex digest of the URL-encoded query string `timestamp=<ms>`, appended as
// the `signature` parameter. The API key travels in the X-MBX-APIKEY header
// and is never part of the signed payload. The signed string must match the
// sent query byte for byte, so no other parameter is added.
func (p *Protocol) SignRequest(req *core.Request, creds core.Credentials) error {
	if creds.APISecret == "" {
		return fmt.Errorf("secret key is required for signing")
	}

	ts := strconv.FormatInt(p.now().UnixMilli(), 10)
	query := url.Values{"timestamp": {ts}}.Encode()

	req.SetQuery("timestamp", ts)
	req.SetQuery("signature", signQuery(query, creds.APISecret))
	req.SetHeader("X-MBX-APIKEY", creds.APIKey)

	return nil
}

// ParseResponse deserializes a Binance.US response into the intermediate type
// for the operation: *binanceAccount for OpGetAccount, *core.PriceBook for
// OpGetPrices. Error responses map onto the core error taxonomy.
func (p *Protocol) ParseResponse(op core.Operation, resp *resty.Response) (any, error) {
	if resp == nil {
		return nil, fmt.Errorf("nil response")
	}

	if resp.StatusCode() >= 400 {
		return nil, p.parseError(resp)
	}

	body := resp.Bytes()

	switch op {
	case core.OpGetAccount:
		var account binanceAccount
		if err := sonic.Unmarshal(body, &account); err != nil {
			return nil, fmt.Errorf("unmarshal account: %w", err)
		}
		return &account, nil

	case core.OpGetPrices:
		var quotes []core.PriceQuote
		if err := sonic.Unmarshal(body, &quotes); err != nil {
			return nil, fmt.Errorf("unmarshal prices: %w", err)
		}
		return core.NewPriceBook(quotes), nil

	default:
		return nil, fmt.Errorf("unsupported operation: %s", op)
	}
}

func (p *Protocol) parseError(resp *resty.Response) error {
	var apiErr binanceAPIError
	if err := sonic.Unmarshal(resp.Bytes(), &apiErr); err == nil && apiErr.Code != 0 {
		return core.NewExchangeErrorWithCode(
			p.Name(),
			mapBinanceErrorCode(apiErr.Code, resp.StatusCode()),
			resp.StatusCode(),
			strconv.Itoa(apiErr.Code),
			apiErr.Msg,
		)
	}
	return core.NewExchangeError(
		p.Name(),
		core.ErrorTypeServerError,
		resp.StatusCode(),
		fmt.Sprintf("HTTP error: %s", resp.Status()),
	)
}

func signQuery(query, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(query))
	return hex.EncodeToString(h.Sum(nil))
}

type binanceAPIError struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

func mapBinanceErrorCode(code, status int) core.ErrorType {
	switch code {
	case -1015:
		return core.ErrorTypeRateLimit
	case -1022, -2014, -2015:
		return core.ErrorTypeAuthentication
	case -1100, -1101, -1102, -1103, -1104, -1105:
		return core.ErrorTypeBadRequest
	}
	switch {
	case status == http.StatusTooManyRequests:
		return core.ErrorTypeRateLimit
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return core.ErrorTypeAuthentication
	case status >= 500:
		return core.ErrorTypeServerError
	default:
		return core.ErrorTypeUnknown
	}
}
