package binanceus

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/rs/zerolog"
	"resty.dev/v3"

	httpClient "github.com/crypto-terminal/crypto-quicktake-lambda/internal/http"
	"github.com/crypto-terminal/crypto-quicktake-lambda/internal/ratelimit"
	"github.com/crypto-terminal/crypto-quicktake-lambda/pkg/core"
	"github.com/crypto-terminal/crypto-quicktake-lambda/pkg/exchange"
)

// Exchange implements exchange.Exchange for Binance.US. It holds no account
// state; credentials arrive with every Snapshot call.
type Exchange struct {
	config      *core.Config
	httpClient  *httpClient.Client
	rateLimiter *ratelimit.RateLimiter
	logger      zerolog.Logger
	normalizer  *Normalizer
	protocol    *Protocol
}

// Option is a functional option for configuring the Exchange.
type Option func(*Options)

// Options holds configuration options for the Exchange.
type Options struct {
	Logger zerolog.Logger
}

// WithLogger returns an option that sets the logger for the adapter.
func WithLogger(l zerolog.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// New creates a Binance.US adapter from the given configuration.
func New(config *core.Config, opts ...Option) (*Exchange, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	options := &Options{
		Logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(options)
	}

	protocol := NewProtocol()

	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = protocol.BaseURL()
	}

	client, err := httpClient.NewClient(&httpClient.Config{
		BaseURL:      baseURL,
		Timeout:      config.Timeout,
		MaxRetries:   config.MaxRetries,
		RetryWaitMin: config.RetryWaitMin,
		RetryWaitMax: config.RetryWaitMax,
	}, options.Logger)
	if err != nil {
		return nil, fmt.Errorf("create http client: %w", err)
	}

	var rl *ratelimit.RateLimiter
	if config.RateLimitRequests > 0 {
		rl = ratelimit.New(config.RateLimitRequests, config.RateLimitPeriod)
	}

	return &Exchange{
		config:      config,
		httpClient:  client,
		rateLimiter: rl,
		logger:      options.Logger,
		normalizer:  NewNormalizer(),
		protocol:    protocol,
	}, nil
}

// Name returns the exchange identifier "binanceus".
func (e *Exchange) Name() string {
	return e.protocol.Name()
}

// Close releases the underlying HTTP client.
func (e *Exchange) Close() error {
	if e.httpClient != nil {
		return e.httpClient.Close()
	}
	return nil
}

// Snapshot fetches the account balances and the public price ticker
// concurrently, then joins them into a normalized snapshot. Both reads must
// succeed; failure of either aborts the whole operation with no partial
// result.
func (e *Exchange) Snapshot(ctx context.Context, creds core.Credentials) (*core.AccountSnapshot, error) {
	if creds.APIKey == "" || creds.APISecret == "" {
		return nil, core.ErrNoCredentials
	}

	var (
		wg         sync.WaitGroup
		account    *binanceAccount
		accountErr error
		book       *core.PriceBook
		pricesErr  error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		account, accountErr = e.fetchAccount(ctx, creds)
	}()
	go func() {
		defer wg.Done()
		book, pricesErr = e.fetchPrices(ctx)
	}()
	wg.Wait()

	if accountErr != nil {
		return nil, fmt.Errorf("fetch account: %w", accountErr)
	}
	if pricesErr != nil {
		return nil, fmt.Errorf("fetch prices: %w", pricesErr)
	}

	snap, err := e.normalizer.NormalizeSnapshot(account, book)
	if err != nil {
		return nil, fmt.Errorf("normalize snapshot: %w", err)
	}

	e.logger.Debug().
		Int("positions", len(snap.Balances)).
		Int("quotes", book.Len()).
		Msg("snapshot normalized")

	return snap, nil
}

func (e *Exchange) fetchAccount(ctx context.Context, creds core.Credentials) (*binanceAccount, error) {
	req, err := e.protocol.BuildRequest(ctx, core.OpGetAccount, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := e.do(ctx, req, &creds)
	if err != nil {
		return nil, err
	}

	result, err := e.protocol.ParseResponse(core.OpGetAccount, resp)
	if err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	account, ok := result.(*binanceAccount)
	if !ok {
		return nil, fmt.Errorf("unexpected response type: %T", result)
	}
	return account, nil
}

func (e *Exchange) fetchPrices(ctx context.Context) (*core.PriceBook, error) {
	req, err := e.protocol.BuildRequest(ctx, core.OpGetPrices, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := e.do(ctx, req, nil)
	if err != nil {
		return nil, err
	}

	result, err := e.protocol.ParseResponse(core.OpGetPrices, resp)
	if err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	book, ok := result.(*core.PriceBook)
	if !ok {
		return nil, fmt.Errorf("unexpected response type: %T", result)
	}
	return book, nil
}

func (e *Exchange) do(ctx context.Context, req *core.Request, creds *core.Credentials) (*resty.Response, error) {
	if req.RequireAuth {
		if creds == nil {
			return nil, core.ErrNoCredentials
		}
		if err := e.protocol.SignRequest(req, *creds); err != nil {
			return nil, fmt.Errorf("sign request: %w", err)
		}
	}

	if e.rateLimiter != nil {
		if err := e.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}

	restyReq := e.httpClient.Request().SetContext(ctx)
	for k, v := range req.Headers {
		restyReq.SetHeader(k, v)
	}
	for k, v := range req.Query {
		restyReq.SetQueryParam(k, fmt.Sprint(v))
	}

	switch req.Method {
	case http.MethodGet:
		return restyReq.Get(req.Path)
	default:
		return nil, fmt.Errorf("unsupported method: %s", req.Method)
	}
}

// Register creates a Binance.US adapter and registers it with the container
// under its protocol name.
func Register(container *exchange.Container, config *core.Config, opts ...Option) error {
	ex, err := New(config, opts...)
	if err != nil {
		return fmt.Errorf("create binanceus exchange: %w", err)
	}
	container.Register(ex.Name(), ex)
	return nil
}
