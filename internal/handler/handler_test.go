package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cockroachdb/apd/v3"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crypto-terminal/crypto-quicktake-lambda/pkg/core"
)

// stubExchange scripts Snapshot behavior per test.
type stubExchange struct {
	snapshot func(ctx context.Context, creds core.Credentials) (*core.AccountSnapshot, error)
}

func (s *stubExchange) Name() string { return "stub" }
func (s *stubExchange) Close() error { return nil }

func (s *stubExchange) Snapshot(ctx context.Context, creds core.Credentials) (*core.AccountSnapshot, error) {
	return s.snapshot(ctx, creds)
}

func mustDecimal(t *testing.T, s string) apd.Decimal {
	t.Helper()
	d, _, err := apd.NewFromString(s)
	require.NoError(t, err)
	return *d
}

func serve(t *testing.T, ex *stubExchange, method, body string) *httptest.ResponseRecorder {
	t.Helper()
	h := NewBalanceHandler(ex, zerolog.Nop())
	req := httptest.NewRequest(method, "/api/v1/stub/balances", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

const validBody = `{"pair":{"apiKey":"K","apiSecret":"S","ex":"stub"}}`

func TestServeHTTP_Success(t *testing.T) {
	ex := &stubExchange{
		snapshot: func(_ context.Context, creds core.Credentials) (*core.AccountSnapshot, error) {
			assert.Equal(t, "K", creds.APIKey)
			assert.Equal(t, "S", creds.APISecret)
			return &core.AccountSnapshot{
				Balances: []core.NormalizedBalance{{
					CoinSymbol: "BTC",
					CoinAmount: mustDecimal(t, "0.5"),
					FiatValue:  mustDecimal(t, "10000.00"),
					FiatSymbol: core.FiatUSD,
				}},
				Total: mustDecimal(t, "10000.00"),
			}, nil
		},
	}

	rec := serve(t, ex, http.MethodPost, validBody)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "Content-Type", rec.Header().Get("Access-Control-Allow-Headers"))
	assert.Equal(t, "GET, POST, PUT, DELETE", rec.Header().Get("Access-Control-Allow-Methods"))

	body := rec.Body.String()
	assert.Contains(t, body, `"success":true`)
	assert.Contains(t, body, `"message":"OK"`)
	assert.Contains(t, body, `"coinSymbol":"BTC"`)
	assert.Contains(t, body, `"totalBalance":"10000.00"`)
}

func TestServeHTTP_MethodNotAllowed(t *testing.T) {
	ex := &stubExchange{
		snapshot: func(context.Context, core.Credentials) (*core.AccountSnapshot, error) {
			t.Fatal("snapshot must not run for non-POST")
			return nil, nil
		},
	}

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		t.Run(method, func(t *testing.T) {
			rec := serve(t, ex, method, validBody)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.JSONEq(t,
				`{"success":false,"message":"Method Not supported","data":null}`,
				rec.Body.String())
		})
	}
}

func TestServeHTTP_FieldMissing(t *testing.T) {
	ex := &stubExchange{
		snapshot: func(context.Context, core.Credentials) (*core.AccountSnapshot, error) {
			t.Fatal("snapshot must not run for invalid credentials")
			return nil, nil
		},
	}

	tests := []struct {
		name string
		body string
	}{
		{"no pair", `{}`},
		{"null pair", `{"pair":null}`},
		{"empty pair", `{"pair":{}}`},
		{"missing secret", `{"pair":{"apiKey":"K","ex":"stub"}}`},
		{"missing key", `{"pair":{"apiSecret":"S","ex":"stub"}}`},
		{"missing exchange", `{"pair":{"apiKey":"K","apiSecret":"S"}}`},
		{"empty strings", `{"pair":{"apiKey":"","apiSecret":"","ex":""}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, ex, http.MethodPost, tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.JSONEq(t,
				`{"success":false,"message":"Field missing!","data":null}`,
				rec.Body.String())
		})
	}
}

func TestServeHTTP_MalformedBody(t *testing.T) {
	ex := &stubExchange{
		snapshot: func(context.Context, core.Credentials) (*core.AccountSnapshot, error) {
			t.Fatal("snapshot must not run for malformed body")
			return nil, nil
		},
	}

	rec := serve(t, ex, http.MethodPost, `{"pair":`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`{"success":false,"message":"error","data":null}`,
		rec.Body.String())
}

func TestServeHTTP_SnapshotError(t *testing.T) {
	ex := &stubExchange{
		snapshot: func(context.Context, core.Credentials) (*core.AccountSnapshot, error) {
			return nil, errors.New("upstream rejected signature for key K")
		},
	}

	rec := serve(t, ex, http.MethodPost, validBody)

	// Failure detail stays out of the body.
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`{"success":false,"message":"error","data":null}`,
		rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "signature")
}

func TestServeHTTP_SnapshotPanic(t *testing.T) {
	ex := &stubExchange{
		snapshot: func(context.Context, core.Credentials) (*core.AccountSnapshot, error) {
			panic("nil map write")
		},
	}

	rec := serve(t, ex, http.MethodPost, validBody)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`{"success":false,"message":"error","data":null}`,
		rec.Body.String())
}

func TestServeHTTP_EmptySnapshot(t *testing.T) {
	ex := &stubExchange{
		snapshot: func(context.Context, core.Credentials) (*core.AccountSnapshot, error) {
			total := mustDecimal(t, "0.00")
			return &core.AccountSnapshot{Balances: []core.NormalizedBalance{}, Total: total}, nil
		},
	}

	rec := serve(t, ex, http.MethodPost, validBody)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `"balances":[]`)
	assert.Contains(t, body, `"totalBalance":"0.00"`)
}
