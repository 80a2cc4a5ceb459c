// Package handler exposes the balance snapshot endpoints. One BalanceHandler
// is instantiated per exchange; all of them share the same envelope contract:
// every response is JSON with CORS headers, validation failures are 400, and
// every post-validation failure collapses to a 200 generic-error envelope so
// existing callers can keep keying off the envelope instead of the HTTP
// status.
package handler

import (
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/crypto-terminal/crypto-quicktake-lambda/pkg/core"
	"github.com/crypto-terminal/crypto-quicktake-lambda/pkg/exchange"
)

// balanceRequest is the inbound body: {"pair":{"apiKey","apiSecret","ex"}}.
type balanceRequest struct {
	Pair *core.Credentials `json:"pair" validate:"required"`
}

// BalanceHandler serves one exchange's snapshot endpoint.
type BalanceHandler struct {
	ex       exchange.Exchange
	logger   zerolog.Logger
	validate *validator.Validate
}

// NewBalanceHandler creates a handler bound to the given exchange adapter.
func NewBalanceHandler(ex exchange.Exchange, logger zerolog.Logger) *BalanceHandler {
	return &BalanceHandler{
		ex:       ex,
		logger:   logger,
		validate: validator.New(),
	}
}

// ServeHTTP implements http.Handler: validate method and credential fields,
// fetch the snapshot, respond with the envelope.
func (h *BalanceHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeEnvelope(w, http.StatusBadRequest, core.FailEnvelope(core.MsgMethodNotAllowed))
		return
	}

	var req balanceRequest
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
		// A body that does not parse is indistinguishable from any other
		// runtime failure to the caller: generic envelope, status 200.
		h.logger.Warn().Str("exchange", h.ex.Name()).Err(err).Msg("request body decode failed")
		writeEnvelope(w, http.StatusOK, core.FailEnvelope(core.MsgError))
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		writeEnvelope(w, http.StatusBadRequest, core.FailEnvelope(core.MsgFieldMissing))
		return
	}

	h.respond(w, r, *req.Pair)
}

// respond is the catch-all boundary around the post-validation pipeline.
// Errors and panics alike become the generic 200 failure envelope; nothing
// about the creds or the failure cause reaches the response body.
func (h *BalanceHandler) respond(w http.ResponseWriter, r *http.Request, creds core.Credentials) {
	defer func() {
		if rec := recover(); rec != nil {
			h.logger.Error().Str("exchange", h.ex.Name()).Any("panic", rec).Msg("snapshot panicked")
			writeEnvelope(w, http.StatusOK, core.FailEnvelope(core.MsgError))
		}
	}()

	snap, err := h.ex.Snapshot(r.Context(), creds)
	if err != nil {
		h.logger.Warn().Str("exchange", h.ex.Name()).Err(err).Msg("snapshot failed")
		writeEnvelope(w, http.StatusOK, core.FailEnvelope(core.MsgError))
		return
	}

	h.logger.Info().
		Str("exchange", h.ex.Name()).
		Int("positions", len(snap.Balances)).
		Msg("snapshot served")
	writeEnvelope(w, http.StatusOK, core.OKEnvelope(snap))
}

func writeEnvelope(w http.ResponseWriter, status int, env core.Envelope) {
	h := w.Header()
	h.Set("Content-Type", "application/json")
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Allow-Headers", "Content-Type")
	h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE")

	body, err := sonic.Marshal(env)
	if err != nil {
		// Marshal of the envelope cannot realistically fail; fall back to a
		// hand-built generic failure rather than a half-written body.
		status = http.StatusOK
		body = []byte(`{"success":false,"message":"error","data":null}`)
	}

	w.WriteHeader(status)
	w.Write(body)
}
