package core

import (
	"context"

	"resty.dev/v3"
)

// Protocol defines the interface for exchange-specific wire handling: request
// building, signing, and response parsing. Each exchange defines its own
// canonical string to sign; any deviation in field order, encoding, or casing
// invalidates the signature, so the canonical forms live here and nowhere
// else.
type Protocol interface {
	// Name returns the exchange identifier (e.g. "binanceus", "gemini").
	Name() string

	// BaseURL returns the production API base URL.
	BaseURL() string

	// BuildRequest constructs an HTTP request for the specified operation.
	BuildRequest(ctx context.Context, op Operation, params Params) (*Request, error)

	// SignRequest mutates the request with the exchange's authentication
	// artifact derived from creds.
	SignRequest(req *Request, creds Credentials) error

	// ParseResponse deserializes the HTTP response and normalizes it to
	// canonical types. The op parameter selects the expected payload shape.
	ParseResponse(op Operation, resp *resty.Response) (any, error)

	// SupportedOperations returns the list of operations this protocol supports.
	SupportedOperations() []Operation
}
