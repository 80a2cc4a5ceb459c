package core

import "maps"

// Params holds operation parameters keyed by name.
type Params map[string]any

// Request is an exchange-neutral description of one outbound HTTP call.
// Protocols build it, signers mutate its query and headers, and the adapter
// executes it against the exchange base URL.
type Request struct {
	Method      string            `json:"method"`
	Path        string            `json:"path"`
	Query       Params            `json:"query,omitempty"`
	Body        any               `json:"body,omitempty"`
	Headers     map[string]string `json:"headers,omitempty"`
	RequireAuth bool              `json:"require_auth"`
}

// NewRequest creates a Request with empty query and headers.
func NewRequest(method, path string) *Request {
	return &Request{
		Method:  method,
		Path:    path,
		Query:   make(Params),
		Headers: make(map[string]string),
	}
}

// SetQuery adds a query parameter and returns the request.
func (r *Request) SetQuery(key string, value any) *Request {
	if r.Query == nil {
		r.Query = make(Params)
	}
	r.Query[key] = value
	return r
}

// SetBody sets the request body and returns the request.
func (r *Request) SetBody(body any) *Request {
	r.Body = body
	return r
}

// SetHeader adds a header and returns the request.
func (r *Request) SetHeader(key, value string) *Request {
	if r.Headers == nil {
		r.Headers = make(map[string]string)
	}
	r.Headers[key] = value
	return r
}

// SetRequireAuth marks whether the request must be signed and returns it.
func (r *Request) SetRequireAuth(require bool) *Request {
	r.RequireAuth = require
	return r
}

// SetQueryParams merges params into the query and returns the request.
func (r *Request) SetQueryParams(params Params) *Request {
	if r.Query == nil {
		r.Query = make(Params)
	}
	maps.Copy(r.Query, params)
	return r
}
