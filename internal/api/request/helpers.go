package request

import (
	"net/http"

	"techjobs/internal/transport"
)

// WithHeaders creates a request option that sets multiple headers
func WithHeaders(headers map[string]string) transport.HTTPRequestOption {
	return transport.HTTPRequestHeaders(headers)
}

// WithBearerToken creates a request option that sets Bearer token authentication
func WithBearerToken(token string) transport.HTTPRequestOption {
	return func(req *http.Request) {
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
}

// WithAccept creates a request option that sets the Accept header
func WithAccept(contentType string) transport.HTTPRequestOption {
	return func(req *http.Request) {
		req.Header.Set("Accept", contentType)
	}
}

// WithQueryParam creates a request option that adds a query parameter.
// Empty values are skipped.
func WithQueryParam(key, value string) transport.HTTPRequestOption {
	return func(req *http.Request) {
		if value == "" {
			return
		}
		q := req.URL.Query()
		q.Add(key, value)
		req.URL.RawQuery = q.Encode()
	}
}
