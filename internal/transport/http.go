package transport

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/net/http2"
)

// DefaultHTTPClient returns a client that negotiates HTTP/2 over TLS and
// falls back to HTTP/1.1 for plain http:// URLs.
func DefaultHTTPClient() *http.Client {
	base := http.DefaultTransport.(*http.Transport).Clone()
	// Fails only when h2 is already registered on the cloned transport.
	_, _ = http2.ConfigureTransports(base)
	return &http.Client{Transport: base, Timeout: 5 * time.Minute}
}

type HTTPTransferOption func(*HTTPTransfer)

func HTTPWithClient(c *http.Client) HTTPTransferOption {
	return func(t *HTTPTransfer) {
		t.client = c
	}
}

type HTTPTransfer struct {
	client *http.Client
}

func DefaultHTTPTransfer() *HTTPTransfer {
	return &HTTPTransfer{
		client: DefaultHTTPClient(),
	}
}

func NewHTTPTransfer(opts ...HTTPTransferOption) *HTTPTransfer {
	ht := DefaultHTTPTransfer()

	for _, opt := range opts {
		opt(ht)
	}

	return ht
}

type HTTPRequestOption func(*http.Request)

func HTTPRequestHeaders(h map[string]string) HTTPRequestOption {
	return func(req *http.Request) {
		for k, v := range h {
			req.Header.Set(k, v)
		}
	}
}

// HTTPResponseCallback consumes a response. The callback owns resp.Body.
type HTTPResponseCallback func(*http.Response) error

func (ht *HTTPTransfer) Do(
	ctx context.Context,
	method, url string,
	respCb HTTPResponseCallback,
	reqOpts ...HTTPRequestOption,
) error {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return err
	}

	for _, opt := range reqOpts {
		opt(req)
	}

	resp, err := ht.client.Do(req)
	if err != nil {
		return err
	}

	return respCb(resp)
}

func (ht *HTTPTransfer) Get(ctx context.Context, url string, respCb HTTPResponseCallback, reqOpts ...HTTPRequestOption) error {
	return ht.Do(ctx, http.MethodGet, url, respCb, reqOpts...)
}

// StatusError is returned for responses outside the 2xx range.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status from %s: %s", e.URL, e.Status)
}

// CheckStatus returns a *StatusError unless resp has a 2xx status.
func CheckStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	return &StatusError{
		URL:        resp.Request.URL.String(),
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
	}
}
