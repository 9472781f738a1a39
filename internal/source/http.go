package source

import (
	"context"
	"io"
	"net/http"

	"techjobs/internal/api/request"
	"techjobs/internal/transport"
)

type HTTPSourceOption func(*HTTPSource)

func WithHTTPHeaders(headers map[string]string) HTTPSourceOption {
	return func(s *HTTPSource) {
		s.headers = headers
	}
}

// WithHTTPToken sends token as a Bearer credential.
func WithHTTPToken(token string) HTTPSourceOption {
	return func(s *HTTPSource) {
		s.token = token
	}
}

func WithHTTPTransfer(t *transport.HTTPTransfer) HTTPSourceOption {
	return func(s *HTTPSource) {
		s.transfer = t
	}
}

// HTTPSource downloads the dataset with a GET request
type HTTPSource struct {
	url      string
	headers  map[string]string
	token    string
	transfer *transport.HTTPTransfer
}

func NewHTTPSource(url string, opts ...HTTPSourceOption) *HTTPSource {
	s := &HTTPSource{url: url}
	for _, opt := range opts {
		opt(s)
	}
	if s.transfer == nil {
		s.transfer = transport.NewHTTPTransfer()
	}
	return s
}

func (s *HTTPSource) Open(ctx context.Context) (io.ReadCloser, Info, error) {
	var (
		body io.ReadCloser
		info Info
	)

	callback := func(resp *http.Response) error {
		if err := transport.CheckStatus(resp); err != nil {
			resp.Body.Close()
			return err
		}
		body = resp.Body
		info.Size = resp.ContentLength
		return nil
	}

	reqOpts := []transport.HTTPRequestOption{
		request.WithAccept("text/csv, text/plain, */*"),
		request.WithHeaders(s.headers),
		request.WithBearerToken(s.token),
	}

	if err := s.transfer.Get(ctx, s.url, callback, reqOpts...); err != nil {
		return nil, Info{}, err
	}
	return body, info, nil
}

func (s *HTTPSource) String() string {
	return s.url
}
