package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"techjobs/internal/api/request"
	"techjobs/internal/transport"
)

type ClientOption func(*Client)

func WithTransfer(t *transport.HTTPTransfer) ClientOption {
	return func(c *Client) {
		c.transfer = t
	}
}

// Client queries a running techjobs daemon
type Client struct {
	ServerURL string
	transfer  *transport.HTTPTransfer
}

func NewClient(serverURL string, opts ...ClientOption) *Client {
	if serverURL == "" {
		serverURL = "http://localhost:8080"
	}
	c := &Client{
		ServerURL: strings.TrimSuffix(serverURL, "/"),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.transfer == nil {
		client := transport.DefaultHTTPClient()
		client.Timeout = 30 * time.Second
		c.transfer = transport.NewHTTPTransfer(transport.HTTPWithClient(client))
	}
	return c
}

// getJSON issues a GET and decodes the JSON body into out.
func (c *Client) getJSON(ctx context.Context, path string, out any, opts ...transport.HTTPRequestOption) error {
	callback := func(resp *http.Response) error {
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			var body struct {
				Error string `json:"error"`
			}
			if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
				return fmt.Errorf("server returned %s: %s", resp.Status, body.Error)
			}
			return transport.CheckStatus(resp)
		}

		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
		return nil
	}

	opts = append([]transport.HTTPRequestOption{
		request.WithAccept("application/json"),
	}, opts...)

	return c.transfer.Get(ctx, c.ServerURL+path, callback, opts...)
}

// Columns lists the dataset's columns in header order
func (c *Client) Columns(ctx context.Context) ([]string, error) {
	var response struct {
		Columns []string `json:"columns"`
	}
	if err := c.getJSON(ctx, "/columns", &response); err != nil {
		return nil, fmt.Errorf("failed to list columns: %w", err)
	}
	return response.Columns, nil
}

// ListAll returns every job
func (c *Client) ListAll(ctx context.Context) ([]Job, error) {
	var response struct {
		Jobs []Job `json:"jobs"`
	}
	if err := c.getJSON(ctx, "/jobs", &response); err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	return response.Jobs, nil
}

// DistinctValues lists the values of one column without duplicates
func (c *Client) DistinctValues(ctx context.Context, column string) ([]string, error) {
	var response struct {
		Values []string `json:"values"`
	}
	path := "/columns/" + url.PathEscape(column) + "/values"
	if err := c.getJSON(ctx, path, &response); err != nil {
		return nil, fmt.Errorf("failed to list %s values: %w", column, err)
	}
	return response.Values, nil
}

// Search returns jobs whose column (or any column, for "all") contains term
func (c *Client) Search(ctx context.Context, column, term string) ([]Job, error) {
	var response struct {
		Jobs []Job `json:"jobs"`
	}
	err := c.getJSON(ctx, "/jobs/search", &response,
		request.WithQueryParam("column", column),
		request.WithQueryParam("q", term),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search jobs: %w", err)
	}
	return response.Jobs, nil
}
