package convert

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Service converts a process description into diagram markup.
type Service interface {
	Convert(ctx context.Context, req Request) (*Response, error)
}

// Client calls a remote conversion service over HTTP. It makes exactly one
// attempt per call.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *zap.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient overrides the underlying http.Client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithClientLogger sets the client's logger.
func WithClientLogger(logger *zap.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a client for the service at endpoint, e.g.
// "http://localhost:5000/convert".
func NewClient(endpoint string, opts ...ClientOption) *Client {
	c := &Client{
		endpoint:   strings.TrimRight(endpoint, "/"),
		httpClient: &http.Client{},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the service URL.
func (c *Client) Endpoint() string { return c.endpoint }

// Convert posts req and interprets the reply. Non-success statuses become a
// *ServiceError; network and decode failures become a *TransportError.
func (c *Client) Convert(ctx context.Context, req Request) (*Response, error) {
	startTime := time.Now()

	reqBody, err := json.Marshal(req)
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("marshal request: %w", err)}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("create request: %w", err)}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	c.logger.Debug("sending conversion request",
		zap.String("url", c.endpoint),
		zap.Int("body_size", len(reqBody)),
	)

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("do request: %w", err)}
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("read response: %w", err)}
	}

	c.logger.Debug("received conversion response",
		zap.Int("status", httpResp.StatusCode),
		zap.Int("body_size", len(body)),
		zap.Duration("duration", time.Since(startTime)),
	)

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		var errResp ErrorResponse
		// An undecodable error body still yields a ServiceError, just without a message.
		if err := json.Unmarshal(body, &errResp); err != nil {
			c.logger.Debug("error body is not json", zap.Error(err))
		}
		return nil, &ServiceError{Status: httpResp.StatusCode, Message: errResp.Error}
	}

	var resp Response
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &TransportError{Err: fmt.Errorf("unmarshal response: %w", err)}
	}
	if resp.BPMN == "" {
		return nil, &TransportError{Err: ErrMalformedResponse}
	}

	return &resp, nil
}

// IsTimeout reports whether err came from an expired request deadline.
func IsTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}
