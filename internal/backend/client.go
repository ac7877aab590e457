package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mindslayer001/tracebug/internal/models"
)

const (
	snippetsPath = "/snippets"
	healthPath   = "/health/"

	// Bodies of failed responses are kept for logging only
	maxErrorBody = 4096
)

// HTTPError is returned for any non-2xx response
type HTTPError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *HTTPError) Error() string {
	text := http.StatusText(e.StatusCode)
	if text == "" {
		return fmt.Sprintf("Backend returned HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("Backend returned HTTP %d: %s", e.StatusCode, text)
}

// TransportError is returned when no response was obtained at all
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	if e.Err == nil || e.Err.Error() == "" {
		return "Error connecting to backend"
	}
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// DecodeError is returned when a 2xx body is not a valid analysis response
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid response from backend: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// HealthStatus is the body of the health endpoint
type HealthStatus struct {
	Message string `json:"message"`
}

// Client talks to the analysis backend
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a client for baseURL. A zero timeout leaves requests
// bounded only by the transport.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.Named("backend"),
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// SubmitSnippet posts code for analysis
func (c *Client) SubmitSnippet(ctx context.Context, code string) (*models.AnalysisResponse, error) {
	body, err := json.Marshal(models.SubmissionRequest{Code: code})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+snippetsPath, bytes.NewReader(body))
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	var resp models.AnalysisResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Health probes the backend health endpoint
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+healthPath, nil)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	var status HealthStatus
	if err := c.do(req, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

func (c *Client) do(req *http.Request, out interface{}) error {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("request failed",
			zap.String("method", req.Method),
			zap.String("url", req.URL.String()),
			zap.Error(err))
		return &TransportError{Err: unwrapURLError(err)}
	}
	defer resp.Body.Close()

	c.logger.Debug("response received",
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &HTTPError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(data),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &DecodeError{Err: err}
	}
	return nil
}

// unwrapURLError drops the "Post \"url\": " prefix net/http adds
func unwrapURLError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		return urlErr.Err
	}
	return err
}
