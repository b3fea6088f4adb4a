// Package api is the HTTP client for the FinApp backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"
)

const (
	DefaultBaseURL = "http://localhost:3000"
	GetTimeout     = 30 * time.Second
	PostTimeout    = 60 * time.Second

	// maxBodyBytes bounds how much of a backend response is buffered.
	maxBodyBytes = 16 << 20
)

// File is a single file sent as the only multipart part of a POST.
type File struct {
	Field       string
	Name        string
	ContentType string
	Data        []byte
}

// Client talks to the backend at BaseURL.
type Client struct {
	baseURL     string
	http        *http.Client
	getTimeout  time.Duration
	postTimeout time.Duration
	logger      *slog.Logger
	probes      singleflight.Group
}

type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeouts overrides the GET and POST timeouts.
func WithTimeouts(get, post time.Duration) Option {
	return func(c *Client) {
		if get > 0 {
			c.getTimeout = get
		}
		if post > 0 {
			c.postTimeout = post
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a client for baseURL. An empty baseURL selects DefaultBaseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:     baseURL,
		http:        &http.Client{},
		getTimeout:  GetTimeout,
		postTimeout: PostTimeout,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the backend base URL shown in the sidebar.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get issues a GET with no body.
func (c *Client) Get(ctx context.Context, path string) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, c.getTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(path), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	return c.do(req)
}

// Post sends file as a single multipart part when file is non-nil, ignoring
// payload. Otherwise payload is sent as JSON; a nil payload is sent as {}.
func (c *Client) Post(ctx context.Context, path string, payload any, file *File) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, c.postTimeout)
	defer cancel()

	var (
		body        []byte
		contentType string
		err         error
	)
	if file != nil {
		body, contentType, err = encodeMultipart(file)
	} else {
		body, contentType, err = encodeJSON(payload)
	}
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(path), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	return c.do(req)
}

func (c *Client) url(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL + path
}

func (c *Client) do(req *http.Request) (*Response, error) {
	start := time.Now()
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("Backend request failed",
			"component", "api_client",
			"method", req.Method,
			"endpoint", req.URL.Path,
			"duration", time.Since(start),
			"error", err)
		return nil, &TransportError{Method: req.Method, URL: req.URL.String(), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &TransportError{Method: req.Method, URL: req.URL.String(), Err: err}
	}

	c.logger.Debug("Backend request completed",
		"component", "api_client",
		"method", req.Method,
		"endpoint", req.URL.Path,
		"status", resp.StatusCode,
		"duration", time.Since(start))

	return &Response{StatusCode: resp.StatusCode, Body: body}, nil
}

func encodeJSON(payload any) ([]byte, string, error) {
	if payload == nil {
		payload = struct{}{}
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, "", fmt.Errorf("encode payload: %w", err)
	}
	return b, "application/json", nil
}

func encodeMultipart(f *File) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	ct := f.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, f.Field, f.Name))
	h.Set("Content-Type", ct)

	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", fmt.Errorf("create multipart part: %w", err)
	}
	if _, err := part.Write(f.Data); err != nil {
		return nil, "", fmt.Errorf("write multipart part: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}
