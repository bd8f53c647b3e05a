// Package client talks to the resume analysis backend over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/amishk599/resumehub/internal/model"
)

// DefaultBaseURL is where the backend listens when run locally.
const DefaultBaseURL = "http://localhost:5001"

var (
	_ model.ResumeAnalyzer = (*Client)(nil)
	_ model.ResumeImprover = (*Client)(nil)
)

// Client calls the backend's upload, improve, health and formats endpoints.
// Requests are never retried.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// New returns a client for baseURL. timeout bounds each request; zero means no limit.
func New(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return NewWithHTTPClient(baseURL, &http.Client{Timeout: timeout}, logger)
}

// NewWithHTTPClient returns a client that sends requests through httpClient.
func NewWithHTTPClient(baseURL string, httpClient *http.Client, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}
}

// uploadResponse is the body of POST /upload-resume.
type uploadResponse struct {
	Success  bool   `json:"success"`
	Filename string `json:"filename"`
	Feedback string `json:"feedback"`
	Error    string `json:"error"`
}

// improveResponse is the body of POST /generate-improved-resume.
type improveResponse struct {
	Success        bool   `json:"success"`
	ImprovedResume string `json:"improved_resume"`
	Error          string `json:"error"`
}

// Health is the body of GET /health.
type Health struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Formats is the body of GET /supported-formats.
type Formats struct {
	Formats   []string `json:"formats"`
	MaxSizeMB float64  `json:"max_size_mb"`
}

// UploadResume posts the file at path for analysis and returns the feedback.
func (c *Client) UploadResume(ctx context.Context, path string) (model.Analysis, error) {
	var out uploadResponse
	status, err := c.postFile(ctx, "/upload-resume", path, nil, &out)
	if err != nil {
		return model.Analysis{}, fmt.Errorf("upload %s: %w", filepath.Base(path), err)
	}
	if !out.Success {
		return model.Analysis{}, &model.APIError{StatusCode: status, Message: out.Error}
	}
	c.logger.Debug("resume analyzed", "file", filepath.Base(path), "stored_as", out.Filename, "feedback_len", len(out.Feedback))
	return model.Analysis{Filename: out.Filename, Feedback: out.Feedback}, nil
}

// GenerateImprovedResume posts the file together with its feedback and returns
// the rewritten resume text.
func (c *Client) GenerateImprovedResume(ctx context.Context, path, feedback string) (string, error) {
	var out improveResponse
	status, err := c.postFile(ctx, "/generate-improved-resume", path, map[string]string{"feedback": feedback}, &out)
	if err != nil {
		return "", fmt.Errorf("improve %s: %w", filepath.Base(path), err)
	}
	if !out.Success {
		return "", &model.APIError{StatusCode: status, Message: out.Error}
	}
	return out.ImprovedResume, nil
}

// Health reports the backend's health.
func (c *Client) Health(ctx context.Context) (Health, error) {
	var h Health
	if err := c.getJSON(ctx, "/health", &h); err != nil {
		return Health{}, fmt.Errorf("health check: %w", err)
	}
	return h, nil
}

// SupportedFormats returns the backend's accepted extensions and size limit.
func (c *Client) SupportedFormats(ctx context.Context) (Formats, error) {
	var f Formats
	if err := c.getJSON(ctx, "/supported-formats", &f); err != nil {
		return Formats{}, fmt.Errorf("supported formats: %w", err)
	}
	return f, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := decode(resp, out); err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return &model.HTTPError{StatusCode: resp.StatusCode}
	}
	return nil
}

// postFile sends a multipart form with the file under "file" plus fields, and
// decodes the JSON reply into out whatever the status code.
func (c *Client) postFile(ctx context.Context, endpoint, path string, fields map[string]string, out any) (int, error) {
	body, contentType, err := multipartBody(path, fields)
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, body)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	c.logger.Debug("posting file", "endpoint", endpoint, "file", filepath.Base(path))
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	return resp.StatusCode, decode(resp, out)
}

func decode(resp *http.Response, out any) error {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &model.HTTPError{StatusCode: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &model.HTTPError{StatusCode: resp.StatusCode, Err: fmt.Errorf("decode body: %w", err)}
	}
	return nil
}

func multipartBody(path string, fields map[string]string) (*bytes.Buffer, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return nil, "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, "", fmt.Errorf("copy file: %w", err)
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", k, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close form: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}
