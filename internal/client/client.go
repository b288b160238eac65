package client

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

	"github.com/jobtracker/jobtracker-go/internal/model"
)

// APIError is a non-2xx answer from the API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// IsUnauthorized reports whether err is a 401 from the API.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// Client is a typed HTTP client for the job tracker API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a Client for the API at baseURL.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// Health returns the liveness text served at /health.
func (c *Client) Health(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return "", err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", &APIError{Status: resp.StatusCode, Message: strings.TrimSpace(string(body))}
	}
	return string(body), nil
}

// Register creates an account and returns the server's confirmation message.
func (c *Client) Register(ctx context.Context, email, password string) (string, error) {
	var resp model.MessageResponse
	err := c.do(ctx, http.MethodPost, "/register", "", model.CreateUserRequest{Email: email, Password: password}, &resp)
	return resp.Message, err
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var resp model.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/login", "", model.LoginRequest{Email: email, Password: password}, &resp); err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", errors.New("login response carried no token")
	}
	return resp.Token, nil
}

// ListJobs returns every job of the token's owner.
func (c *Client) ListJobs(ctx context.Context, token string) ([]model.Job, error) {
	var jobs []model.Job
	if err := c.do(ctx, http.MethodGet, "/jobs", token, nil, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// CreateJob stores a job and returns the server's record.
func (c *Client) CreateJob(ctx context.Context, token string, req model.CreateJobRequest) (model.Job, error) {
	var job model.Job
	err := c.do(ctx, http.MethodPost, "/jobs", token, req, &job)
	return job, err
}

// UpdateStatus changes a job's status and returns the server's record.
func (c *Client) UpdateStatus(ctx context.Context, token, id string, status model.Status) (model.Job, error) {
	var job model.Job
	err := c.do(ctx, http.MethodPatch, "/jobs/"+url.PathEscape(id), token, model.UpdateStatusRequest{Status: status}, &job)
	return job, err
}

// DeleteJob removes a job. Deleting a missing job succeeds.
func (c *Client) DeleteJob(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/jobs/"+url.PathEscape(id), token, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err := json.Unmarshal(data, &payload); err == nil {
		apiErr.Message = payload.Message
		if apiErr.Message == "" {
			apiErr.Message = payload.Error
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
