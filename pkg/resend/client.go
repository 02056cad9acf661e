// Package resend is a minimal client for the Resend REST API covering the
// endpoints the blog needs: transactional sends, audience contacts, and
// audience broadcasts.
package resend

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

	"photoblog-backend/pkg/logger"

	"github.com/codeGROOVE-dev/retry"
)

const defaultBaseURL = "https://api.resend.com"

var (
	// ErrDuplicate reports that a contact with the same email already exists.
	ErrDuplicate = errors.New("resend: contact already exists")
	// ErrNotFound reports that the requested resource does not exist.
	ErrNotFound = errors.New("resend: not found")
)

type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
	logger  logger.Logger
}

func NewClient(apiKey string, log logger.Logger) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
		logger:  log,
	}
}

// NewClientWithBaseURL is used by tests to point the client at a local server.
func NewClientWithBaseURL(apiKey, baseURL string, log logger.Logger) *Client {
	c := NewClient(apiKey, log)
	c.baseURL = strings.TrimRight(baseURL, "/")
	return c
}

type SendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

type Contact struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	CreatedAt    string `json:"created_at"`
	Unsubscribed bool   `json:"unsubscribed"`
}

type ContactParams struct {
	Email        string `json:"email"`
	FirstName    string `json:"first_name,omitempty"`
	LastName     string `json:"last_name,omitempty"`
	Unsubscribed bool   `json:"unsubscribed"`
}

type idResponse struct {
	ID string `json:"id"`
}

type contactListResponse struct {
	Data []Contact `json:"data"`
}

type apiError struct {
	StatusCode int
	Name       string `json:"name"`
	Message    string `json:"message"`
}

func (e *apiError) Error() string {
	return fmt.Sprintf("resend: HTTP %d %s: %s", e.StatusCode, e.Name, e.Message)
}

// SendEmail sends one transactional email and returns the provider message id.
func (c *Client) SendEmail(ctx context.Context, req SendEmailRequest) (string, error) {
	var out idResponse
	if err := c.do(ctx, http.MethodPost, "/emails", req, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

// SendBroadcast creates a broadcast for the audience and triggers its send.
// The provider resolves the {{unsubscribe}} placeholder per recipient.
func (c *Client) SendBroadcast(ctx context.Context, audienceID, from, subject, html string) (string, error) {
	body := map[string]string{
		"audience_id": audienceID,
		"from":        from,
		"subject":     subject,
		"html":        html,
	}
	var created idResponse
	if err := c.do(ctx, http.MethodPost, "/broadcasts", body, &created); err != nil {
		return "", err
	}
	var sent idResponse
	if err := c.do(ctx, http.MethodPost, "/broadcasts/"+created.ID+"/send", struct{}{}, &sent); err != nil {
		return "", err
	}
	return created.ID, nil
}

// CreateContact adds a contact to the audience. Returns ErrDuplicate when the
// email is already present.
func (c *Client) CreateContact(ctx context.Context, audienceID string, params ContactParams) (string, error) {
	var out idResponse
	err := c.do(ctx, http.MethodPost, "/audiences/"+audienceID+"/contacts", params, &out)
	if err != nil {
		return "", err
	}
	return out.ID, nil
}

// UpdateContact sets the unsubscribed flag on an existing contact.
func (c *Client) UpdateContact(ctx context.Context, audienceID, contactID string, unsubscribed bool) error {
	body := map[string]bool{"unsubscribed": unsubscribed}
	return c.do(ctx, http.MethodPatch, "/audiences/"+audienceID+"/contacts/"+contactID, body, nil)
}

// RemoveContact deletes a contact from the audience.
func (c *Client) RemoveContact(ctx context.Context, audienceID, contactID string) error {
	return c.do(ctx, http.MethodDelete, "/audiences/"+audienceID+"/contacts/"+contactID, nil, nil)
}

// ListContacts returns every contact in the audience.
func (c *Client) ListContacts(ctx context.Context, audienceID string) ([]Contact, error) {
	var out contactListResponse
	if err := c.do(ctx, http.MethodGet, "/audiences/"+audienceID+"/contacts", nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		payload = data
	}

	return retry.Do(
		func() error {
			start := time.Now()

			var reader io.Reader
			if payload != nil {
				reader = bytes.NewReader(payload)
			}
			req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
			if err != nil {
				return fmt.Errorf("create request: %w", err)
			}
			req.Header.Set("Authorization", "Bearer "+c.apiKey)
			if payload != nil {
				req.Header.Set("Content-Type", "application/json")
			}

			resp, err := c.client.Do(req)
			if err != nil {
				c.logger.Warn("resend request failed, will retry", map[string]interface{}{
					"method": method,
					"path":   path,
					"error":  err.Error(),
				})
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode < 200 || resp.StatusCode >= 300 {
				return c.decodeError(resp)
			}

			c.logger.Debug("resend request completed", map[string]interface{}{
				"method":      method,
				"path":        path,
				"duration_ms": time.Since(start).Milliseconds(),
			})

			if out != nil {
				if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
					return fmt.Errorf("decode response: %w", err)
				}
			}
			return nil
		},
		retry.Attempts(3),
		retry.Delay(500*time.Millisecond),
		retry.MaxDelay(5*time.Second),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
		retry.RetryIf(isRetryable),
	)
}

func (c *Client) decodeError(resp *http.Response) error {
	apiErr := &apiError{StatusCode: resp.StatusCode}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	_ = json.Unmarshal(data, apiErr)

	switch {
	case resp.StatusCode == http.StatusConflict,
		strings.Contains(apiErr.Message, "already exists"):
		return fmt.Errorf("%w: %s", ErrDuplicate, apiErr.Message)
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, apiErr.Message)
	default:
		return apiErr
	}
}

func isRetryable(err error) bool {
	if errors.Is(err, ErrDuplicate) || errors.Is(err, ErrNotFound) {
		return false
	}
	var apiErr *apiError
	if errors.As(err, &apiErr) {
		// Client errors won't succeed on retry; rate limits and 5xx might.
		return apiErr.StatusCode == http.StatusTooManyRequests || apiErr.StatusCode >= 500
	}
	return true
}
