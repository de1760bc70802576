package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/watchfire-io/wallboard/internal/exchange"
	"github.com/watchfire-io/wallboard/internal/wallboard"
)

// Client talks to the control API of a running wallboard.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a client for the instance listening on port.
func NewClient(host string, port int) *Client {
	if host == "" || host == "localhost" {
		host = "127.0.0.1"
	}
	return &Client{
		BaseURL: fmt.Sprintf("http://%s:%d", host, port),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Health checks that the instance answers.
func (c *Client) Health() error {
	return c.do(http.MethodGet, "/health", nil, nil)
}

// Agents returns the instance's current agents.
func (c *Client) Agents() (*AgentsResponse, error) {
	var resp AgentsResponse
	if err := c.do(http.MethodGet, "/agents", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SetStatus changes an agent's status. Rejections are mapped back onto
// wallboard.ErrNotFound and wallboard.ErrInvalidStatus.
func (c *Client) SetStatus(name, status string) (*StatusResponse, error) {
	var resp StatusResponse
	path := "/agents/" + url.PathEscape(name) + "/status"
	if err := c.do(http.MethodPost, path, StatusRequest{Status: status}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Export returns the name,status export text.
func (c *Client) Export() (string, error) {
	resp, err := c.HTTPClient.Get(c.BaseURL + "/export")
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d: %s", resp.StatusCode, body)
	}
	return string(body), nil
}

// Import applies entries on the running instance.
func (c *Client) Import(entries []exchange.Entry) (*ImportResponse, error) {
	var resp ImportResponse
	if err := c.do(http.MethodPost, "/import", ImportRequest{Entries: entries}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) do(method, path string, body, result interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var e ErrorResponse
		if json.Unmarshal(data, &e) == nil && e.Code != "" {
			switch e.Code {
			case CodeNotFound:
				return fmt.Errorf("%w (%s)", wallboard.ErrNotFound, e.Message)
			case CodeInvalidStatus:
				return fmt.Errorf("%w (%s)", wallboard.ErrInvalidStatus, e.Message)
			}
			return fmt.Errorf("HTTP %d: %s", resp.StatusCode, e.Message)
		}
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, data)
	}

	if result != nil {
		if err := json.Unmarshal(data, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
