package evalctl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"evald/pkg/types"
)

// Client is a thin HTTP client for a running evald daemon.
type Client struct {
	base string
	hc   *http.Client
}

// NewClient returns a client for the daemon at base (e.g. http://127.0.0.1:5000).
func NewClient(base string) *Client {
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: 10 * time.Minute},
	}
}

// Complete posts one batch submission and decodes the response. The HTTP
// status is returned alongside so callers can count backpressure rejections.
func (c *Client) Complete(ctx context.Context, req types.CompleteRequest) (types.CompleteResponse, int, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return types.CompleteResponse{}, 0, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/complete", bytes.NewReader(body))
	if err != nil {
		return types.CompleteResponse{}, 0, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	resp, err := c.hc.Do(httpReq)
	if err != nil {
		return types.CompleteResponse{}, 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		var er types.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&er); err == nil && er.Error != "" {
			return types.CompleteResponse{}, resp.StatusCode, fmt.Errorf("%s", er.Error)
		}
		return types.CompleteResponse{}, resp.StatusCode, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	var out types.CompleteResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return types.CompleteResponse{}, resp.StatusCode, err
	}
	return out, resp.StatusCode, nil
}

// Status fetches GET /status.
func (c *Client) Status(ctx context.Context) (types.StatusResponse, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/status", nil)
	if err != nil {
		return types.StatusResponse{}, err
	}
	resp, err := c.hc.Do(httpReq)
	if err != nil {
		return types.StatusResponse{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return types.StatusResponse{}, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
	var out types.StatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return types.StatusResponse{}, err
	}
	return out, nil
}
