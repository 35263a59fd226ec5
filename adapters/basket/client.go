// Package basket talks to the external marketing-list ("basket") API. The
// worker uses it to unsubscribe deleted members.
package basket

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/theafricanengineer/mozillians/internal/config"
)

type Client struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient(cfg config.Config) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    strings.TrimRight(cfg.Basket.APIURL, "/"),
	}
}

// Unsubscribe removes the email from the marketing list. The email may
// belong to an already-anonymized profile; the basket API treats unknown
// addresses as success.
func (c *Client) Unsubscribe(ctx context.Context, email string) error {
	if email == "" {
		return nil
	}

	body, err := json.Marshal(map[string]string{"email": email})
	if err != nil {
		return fmt.Errorf("failed to encode unsubscribe request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/unsubscribe", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build unsubscribe request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("unsubscribe request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("basket API returned status %d", resp.StatusCode)
	}
	return nil
}
