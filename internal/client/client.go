// Package client uploads encoded tree logs to the hosted visualizer API and
// turns the returned receipt into a shareable access URL.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"canopy/treelog/internal/tree"
)

// Client talks to the visualizer API. One POST per log, no retries: the
// caller decides whether a failed upload is worth repeating.
type Client struct {
	baseURL       string
	visualizerURL string
	http          *http.Client
}

// Receipt identifies an uploaded log on the visualizer service.
type Receipt struct {
	ID        string `json:"id"`
	AccessKey string `json:"access_key"`
}

// New creates a client for the given API and visualizer base URLs. If httpc
// is nil, a default client with a 5s timeout is used.
func New(apiBaseURL, visualizerBaseURL string, httpc *http.Client) *Client {
	if httpc == nil {
		httpc = &http.Client{Timeout: 5 * time.Second}
	}
	return &Client{
		baseURL:       apiBaseURL,
		visualizerURL: visualizerBaseURL,
		http:          httpc,
	}
}

// AccessURL builds the browsable visualizer URL for a receipt.
func (c *Client) AccessURL(r *Receipt) string {
	return fmt.Sprintf("%s/visualizer/%s?accessKey=%s", c.visualizerURL, r.ID, r.AccessKey)
}

// PostLog encodes a log and POSTs it to the API, returning the receipt.
func (c *Client) PostLog(ctx context.Context, l *tree.Log) (*Receipt, error) {
	payload, err := tree.Encode(l)
	if err != nil {
		return nil, fmt.Errorf("encoding log: %w", err)
	}
	return c.PostEncoded(ctx, payload)
}

// PostEncoded uploads already-encoded wire bytes, for logs loaded from disk
// or the local store.
func (c *Client) PostEncoded(ctx context.Context, payload []byte) (*Receipt, error) {
	url := c.baseURL + "/logs"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("posting log: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		slog.Error("log upload rejected", "status", resp.StatusCode, "url", url)
		return nil, fmt.Errorf("upload failed with status %d: %s", resp.StatusCode, body)
	}

	var r Receipt
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, fmt.Errorf("parsing receipt: %w", err)
	}
	return &r, nil
}
