// Package syncer drains the store's change queue to the remote reference
// server and pulls authoritative catalog, settings and client data back.
//
// Delivery is at-least-once: a batch whose acknowledgment is lost is simply
// retransmitted on the next tick, so the remote endpoint must treat replays
// of identical change records as idempotent.
package syncer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/clearpond/kassa/internal/pos"
)

// Client speaks the push/pull sync protocol.
type Client struct {
	base string
	http *http.Client
}

// NewClient creates a protocol client for the given API base URL, e.g.
// "http://reference.example.com/api".
func NewClient(baseURL string) *Client {
	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{},
	}
}

type pushRequest struct {
	Items []pos.QueueEntry `json:"items"`
}

// Push transmits a queue snapshot as one batch. Any non-2xx status or
// transport error means the batch was not acknowledged and must stay
// queued.
func (c *Client) Push(ctx context.Context, entries []pos.QueueEntry) error {
	body, err := json.Marshal(pushRequest{Items: entries})
	if err != nil {
		return fmt.Errorf("encode push batch: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/sync/push", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("push: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("push rejected: %s", resp.Status)
	}
	return nil
}

// Pull fetches the authoritative reference data. Fields absent from the
// response come back nil and are left unmerged by the store.
func (c *Client) Pull(ctx context.Context) (pos.PullData, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/sync/pull", nil)
	if err != nil {
		return pos.PullData{}, fmt.Errorf("build pull request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return pos.PullData{}, fmt.Errorf("pull: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return pos.PullData{}, fmt.Errorf("pull rejected: %s", resp.Status)
	}

	var data pos.PullData
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return pos.PullData{}, fmt.Errorf("decode pull response: %w", err)
	}
	return data, nil
}
