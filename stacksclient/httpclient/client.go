// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package httpclient provides an HTTP client for the node RPC endpoints the stacker uses.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/stx-tools/pox-stacker/metrics"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrNot200Status = errors.New("not 200 status code")
)

var metricRequestDuration = metrics.LazyLoadHistogramVec(
	"node_request_duration_ms", []string{"endpoint", "status"}, metrics.BucketHTTPReqs,
)

// Client represents the HTTP client for interacting with a node.
type Client struct {
	url string
	c   *http.Client
}

// New creates a new Client with the provided URL.
func New(url string) *Client {
	return NewWithHTTP(url, http.DefaultClient)
}

func NewWithHTTP(url string, c *http.Client) *Client {
	return &Client{
		url: strings.TrimRight(url, "/"),
		c:   c,
	}
}

// URL returns the base URL of the node.
func (c *Client) URL() string {
	return c.url
}

// GetPoxInfo retrieves the current PoX state.
func (c *Client) GetPoxInfo(ctx context.Context) (*PoxInfo, error) {
	body, err := c.httpGET(ctx, "pox", c.url+"/v2/pox")
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve pox info - %w", err)
	}

	var info PoxInfo
	if err = json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("unable to unmarshal pox info - %w", err)
	}
	return &info, nil
}

// GetAccount retrieves balance, lock and nonce of a principal, without proofs.
func (c *Client) GetAccount(ctx context.Context, principal string) (*Account, error) {
	body, err := c.httpGET(ctx, "accounts", c.url+"/v2/accounts/"+principal+"?proof=0")
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve account - %w", err)
	}

	var account Account
	if err = json.Unmarshal(body, &account); err != nil {
		return nil, fmt.Errorf("unable to unmarshal account - %w", err)
	}
	return &account, nil
}

// SendTransaction broadcasts a serialized transaction. A rejection by the node
// is returned as a *BroadcastRejection, not as an error.
func (c *Client) SendTransaction(ctx context.Context, raw []byte) (string, *BroadcastRejection, error) {
	body, status, err := c.rawHTTPRequest(ctx, "transactions", http.MethodPost, c.url+"/v2/transactions", raw)
	if err != nil {
		return "", nil, fmt.Errorf("unable to send raw transaction - %w", err)
	}

	switch status {
	case http.StatusOK:
		var txID string
		if err := json.Unmarshal(body, &txID); err != nil {
			// some nodes answer with the bare id
			txID = strings.TrimSpace(string(body))
		}
		return txID, nil, nil
	case http.StatusBadRequest:
		var rejection BroadcastRejection
		if err := json.Unmarshal(body, &rejection); err != nil {
			return "", nil, fmt.Errorf("unable to unmarshal broadcast rejection - %w", err)
		}
		return "", &rejection, nil
	default:
		return "", nil, fmt.Errorf("http error - Status Code %d - %s - %w", status, body, ErrNot200Status)
	}
}

func (c *Client) httpGET(ctx context.Context, endpoint, url string) ([]byte, error) {
	body, status, err := c.rawHTTPRequest(ctx, endpoint, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("http error - Status Code %d - %s - %w", status, body, ErrNot200Status)
	}
	return body, nil
}

func (c *Client) rawHTTPRequest(ctx context.Context, endpoint, method, url string, payload []byte) ([]byte, int, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, 0, fmt.Errorf("error creating request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/octet-stream")
	}

	start := time.Now()
	resp, err := c.c.Do(req)
	if err != nil {
		metricRequestDuration().ObserveWithLabels(time.Since(start).Milliseconds(), map[string]string{"endpoint": endpoint, "status": "error"})
		return nil, 0, fmt.Errorf("error performing request: %w", err)
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	metricRequestDuration().ObserveWithLabels(time.Since(start).Milliseconds(), map[string]string{"endpoint": endpoint, "status": strconv.Itoa(resp.StatusCode)})
	if err != nil {
		return nil, 0, fmt.Errorf("error reading response body: %w", err)
	}
	return responseBody, resp.StatusCode, nil
}
