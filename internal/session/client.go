package session

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"
)

// appinfoResponse is the envelope the appinfo API wraps results in.
type appinfoResponse struct {
	Status string                  `json:"status"`
	Data   map[string]*ProductInfo `json:"data"`
}

// HTTPClient queries the anonymous appinfo JSON API. Reachability is
// probed at construction and updated after every request, so a service
// that drops away mid-run flips Connected to false and later lookups go
// through SteamCMD instead.
type HTTPClient struct {
	base string
	http *http.Client

	mu        sync.Mutex
	connected bool
}

// NewHTTPClient probes the appinfo API at base and remembers whether it
// answered. Probe failure is not an error: the caller simply falls back.
func NewHTTPClient(base string) *HTTPClient {
	c := &HTTPClient{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{Timeout: 20 * time.Second},
	}
	c.connected = c.probe()
	return c
}

// probe checks transport-level reachability. Any HTTP response counts:
// the service answered, even if the path was not meaningful.
func (c *HTTPClient) probe() bool {
	resp, err := c.http.Get(c.base + "/")
	if err != nil {
		return false
	}
	resp.Body.Close()
	return true
}

// Connected reports whether the last interaction with the service
// succeeded at the transport level.
func (c *HTTPClient) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

func (c *HTTPClient) setConnected(up bool) {
	c.mu.Lock()
	c.connected = up
	c.mu.Unlock()
}

// ProductInfo fetches appinfo for one app ID.
func (c *HTTPClient) ProductInfo(ctx context.Context, appID string) (*ProductInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/v1/info/"+appID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build appinfo request for %s: %w", appID, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.setConnected(false)
		return nil, fmt.Errorf("appinfo query for %s failed: %w", appID, err)
	}
	defer resp.Body.Close()
	c.setConnected(true)

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("appinfo query for %s returned status %d", appID, resp.StatusCode)
	}

	var decoded appinfoResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode appinfo response for %s: %w", appID, err)
	}

	info, ok := decoded.Data[appID]
	if !ok {
		return nil, nil
	}
	return info, nil
}
