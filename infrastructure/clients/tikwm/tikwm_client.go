package tikwm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"tiktok-planner/domain/dto"
	"tiktok-planner/domain/repository"

	"github.com/google/go-querystring/query"
)

// DefaultCursor is the provider's first-page cursor
const DefaultCursor = "0"

// Config represents the feed search client configuration
type Config struct {
	Endpoint  string
	UserAgent string
	Accept    string
	Referer   string
	Timeout   time.Duration
}

// Client calls the tikwm feed search API
type Client struct {
	endpoint *url.URL
	headers  http.Header
	http     *http.Client
}

func defaultTransport() *http.Transport {
	return &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	}
}

// NewTikWMClient creates a feed search client. A nil httpClient gets a pooled
// transport with the configured timeout.
func NewTikWMClient(config *Config, httpClient *http.Client) (repository.ISearch, error) {
	endpoint, err := url.Parse(config.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse tikwm endpoint: %w", err)
	}
	if endpoint.Scheme == "" || endpoint.Host == "" {
		return nil, fmt.Errorf("parse tikwm endpoint: %q is not an absolute url", config.Endpoint)
	}
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   config.Timeout,
			Transport: defaultTransport(),
		}
	}

	headers := make(http.Header)
	headers.Set("User-Agent", config.UserAgent)
	headers.Set("Accept", config.Accept)
	headers.Set("Referer", config.Referer)

	return &Client{
		endpoint: endpoint,
		headers:  headers,
		http:     httpClient,
	}, nil
}

// Search fetches one page of results. It makes exactly one request and
// never retries.
func (c *Client) Search(ctx context.Context, q dto.UpstreamSearchQuery) (*dto.SearchPage, error) {
	if q.Cursor == "" {
		q.Cursor = DefaultCursor
	}
	values, err := query.Values(q)
	if err != nil {
		return nil, fmt.Errorf("encode search query: %w", err)
	}
	u := *c.endpoint
	u.RawQuery = values.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	for k, v := range c.headers {
		req.Header[k] = v
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &repository.UpstreamUnreachableError{StatusCode: resp.StatusCode}
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decode search response: %v", ErrInvalidResponse, err)
	}
	if payload.Code != 0 || isAbsent(payload.Data) {
		return nil, &repository.UpstreamRejectedError{Code: payload.Code, Message: payload.Msg}
	}

	var data searchData
	if err := json.Unmarshal(payload.Data, &data); err != nil {
		return nil, fmt.Errorf("%w: decode search data: %v", ErrInvalidResponse, err)
	}
	return normalizePage(data), nil
}

func isAbsent(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}
