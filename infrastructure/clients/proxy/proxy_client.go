package proxy

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tiktok-planner/domain/dto"
	"tiktok-planner/domain/model"
	"tiktok-planner/domain/repository"

	"github.com/google/go-querystring/query"
)

const searchPath = "/api/tiktok/search"

// StatusError is returned for a non-2xx proxy response. Message is the
// "error" field of the body when present.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("proxy: status %d", e.StatusCode)
	}
	return fmt.Sprintf("proxy: status %d: %s", e.StatusCode, e.Message)
}

type Client struct {
	searchURL *url.URL
	http      *http.Client
}

// NewProxyClient creates a client for the search proxy at baseURL.
func NewProxyClient(baseURL string, timeout time.Duration) (repository.IProxySearch, error) {
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse proxy url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("parse proxy url: %q is not an absolute url", baseURL)
	}
	return &Client{
		searchURL: base.JoinPath(searchPath),
		http:      &http.Client{Timeout: timeout},
	}, nil
}

func (c *Client) Search(ctx context.Context, q dto.ProxySearchQuery) (*dto.SearchPage, error) {
	values, err := query.Values(q)
	if err != nil {
		return nil, fmt.Errorf("encode search query: %w", err)
	}
	u := *c.searchURL
	u.RawQuery = values.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-store")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := &StatusError{StatusCode: resp.StatusCode}
		var errBody dto.ErrorResponse
		if json.Unmarshal(body, &errBody) == nil {
			statusErr.Message = errBody.Error
		}
		return nil, statusErr
	}

	var page dto.SearchPage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("decode search page: %w", err)
	}
	if page.Videos == nil {
		page.Videos = []model.VideoRecord{}
	}
	return &page, nil
}
