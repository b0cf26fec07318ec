package repository

import (
	"context"

	"tiktok-planner/domain/dto"
)

// ISearch is the upstream feed search provider
type ISearch interface {
	// Search issues exactly one upstream request for a page of results.
	Search(ctx context.Context, query dto.UpstreamSearchQuery) (*dto.SearchPage, error)
}

// IProxySearch is the client view of the proxy search endpoint
type IProxySearch interface {
	Search(ctx context.Context, query dto.ProxySearchQuery) (*dto.SearchPage, error)
}
