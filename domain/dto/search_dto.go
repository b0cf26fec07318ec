package dto

import "tiktok-planner/domain/model"

// SearchRequest is the query accepted by GET /api/tiktok/search
type SearchRequest struct {
	Keywords string `form:"keywords"`
	Count    string `form:"count"`
	Cursor   string `form:"cursor"`
}

// UpstreamSearchQuery is sent to the upstream feed search API. Count and
// Cursor are passed through as strings so the adapter never reinterprets them.
type UpstreamSearchQuery struct {
	Keyword string `url:"keywords"`
	Count   string `url:"count"`
	Cursor  string `url:"cursor"`
}

// ProxySearchQuery is what the client sends to the proxy endpoint. An empty
// Cursor is omitted so the endpoint applies its start value.
type ProxySearchQuery struct {
	Keywords string `url:"keywords"`
	Count    string `url:"count,omitempty"`
	Cursor   string `url:"cursor,omitempty"`
}

// SearchPage is the success body of the proxy endpoint and the result of an
// adapter call. Videos is never nil.
type SearchPage struct {
	Videos     []model.VideoRecord `json:"videos"`
	HasMore    bool                `json:"hasMore"`
	NextCursor Cursor              `json:"nextCursor"`
}

// ErrorResponse is the body of every non-2xx proxy response
type ErrorResponse struct {
	Error string `json:"error"`
}
