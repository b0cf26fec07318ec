package usecase

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"tiktok-planner/domain/dto"
	"tiktok-planner/domain/repository"
	"tiktok-planner/infrastructure/logger"
	"tiktok-planner/infrastructure/metrics"
)

const (
	MsgKeywordsRequired   = "keywords query parameter is required"
	MsgUpstreamFailed     = "Failed to reach upstream search API"
	MsgUpstreamRejected   = "Search API returned an error"
	MsgUnexpectedUpstream = "Unexpected error while fetching TikTok data"
)

// SearchError is a classified search failure carrying the HTTP status and
// the message returned to the caller.
type SearchError struct {
	Status  int
	Message string
	Err     error
}

func (e *SearchError) Error() string {
	return e.Message
}

func (e *SearchError) Unwrap() error {
	return e.Err
}

type ISearchUsecase interface {
	Search(ctx context.Context, req dto.SearchRequest) (*dto.SearchPage, error)
}

type SearchUsecase struct {
	search        repository.ISearch
	defaultCount  string
	defaultCursor string
}

func NewSearchUsecase(search repository.ISearch, defaultCount, defaultCursor string) ISearchUsecase {
	return &SearchUsecase{
		search:        search,
		defaultCount:  defaultCount,
		defaultCursor: defaultCursor,
	}
}

// Search validates the request, applies defaults and performs exactly one
// upstream call. Every failure is returned as a *SearchError.
func (u *SearchUsecase) Search(ctx context.Context, req dto.SearchRequest) (*dto.SearchPage, error) {
	keywords := strings.TrimSpace(req.Keywords)
	if keywords == "" {
		return nil, &SearchError{Status: http.StatusBadRequest, Message: MsgKeywordsRequired}
	}

	query := dto.UpstreamSearchQuery{
		Keyword: keywords,
		Count:   u.count(req.Count),
		Cursor:  strings.TrimSpace(req.Cursor),
	}
	if query.Cursor == "" {
		query.Cursor = u.defaultCursor
	}

	start := time.Now()
	page, err := u.search.Search(ctx, query)
	if err != nil {
		return nil, u.classify(query, err, time.Since(start))
	}
	metrics.ObserveUpstream(metrics.OutcomeOK, time.Since(start))

	logger.GetLogger().
		WithField("keywords", keywords).
		WithField("cursor", query.Cursor).
		WithField("videos", len(page.Videos)).
		WithField("hasMore", page.HasMore).
		Debug("Search completed")
	return page, nil
}

// count keeps a positive integer count as given and falls back to the
// default otherwise.
func (u *SearchUsecase) count(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return u.defaultCount
	}
	if n, err := strconv.Atoi(raw); err != nil || n <= 0 {
		logger.GetLogger().WithField("count", raw).Warn("Invalid count, using default")
		return u.defaultCount
	}
	return raw
}

func (u *SearchUsecase) classify(query dto.UpstreamSearchQuery, err error, elapsed time.Duration) *SearchError {
	log := logger.GetLogger().
		WithField("keywords", query.Keyword).
		WithField("cursor", query.Cursor).
		WithField("error", err)

	var unreachable *repository.UpstreamUnreachableError
	var rejected *repository.UpstreamRejectedError
	switch {
	case errors.As(err, &unreachable):
		metrics.ObserveUpstream(metrics.OutcomeUnreachable, elapsed)
		log.WithField("status", unreachable.StatusCode).Warn("Upstream search responded with an error status")
		return &SearchError{Status: unreachable.StatusCode, Message: MsgUpstreamFailed, Err: err}
	case errors.As(err, &rejected):
		metrics.ObserveUpstream(metrics.OutcomeRejected, elapsed)
		log.WithField("code", rejected.Code).Warn("Upstream search rejected the request")
		msg := rejected.Message
		if msg == "" {
			msg = MsgUpstreamRejected
		}
		return &SearchError{Status: http.StatusBadGateway, Message: msg, Err: err}
	default:
		metrics.ObserveUpstream(metrics.OutcomeError, elapsed)
		log.Error("Unexpected error while fetching search results")
		return &SearchError{Status: http.StatusInternalServerError, Message: MsgUnexpectedUpstream, Err: err}
	}
}
