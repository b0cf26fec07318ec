package usecase

import (
	"context"
	"strings"
	"sync"

	"tiktok-planner/domain/dto"
	"tiktok-planner/domain/model"
	"tiktok-planner/domain/repository"
	"tiktok-planner/infrastructure/logger"
)

type SearchStatus string

const (
	StatusIdle    SearchStatus = "idle"
	StatusLoading SearchStatus = "loading"
	StatusError   SearchStatus = "error"
)

// SearchState is a point-in-time copy of the controller state.
type SearchState struct {
	Status       SearchStatus
	Keyword      string // keyword of the last successful search
	Videos       []model.VideoRecord
	HasMore      bool
	Cursor       dto.Cursor
	ErrorMessage string
}

type ISearchController interface {
	StartSearch(ctx context.Context, keyword string) error
	Refresh(ctx context.Context, keyword string) error
	LoadMore(ctx context.Context) error
	Snapshot() SearchState
	Video(id string) (model.VideoRecord, bool)
}

// SearchController paginates keyword searches through the proxy. Every
// request is tagged with a sequence number and only the response to the
// latest request is applied.
type SearchController struct {
	api          repository.IProxySearch
	pageSize     string
	errorMessage string

	mu    sync.Mutex
	seq   uint64
	state SearchState
}

func NewSearchController(api repository.IProxySearch, pageSize, errorMessage string) *SearchController {
	return &SearchController{
		api:          api,
		pageSize:     pageSize,
		errorMessage: errorMessage,
		state:        SearchState{Status: StatusIdle, Videos: []model.VideoRecord{}},
	}
}

// StartSearch runs a fresh search for keyword, replacing the result list on
// success. A blank keyword is ignored.
func (c *SearchController) StartSearch(ctx context.Context, keyword string) error {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil
	}

	c.mu.Lock()
	c.seq++
	tag := c.seq
	c.state.Cursor = dto.Cursor{}
	c.state.Status = StatusLoading
	c.state.ErrorMessage = ""
	c.mu.Unlock()

	page, err := c.api.Search(ctx, dto.ProxySearchQuery{Keywords: keyword, Count: c.pageSize})
	return c.apply(tag, keyword, page, err, false)
}

// Refresh restarts the search for a preset keyword.
func (c *SearchController) Refresh(ctx context.Context, keyword string) error {
	return c.StartSearch(ctx, keyword)
}

// LoadMore fetches the next page for the active keyword and appends it. It
// does nothing when there is no next page or a request is in flight.
func (c *SearchController) LoadMore(ctx context.Context) error {
	c.mu.Lock()
	if !c.state.HasMore || c.state.Status == StatusLoading {
		c.mu.Unlock()
		return nil
	}
	c.seq++
	tag := c.seq
	keyword := c.state.Keyword
	cursor := c.state.Cursor.QueryValue()
	c.state.Status = StatusLoading
	c.state.ErrorMessage = ""
	c.mu.Unlock()

	page, err := c.api.Search(ctx, dto.ProxySearchQuery{Keywords: keyword, Count: c.pageSize, Cursor: cursor})
	return c.apply(tag, keyword, page, err, true)
}

func (c *SearchController) apply(tag uint64, keyword string, page *dto.SearchPage, err error, appendPage bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if tag != c.seq {
		logger.GetLogger().
			WithField("keyword", keyword).
			WithField("tag", tag).
			WithField("latest", c.seq).
			Debug("Discarding stale search response")
		return nil
	}
	if err != nil {
		logger.GetLogger().WithField("keyword", keyword).WithField("error", err).Error("Search request failed")
		c.state.Status = StatusError
		c.state.ErrorMessage = c.errorMessage
		if !appendPage {
			// the cursor was dropped, so prior results cannot be continued
			c.state.HasMore = false
		}
		return err
	}

	if appendPage {
		c.state.Videos = append(c.state.Videos, page.Videos...)
	} else {
		c.state.Videos = append(make([]model.VideoRecord, 0, len(page.Videos)), page.Videos...)
	}
	c.state.HasMore = page.HasMore
	c.state.Cursor = page.NextCursor
	c.state.Keyword = keyword
	c.state.Status = StatusIdle
	return nil
}

func (c *SearchController) Snapshot() SearchState {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := c.state
	out.Videos = append(make([]model.VideoRecord, 0, len(c.state.Videos)), c.state.Videos...)
	return out
}

// Video looks up a displayed result by id.
func (c *SearchController) Video(id string) (model.VideoRecord, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, v := range c.state.Videos {
		if v.ID == id {
			return v, true
		}
	}
	return model.VideoRecord{}, false
}
