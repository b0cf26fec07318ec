package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"tiktok-planner/domain/dto"
	"tiktok-planner/domain/model"
	"tiktok-planner/domain/repository"
	httpHandler "tiktok-planner/interfaces/http"
	"tiktok-planner/usecase"
)

type MockSearchUsecase struct {
	mock.Mock
}

func (m *MockSearchUsecase) Search(ctx context.Context, req dto.SearchRequest) (*dto.SearchPage, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.SearchPage), args.Error(1)
}

func init() {
	gin.SetMode(gin.TestMode)
}

func serveSearch(t *testing.T, uc usecase.ISearchUsecase, target string) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.GET("/api/tiktok/search", httpHandler.NewSearchHandler(uc).Search)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestSearchHandler_Success(t *testing.T) {
	mockUsecase := new(MockSearchUsecase)
	mockUsecase.On("Search", mock.Anything, dto.SearchRequest{Keywords: "coffee", Count: "18", Cursor: "36"}).
		Return(&dto.SearchPage{
			Videos:     []model.VideoRecord{{ID: "v1", Title: "latte art", CreatedAtMillis: 1700000000000}},
			HasMore:    true,
			NextCursor: dto.NewCursor([]byte("54")),
		}, nil).
		Once()

	rec := serveSearch(t, mockUsecase, "/api/tiktok/search?keywords=coffee&count=18&cursor=36")

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.JSONEq(t, "true", string(body["hasMore"]))
	assert.JSONEq(t, "54", string(body["nextCursor"]))

	var videos []model.VideoRecord
	require.NoError(t, json.Unmarshal(body["videos"], &videos))
	require.Len(t, videos, 1)
	assert.Equal(t, "v1", videos[0].ID)
	assert.Equal(t, int64(1700000000000), videos[0].CreatedAtMillis)
	mockUsecase.AssertExpectations(t)
}

func TestSearchHandler_EmptyPageSerializesArray(t *testing.T) {
	mockUsecase := new(MockSearchUsecase)
	mockUsecase.On("Search", mock.Anything, mock.Anything).
		Return(&dto.SearchPage{Videos: []model.VideoRecord{}}, nil).
		Once()

	rec := serveSearch(t, mockUsecase, "/api/tiktok/search?keywords=coffee")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"videos":[],"hasMore":false,"nextCursor":null}`, rec.Body.String())
}

func TestSearchHandler_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{
			name:   "missing keywords",
			err:    &usecase.SearchError{Status: http.StatusBadRequest, Message: "keywords query parameter is required"},
			status: http.StatusBadRequest,
			body:   `{"error":"keywords query parameter is required"}`,
		},
		{
			name:   "rejected upstream",
			err:    &usecase.SearchError{Status: http.StatusBadGateway, Message: "rate limited"},
			status: http.StatusBadGateway,
			body:   `{"error":"rate limited"}`,
		},
		{
			name:   "upstream status",
			err:    &usecase.SearchError{Status: http.StatusForbidden, Message: "Failed to reach upstream search API"},
			status: http.StatusForbidden,
			body:   `{"error":"Failed to reach upstream search API"}`,
		},
		{
			name:   "unclassified",
			err:    errors.New("boom"),
			status: http.StatusInternalServerError,
			body:   `{"error":"Unexpected error while fetching TikTok data"}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUsecase := new(MockSearchUsecase)
			mockUsecase.On("Search", mock.Anything, mock.Anything).Return(nil, tt.err).Once()

			rec := serveSearch(t, mockUsecase, "/api/tiktok/search?keywords=coffee")

			assert.Equal(t, tt.status, rec.Code)
			assert.JSONEq(t, tt.body, rec.Body.String())
		})
	}
}

func TestSearchHandler_MissingKeywordsEndToEnd(t *testing.T) {
	mockSearch := new(MockSearch)
	uc := usecase.NewSearchUsecase(mockSearch, "12", "0")

	rec := serveSearch(t, uc, "/api/tiktok/search")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"keywords query parameter is required"}`, rec.Body.String())
	mockSearch.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
}

type MockSearch struct {
	mock.Mock
}

func (m *MockSearch) Search(ctx context.Context, query dto.UpstreamSearchQuery) (*dto.SearchPage, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.SearchPage), args.Error(1)
}

func TestSearchHandler_RejectedEndToEnd(t *testing.T) {
	mockSearch := new(MockSearch)
	mockSearch.On("Search", mock.Anything, mock.Anything).
		Return(nil, &repository.UpstreamRejectedError{Code: 1, Message: "rate limited"}).
		Once()
	uc := usecase.NewSearchUsecase(mockSearch, "12", "0")

	rec := serveSearch(t, uc, "/api/tiktok/search?keywords=coffee")

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.JSONEq(t, `{"error":"rate limited"}`, rec.Body.String())
}

func TestHealthHandler_Healthz(t *testing.T) {
	router := gin.New()
	router.GET("/healthz", httpHandler.NewHealthHandler().Healthz)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
