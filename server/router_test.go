package server_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"tiktok-planner/interfaces/middleware"
	"tiktok-planner/server"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockSearchHandler struct {
	mock.Mock
}

func (m *MockSearchHandler) Search(ctx *gin.Context) {
	m.Called(ctx)
	ctx.JSON(http.StatusOK, gin.H{"videos": []any{}, "hasMore": false, "nextCursor": nil})
}

type MockHealthHandler struct {
	mock.Mock
}

func (m *MockHealthHandler) Healthz(ctx *gin.Context) {
	m.Called(ctx)
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func init() {
	gin.SetMode(gin.TestMode)
}

func TestInitiateRouter_Routes(t *testing.T) {
	searchHandler := new(MockSearchHandler)
	searchHandler.On("Search", mock.Anything).Once()
	healthHandler := new(MockHealthHandler)
	healthHandler.On("Healthz", mock.Anything).Once()

	router := server.InitiateRouter(searchHandler, healthHandler, server.RouterConfig{
		AllowOrigins: []string{"http://localhost:3000"},
	})

	for _, path := range []string{"/api/tiktok/search?keywords=coffee", "/healthz", "/metrics"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/tiktok/search", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	searchHandler.AssertExpectations(t)
	healthHandler.AssertExpectations(t)
}

func TestInitiateRouter_CORS(t *testing.T) {
	router := server.InitiateRouter(new(MockSearchHandler), new(MockHealthHandler), server.RouterConfig{
		AllowOrigins: []string{"http://localhost:3000"},
	})

	req := httptest.NewRequest(http.MethodOptions, "/api/tiktok/search", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestInitiateRouter_RateLimitOnlyOnSearch(t *testing.T) {
	searchHandler := new(MockSearchHandler)
	searchHandler.On("Search", mock.Anything).Once()
	healthHandler := new(MockHealthHandler)
	healthHandler.On("Healthz", mock.Anything).Twice()

	router := server.InitiateRouter(searchHandler, healthHandler, server.RouterConfig{
		AllowOrigins: []string{"http://localhost:3000"},
		RateLimiter:  middleware.NewRateLimiter(middleware.RateLimitConfig{RequestsPerMinute: 1, Burst: 1}),
	})

	serve := func(path string) int {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, serve("/api/tiktok/search?keywords=a"))
	assert.Equal(t, http.StatusTooManyRequests, serve("/api/tiktok/search?keywords=b"))
	assert.Equal(t, http.StatusOK, serve("/healthz"))
	assert.Equal(t, http.StatusOK, serve("/healthz"))
	searchHandler.AssertExpectations(t)
}
