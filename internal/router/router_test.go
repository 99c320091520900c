package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	handler "reddit-search-mcp/internal/handler/http"
	"reddit-search-mcp/internal/models"
	"reddit-search-mcp/internal/search"
)

type stubService struct{}

func (stubService) Search(ctx context.Context, req search.Request) (*models.SearchResponse, error) {
	return &models.SearchResponse{Success: true, Posts: []models.Post{}}, nil
}

func (stubService) SearchWithPagination(ctx context.Context, req search.Request, limit int) (*models.SearchResponse, error) {
	return &models.SearchResponse{Success: true, Posts: []models.Post{}}, nil
}

func TestNewRouterRoutes(t *testing.T) {
	e := echo.New()
	mcpHit := false
	mcpHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mcpHit = true
		w.WriteHeader(http.StatusAccepted)
	})

	NewRouter(e, handler.NewSearchHandler(stubService{}, nil), mcpHandler)

	tests := []struct {
		method string
		target string
		status int
	}{
		{method: http.MethodGet, target: "/search?query=go", status: http.StatusOK},
		{method: http.MethodGet, target: "/search/paginated?query=go&limit=10", status: http.StatusOK},
		{method: http.MethodPost, target: "/mcp", status: http.StatusAccepted},
		{method: http.MethodGet, target: "/subreddit", status: http.StatusNotFound},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.target, nil))
		assert.Equal(t, tt.status, rec.Code, tt.target)
	}
	assert.True(t, mcpHit)
}

func TestNewRouterWithoutMCP(t *testing.T) {
	e := echo.New()
	NewRouter(e, handler.NewSearchHandler(stubService{}, nil), nil)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/mcp", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
