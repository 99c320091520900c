// internal/handler/http/search_handler.go
package http

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"reddit-search-mcp/internal/client"
	"reddit-search-mcp/internal/models"
	"reddit-search-mcp/internal/search"
)

const (
	searchTimeout    = 60 * time.Second
	paginatedTimeout = 240 * time.Second
)

type SearchHandler struct {
	svc    search.SearchService
	logger *zap.Logger
}

func NewSearchHandler(svc search.SearchService, logger *zap.Logger) *SearchHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SearchHandler{svc: svc, logger: logger}
}

// Search godoc
// @Summary Search Reddit posts
// @Description Runs one search page against the ScrapeCreators Reddit search API
// @Tags search
// @Produce json
// @Param query query string false "Search keywords (required unless a modifier is set)"
// @Param sort query string false "Sort order (relevance, new, top, comment_count)"
// @Param timeframe query string false "Time range (all, day, week, month, year)"
// @Param after query string false "Continuation token from a previous response"
// @Param author query string false "Only posts by this author"
// @Param subreddit query string false "Only posts in this subreddit"
// @Param title query string false "Phrase that must appear in the title"
// @Param selftext query string false "Phrase that must appear in the body"
// @Param flair query string false "Only posts with this flair"
// @Param url query string false "Only link posts to this URL or domain"
// @Param self query bool false "Only text posts (true) or only link posts (false)"
// @Param return_mode query string false "inline or file"
// @Param max_results query int false "Truncate inline results to this many posts"
// @Success 200 {object} models.SearchResponse
// @Failure 400 {object} models.HTTPError
// @Failure 401 {object} models.HTTPError
// @Failure 502 {object} models.HTTPError
// @Router /search [get]
func (h *SearchHandler) Search(c echo.Context) error {
	req, err := buildSearchRequest(c)
	if err != nil {
		return h.writeError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), searchTimeout)
	defer cancel()

	resp, err := h.svc.Search(ctx, req)
	if err != nil {
		return h.writeError(c, err)
	}

	return c.JSON(http.StatusOK, resp)
}

// SearchPaginated godoc
// @Summary Search Reddit posts across pages
// @Description Follows continuation tokens until limit posts are collected or results run out
// @Tags search
// @Produce json
// @Param query query string false "Search keywords (required unless a modifier is set)"
// @Param limit query int true "Maximum number of posts to collect"
// @Param sort query string false "Sort order (relevance, new, top, comment_count)"
// @Param timeframe query string false "Time range (all, day, week, month, year)"
// @Param after query string false "Continuation token to start from"
// @Param author query string false "Only posts by this author"
// @Param subreddit query string false "Only posts in this subreddit"
// @Param title query string false "Phrase that must appear in the title"
// @Param selftext query string false "Phrase that must appear in the body"
// @Param flair query string false "Only posts with this flair"
// @Param url query string false "Only link posts to this URL or domain"
// @Param self query bool false "Only text posts (true) or only link posts (false)"
// @Param return_mode query string false "inline or file"
// @Success 200 {object} models.SearchResponse
// @Failure 400 {object} models.HTTPError
// @Failure 401 {object} models.HTTPError
// @Failure 502 {object} models.HTTPError
// @Router /search/paginated [get]
func (h *SearchHandler) SearchPaginated(c echo.Context) error {
	req, err := buildSearchRequest(c)
	if err != nil {
		return h.writeError(c, err)
	}

	l := c.QueryParam("limit")
	if l == "" {
		return h.writeError(c, validationError("missing `limit` parameter"))
	}
	limit, err := strconv.Atoi(l)
	if err != nil {
		return h.writeError(c, validationError("invalid `limit` parameter"))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), paginatedTimeout)
	defer cancel()

	resp, err := h.svc.SearchWithPagination(ctx, req, limit)
	if err != nil {
		return h.writeError(c, err)
	}

	return c.JSON(http.StatusOK, resp)
}

func buildSearchRequest(c echo.Context) (search.Request, error) {
	req := search.Request{
		SearchParams: client.SearchParams{
			Query:     c.QueryParam("query"),
			Sort:      c.QueryParam("sort"),
			Timeframe: c.QueryParam("timeframe"),
			After:     c.QueryParam("after"),
			Modifiers: client.Modifiers{
				Author:    c.QueryParam("author"),
				Subreddit: c.QueryParam("subreddit"),
				Title:     c.QueryParam("title"),
				Selftext:  c.QueryParam("selftext"),
				Flair:     c.QueryParam("flair"),
				URL:       c.QueryParam("url"),
			},
		},
		ReturnMode: models.ReturnMode(strings.ToLower(c.QueryParam("return_mode"))),
	}

	if s := c.QueryParam("self"); s != "" {
		v, err := strconv.ParseBool(s)
		if err != nil {
			return search.Request{}, validationError("invalid `self` parameter")
		}
		req.Modifiers.Self = &v
	}

	if m := c.QueryParam("max_results"); m != "" {
		v, err := strconv.Atoi(m)
		if err != nil {
			return search.Request{}, validationError("invalid `max_results` parameter")
		}
		req.MaxResults = v
	}

	return req, nil
}

func validationError(msg string) error {
	return fmt.Errorf("%w: %s", client.ErrValidation, msg)
}

func statusFor(err error) int {
	switch client.KindOf(err) {
	case "validation":
		return http.StatusBadRequest
	case "authentication":
		return http.StatusUnauthorized
	case "connection", "api":
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (h *SearchHandler) writeError(c echo.Context, err error) error {
	status := statusFor(err)
	h.logger.Warn("search request failed",
		zap.String("path", c.Path()),
		zap.Int("status", status),
		zap.Error(err))
	return c.JSON(status, models.HTTPError{
		Code:    status,
		Kind:    client.KindOf(err),
		Message: err.Error(),
	})
}
