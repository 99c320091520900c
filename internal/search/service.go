// internal/search/service.go
package search

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"reddit-search-mcp/internal/client"
	"reddit-search-mcp/internal/models"
	"reddit-search-mcp/internal/parser"
)

// SearchService runs searches and shapes their results for callers.
type SearchService interface {
	Search(ctx context.Context, req Request) (*models.SearchResponse, error)
	SearchWithPagination(ctx context.Context, req Request, limit int) (*models.SearchResponse, error)
}

// Request is one search call: the upstream parameters plus output options.
type Request struct {
	client.SearchParams

	// ReturnMode defaults to inline.
	ReturnMode models.ReturnMode
	// MaxResults truncates inline results when > 0.
	MaxResults int
	// OutputDir overrides the configured directory in file mode.
	OutputDir string
}

type searchService struct {
	client    client.SearchClientInterface
	parser    parser.ParserInterface
	outputDir string
	logger    *zap.Logger
	now       func() time.Time
}

func NewSearchService(c client.SearchClientInterface, p parser.ParserInterface, outputDir string, logger *zap.Logger) SearchService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if outputDir == "" {
		outputDir = "output"
	}

	return &searchService{
		client:    c,
		parser:    p,
		outputDir: outputDir,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *searchService) validate(req Request) (models.ReturnMode, error) {
	mode := req.ReturnMode
	switch mode {
	case "":
		mode = models.ReturnInline
	case models.ReturnInline, models.ReturnFile:
	default:
		return "", fmt.Errorf("%w: invalid return mode: %s. Valid options are: inline, file", client.ErrValidation, mode)
	}

	if req.MaxResults < 0 {
		return "", fmt.Errorf("%w: max_results must not be negative", client.ErrValidation)
	}

	if err := req.SearchParams.Validate(); err != nil {
		return "", err
	}

	return mode, nil
}

// Search fetches a single page.
func (s *searchService) Search(ctx context.Context, req Request) (*models.SearchResponse, error) {
	mode, err := s.validate(req)
	if err != nil {
		return nil, err
	}

	startTime := time.Now()

	posts, after, err := s.fetchPage(ctx, req.SearchParams)
	if err != nil {
		return nil, err
	}

	s.logger.Info("search completed",
		zap.String("query", req.Query),
		zap.Int("posts", len(posts)),
		zap.String("mode", string(mode)),
		zap.Duration("elapsed", time.Since(startTime)))

	return s.respond(req, mode, posts, after)
}

// SearchWithPagination follows continuation tokens until limit posts are
// collected, the upstream runs out, or a token repeats. Any failed page
// fails the whole call. In file mode one aggregated file is written.
func (s *searchService) SearchWithPagination(ctx context.Context, req Request, limit int) (*models.SearchResponse, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be a positive integer", client.ErrValidation)
	}

	mode, err := s.validate(req)
	if err != nil {
		return nil, err
	}

	startTime := time.Now()

	seen := make(map[string]struct{})
	if req.After != "" {
		seen[req.After] = struct{}{}
	}

	var (
		posts []models.Post
		after = req.After
		next  string
	)

	for page := 1; ; page++ {
		params := req.SearchParams
		params.After = after

		pagePosts, pageNext, err := s.fetchPage(ctx, params)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", page, err)
		}

		posts = append(posts, pagePosts...)
		next = pageNext

		s.logger.Debug("fetched page",
			zap.Int("page", page),
			zap.Int("page_posts", len(pagePosts)),
			zap.Int("total", len(posts)),
			zap.Int("limit", limit))

		if len(posts) >= limit {
			posts = posts[:limit]
			break
		}

		if next == "" || len(pagePosts) == 0 {
			break
		}

		if _, dup := seen[next]; dup {
			s.logger.Warn("continuation token repeated, stopping pagination",
				zap.String("after", next),
				zap.Int("page", page))
			next = ""
			break
		}
		seen[next] = struct{}{}
		after = next
	}

	s.logger.Info("paginated search completed",
		zap.String("query", req.Query),
		zap.Int("posts", len(posts)),
		zap.Int("limit", limit),
		zap.String("mode", string(mode)),
		zap.Duration("elapsed", time.Since(startTime)))

	// Pagination is bounded by limit; MaxResults only applies to single pages.
	req.MaxResults = 0
	return s.respond(req, mode, posts, next)
}

func (s *searchService) fetchPage(ctx context.Context, params client.SearchParams) ([]models.Post, string, error) {
	data, err := s.client.Search(ctx, params)
	if err != nil {
		return nil, "", err
	}

	posts, after, err := s.parser.ParseSearch(ctx, data)
	var upstreamErr *parser.UpstreamError
	if errors.As(err, &upstreamErr) {
		return nil, "", &client.APIError{
			StatusCode: http.StatusOK,
			Message:    upstreamErr.Message,
		}
	}
	if err != nil {
		return nil, "", &client.APIError{
			StatusCode: http.StatusOK,
			Message:    "unexpected response payload",
			Err:        fmt.Errorf("%w: %w", client.ErrMalformedResponse, err),
		}
	}

	return posts, after, nil
}

func (s *searchService) respond(req Request, mode models.ReturnMode, posts []models.Post, after string) (*models.SearchResponse, error) {
	if mode == models.ReturnFile {
		path, err := s.writeResults(req, posts, after)
		if err != nil {
			return nil, err
		}
		return &models.SearchResponse{
			Success:  true,
			Count:    len(posts),
			FilePath: path,
			After:    after,
		}, nil
	}

	if req.MaxResults > 0 && len(posts) > req.MaxResults {
		posts = posts[:req.MaxResults]
	}
	if posts == nil {
		posts = []models.Post{}
	}

	return &models.SearchResponse{
		Success: true,
		Count:   len(posts),
		Posts:   posts,
		After:   after,
	}, nil
}
