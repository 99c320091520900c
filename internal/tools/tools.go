package tools

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cast"
	"go.uber.org/zap"

	"reddit-search-mcp/internal/client"
	"reddit-search-mcp/internal/models"
	"reddit-search-mcp/internal/search"
)

func helloTool() mcp.Tool {
	return mcp.NewTool(
		"hello",
		mcp.WithDescription("Return a greeting message."),
		mcp.WithString("name", mcp.Required(), mcp.Description("The name to greet.")),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

// searchOptions are shared by both search tools.
func searchOptions() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("query", mcp.Description("Search keywords or phrase. Required unless a modifier is set.")),
		mcp.WithString("sort", mcp.Description("Sort order."), mcp.Enum("relevance", "new", "top", "comment_count")),
		mcp.WithString("timeframe", mcp.Description("Time window."), mcp.Enum("all", "day", "week", "month", "year")),
		mcp.WithString("after", mcp.Description("Continuation token from a previous response.")),
		mcp.WithString("author", mcp.Description("Only posts by this author.")),
		mcp.WithString("subreddit", mcp.Description("Only posts in this subreddit.")),
		mcp.WithString("title", mcp.Description("Phrase that must appear in the title.")),
		mcp.WithString("selftext", mcp.Description("Phrase that must appear in the post body.")),
		mcp.WithString("flair", mcp.Description("Only posts with this flair.")),
		mcp.WithString("url", mcp.Description("Only link posts to this URL or domain.")),
		mcp.WithBoolean("self", mcp.Description("true for text posts only, false for link posts only.")),
		mcp.WithString("return_mode", mcp.Description("inline returns posts, file writes them to disk and returns the path."), mcp.Enum("inline", "file")),
		mcp.WithString("output_dir", mcp.Description("Directory for file mode output.")),
		mcp.WithReadOnlyHintAnnotation(false),
		mcp.WithOpenWorldHintAnnotation(true),
	}
}

func searchTool() mcp.Tool {
	opts := append([]mcp.ToolOption{
		mcp.WithDescription("Search Reddit posts through the ScrapeCreators API and return one page of results."),
		mcp.WithNumber("max_results", mcp.Description("Truncate inline results to this many posts.")),
	}, searchOptions()...)
	return mcp.NewTool("reddit_search", opts...)
}

func paginatedSearchTool() mcp.Tool {
	opts := append([]mcp.ToolOption{
		mcp.WithDescription("Search Reddit posts and follow continuation tokens until `limit` posts are collected or results run out."),
		mcp.WithNumber("limit", mcp.Required(), mcp.Description("Maximum number of posts to collect."), mcp.Min(1)),
	}, searchOptions()...)
	return mcp.NewTool("reddit_search_paginated", opts...)
}

func (s *Server) handleHello(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Hello, %s! Welcome to the MCP Server.", name)), nil
}

func (s *Server) handleSearch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	searchReq, err := readSearchRequest(req)
	if err != nil {
		return s.toolError("reddit_search", err), nil
	}

	maxResults, _, err := readIntArg(req, "max_results")
	if err != nil {
		return s.toolError("reddit_search", err), nil
	}
	searchReq.MaxResults = maxResults

	resp, err := s.svc.Search(ctx, searchReq)
	if err != nil {
		return s.toolError("reddit_search", err), nil
	}

	return encodeResponse(resp), nil
}

func (s *Server) handleSearchPaginated(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	searchReq, err := readSearchRequest(req)
	if err != nil {
		return s.toolError("reddit_search_paginated", err), nil
	}

	limit, ok, err := readIntArg(req, "limit")
	if err == nil && !ok {
		err = fmt.Errorf("%w: required argument \"limit\" not found", client.ErrValidation)
	}
	if err != nil {
		return s.toolError("reddit_search_paginated", err), nil
	}

	resp, err := s.svc.SearchWithPagination(ctx, searchReq, limit)
	if err != nil {
		return s.toolError("reddit_search_paginated", err), nil
	}

	return encodeResponse(resp), nil
}

func (s *Server) toolError(tool string, err error) *mcp.CallToolResult {
	kind := client.KindOf(err)
	s.logger.Warn("tool call failed", zap.String("tool", tool), zap.String("kind", kind), zap.Error(err))
	return mcp.NewToolResultError(fmt.Sprintf("%s error: %v", kind, err))
}

func encodeResponse(resp *models.SearchResponse) *mcp.CallToolResult {
	result, err := mcp.NewToolResultJSON(resp)
	if err != nil {
		return mcp.NewToolResultError("failed to encode search response")
	}
	return result
}

func readSearchRequest(req mcp.CallToolRequest) (search.Request, error) {
	out := search.Request{
		SearchParams: client.SearchParams{
			Query:     req.GetString("query", ""),
			Sort:      req.GetString("sort", ""),
			Timeframe: req.GetString("timeframe", ""),
			After:     req.GetString("after", ""),
			Modifiers: client.Modifiers{
				Author:    req.GetString("author", ""),
				Subreddit: req.GetString("subreddit", ""),
				Title:     req.GetString("title", ""),
				Selftext:  req.GetString("selftext", ""),
				Flair:     req.GetString("flair", ""),
				URL:       req.GetString("url", ""),
			},
		},
		ReturnMode: models.ReturnMode(strings.ToLower(req.GetString("return_mode", ""))),
		OutputDir:  req.GetString("output_dir", ""),
	}

	if v, ok := req.GetArguments()["self"]; ok && v != nil {
		self, err := cast.ToBoolE(v)
		if err != nil {
			return search.Request{}, fmt.Errorf("%w: invalid self argument: %v", client.ErrValidation, err)
		}
		out.Modifiers.Self = &self
	}

	return out, nil
}

// readIntArg reports whether key was present; JSON numbers arrive as float64.
func readIntArg(req mcp.CallToolRequest, key string) (int, bool, error) {
	v, ok := req.GetArguments()[key]
	if !ok || v == nil {
		return 0, false, nil
	}

	if f, ok := v.(float64); ok && (f != math.Trunc(f) || math.IsInf(f, 0)) {
		return 0, true, fmt.Errorf("%w: invalid %s argument: %v is not an integer", client.ErrValidation, key, f)
	}

	n, err := cast.ToIntE(v)
	if err != nil {
		return 0, true, fmt.Errorf("%w: invalid %s argument: %v", client.ErrValidation, key, err)
	}
	return n, true, nil
}
