package tools

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"
	srv "github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"reddit-search-mcp/internal/search"
)

const ServerName = "reddit-search-mcp"

// Server exposes the search service as MCP tools.
type Server struct {
	mcp    *srv.MCPServer
	svc    search.SearchService
	logger *zap.Logger
}

// NewServer registers the hello, reddit_search and reddit_search_paginated tools.
func NewServer(svc search.SearchService, version string, logger *zap.Logger) (*Server, error) {
	if svc == nil {
		return nil, fmt.Errorf("search service is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	mcpServer := srv.NewMCPServer(
		ServerName,
		version,
		srv.WithToolCapabilities(true),
		srv.WithInstructions("Use reddit_search for a single page of Reddit posts and reddit_search_paginated to collect up to `limit` posts across pages."),
		srv.WithRecovery(),
		srv.WithHooks(newHooks(logger.Named("hooks"))),
	)

	s := &Server{
		mcp:    mcpServer,
		svc:    svc,
		logger: logger,
	}

	mcpServer.AddTool(helloTool(), s.handleHello)
	mcpServer.AddTool(searchTool(), s.handleSearch)
	mcpServer.AddTool(paginatedSearchTool(), s.handleSearchPaginated)

	return s, nil
}

// MCPServer returns the underlying protocol server.
func (s *Server) MCPServer() *srv.MCPServer {
	return s.mcp
}

// HTTPHandler serves MCP over streamable HTTP.
func (s *Server) HTTPHandler() http.Handler {
	return srv.NewStreamableHTTPServer(s.mcp)
}

// ServeStdio serves MCP over stdin/stdout until the client disconnects.
func (s *Server) ServeStdio() error {
	return srv.ServeStdio(s.mcp)
}

func newHooks(logger *zap.Logger) *srv.Hooks {
	hooks := &srv.Hooks{}

	hooks.AddBeforeAny(func(ctx context.Context, id any, method mcp.MCPMethod, message any) {
		logger.Debug("mcp request received", zap.Any("id", id), zap.String("method", string(method)))
	})

	hooks.AddOnError(func(ctx context.Context, id any, method mcp.MCPMethod, message any, err error) {
		logger.Warn("mcp request failed", zap.Any("id", id), zap.String("method", string(method)), zap.Error(err))
	})

	return hooks
}
