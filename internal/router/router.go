// internal/router/router.go
package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	handler "reddit-search-mcp/internal/handler/http"
)

// NewRouter mounts the search endpoints and swagger UI. The MCP endpoint is
// only mounted when mcpHandler is non-nil.
func NewRouter(e *echo.Echo, sch *handler.SearchHandler, mcpHandler http.Handler) {
	e.GET("/search", sch.Search)
	e.GET("/search/paginated", sch.SearchPaginated)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	if mcpHandler != nil {
		e.Any("/mcp", echo.WrapHandler(mcpHandler))
	}
}
