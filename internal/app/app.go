// internal/app/app.go
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"reddit-search-mcp/internal/client"
	"reddit-search-mcp/internal/config"
	handler "reddit-search-mcp/internal/handler/http"
	"reddit-search-mcp/internal/parser"
	"reddit-search-mcp/internal/router"
	"reddit-search-mcp/internal/search"
	"reddit-search-mcp/internal/tools"
)

// Version is reported by the MCP server and the version command.
const Version = "v0.1.0"

type App struct {
	Config  *config.Config
	Echo    *echo.Echo
	Service search.SearchService
	Client  *client.SearchClient
	Parser  parser.ParserInterface
	Tools   *tools.Server
	Logger  *zap.Logger
}

// Initialize wires the search stack. The echo server is built but not started.
func Initialize(cfg *config.Config, logger *zap.Logger) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	searchClient, err := client.NewSearchClient(cfg, logger.Named("client"))
	if err != nil {
		return nil, fmt.Errorf("failed to create search client: %w", err)
	}

	redditParser := parser.NewRedditParser()
	searchService := search.NewSearchService(searchClient, redditParser, cfg.OutputDir, logger.Named("search"))

	toolServer, err := tools.NewServer(searchService, Version, logger.Named("mcp"))
	if err != nil {
		return nil, fmt.Errorf("failed to create MCP server: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.ReadTimeout
	e.Server.WriteTimeout = cfg.WriteTimeout
	e.Use(middleware.RequestLoggerWithConfig(requestLoggerConfig(logger.Named("http"))))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	router.NewRouter(e, handler.NewSearchHandler(searchService, logger.Named("handler")), toolServer.HTTPHandler())

	return &App{
		Config:  cfg,
		Echo:    e,
		Service: searchService,
		Client:  searchClient,
		Parser:  redditParser,
		Tools:   toolServer,
		Logger:  logger,
	}, nil
}

// Start blocks until the server stops. A graceful shutdown is not an error.
func (a *App) Start() error {
	port := a.Config.ServerPort
	if port == "" {
		port = "8080"
	}

	a.Logger.Info("starting server",
		zap.String("addr", ":"+port),
		zap.String("swagger", "http://localhost:"+port+"/swagger/index.html"),
		zap.String("mcp", "http://localhost:"+port+"/mcp"))

	if err := a.Echo.Start(":" + port); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (a *App) Shutdown(ctx context.Context) error {
	return a.Echo.Shutdown(ctx)
}

func requestLoggerConfig(logger *zap.Logger) middleware.RequestLoggerConfig {
	return middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURIPath: true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("path", v.URIPath),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
				logger.Warn("request", fields...)
				return nil
			}
			logger.Info("request", fields...)
			return nil
		},
	}
}
