// internal/parser/interface.go
package parser

import (
	"context"
	"encoding/json"

	"reddit-search-mcp/internal/models"
)

type ParserInterface interface {
	ParseSearch(ctx context.Context, data json.RawMessage) ([]models.Post, string, error)
}
