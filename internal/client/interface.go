// internal/client/interface.go
package client

import (
	"context"
	"encoding/json"
)

type SearchClientInterface interface {
	Search(ctx context.Context, params SearchParams) (json.RawMessage, error)
	GetSearchURL(params SearchParams) string
}
