package search

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"reddit-search-mcp/internal/client"
	"reddit-search-mcp/internal/models"
)

const maxSlugLen = 40

// writeResults stores posts as one JSON document and returns its absolute path.
// Names carry a timestamp and a random suffix; if two calls still resolve to
// the same path, the last write wins.
func (s *searchService) writeResults(req Request, posts []models.Post, after string) (string, error) {
	dir := req.OutputDir
	if dir == "" {
		dir = s.outputDir
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	if posts == nil {
		posts = []models.Post{}
	}

	sort, _ := client.ParseSort(req.Sort)
	timeframe, _ := client.ParseTimeframe(req.Timeframe)
	fetchedAt := s.now().UTC()

	doc := models.SearchFile{
		Query:     client.BuildQuery(req.Query, req.Modifiers),
		Sort:      string(sort),
		Timeframe: string(timeframe),
		FetchedAt: fetchedAt,
		Count:     len(posts),
		After:     after,
		Posts:     posts,
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode results: %w", err)
	}

	name := fmt.Sprintf("reddit_search_%s_%s_%s.json",
		slugify(req.Query), fetchedAt.Format("20060102T150405Z"), uuid.NewString()[:8])
	path := filepath.Join(dir, name)

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write results file: %w", err)
	}

	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	s.logger.Info("search results written", zap.String("path", path), zap.Int("posts", len(posts)))

	return path, nil
}

func slugify(query string) string {
	var b strings.Builder
	underscore := false
	for _, r := range strings.ToLower(query) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
			underscore = false
			continue
		}
		if !underscore && b.Len() > 0 {
			b.WriteByte('_')
			underscore = true
		}
	}

	slug := strings.Trim(b.String(), "_")
	if len(slug) > maxSlugLen {
		slug = strings.TrimRight(slug[:maxSlugLen], "_")
	}
	if slug == "" {
		slug = "all"
	}
	return slug
}
