// internal/parser/parser.go
package parser

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"reddit-search-mcp/internal/models"
)

// ErrMalformedItem is returned when a single result cannot be decoded.
// One bad item fails the whole page.
var ErrMalformedItem = errors.New("malformed result item")

// ErrMissingResults is returned when a payload carries neither a posts array
// nor a listing, including null and {}.
var ErrMissingResults = errors.New("payload has no results array")

// UpstreamError is a 200 payload the upstream itself marked with success=false.
type UpstreamError struct {
	Message string
}

func (e *UpstreamError) Error() string {
	return "upstream reported failure: " + e.Message
}

type RedditParser struct{}

func NewRedditParser() *RedditParser {
	return &RedditParser{}
}

// searchEnvelope covers both payload shapes served by the endpoint: a flat
// {"posts": [...], "after": ...} object and a Reddit listing under "data".
type searchEnvelope struct {
	Success *bool             `json:"success"`
	Message string            `json:"message"`
	Posts   []json.RawMessage `json:"posts"`
	After   string            `json:"after"`
	Data    *struct {
		Children []json.RawMessage `json:"children"`
		After    string            `json:"after"`
	} `json:"data"`
}

type listingChild struct {
	Kind string          `json:"kind"`
	Data json.RawMessage `json:"data"`
}

type postPayload struct {
	ID            string  `json:"id"`
	Subreddit     string  `json:"subreddit"`
	Title         string  `json:"title"`
	Selftext      string  `json:"selftext"`
	Author        string  `json:"author"`
	Score         int     `json:"score"`
	UpvoteRatio   float64 `json:"upvote_ratio"`
	NumComments   int     `json:"num_comments"`
	CreatedUTC    float64 `json:"created_utc"`
	CreatedAtISO  string  `json:"created_at_iso"`
	URL           string  `json:"url"`
	Permalink     string  `json:"permalink"`
	LinkFlairText *string `json:"link_flair_text"`
	Flair         *string `json:"flair"`
	IsSelf        bool    `json:"is_self"`
	IsVideo       bool    `json:"is_video"`
	Over18        bool    `json:"over_18"`
}

func (p *RedditParser) ParseSearch(ctx context.Context, data json.RawMessage) ([]models.Post, string, error) {
	var envelope searchEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, "", fmt.Errorf("parse search JSON: %w", err)
	}

	if envelope.Success != nil && !*envelope.Success {
		msg := envelope.Message
		if msg == "" {
			msg = "no message"
		}
		return nil, "", &UpstreamError{Message: msg}
	}

	if envelope.Posts == nil && (envelope.Data == nil || envelope.Data.Children == nil) {
		return nil, "", ErrMissingResults
	}

	items, after := envelope.Posts, envelope.After
	listing := false
	if items == nil && envelope.Data != nil {
		items, after = envelope.Data.Children, envelope.Data.After
		listing = true
	}

	posts := make([]models.Post, 0, len(items))
	for i, raw := range items {
		if listing {
			var child listingChild
			if err := decodeObject(raw, &child); err != nil {
				return nil, "", fmt.Errorf("%w at index %d: %v", ErrMalformedItem, i, err)
			}
			if child.Kind != "" && child.Kind != "t3" {
				continue
			}
			raw = child.Data
		}

		post, err := parsePost(raw)
		if err != nil {
			return nil, "", fmt.Errorf("%w at index %d: %v", ErrMalformedItem, i, err)
		}
		posts = append(posts, post)
	}

	return posts, after, nil
}

func parsePost(raw json.RawMessage) (models.Post, error) {
	var d postPayload
	if err := decodeObject(raw, &d); err != nil {
		return models.Post{}, err
	}

	created := int64(d.CreatedUTC)
	createdISO := d.CreatedAtISO
	if createdISO == "" {
		createdISO = time.Unix(created, 0).UTC().Format(time.RFC3339)
	}

	flair := ""
	switch {
	case d.LinkFlairText != nil:
		flair = *d.LinkFlairText
	case d.Flair != nil:
		flair = *d.Flair
	}

	return models.Post{
		ID:           d.ID,
		Subreddit:    d.Subreddit,
		Title:        d.Title,
		Selftext:     d.Selftext,
		Author:       d.Author,
		Score:        d.Score,
		UpvoteRatio:  d.UpvoteRatio,
		NumComments:  d.NumComments,
		CreatedUTC:   created,
		CreatedAtISO: createdISO,
		URL:          d.URL,
		Permalink:    d.Permalink,
		Flair:        flair,
		IsSelf:       d.IsSelf,
		IsVideo:      d.IsVideo,
		NSFW:         d.Over18,
		Raw:          append(json.RawMessage(nil), raw...),
	}, nil
}

// decodeObject rejects anything that is not a JSON object, including null.
func decodeObject(raw json.RawMessage, v any) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return fmt.Errorf("expected JSON object, got %s", preview(trimmed))
	}
	return json.Unmarshal(trimmed, v)
}

func preview(b []byte) string {
	if len(b) > 32 {
		return string(b[:32]) + "..."
	}
	if len(b) == 0 {
		return "empty value"
	}
	return string(b)
}
