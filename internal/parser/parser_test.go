package parser_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"reddit-search-mcp/internal/parser"
)

func TestParseSearchPostsShape(t *testing.T) {
	p := parser.NewRedditParser()

	data := []byte(`{
		"success": true,
		"posts": [
			{
				"id": "abc123",
				"subreddit": "test",
				"title": "Test Post",
				"selftext": "Test Content",
				"author": "testuser",
				"score": 42,
				"upvote_ratio": 0.95,
				"num_comments": 10,
				"created_utc": 1234567890,
				"url": "https://reddit.com/r/test/comments/abc123",
				"permalink": "/r/test/comments/abc123",
				"is_self": true,
				"is_video": false,
				"created_at_iso": "2024-03-20T12:34:56.000Z"
			}
		],
		"after": "t3_next"
	}`)

	posts, after, err := p.ParseSearch(context.Background(), json.RawMessage(data))
	if err != nil {
		t.Fatalf("Failed to parse search: %v", err)
	}

	if len(posts) != 1 {
		t.Fatalf("Expected 1 post, got %d", len(posts))
	}
	if after != "t3_next" {
		t.Errorf("Expected after 't3_next', got %q", after)
	}

	post := posts[0]
	if post.ID != "abc123" || post.Subreddit != "test" || post.Author != "testuser" {
		t.Errorf("Unexpected identity fields: %+v", post)
	}
	if post.Score != 42 || post.NumComments != 10 || post.UpvoteRatio != 0.95 {
		t.Errorf("Unexpected counters: %+v", post)
	}
	if !post.IsSelf || post.IsVideo {
		t.Errorf("Unexpected flags: %+v", post)
	}
	if post.CreatedAtISO != "2024-03-20T12:34:56.000Z" {
		t.Errorf("Expected upstream created_at_iso to be kept, got %q", post.CreatedAtISO)
	}
	if len(post.Raw) == 0 {
		t.Error("Expected raw payload to be retained")
	}
}

func TestParseSearchListingShape(t *testing.T) {
	p := parser.NewRedditParser()

	data := []byte(`{
		"data": {
			"children": [
				{
					"kind": "t3",
					"data": {
						"id": "abc123",
						"title": "Test post",
						"author": "testuser",
						"score": 42,
						"created_utc": 1620000000.0,
						"subreddit": "test",
						"link_flair_text": "Discussion",
						"over_18": true,
						"permalink": "/r/test/comments/abc123/test_post"
					}
				},
				{"kind": "t1", "data": {"id": "comment1", "body": "not a post"}}
			],
			"after": "t3_next123"
		}
	}`)

	posts, after, err := p.ParseSearch(context.Background(), json.RawMessage(data))
	if err != nil {
		t.Fatalf("Failed to parse listing: %v", err)
	}

	if len(posts) != 1 {
		t.Fatalf("Expected only the t3 child, got %d posts", len(posts))
	}
	if after != "t3_next123" {
		t.Errorf("Expected pagination cursor 't3_next123', got %q", after)
	}
	if posts[0].Flair != "Discussion" || !posts[0].NSFW {
		t.Errorf("Unexpected flair/nsfw: %+v", posts[0])
	}
	if posts[0].CreatedAtISO != "2021-05-03T00:00:00Z" {
		t.Errorf("Expected derived created_at_iso, got %q", posts[0].CreatedAtISO)
	}
}

func TestParseSearchEmpty(t *testing.T) {
	p := parser.NewRedditParser()

	for _, body := range []string{`{"data":{"children":[]}}`, `{"success":true,"posts":[]}`} {
		posts, after, err := p.ParseSearch(context.Background(), json.RawMessage(body))
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", body, err)
		}
		if len(posts) != 0 || after != "" {
			t.Errorf("%s: expected no posts and no cursor, got %d posts, after %q", body, len(posts), after)
		}
	}
}

func TestParseSearchMalformedItemFailsPage(t *testing.T) {
	p := parser.NewRedditParser()

	cases := map[string]string{
		"wrong field type": `{"posts":[{"id":"ok"},{"id":"bad","score":"lots"}]}`,
		"not an object":    `{"posts":[{"id":"ok"}, 42]}`,
		"null item":        `{"posts":[null]}`,
		"bad listing":      `{"data":{"children":["oops"]}}`,
	}

	for name, body := range cases {
		posts, _, err := p.ParseSearch(context.Background(), json.RawMessage(body))
		if !errors.Is(err, parser.ErrMalformedItem) {
			t.Errorf("%s: expected ErrMalformedItem, got %v", name, err)
		}
		if posts != nil {
			t.Errorf("%s: expected no partial posts, got %d", name, len(posts))
		}
	}
}

func TestParseSearchMalformedEnvelope(t *testing.T) {
	p := parser.NewRedditParser()

	_, _, err := p.ParseSearch(context.Background(), json.RawMessage(`[1,2,3]`))
	if err == nil {
		t.Fatal("Expected error for non-object payload")
	}
	if errors.Is(err, parser.ErrMalformedItem) {
		t.Error("Envelope failures should not be reported as item failures")
	}
}

func TestParseSearchRejectsMissingResults(t *testing.T) {
	p := parser.NewRedditParser()

	for _, body := range []string{`null`, `{}`, `{"success":true}`, `{"posts":null}`, `{"data":{}}`} {
		posts, _, err := p.ParseSearch(context.Background(), json.RawMessage(body))
		if !errors.Is(err, parser.ErrMissingResults) {
			t.Errorf("%s: expected ErrMissingResults, got %v", body, err)
		}
		if posts != nil {
			t.Errorf("%s: expected no posts, got %d", body, len(posts))
		}
	}
}

func TestParseSearchUpstreamFailure(t *testing.T) {
	p := parser.NewRedditParser()

	_, _, err := p.ParseSearch(context.Background(), json.RawMessage(`{"success":false,"message":"Credits exhausted"}`))

	var upstreamErr *parser.UpstreamError
	if !errors.As(err, &upstreamErr) {
		t.Fatalf("Expected UpstreamError, got %v", err)
	}
	if upstreamErr.Message != "Credits exhausted" {
		t.Errorf("Expected upstream message to be kept, got %q", upstreamErr.Message)
	}
}
