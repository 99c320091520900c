package models

import (
	"encoding/json"
	"time"
)

// ReturnMode selects how search results are handed back to the caller.
type ReturnMode string

const (
	// ReturnInline keeps the posts in the response envelope.
	ReturnInline ReturnMode = "inline"
	// ReturnFile writes the posts to a JSON file and returns its path.
	ReturnFile ReturnMode = "file"
)

// Post represents a Reddit post returned by the search endpoint
// swagger:model Post
type Post struct {
	// Reddit post ID
	ID string `json:"id"`
	// Subreddit the post belongs to
	Subreddit string `json:"subreddit"`
	// Post title
	Title string `json:"title"`
	// Post body for self posts
	Selftext string `json:"selftext,omitempty"`
	// Author's username
	Author string `json:"author"`
	// Post score (upvotes minus downvotes)
	Score int `json:"score"`
	// Ratio of upvotes to total votes
	UpvoteRatio float64 `json:"upvote_ratio"`
	// Number of comments
	NumComments int `json:"num_comments"`
	// Creation time as unix seconds
	CreatedUTC int64 `json:"created_utc"`
	// Creation time in RFC 3339
	CreatedAtISO string `json:"created_at_iso"`
	// Link target
	URL string `json:"url"`
	// Path of the post on reddit.com
	Permalink string `json:"permalink"`
	// Post flair text
	Flair string `json:"flair,omitempty"`
	// Whether the post is a text post
	IsSelf bool `json:"is_self"`
	// Whether the post is a video
	IsVideo bool `json:"is_video"`
	// Whether the post is marked NSFW
	NSFW bool `json:"over_18"`

	// Raw is the upstream object the post was built from.
	Raw json.RawMessage `json:"-"`
}

// CreatedAt returns the creation time in UTC.
func (p Post) CreatedAt() time.Time {
	return time.Unix(p.CreatedUTC, 0).UTC()
}

// SearchResponse is the envelope returned for every search call.
// Exactly one of Posts and FilePath is set.
// swagger:model SearchResponse
type SearchResponse struct {
	// Whether the call succeeded
	Success bool `json:"success"`
	// Number of posts returned or written
	Count int `json:"count"`
	// Posts in inline mode
	Posts []Post `json:"posts,omitempty"`
	// Output file in file mode
	FilePath string `json:"file_path,omitempty"`
	// Continuation token for the next page
	After string `json:"after,omitempty"`
}

// SearchFile is the document written to disk in file mode.
type SearchFile struct {
	Query     string    `json:"query"`
	Sort      string    `json:"sort"`
	Timeframe string    `json:"timeframe"`
	FetchedAt time.Time `json:"fetched_at"`
	Count     int       `json:"count"`
	After     string    `json:"after,omitempty"`
	Posts     []Post    `json:"posts"`
}
