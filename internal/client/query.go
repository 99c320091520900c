package client

import (
	"fmt"
	"strconv"
	"strings"
)

type Sort string

const (
	SortRelevance    Sort = "relevance"
	SortNew          Sort = "new"
	SortTop          Sort = "top"
	SortCommentCount Sort = "comment_count"
)

var validSorts = []Sort{SortRelevance, SortNew, SortTop, SortCommentCount}

type Timeframe string

const (
	TimeframeAll   Timeframe = "all"
	TimeframeDay   Timeframe = "day"
	TimeframeWeek  Timeframe = "week"
	TimeframeMonth Timeframe = "month"
	TimeframeYear  Timeframe = "year"
)

var validTimeframes = []Timeframe{TimeframeAll, TimeframeDay, TimeframeWeek, TimeframeMonth, TimeframeYear}

// ParseSort returns the Sort named by s. An empty string selects relevance.
func ParseSort(s string) (Sort, error) {
	if s == "" {
		return SortRelevance, nil
	}
	for _, v := range validSorts {
		if string(v) == s {
			return v, nil
		}
	}
	return "", validationErrorf("invalid sort option: %s. Valid options are: %s", s, joinOptions(validSorts))
}

// ParseTimeframe returns the Timeframe named by s. An empty string selects all.
func ParseTimeframe(s string) (Timeframe, error) {
	if s == "" {
		return TimeframeAll, nil
	}
	for _, v := range validTimeframes {
		if string(v) == s {
			return v, nil
		}
	}
	return "", validationErrorf("invalid timeframe option: %s. Valid options are: %s", s, joinOptions(validTimeframes))
}

func joinOptions[T ~string](opts []T) string {
	parts := make([]string, len(opts))
	for i, o := range opts {
		parts[i] = string(o)
	}
	return strings.Join(parts, ", ")
}

// Modifiers are the search operators understood by the upstream endpoint.
// Empty fields are not sent.
type Modifiers struct {
	Author    string `json:"author,omitempty"`
	Subreddit string `json:"subreddit,omitempty"`
	Title     string `json:"title,omitempty"`
	Selftext  string `json:"selftext,omitempty"`
	Flair     string `json:"flair,omitempty"`
	URL       string `json:"url,omitempty"`
	Self      *bool  `json:"self,omitempty"`
}

// IsZero reports whether no modifier is set.
func (m Modifiers) IsZero() bool {
	return len(m.terms()) == 0
}

// terms renders each set modifier as a query operator in a fixed order.
// title and selftext are quoted, self is a lowercase boolean.
func (m Modifiers) terms() []string {
	var terms []string
	add := func(key, value string, quote bool) {
		value = strings.TrimSpace(value)
		if value == "" {
			return
		}
		if quote {
			value = strconv.Quote(value)
		}
		terms = append(terms, key+":"+value)
	}

	add("author", m.Author, false)
	add("subreddit", m.Subreddit, false)
	add("title", m.Title, true)
	add("selftext", m.Selftext, true)
	add("flair", m.Flair, false)
	add("url", m.URL, false)
	if m.Self != nil {
		terms = append(terms, "self:"+strconv.FormatBool(*m.Self))
	}

	return terms
}

// SearchParams describes one page request against the search endpoint.
type SearchParams struct {
	Query     string
	Sort      string
	Timeframe string
	After     string
	Modifiers Modifiers
}

// Validate checks the enumerated fields and that there is something to search for.
func (p SearchParams) Validate() error {
	if _, err := ParseSort(p.Sort); err != nil {
		return err
	}
	if _, err := ParseTimeframe(p.Timeframe); err != nil {
		return err
	}
	if strings.TrimSpace(p.Query) == "" && p.Modifiers.IsZero() {
		return validationErrorf("query must not be empty")
	}
	return nil
}

// BuildQuery joins the base query and the modifier operators with AND.
// A blank base query becomes a wildcard.
func BuildQuery(query string, m Modifiers) string {
	base := strings.TrimSpace(query)
	if base == "" {
		base = "*"
	}
	return strings.Join(append([]string{base}, m.terms()...), " AND ")
}

func (p SearchParams) String() string {
	return fmt.Sprintf("query=%q sort=%s timeframe=%s after=%q", BuildQuery(p.Query, p.Modifiers), p.Sort, p.Timeframe, p.After)
}
