package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"reddit-search-mcp/internal/app"
	"reddit-search-mcp/internal/client"
	"reddit-search-mcp/internal/models"
	"reddit-search-mcp/internal/search"
)

var searchCMD = &cobra.Command{
	Use:   "search [query]",
	Short: "Run one search and print the response JSON",
	Long: `Run a single search against the ScrapeCreators API and print the response envelope.
With --limit the search follows continuation tokens until limit posts are collected.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		log, err := newLogger(cfg, true)
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		req, limit, err := searchRequestFromFlags(cmd, args)
		if err != nil {
			return err
		}

		application, err := app.Initialize(cfg, log)
		if err != nil {
			return fmt.Errorf("failed to initialize application: %w", err)
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		var resp *models.SearchResponse
		if limit > 0 {
			resp, err = application.Service.SearchWithPagination(ctx, req, limit)
		} else {
			resp, err = application.Service.Search(ctx, req)
		}
		if err != nil {
			return fmt.Errorf("%s error: %w", client.KindOf(err), err)
		}

		out, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode response: %w", err)
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return err
	},
}

func init() {
	addSearchFlags(searchCMD.Flags())
	rootCMD.AddCommand(searchCMD)
}

func addSearchFlags(f *pflag.FlagSet) {
	f.StringP("query", "q", "", "search keywords, may also be given as the first argument")
	f.String("sort", "", "`relevance/new/top/comment_count`")
	f.String("timeframe", "", "`all/day/week/month/year`")
	f.String("after", "", "continuation token from a previous response")
	f.String("author", "", "only posts by this author")
	f.String("subreddit", "", "only posts in this subreddit")
	f.String("title", "", "phrase that must appear in the title")
	f.String("selftext", "", "phrase that must appear in the body")
	f.String("flair", "", "only posts with this flair")
	f.String("url", "", "only link posts to this URL or domain")
	f.String("self", "", "`true` for text posts only, `false` for link posts only")
	f.String("return-mode", string(models.ReturnInline), "`inline/file`")
	f.Int("max-results", 0, "truncate inline results to this many posts")
	f.Int("limit", 0, "paginate until this many posts are collected")
}

func searchRequestFromFlags(cmd *cobra.Command, args []string) (search.Request, int, error) {
	f := cmd.Flags()
	str := func(name string) string {
		v, _ := f.GetString(name)
		return v
	}

	query := str("query")
	if len(args) == 1 {
		if query != "" {
			return search.Request{}, 0, fmt.Errorf("query given both as argument and --query")
		}
		query = args[0]
	}

	req := search.Request{
		SearchParams: client.SearchParams{
			Query:     query,
			Sort:      str("sort"),
			Timeframe: str("timeframe"),
			After:     str("after"),
			Modifiers: client.Modifiers{
				Author:    str("author"),
				Subreddit: str("subreddit"),
				Title:     str("title"),
				Selftext:  str("selftext"),
				Flair:     str("flair"),
				URL:       str("url"),
			},
		},
		ReturnMode: models.ReturnMode(str("return-mode")),
	}

	if s := str("self"); s != "" {
		v, err := strconv.ParseBool(s)
		if err != nil {
			return search.Request{}, 0, fmt.Errorf("invalid --self value %q", s)
		}
		req.Modifiers.Self = &v
	}

	maxResults, err := f.GetInt("max-results")
	if err != nil {
		return search.Request{}, 0, err
	}
	req.MaxResults = maxResults

	limit, err := f.GetInt("limit")
	if err != nil {
		return search.Request{}, 0, err
	}

	return req, limit, nil
}
