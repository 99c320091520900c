// cmd/server/main.go
package main

import (
	"os"

	_ "reddit-search-mcp/docs"

	"reddit-search-mcp/cmd/server/cmd"
)

// @title Reddit Search MCP API
// @version 1.0
// @description REST and MCP access to Reddit post search through the ScrapeCreators API.
// @termsOfService http://swagger.io/terms/
//
// @contact.name API Support
// @contact.email support@example.com
//
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
//
// @BasePath /

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
