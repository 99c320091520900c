package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"reddit-search-mcp/internal/app"
)

var stdioCMD = &cobra.Command{
	Use:   "stdio",
	Short: "Serve MCP tools over stdin/stdout",
	Args:  cobra.NoArgs,
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

		application, err := app.Initialize(cfg, log)
		if err != nil {
			return fmt.Errorf("failed to initialize application: %w", err)
		}

		log.Info("serving MCP over stdio")
		return application.Tools.ServeStdio()
	},
}

func init() {
	rootCMD.AddCommand(stdioCMD)
}
