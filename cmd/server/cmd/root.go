package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"reddit-search-mcp/internal/config"
	"reddit-search-mcp/internal/logger"
)

var rootCMD = &cobra.Command{
	Use:          "reddit-search-mcp",
	Short:        "Reddit search over REST and MCP",
	Long:         `Search Reddit posts through the ScrapeCreators API, served as REST endpoints and MCP tools.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
}

func init() {
	addGlobalFlags(rootCMD.PersistentFlags())
}

func addGlobalFlags(f *pflag.FlagSet) {
	f.String("api-key", "", "ScrapeCreators API key, overrides REDDIT_API_KEY")
	f.String("log-level", "", "`debug/info/warn/error`, overrides LOG_LEVEL")
	f.String("port", "", "HTTP listen port, overrides SERVER_PORT")
	f.String("output-dir", "", "directory for file mode results, overrides SEARCH_OUTPUT_DIR")
}

// Execute runs the root command.
func Execute() error {
	return rootCMD.Execute()
}

// loadConfig reads the environment and applies any flags the user set.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	flags := cmd.Flags()
	overrides := map[string]*string{
		"api-key":    &cfg.APIKey,
		"log-level":  &cfg.LogLevel,
		"port":       &cfg.ServerPort,
		"output-dir": &cfg.OutputDir,
	}
	for name, dst := range overrides {
		if !flags.Changed(name) {
			continue
		}
		v, err := flags.GetString(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read --%s: %w", name, err)
		}
		*dst = v
	}

	return cfg, nil
}

// newLogger builds the process logger. With stdoutReserved, console output is
// moved to stderr so stdout carries only protocol traffic.
func newLogger(cfg *config.Config, stdoutReserved bool) (*zap.Logger, error) {
	lc := logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: cfg.LogOutput,
		File:   cfg.LogFile,
	}

	if stdoutReserved {
		switch lc.Output {
		case "console":
			lc.Output = "stderr"
		case "both":
			lc.Output = "file"
		}
	}

	return logger.New(lc)
}
