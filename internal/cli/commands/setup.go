package commands

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/leapstack-labs/jspy/internal/cli/config"
	"github.com/leapstack-labs/jspy/internal/cli/output"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext from the loaded configuration.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// getConfig returns the current configuration.
// It uses config.GetCurrentConfig() if available, otherwise falls back to environment variables.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	cfg := config.Default()
	cfg.Source = os.Getenv(config.EnvPrefix + "SOURCE")
	cfg.OutDir = os.Getenv(config.EnvPrefix + "OUT_DIR")
	cfg.OutputFormat = getEnvOrDefault(config.EnvPrefix+"OUTPUT", config.DefaultOutput)
	cfg.Verbose = os.Getenv(config.EnvPrefix+"VERBOSE") == "true"
	cfg.Strict = os.Getenv(config.EnvPrefix+"STRICT") == "true"
	if n, err := strconv.Atoi(os.Getenv(config.EnvPrefix + "WORKERS")); err == nil && n > 0 {
		cfg.Workers = n
	}
	return cfg
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
