package cli

import (
	"context"
	"log/slog"

	"github.com/popcli/pop/internal/branding"
	"github.com/popcli/pop/internal/config"
	"github.com/popcli/pop/internal/log"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	logLevel string
	logger   = log.Discard()
)

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (default warn)")
}

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` generates parachain projects from curated templates and
prepares them as fresh git repositories ready for development.

Report issues at https://github.com/` + branding.GitHubRepo() + `/issues`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config.Load()
		if err := config.BindFlag(config.KeyLogLevel, cmd.Flags().Lookup("log-level")); err != nil {
			return err
		}
		logger = newLogger(cmd)
		return nil
	},
}

// newLogger resolves the log level: --log-level, then POP_DEBUG, then
// POP_LOG_LEVEL or log.level from the config file.
func newLogger(cmd *cobra.Command) *slog.Logger {
	cfg := log.FromEnv()
	if level := config.Get(config.KeyLogLevel); level != "" {
		if cmd.Flags().Changed("log-level") || !cfg.AddSource {
			cfg.Level = level
		}
	}
	cfg.Output = cmd.ErrOrStderr()
	return log.New(cfg)
}

// Execute runs the root command with build info injected via ldflags.
// Any failure is returned as an *ExitError.
func Execute(ctx context.Context, version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		return newExitError(err)
	}
	return nil
}
