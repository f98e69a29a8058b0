// Package commands defines all Cobra CLI commands for the vincula binary.
package commands

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/54b3r/vincula-go/internal/audit"
	"github.com/54b3r/vincula-go/internal/config"
	"github.com/54b3r/vincula-go/internal/logging"
)

// configPath holds the --config flag value for YAML config file override.
var configPath string

// loadedConfigPath stores the resolved config file path for audit logging
// and for reading the declarative tables (languages, risk_patterns).
var loadedConfigPath string

// NewRootCmd constructs the root Cobra command that all subcommands attach to.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "vincula",
		Short: "vincula: grounded relationship advice from your own documents",
		Long: `vincula answers relationship and communication questions in Portuguese,
English, Spanish, French and German. It detects the language of each message,
retrieves the closest passages from a local document corpus and composes a
structured reply: assessment, explanation and resolution steps.

Messages that mention self-harm get a short safety message instead.

The corpus lives under VINCULA_DOCS_DIR (default ./docs) with one
subdirectory per language plus a shared "common" directory.
See 'vincula --help' for available commands.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// A missing .env is normal.
			_ = godotenv.Load()

			log := logging.New()

			// Load YAML config (env vars always override YAML values).
			path, err := config.Load(configPath, log)
			if err != nil {
				return err
			}
			loadedConfigPath = path

			audit.LogCommandStart(log, cmd.Name(), loadedConfigPath)

			return nil
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "Path to YAML config file (default: ~/.vincula/config.yaml)")

	root.AddCommand(
		NewAskCmd(),
		NewChatCmd(),
		NewSearchCmd(),
		NewIndexCmd(),
		NewServeCmd(),
		NewStatsCmd(),
		NewMCPCmd(),
		NewVersionCmd(),
	)

	return root
}
