package cli

import (
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/plus3/blockfall/internal/config"
)

// NewRootCommand builds the blockfall command tree. Configuration is loaded
// once before any subcommand runs.
func NewRootCommand() *cobra.Command {
	var (
		configPath string
		verbose    bool
	)

	root := &cobra.Command{
		Use:           "blockfall",
		Short:         "blockfall drops tetromino pieces onto a 10x20 field",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			level := cfg.Level()
			if verbose {
				level = log.DebugLevel
			}
			logger := newLogger(cmd.ErrOrStderr(), level).With("session", uuid.NewString())
			logger.Debug("configuration loaded",
				"path", configPath,
				"tick", cfg.TickInterval,
				"seed", cfg.Seed,
				"collision", cfg.Collision,
			)

			ctx := withLogger(cmd.Context(), logger)
			cmd.SetContext(withConfig(ctx, cfg))
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a yaml configuration file")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newWindowCmd())
	root.AddCommand(newTermCmd())
	root.AddCommand(newSimCmd())

	return root
}
