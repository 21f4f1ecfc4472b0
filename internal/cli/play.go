package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/plus3/blockfall/engine"
	"github.com/plus3/blockfall/frontend/terminal"
	"github.com/plus3/blockfall/frontend/window"
)

func newWindowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "window",
		Short: "Play in a desktop window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			cfg, err := configFromContext(ctx)
			if err != nil {
				return err
			}

			e := engine.New(cfg.EngineOptions(logger)...)
			err = window.Run(ctx, e, window.Options{
				Title:    cfg.Window.Title,
				CellSize: cfg.Window.CellSize,
				Margin:   cfg.Window.Margin,
				Debug:    cfg.Window.Debug,
				Logger:   logger,
			})
			if err != nil {
				return fmt.Errorf("window: %w", err)
			}

			logger.Info("session finished", "locked", e.State().Locked, "ticks", e.State().Ticks)
			return nil
		},
	}
}

func newTermCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "term",
		Short: "Play inside the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			cfg, err := configFromContext(ctx)
			if err != nil {
				return err
			}

			// the program owns the terminal, so the engine runs without a logger
			e := engine.New(cfg.EngineOptions(nil)...)
			logger.Debug("starting terminal session", "fps", cfg.Terminal.FrameRate)

			err = terminal.Run(e, cfg.Terminal.FrameRate,
				tea.WithContext(ctx),
				tea.WithAltScreen(),
			)
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if err != nil {
				return fmt.Errorf("terminal: %w", err)
			}

			logger.Info("session finished", "locked", e.State().Locked, "ticks", e.State().Ticks)
			return nil
		},
	}
}
