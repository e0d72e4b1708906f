package root

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jaydenlee09/GameOfLife/internal/tui"
)

func newBoardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Open the TUI dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			a, err := openApp(ctx, true)
			if err != nil {
				return err
			}
			defer a.Close()

			logger.Info("board open")
			return tui.RunBoard(ctx, a.svc, a.notifier.Events(), cmd.OutOrStdout())
		},
	}
}
