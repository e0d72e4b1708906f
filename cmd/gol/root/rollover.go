package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jaydenlee09/GameOfLife/internal/engine"
	"github.com/jaydenlee09/GameOfLife/internal/ui"
)

func newRolloverCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rollover",
		Short: "Promote tomorrow's tasks if the day has changed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, func(ctx context.Context, svc *engine.Service) error {
				// NewService already rolled over; report that run unless the day
				// changed again since.
				res := svc.StartupRollover()
				again, err := svc.Rollover(ctx)
				if err != nil {
					return err
				}
				if again.Recorded {
					res = again
				}
				out := cmd.OutOrStdout()
				if jsonOutput() {
					return printJSON(out, res)
				}
				if res.Promoted > 0 {
					fmt.Fprintln(out, ui.Good.Render(ui.IconLoop)+fmt.Sprintf(" Moved %d task(s) to today", res.Promoted))
					return nil
				}
				fmt.Fprintln(out, ui.Muted.Render("Up to date ("+res.Today+")"))
				return nil
			})
		},
	}
}
