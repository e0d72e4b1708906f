package root

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jaydenlee09/GameOfLife/internal/engine"
	"github.com/jaydenlee09/GameOfLife/internal/ui"
)

func newPlayerCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "player", Short: "Manage the player"}
	cmd.AddCommand(newPlayerRenameCmd(), newPlayerPenaltyCmd())
	return cmd
}

func newPlayerRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <name>",
		Short: "Rename the player",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, func(ctx context.Context, svc *engine.Service) error {
				p, err := svc.Rename(ctx, strings.Join(args, " "))
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconDone)+" Renamed to "+ui.Key.Render(p.Name))
				return nil
			})
		},
	}
}

func newPlayerPenaltyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "penalty <stat>",
		Short: "Record a poor decision (-100 XP to a stat)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stat, err := engine.ParseStat(args[0])
			if err != nil {
				return err
			}
			return withService(cmd, func(ctx context.Context, svc *engine.Service) error {
				res, err := svc.PoorDecision(ctx, stat)
				if err != nil {
					return err
				}
				printReward(cmd.OutOrStdout(), "Poor decision recorded", res)
				return nil
			})
		},
	}
}
