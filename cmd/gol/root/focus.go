package root

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jaydenlee09/GameOfLife/internal/engine"
	"github.com/jaydenlee09/GameOfLife/internal/ui"
)

func newFocusCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "focus", Short: "Focus session rewards (run the timer in `gol board`)"}

	reward := &cobra.Command{
		Use:   "reward <xp> [stat]",
		Short: "Claim a focus reward: 10, 20, 30, 50, 75 or 100 XP (default stat focus)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			xp, err := strconv.Atoi(args[0])
			if err != nil {
				return engine.ValidationError{Field: "xp", Reason: "not a number: " + strconv.Quote(args[0])}
			}
			stat := engine.DefaultFocusStat
			if len(args) == 2 {
				if stat, err = engine.ParseStat(args[1]); err != nil {
					return err
				}
			}
			return withService(cmd, func(ctx context.Context, svc *engine.Service) error {
				res, err := svc.RewardFocusSession(ctx, stat, xp)
				if err != nil {
					return err
				}
				printReward(cmd.OutOrStdout(), "Focus session", res)
				return nil
			})
		},
	}

	presets := &cobra.Command{
		Use:   "presets",
		Short: "List timer presets and reward tiers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconTimer, "Focus"))
			for _, d := range engine.FocusPresets {
				fmt.Fprintln(out, "- "+engine.FormatClock(d))
			}
			fmt.Fprintln(out, ui.LabelValue("Rewards", fmt.Sprint(engine.FocusRewards)))
			return nil
		},
	}

	cmd.AddCommand(reward, presets)
	return cmd
}
