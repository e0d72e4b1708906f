package root

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jaydenlee09/GameOfLife/internal/engine"
	"github.com/jaydenlee09/GameOfLife/internal/storage"
	"github.com/jaydenlee09/GameOfLife/internal/ui"
)

func newChallengeCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "challenge", Short: "Daily, weekly and monthly challenges"}
	cmd.AddCommand(
		newChallengeListCmd(),
		newChallengeStartCmd(),
		newChallengeDoneCmd(),
		newChallengeAddCmd(),
		newChallengeRmCmd(),
	)
	return cmd
}

func challengeIDs(svc *engine.Service) []string {
	list := svc.Challenges()
	ids := make([]string, len(list))
	for i, c := range list {
		ids[i] = c.ID
	}
	return ids
}

func challengeStatus(c storage.Challenge, svc *engine.Service) string {
	switch {
	case c.Completed:
		return ui.Good.Render("done")
	case c.Started:
		left, _ := engine.TimeLeft(c, svc.Now())
		return ui.Warn.Render(engine.FormatTimeLeft(left, engine.ChallengeDuration(c.Duration)))
	default:
		return ui.Muted.Render("not started")
	}
}

func newChallengeListCmd() *cobra.Command {
	var featured bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List challenges",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, func(ctx context.Context, svc *engine.Service) error {
				out := cmd.OutOrStdout()
				var rows []storage.Challenge
				if featured {
					rows = svc.FeaturedChallenges()
				} else {
					open, done := engine.GroupChallenges(svc.Challenges())
					for _, d := range engine.DurationOrder {
						rows = append(rows, open[d]...)
					}
					rows = append(rows, done...)
				}
				if jsonOutput() {
					return printJSON(out, rows)
				}
				if featured {
					fmt.Fprintln(out, ui.Heading(ui.IconFlag, "This week's picks ("+engine.WeekKey(svc.Now())+")"))
				}
				tw := newTable(out, "ID", "Challenge", "Duration", "Stat", "XP", "Status")
				for _, c := range rows {
					name := c.Text
					if c.IsCustom {
						name += " " + ui.Muted.Render("(custom)")
					}
					tw.AppendRow([]any{shortID(c.ID), name, c.Duration, ui.StatIcon(c.Category), c.XP, challengeStatus(c, svc)})
				}
				tw.Render()
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&featured, "featured", false, "show only this week's rotating picks")
	return cmd
}

func newChallengeStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start <id>",
		Short: "Start (or restart) a challenge's countdown",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, func(ctx context.Context, svc *engine.Service) error {
				id, err := resolveID("challenge", args[0], challengeIDs(svc))
				if err != nil {
					return err
				}
				ok, err := svc.StartChallenge(ctx, id)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Challenge already completed"))
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconBolt)+" Started "+id)
				return nil
			})
		},
	}
}

func newChallengeDoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Complete a challenge and collect its XP",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, func(ctx context.Context, svc *engine.Service) error {
				id, err := resolveID("challenge", args[0], challengeIDs(svc))
				if err != nil {
					return err
				}
				res, err := svc.CompleteChallenge(ctx, id)
				if err != nil {
					return err
				}
				if !res.Applied {
					fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Challenge already completed"))
					return nil
				}
				printReward(cmd.OutOrStdout(), "Challenge complete", res)
				return nil
			})
		},
	}
}

func newChallengeAddCmd() *cobra.Command {
	var duration, stat string
	var xp int
	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Create a custom challenge",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := engine.ParseDuration(duration)
			if err != nil {
				return err
			}
			cat := engine.StatDiscipline
			if stat != "" {
				if cat, err = engine.ParseStat(stat); err != nil {
					return err
				}
			}
			return withService(cmd, func(ctx context.Context, svc *engine.Service) error {
				c, err := svc.AddChallenge(ctx, engine.AddChallengeInput{
					Text:     strings.Join(args, " "),
					XP:       xp,
					Category: cat,
					Duration: d,
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s\n", ui.Good.Render(ui.IconPlus), ui.Muted.Render(c.ID), c.Text,
					ui.Muted.Render(fmt.Sprintf("(%s, +%d XP)", c.Duration, c.XP)))
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&duration, "duration", "d", "daily", "daily|weekly|monthly")
	cmd.Flags().StringVarP(&stat, "stat", "s", "", "stat credited on completion (default discipline)")
	cmd.Flags().IntVar(&xp, "xp", 0, "reward (default by duration: 30/100/500)")
	return cmd
}

func newChallengeRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a custom challenge",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, func(ctx context.Context, svc *engine.Service) error {
				id, err := resolveID("challenge", args[0], challengeIDs(svc))
				if err != nil {
					return err
				}
				ok, err := svc.DeleteChallenge(ctx, id)
				if err != nil {
					return err
				}
				if !ok {
					return notFound("challenge", args[0])
				}
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Deleted "+id))
				return nil
			})
		},
	}
}
