package root

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jaydenlee09/GameOfLife/internal/engine"
	"github.com/jaydenlee09/GameOfLife/internal/ui"
)

func newHabitCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "habit", Short: "Manage habits"}
	cmd.AddCommand(newHabitAddCmd(), newHabitListCmd(), newHabitToggleCmd(), newHabitRmCmd())
	return cmd
}

func habitIDs(svc *engine.Service) []string {
	habits := svc.Habits()
	ids := make([]string, len(habits))
	for i, h := range habits {
		ids[i] = h.ID
	}
	return ids
}

func newHabitAddCmd() *cobra.Command {
	var stat string
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a habit",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			attr := engine.StatDiscipline
			if stat != "" {
				var err error
				if attr, err = engine.ParseStat(stat); err != nil {
					return err
				}
			}
			return withService(cmd, func(ctx context.Context, svc *engine.Service) error {
				h, err := svc.CreateHabit(ctx, strings.Join(args, " "), attr)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s\n", ui.Good.Render(ui.IconLoop), ui.Muted.Render(shortID(h.ID)), h.Name,
					ui.Muted.Render("("+attr.Label()+")"))
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&stat, "stat", "s", "", "stat credited per check-in (default discipline)")
	return cmd
}

func newHabitListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List habits with this week's check-ins and streaks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, func(ctx context.Context, svc *engine.Service) error {
				out := cmd.OutOrStdout()
				habits := svc.Habits()
				if jsonOutput() {
					return printJSON(out, habits)
				}
				now := svc.Now()
				week := engine.WeekDays(now)
				header := []any{"ID", "Habit", "Stat"}
				for _, d := range week {
					header = append(header, d.Format("Mon"))
				}
				header = append(header, "Streak", "Best", "Total")

				tw := newTable(out, header...)
				for _, h := range habits {
					row := []any{shortID(h.ID), h.Name, ui.StatIcon(h.Attribute)}
					for _, d := range week {
						if h.History[engine.DateKey(d)] {
							row = append(row, "■")
						} else {
							row = append(row, "·")
						}
					}
					st := engine.StatsFor(h, now)
					row = append(row, st.Current, st.Best, st.Total)
					tw.AppendRow(row)
				}
				tw.Render()
				return nil
			})
		},
	}
}

func newHabitToggleCmd() *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "toggle <id>",
		Short: "Check or uncheck a habit for a day (±15 XP)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, func(ctx context.Context, svc *engine.Service) error {
				id, err := resolveID("habit", args[0], habitIDs(svc))
				if err != nil {
					return err
				}
				day := date
				if day == "" {
					day = engine.DateKey(svc.Now())
				}
				res, err := svc.ToggleHabitDate(ctx, id, day)
				if err != nil {
					return err
				}
				if !res.Applied {
					return notFound("habit", args[0])
				}
				what := "Checked " + day
				if res.XPAwarded < 0 {
					what = "Unchecked " + day
				}
				printReward(cmd.OutOrStdout(), what, res)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&date, "date", "d", "", "day to toggle, YYYY-MM-DD (default today)")
	return cmd
}

func newHabitRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a habit and its history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, func(ctx context.Context, svc *engine.Service) error {
				id, err := resolveID("habit", args[0], habitIDs(svc))
				if err != nil {
					return err
				}
				ok, err := svc.DeleteHabit(ctx, id)
				if err != nil {
					return err
				}
				if !ok {
					return notFound("habit", args[0])
				}
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Deleted "+shortID(id)))
				return nil
			})
		},
	}
}
