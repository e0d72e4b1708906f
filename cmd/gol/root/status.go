package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jaydenlee09/GameOfLife/internal/engine"
	"github.com/jaydenlee09/GameOfLife/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show level, stats and achievements",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, func(ctx context.Context, svc *engine.Service) error {
				out := cmd.OutOrStdout()
				p := svc.Player()
				if jsonOutput() {
					return printJSON(out, p)
				}

				need := engine.XPCap(p.Level)
				fmt.Fprintln(out, ui.Heading(ui.IconSparkle, p.Name))
				fmt.Fprintln(out, ui.LabelValue("Level", p.Level))
				fmt.Fprintln(out, ui.LabelValue("XP", fmt.Sprintf("%d/%d %s (%d to go)", p.XP, need, ui.Bar(p.XP, need, 20), need-p.XP)))
				fmt.Fprintln(out, "")

				fmt.Fprintln(out, ui.H2.Render("📊 Stats"))
				for _, k := range engine.StatKeys {
					fmt.Fprintf(out, "- %s %-14s %d\n", ui.StatIcon(string(k)), k.Label(), p.Stats[string(k)])
				}
				fmt.Fprintln(out, "")

				checker := engine.NewAchievementChecker(svc.Snapshot())
				fmt.Fprintln(out, ui.H2.Render(fmt.Sprintf("%s Achievements (%d/%d)", ui.IconTrophy, checker.CountEarned(), checker.CountTotal())))
				for _, a := range checker.GetAchievements() {
					if a.Earned {
						fmt.Fprintf(out, "- %s %s %s\n", a.Icon, a.Name, ui.Muted.Render(a.Description))
					} else {
						fmt.Fprintf(out, "- %s %s\n", ui.Muted.Render("🔒 "+a.Name), ui.Muted.Render(a.Description))
					}
				}
				return nil
			})
		},
	}
	return cmd
}
