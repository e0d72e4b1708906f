package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jaydenlee09/GameOfLife/internal/engine"
	"github.com/jaydenlee09/GameOfLife/internal/ui"
)

func newReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report [daily|weekly|monthly]",
		Short: "Habit completions against your best period",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in string
			if len(args) == 1 {
				in = args[0]
			}
			view, err := engine.ParseReportView(in)
			if err != nil {
				return err
			}
			return withService(cmd, func(ctx context.Context, svc *engine.Service) error {
				out := cmd.OutOrStdout()
				series := svc.Report(view)
				if jsonOutput() {
					return printJSON(out, series)
				}
				fmt.Fprintln(out, ui.Heading(ui.IconScroll, "Report ("+string(view)+")"))
				tw := newTable(out, "", "Current", view.BestLabel(), "")
				for _, p := range series {
					best := ui.Muted.Render("-")
					if p.HasBest {
						best = fmt.Sprint(p.Best)
					}
					tw.AppendRow([]any{p.Label, p.Current, best, ui.Bar(p.Current, maxOf(series), 12)})
				}
				tw.Render()
				return nil
			})
		},
	}
}

func maxOf(points []engine.SeriesPoint) int {
	m := 1
	for _, p := range points {
		if p.Current > m {
			m = p.Current
		}
		if p.HasBest && p.Best > m {
			m = p.Best
		}
	}
	return m
}
