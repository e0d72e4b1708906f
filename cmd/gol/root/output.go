package root

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/jaydenlee09/GameOfLife/internal/engine"
	"github.com/jaydenlee09/GameOfLife/internal/ui"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newTable(w io.Writer, header ...any) table.Writer {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row(header))
	return tw
}

// printReward describes an XP-granting outcome in one or two lines.
func printReward(w io.Writer, what string, res engine.RewardResult) {
	line := fmt.Sprintf("%s %s %s", ui.Good.Render(ui.IconDone), what, ui.Signed(res.XPAwarded))
	if res.Stat != "" {
		line += " " + ui.Muted.Render("("+ui.StatIcon(string(res.Stat))+" "+res.Stat.Label()+")")
	}
	fmt.Fprintln(w, line)

	c := res.Change
	switch {
	case c.LevelUp():
		fmt.Fprintf(w, "%s %s\n", ui.BadgeLevelUp, ui.LabelValue("Level", fmt.Sprintf("%d → %d", c.LevelBefore, c.LevelAfter)))
	case c.LevelDown():
		fmt.Fprintln(w, ui.Warn.Render(fmt.Sprintf("%s Level decreased %d → %d", ui.IconWarn, c.LevelBefore, c.LevelAfter)))
	}
}
