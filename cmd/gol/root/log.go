package root

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jaydenlee09/GameOfLife/internal/engine"
	"github.com/jaydenlee09/GameOfLife/internal/storage"
	"github.com/jaydenlee09/GameOfLife/internal/ui"
)

func newLogCmd() *cobra.Command {
	var date string
	cmd := &cobra.Command{Use: "log", Short: "Daily journal"}
	cmd.PersistentFlags().StringVarP(&date, "date", "d", "", "journal day, YYYY-MM-DD (default today)")

	day := func(svc *engine.Service) string {
		if date != "" {
			return date
		}
		return engine.DateKey(svc.Now())
	}

	// edit wraps a journal mutation and prints the resulting entry.
	edit := func(fn func(ctx context.Context, svc *engine.Service, day string, args []string) (storage.JournalEntry, error)) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			return withService(cmd, func(ctx context.Context, svc *engine.Service) error {
				e, err := fn(ctx, svc, day(svc), args)
				if err != nil {
					return err
				}
				return printEntry(cmd.OutOrStdout(), e)
			})
		}
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show a journal entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, func(ctx context.Context, svc *engine.Service) error {
				e, err := svc.JournalEntry(ctx, day(svc))
				if err != nil {
					return err
				}
				return printEntry(cmd.OutOrStdout(), e)
			})
		},
	}

	dates := &cobra.Command{
		Use:   "dates",
		Short: "List days with journal entries, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, func(ctx context.Context, svc *engine.Service) error {
				out := cmd.OutOrStdout()
				list := svc.JournalDates()
				if jsonOutput() {
					return printJSON(out, list)
				}
				for _, d := range list {
					fmt.Fprintln(out, d)
				}
				return nil
			})
		},
	}

	emotions := &cobra.Command{
		Use:   "emotions",
		Short: "List selectable emotions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, e := range engine.Emotions() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %-12s %s\n", e.Emoji, e.ID, ui.Muted.Render(e.Label))
			}
			return nil
		},
	}

	emotion := &cobra.Command{
		Use:   "emotion <id>",
		Short: "Toggle an emotion on the entry",
		Args:  cobra.ExactArgs(1),
		RunE: edit(func(ctx context.Context, svc *engine.Service, day string, args []string) (storage.JournalEntry, error) {
			return svc.ToggleEmotion(ctx, day, args[0])
		}),
	}

	proud := &cobra.Command{
		Use:   "proud <1-3> [text]",
		Short: "Set one of three things you are proud of",
		Args:  cobra.MinimumNArgs(1),
		RunE: edit(func(ctx context.Context, svc *engine.Service, day string, args []string) (storage.JournalEntry, error) {
			slot, err := parseSlot(args[0])
			if err != nil {
				return storage.JournalEntry{}, err
			}
			return svc.SetProud(ctx, day, slot, strings.Join(args[1:], " "))
		}),
	}

	improve := &cobra.Command{
		Use:   "improve <1-3> [text]",
		Short: "Set one of three things to improve",
		Args:  cobra.MinimumNArgs(1),
		RunE: edit(func(ctx context.Context, svc *engine.Service, day string, args []string) (storage.JournalEntry, error) {
			slot, err := parseSlot(args[0])
			if err != nil {
				return storage.JournalEntry{}, err
			}
			return svc.SetImprove(ctx, day, slot, strings.Join(args[1:], " "))
		}),
	}

	learned := &cobra.Command{
		Use:   "learned [text]",
		Short: "Set what you learned",
		RunE: edit(func(ctx context.Context, svc *engine.Service, day string, args []string) (storage.JournalEntry, error) {
			return svc.SetLearned(ctx, day, strings.Join(args, " "))
		}),
	}

	var removeVideo bool
	video := &cobra.Command{
		Use:   "video <name> <ref>",
		Short: "Attach a video reference (or --rm to remove it)",
		Args: func(cmd *cobra.Command, args []string) error {
			if removeVideo {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(2)(cmd, args)
		},
		RunE: edit(func(ctx context.Context, svc *engine.Service, day string, args []string) (storage.JournalEntry, error) {
			if removeVideo {
				return svc.RemoveVideo(ctx, day)
			}
			return svc.AttachVideo(ctx, day, args[0], args[1])
		}),
	}
	video.Flags().BoolVar(&removeVideo, "rm", false, "remove the attached video")

	cmd.AddCommand(show, dates, emotions, emotion, proud, improve, learned, video)
	return cmd
}

// parseSlot turns a 1-based CLI slot into the entry index.
func parseSlot(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, engine.ValidationError{Field: "slot", Reason: "want 1, 2 or 3, got " + strconv.Quote(s)}
	}
	return n - 1, nil
}

func printEntry(w io.Writer, e storage.JournalEntry) error {
	if jsonOutput() {
		return printJSON(w, e)
	}
	fmt.Fprintln(w, ui.Heading(ui.IconBook, "Journal "+e.DateKey))

	var feel []string
	for _, id := range e.Emotions {
		if em, ok := engine.LookupEmotion(id); ok {
			feel = append(feel, em.Emoji+" "+em.Label)
		}
	}
	if len(feel) == 0 {
		fmt.Fprintln(w, ui.LabelValue("Feeling", ui.Muted.Render("-")))
	} else {
		fmt.Fprintln(w, ui.LabelValue("Feeling", strings.Join(feel, ", ")))
	}

	printSlots(w, "Proud of", e.Proud)
	printSlots(w, "Improve", e.Improve)

	learned := e.Learned
	if strings.TrimSpace(learned) == "" {
		learned = ui.Muted.Render("-")
	}
	fmt.Fprintln(w, ui.LabelValue("Learned", learned))
	if e.Video != nil {
		fmt.Fprintln(w, ui.LabelValue("Video", e.Video.Name+" "+ui.Muted.Render(e.Video.Ref)))
	}
	return nil
}

func printSlots(w io.Writer, label string, slots [engine.JournalSlots]string) {
	fmt.Fprintln(w, ui.Key.Render(label+":"))
	for i, s := range slots {
		if strings.TrimSpace(s) == "" {
			s = ui.Muted.Render("-")
		}
		fmt.Fprintf(w, "  %d. %s\n", i+1, s)
	}
}
