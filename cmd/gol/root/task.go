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

func newTaskCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "task", Short: "Manage tasks"}
	cmd.AddCommand(
		newTaskAddCmd(),
		newTaskListCmd(),
		newTaskDoneCmd(),
		newTaskRmCmd(),
		newTaskEditCmd(),
		newTaskNoteCmd(),
		newTaskSubCmd(),
	)
	return cmd
}

func taskIDs(svc *engine.Service) []string {
	tasks := svc.Tasks()
	ids := make([]string, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}
	return ids
}

func findTask(svc *engine.Service, id string) (storage.Task, bool) {
	for _, t := range svc.Tasks() {
		if t.ID == id {
			return t, true
		}
	}
	return storage.Task{}, false
}

func newTaskAddCmd() *cobra.Command {
	var when, stat string
	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tf, err := engine.ParseTimeFrame(when)
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
				t, err := svc.CreateTask(ctx, engine.CreateTaskInput{
					Text:      strings.Join(args, " "),
					TimeFrame: tf,
					Category:  cat,
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s\n",
					ui.Good.Render(ui.IconPlus), ui.Muted.Render(shortID(t.ID)), t.Text,
					ui.Muted.Render(fmt.Sprintf("(%s, +%d XP %s)", tf.Label(), t.XP, cat.Label())))
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&when, "when", "w", "today", "today|tomorrow|this-week|this-month")
	cmd.Flags().StringVarP(&stat, "stat", "s", "", "stat credited on completion (default discipline)")
	return cmd
}

func newTaskListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tasks by time frame",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, func(ctx context.Context, svc *engine.Service) error {
				out := cmd.OutOrStdout()
				if jsonOutput() {
					return printJSON(out, svc.Tasks())
				}
				groups := svc.TasksByTimeFrame()
				tw := newTable(out, "ID", "When", "Task", "Stat", "XP", "Subtasks")
				for _, tf := range engine.TimeFrames {
					for _, t := range groups[tf] {
						subs := ""
						if len(t.Subtasks) > 0 {
							done := 0
							for _, s := range t.Subtasks {
								if s.Completed {
									done++
								}
							}
							subs = fmt.Sprintf("%d/%d", done, len(t.Subtasks))
						}
						text := t.Text
						if t.Notes != "" {
							text += " 📝"
						}
						tw.AppendRow([]any{shortID(t.ID), tf.Label(), text, ui.StatIcon(t.Category) + " " + engine.StatKey(t.Category).Label(), t.XP, subs})
					}
				}
				tw.Render()
				return nil
			})
		},
	}
}

func newTaskDoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Complete a task and collect its XP",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, func(ctx context.Context, svc *engine.Service) error {
				id, err := resolveID("task", args[0], taskIDs(svc))
				if err != nil {
					return err
				}
				t, _ := findTask(svc, id)
				res, err := svc.CompleteTask(ctx, id)
				if err != nil {
					return err
				}
				if !res.Applied {
					return notFound("task", args[0])
				}
				printReward(cmd.OutOrStdout(), "Completed "+t.Text, res)
				return nil
			})
		},
	}
}

func newTaskRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a task without reward",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, func(ctx context.Context, svc *engine.Service) error {
				id, err := resolveID("task", args[0], taskIDs(svc))
				if err != nil {
					return err
				}
				ok, err := svc.DeleteTask(ctx, id)
				if err != nil {
					return err
				}
				if !ok {
					return notFound("task", args[0])
				}
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Deleted "+shortID(id)))
				return nil
			})
		},
	}
}

func newTaskEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <id> <text>",
		Short: "Change a task's text",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, func(ctx context.Context, svc *engine.Service) error {
				id, err := resolveID("task", args[0], taskIDs(svc))
				if err != nil {
					return err
				}
				ok, err := svc.EditTask(ctx, id, strings.Join(args[1:], " "))
				if err != nil {
					return err
				}
				if !ok {
					return notFound("task", args[0])
				}
				fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconDone)+" Updated "+shortID(id))
				return nil
			})
		},
	}
}

func newTaskNoteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "note <id> [text]",
		Short: "Set a task's notes (omit text to clear)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, func(ctx context.Context, svc *engine.Service) error {
				id, err := resolveID("task", args[0], taskIDs(svc))
				if err != nil {
					return err
				}
				ok, err := svc.SetTaskNotes(ctx, id, strings.Join(args[1:], " "))
				if err != nil {
					return err
				}
				if !ok {
					return notFound("task", args[0])
				}
				fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconDone)+" Notes saved")
				return nil
			})
		},
	}
}

func newTaskSubCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "sub", Short: "Manage subtasks of this-week and this-month tasks"}

	add := &cobra.Command{
		Use:   "add <task> <text>",
		Short: "Add a subtask",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, func(ctx context.Context, svc *engine.Service) error {
				id, err := resolveID("task", args[0], taskIDs(svc))
				if err != nil {
					return err
				}
				sub, err := svc.AddSubtask(ctx, id, strings.Join(args[1:], " "))
				if err != nil {
					return err
				}
				if sub.ID == "" {
					return notFound("task", args[0])
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.Good.Render(ui.IconPlus), ui.Muted.Render(shortID(sub.ID)), sub.Text)
				return nil
			})
		},
	}

	toggle := &cobra.Command{
		Use:   "toggle <task> <sub>",
		Short: "Toggle a subtask (+10 XP when completed)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, func(ctx context.Context, svc *engine.Service) error {
				taskID, subID, err := resolveSubtask(svc, args[0], args[1])
				if err != nil {
					return err
				}
				res, err := svc.ToggleSubtask(ctx, taskID, subID)
				if err != nil {
					return err
				}
				if !res.Applied {
					return notFound("subtask", args[1])
				}
				if res.XPAwarded == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Subtask reopened"))
					return nil
				}
				printReward(cmd.OutOrStdout(), "Subtask done", res)
				return nil
			})
		},
	}

	rm := &cobra.Command{
		Use:   "rm <task> <sub>",
		Short: "Delete a subtask",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, func(ctx context.Context, svc *engine.Service) error {
				taskID, subID, err := resolveSubtask(svc, args[0], args[1])
				if err != nil {
					return err
				}
				ok, err := svc.DeleteSubtask(ctx, taskID, subID)
				if err != nil {
					return err
				}
				if !ok {
					return notFound("subtask", args[1])
				}
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Deleted subtask "+shortID(subID)))
				return nil
			})
		},
	}

	cmd.AddCommand(add, toggle, rm)
	return cmd
}

func resolveSubtask(svc *engine.Service, taskArg, subArg string) (string, string, error) {
	taskID, err := resolveID("task", taskArg, taskIDs(svc))
	if err != nil {
		return "", "", err
	}
	t, ok := findTask(svc, taskID)
	if !ok {
		return "", "", notFound("task", taskArg)
	}
	ids := make([]string, len(t.Subtasks))
	for i, s := range t.Subtasks {
		ids[i] = s.ID
	}
	subID, err := resolveID("subtask", subArg, ids)
	if err != nil {
		return "", "", err
	}
	return taskID, subID, nil
}
