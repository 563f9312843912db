package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nhle/pending/internal/model"
	"github.com/nhle/pending/internal/tasks"
)

func addCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a new task",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runAdd,
	}

	cmd.Flags().String("date", "", "Scheduled day (YYYY-MM-DD)")
	cmd.Flags().String("time", "", "Time of day (HH:MM)")
	cmd.Flags().StringP("priority", "p", "", "Priority (low, medium, high)")
	cmd.Flags().StringP("label", "l", "", "Free-form label")
	cmd.Flags().StringP("assignee", "a", "", "Member the task is assigned to")
	cmd.Flags().StringP("description", "d", "", "Longer description")

	return cmd
}

func runAdd(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	e, err := openEnv(ctx, cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	d := model.Draft{Title: strings.Join(args, " ")}
	d.Date = stringFlag(cmd, "date")
	d.Time = stringFlag(cmd, "time")
	d.Label = stringFlag(cmd, "label")
	d.Assignee = stringFlag(cmd, "assignee")
	d.Description = stringFlag(cmd, "description")
	if p := stringFlag(cmd, "priority"); p != nil {
		prio := model.Priority(strings.ToLower(*p))
		d.Priority = &prio
	}

	t, err := e.tasks.Create(ctx, d)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), t.ID)
	return nil
}

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the tasks of a view",
		Args:  cobra.NoArgs,
		RunE:  runList,
	}

	cmd.Flags().String("view", "", "View to list (today, favorites, inbox, assigned, trash); defaults to the saved view")
	cmd.Flags().StringP("query", "q", "", "Case-insensitive search text")
	cmd.Flags().StringP("format", "f", formatText, "Output format (text, json, yaml)")

	return cmd
}

func runList(cmd *cobra.Command, _ []string) error {
	ctx := commandContext(cmd)
	e, err := openEnv(ctx, cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	v := e.prefs.View
	if name, _ := cmd.Flags().GetString("view"); name != "" {
		v = model.View(strings.ToLower(name))
		if !v.Valid() {
			return fmt.Errorf("unknown view %q", name)
		}
	}
	query, _ := cmd.Flags().GetString("query")
	format, _ := cmd.Flags().GetString("format")

	return writeTasks(cmd.OutOrStdout(), format, e.tr, e.tasks.Project(v, query))
}

func doneCmd() *cobra.Command {
	return idCmd("done [id]", "Toggle a task between pending and completed",
		func(ctx context.Context, s *tasks.Store, id string) error {
			return s.ToggleCompleted(ctx, id)
		})
}

func favCmd() *cobra.Command {
	return idCmd("fav [id]", "Toggle the favorite mark of a task",
		func(ctx context.Context, s *tasks.Store, id string) error {
			return s.ToggleFavorite(ctx, id)
		})
}

func rmCmd() *cobra.Command {
	return idCmd("rm [id]", "Move a task to the trash",
		func(ctx context.Context, s *tasks.Store, id string) error {
			return s.SoftDelete(ctx, id)
		})
}

func restoreCmd() *cobra.Command {
	return idCmd("restore [id]", "Bring a task back from the trash",
		func(ctx context.Context, s *tasks.Store, id string) error {
			return s.Restore(ctx, id)
		})
}

// idCmd builds a command applying op to the task named by its single
// argument, which may be any unambiguous id prefix.
func idCmd(use, short string, op func(context.Context, *tasks.Store, string) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			e, err := openEnv(ctx, cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			id, err := resolveID(e.tasks, args[0])
			if err != nil {
				return err
			}
			if err := op(ctx, e.tasks, id); err != nil {
				return err
			}

			t, _ := e.tasks.Get(id)
			return writeTasks(cmd.OutOrStdout(), formatText, e.tr, []model.Task{t})
		},
	}
}

var errAmbiguousID = errors.New("ambiguous id")

// resolveID expands a unique id prefix to the full id.
func resolveID(s *tasks.Store, prefix string) (string, error) {
	if _, ok := s.Get(prefix); ok {
		return prefix, nil
	}

	var matches []string
	for _, t := range s.All() {
		if strings.HasPrefix(t.ID, prefix) {
			matches = append(matches, t.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %s", tasks.ErrNotFound, prefix)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%w: %s matches %d tasks", errAmbiguousID, prefix, len(matches))
	}
}

func stringFlag(cmd *cobra.Command, name string) *string {
	v, _ := cmd.Flags().GetString(name)
	return model.StringPtr(strings.TrimSpace(v))
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
