package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/td0m/desktasks/pkg/task"
	"github.com/td0m/desktasks/pkg/task/date"
	"github.com/td0m/desktasks/pkg/transfer"
)

var errNoChanges = errors.New("nothing to change, pass at least one flag")

func (a *app) addCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			priority, _ := flags.GetString("priority")
			category, _ := flags.GetString("category")
			due, _ := flags.GetString("due")
			description, _ := flags.GetString("description")

			d := task.Draft{
				Title:       strings.TrimSpace(strings.Join(args, " ")),
				Description: description,
				Category:    category,
			}
			if d.Category == "" {
				d.Category = a.cfg.Categories[0]
			}
			p, err := task.ParsePriority(priority)
			if err != nil {
				return err
			}
			d.Priority = p
			if due != "" {
				if d.DueDate, err = parseDue(due, a.now()); err != nil {
					return err
				}
			}
			if err := d.Validate(); err != nil {
				return err
			}

			t := a.store.Add(d)
			if err := a.saved(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %s %s\n", shortID(t.ID), t.Title)
			return nil
		},
	}

	cmd.Flags().StringP("priority", "p", string(task.Medium), "Priority (low, medium, high)")
	cmd.Flags().StringP("category", "c", "", "Category, defaults to the first configured one")
	cmd.Flags().StringP("due", "d", "", `Due date, e.g. "tomorrow", "fri", "in 2 weeks", "2024-04-21"`)
	cmd.Flags().StringP("description", "m", "", "Longer description")

	return cmd
}

func (a *app) listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			search, _ := flags.GetString("search")
			category, _ := flags.GetString("category")
			priority, _ := flags.GetString("priority")
			status, _ := flags.GetString("status")
			asJSON, _ := flags.GetBool("json")

			f := task.Filter{Search: search, Category: category}
			var ok bool
			if f.Status, ok = task.ParseStatus(status); !ok {
				return fmt.Errorf("unknown status %q, use all, pending or completed", status)
			}
			if priority != "" {
				p, err := task.ParsePriority(priority)
				if err != nil {
					return err
				}
				f.Priority = p
			}

			tasks := task.Filtered(a.store.All(), f)
			out := cmd.OutOrStdout()
			if asJSON {
				return transfer.Export(out, tasks)
			}
			if len(tasks) == 0 {
				if f.Active() {
					fmt.Fprintln(out, "No tasks match your filters")
				} else {
					fmt.Fprintln(out, "No tasks yet")
				}
				return nil
			}
			now := a.now()
			for _, t := range tasks {
				printTask(out, t, now)
			}
			return nil
		},
	}

	cmd.Flags().StringP("search", "s", "", "Only tasks whose title contains this text")
	cmd.Flags().StringP("category", "c", "", "Only tasks in this category")
	cmd.Flags().StringP("priority", "p", "", "Only tasks with this priority")
	cmd.Flags().String("status", "all", "all, pending or completed")
	cmd.Flags().BoolP("json", "j", false, "Output as JSON")

	return cmd
}

func (a *app) toggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle [id]",
		Short: "Mark a task as done, or not done again",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.resolve(args[0])
			if err != nil {
				return err
			}
			a.store.Toggle(id)
			if err := a.saved(); err != nil {
				return err
			}
			t, _ := a.store.Get(id)
			state := "reopened"
			if t.Completed {
				state = "completed"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", state, shortID(t.ID), t.Title)
			return nil
		},
	}
}

func (a *app) editCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit [id]",
		Short: "Change the fields of a task",
		Long:  `Change the fields of a task. Only the flags that are passed are changed, --due "" clears the due date.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.resolve(args[0])
			if err != nil {
				return err
			}
			c, err := a.changes(cmd)
			if err != nil {
				return err
			}
			if c.Empty() {
				return errNoChanges
			}
			a.store.Update(id, c)
			if err := a.saved(); err != nil {
				return err
			}
			t, _ := a.store.Get(id)
			fmt.Fprintf(cmd.OutOrStdout(), "updated %s %s\n", shortID(t.ID), t.Title)
			return nil
		},
	}

	cmd.Flags().StringP("title", "t", "", "New title")
	cmd.Flags().StringP("priority", "p", "", "New priority")
	cmd.Flags().StringP("category", "c", "", "New category")
	cmd.Flags().StringP("due", "d", "", "New due date")
	cmd.Flags().StringP("description", "m", "", "New description")

	return cmd
}

// changes collects the edit flags that were set
func (a *app) changes(cmd *cobra.Command) (task.Changes, error) {
	var c task.Changes
	flags := cmd.Flags()
	get := func(name string) (string, bool) {
		if !flags.Changed(name) {
			return "", false
		}
		v, _ := flags.GetString(name)
		return v, true
	}

	if v, ok := get("title"); ok {
		v = strings.TrimSpace(v)
		if v == "" {
			return c, task.ErrEmptyTitle
		}
		c.Title = &v
	}
	if v, ok := get("priority"); ok {
		p, err := task.ParsePriority(v)
		if err != nil {
			return c, err
		}
		c.Priority = &p
	}
	if v, ok := get("category"); ok {
		c.Category = &v
	}
	if v, ok := get("description"); ok {
		c.Description = &v
	}
	if v, ok := get("due"); ok {
		if strings.TrimSpace(v) != "" {
			due, err := parseDue(v, a.now())
			if err != nil {
				return c, err
			}
			v = due
		} else {
			v = ""
		}
		c.DueDate = &v
	}
	return c, nil
}

func (a *app) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete [id...]",
		Aliases: []string{"rm"},
		Short:   "Delete tasks",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// resolve everything first so a typo deletes nothing
			ids := make([]task.ID, len(args))
			for i, arg := range args {
				id, err := a.resolve(arg)
				if err != nil {
					return err
				}
				ids[i] = id
			}
			for _, id := range ids {
				t, _ := a.store.Get(id)
				if !a.store.Delete(id) {
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted %s %s\n", shortID(t.ID), t.Title)
			}
			return a.saved()
		},
	}
}

func (a *app) clearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every completed task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n := a.store.ClearCompleted()
			if err := a.saved(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "cleared %d completed tasks\n", n)
			return nil
		},
	}
}

func (a *app) statsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show how many tasks are done and what is left",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := task.ComputeStats(a.store.All())
			out := cmd.OutOrStdout()
			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(s)
			}
			fmt.Fprintf(out, "Total:      %d\n", s.Total)
			fmt.Fprintf(out, "Completed:  %d (%d%%)\n", s.Completed, s.CompletionRate())
			fmt.Fprintf(out, "Pending:    %d\n", s.Pending)
			fmt.Fprintln(out, "\nLeft by priority:")
			fmt.Fprintf(out, "  High:     %d\n", s.High)
			fmt.Fprintf(out, "  Medium:   %d\n", s.Medium)
			fmt.Fprintf(out, "  Low:      %d\n", s.Low)
			return nil
		},
	}

	cmd.Flags().BoolP("json", "j", false, "Output as JSON")

	return cmd
}

func (a *app) exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every task to tasks_<date>.json",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks := a.store.All()
			dir, _ := cmd.Flags().GetString("dir")
			if dir == "-" {
				return transfer.Export(cmd.OutOrStdout(), tasks)
			}
			if dir == "" {
				dir = a.cfg.ExportDir
			}
			path, err := transfer.ExportFile(dir, tasks, a.now())
			if err != nil {
				return fmt.Errorf("exporting tasks: %w", err)
			}
			a.log.Info().Str("path", path).Int("count", len(tasks)).Msg("exported tasks")
			fmt.Fprintf(cmd.OutOrStdout(), "exported %d tasks to %s\n", len(tasks), path)
			return nil
		},
	}

	cmd.Flags().StringP("dir", "o", "", `Directory to write to, "-" for stdout (env DESKTASKS_EXPORT_DIR)`)

	return cmd
}

func (a *app) importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import [file]",
		Short: "Check an exported file (importing is not supported yet)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := transfer.InspectFile(args[0])
			fmt.Fprintln(cmd.OutOrStdout(), transfer.ImportMessage(n, err))
			if err != nil {
				return fmt.Errorf("importing %s: %w", args[0], err)
			}
			return nil
		},
	}
}

func parseDue(s string, now time.Time) (string, error) {
	t, err := date.Parse(s, now)
	if err != nil {
		return "", fmt.Errorf("due date %q: %w", s, err)
	}
	return date.Format(t), nil
}

func shortID(id task.ID) string {
	if len(id) > 8 {
		return string(id[:8])
	}
	return string(id)
}

func printTask(w io.Writer, t task.Task, now time.Time) {
	check := " "
	if t.Completed {
		check = "x"
	}
	meta := []string{string(t.Priority)}
	if t.Category != "" {
		meta = append(meta, t.Category)
	}
	if t.DueDate != "" {
		due := "due " + t.DueDate
		if d, err := date.ParseISO(t.DueDate); err == nil && !t.Completed {
			due += ", " + date.Relative(d, now)
		}
		meta = append(meta, due)
	}
	fmt.Fprintf(w, "[%s] %-8s  %s (%s)\n", check, shortID(t.ID), t.Title, strings.Join(meta, ", "))
	if t.Description != "" {
		fmt.Fprintf(w, "    %s\n", t.Description)
	}
}
