package cli

import (
	"fmt"
	"strconv"

	"github.com/alexanderramin/preplock/internal/cli/formatter"
	"github.com/alexanderramin/preplock/internal/contract"
	"github.com/spf13/cobra"
)

func newDayCmd(app *App, opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "day",
		Short: "Work with roadmap days",
	}
	cmd.AddCommand(newDayCompleteCmd(app, opts))
	return cmd
}

func newDayCompleteCmd(app *App, opts *options) *cobra.Command {
	var roadmapID string

	cmd := &cobra.Command{
		Use:   "complete <day>",
		Short: "Mark a roadmap day complete",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := opts.owner()
			if err != nil {
				return err
			}

			day, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid day %q: want a day number", args[0])
			}
			r, err := resolveRoadmap(cmd.Context(), app, owner, roadmapID)
			if err != nil {
				return err
			}

			now := app.now()
			resp, err := app.Completion.CompleteDay(cmd.Context(), contract.CompleteDayRequest{
				OwnerID:   owner,
				RoadmapID: r.ID,
				DayNumber: day,
				Now:       &now,
			})
			if err != nil {
				return err
			}
			return render(cmd, opts, contract.NewCompleteDayView(resp), formatter.FormatCompleteDay(resp))
		},
	}

	cmd.Flags().StringVar(&roadmapID, "roadmap", "", "Roadmap ID or unique prefix (default: the active one)")

	return cmd
}

func newTaskCmd(app *App, opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Work with materialized tasks",
	}
	cmd.AddCommand(newTaskCompleteCmd(app, opts))
	return cmd
}

func newTaskCompleteCmd(app *App, opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "complete <task-id>",
		Short: "Mark a single task complete without touching its day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := opts.owner()
			if err != nil {
				return err
			}

			id, err := resolveTaskID(cmd.Context(), app, owner, args[0])
			if err != nil {
				return err
			}
			resp, err := app.Tasks.CompleteTask(cmd.Context(), owner, id)
			if err != nil {
				return err
			}
			return render(cmd, opts, contract.NewTaskView(resp.Task), formatter.FormatCompleteTask(resp))
		},
	}
}

func newTodayCmd(app *App, opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show today's study tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := opts.owner()
			if err != nil {
				return err
			}

			now := app.now()
			req := contract.NewTodayRequest(owner)
			req.Now = &now
			resp, err := app.Tasks.TodayTasks(cmd.Context(), req)
			if err != nil {
				return err
			}
			return render(cmd, opts, contract.NewTodayView(resp), formatter.FormatToday(resp))
		},
	}
}
