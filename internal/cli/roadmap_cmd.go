package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/preplock/internal/cli/formatter"
	"github.com/alexanderramin/preplock/internal/contract"
	"github.com/alexanderramin/preplock/internal/domain"
	"github.com/spf13/cobra"
)

type generateOutput struct {
	Roadmap contract.RoadmapView `json:"roadmap"`
	Tasks   []contract.TaskView  `json:"tasks"`
}

func newRoadmapCmd(app *App, opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roadmap",
		Short: "Generate and inspect study roadmaps",
	}

	cmd.AddCommand(
		newRoadmapGenerateCmd(app, opts),
		newRoadmapShowCmd(app, opts),
		newRoadmapListCmd(app, opts),
		newRoadmapTasksCmd(app, opts),
	)

	return cmd
}

func newRoadmapGenerateCmd(app *App, opts *options) *cobra.Command {
	var sourceID, title, start, exam string
	var window int

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a roadmap from a source",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := opts.owner()
			if err != nil {
				return err
			}

			id, err := resolveSourceID(cmd.Context(), app, owner, sourceID)
			if err != nil {
				return err
			}

			now := app.now()
			req := contract.NewGenerateRoadmapRequest(owner, id)
			req.Title = title
			req.Now = &now
			if req.StartDate, err = optionalDate("start", start); err != nil {
				return err
			}
			if req.ExamDate, err = optionalDate("exam", exam); err != nil {
				return err
			}
			if cmd.Flags().Changed("window") {
				req.WindowDays = &window
			}

			resp, err := app.Roadmaps.Generate(cmd.Context(), req)
			if err != nil {
				return err
			}

			text := formatter.FormatRoadmap(resp.Roadmap, now) +
				fmt.Sprintf("\n%s %d task(s) ready\n", formatter.Dim("Tasks:"), len(resp.Tasks))
			out := generateOutput{
				Roadmap: contract.NewRoadmapView(resp.Roadmap),
				Tasks:   contract.NewTaskViews(resp.Tasks),
			}
			return render(cmd, opts, out, text)
		},
	}

	cmd.Flags().StringVar(&sourceID, "source", "", "Source ID or unique prefix")
	cmd.Flags().StringVar(&title, "title", "", "Roadmap title (default \"<source title> - Study Plan\")")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&exam, "exam", "", "Exam date override (YYYY-MM-DD)")
	cmd.Flags().IntVar(&window, "window", contract.DefaultWindowDays, "Leading days to create tasks for")
	_ = cmd.MarkFlagRequired("source")

	return cmd
}

func newRoadmapShowCmd(app *App, opts *options) *cobra.Command {
	var sourceID string

	cmd := &cobra.Command{
		Use:   "show [roadmap-id]",
		Short: "Show a roadmap (default: the active one)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := opts.owner()
			if err != nil {
				return err
			}

			var r *domain.Roadmap
			if sourceID != "" {
				id, err := resolveSourceID(cmd.Context(), app, owner, sourceID)
				if err != nil {
					return err
				}
				r, err = app.Roadmaps.GetBySource(cmd.Context(), owner, id)
				if err != nil {
					return err
				}
			} else {
				r, err = resolveRoadmap(cmd.Context(), app, owner, argOrEmpty(args))
				if err != nil {
					return err
				}
			}

			return render(cmd, opts, contract.NewRoadmapView(r), formatter.FormatRoadmap(r, app.now()))
		},
	}

	cmd.Flags().StringVar(&sourceID, "source", "", "Show the roadmap generated from this source")

	return cmd
}

func newRoadmapListCmd(app *App, opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List roadmaps",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := opts.owner()
			if err != nil {
				return err
			}

			roadmaps, err := app.Roadmaps.List(cmd.Context(), owner)
			if err != nil {
				return err
			}

			views := make([]contract.RoadmapView, len(roadmaps))
			for i, r := range roadmaps {
				views[i] = contract.NewRoadmapView(r)
			}
			return render(cmd, opts, views, formatter.FormatRoadmapList(roadmaps, app.now()))
		},
	}
}

func newRoadmapTasksCmd(app *App, opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tasks [roadmap-id]",
		Short: "List the tasks materialized for a roadmap",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := opts.owner()
			if err != nil {
				return err
			}

			r, err := resolveRoadmap(cmd.Context(), app, owner, argOrEmpty(args))
			if err != nil {
				return err
			}
			tasks, err := app.Tasks.ListByRoadmap(cmd.Context(), owner, r.ID)
			if err != nil {
				return err
			}
			return render(cmd, opts, contract.NewTaskViews(tasks), formatter.FormatTasks(tasks))
		},
	}
}

func optionalDate(flag, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := domain.ParseDate(value)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s date %q: want YYYY-MM-DD", flag, value)
	}
	return &t, nil
}

func argOrEmpty(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
