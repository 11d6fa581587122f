package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/preplock/internal/cli/formatter"
	"github.com/alexanderramin/preplock/internal/contract"
	"github.com/alexanderramin/preplock/internal/domain"
	"github.com/alexanderramin/preplock/internal/importer"
	"github.com/spf13/cobra"
)

func newSourceCmd(app *App, opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "source",
		Short: "Import and inspect syllabus sources",
	}

	cmd.AddCommand(
		newSourceImportCmd(app, opts),
		newSourceListCmd(app, opts),
		newSourceShowCmd(app, opts),
		newSourceDeleteCmd(app, opts),
	)

	return cmd
}

func newSourceImportCmd(app *App, opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import a syllabus from a JSON or YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := opts.owner()
			if err != nil {
				return err
			}

			schema, err := importer.LoadSyllabus(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}

			src, err := app.Sources.Create(cmd.Context(), owner, schema)
			if err != nil {
				return err
			}

			text := fmt.Sprintf("Imported %s with %d topics.\n\n%s",
				formatter.Bold(src.Title), len(src.Topics), formatter.FormatSource(src, app.now()))
			return render(cmd, opts, contract.NewSourceView(src), text)
		},
	}
}

func newSourceListCmd(app *App, opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List imported sources",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := opts.owner()
			if err != nil {
				return err
			}

			sources, err := app.Sources.List(cmd.Context(), owner)
			if err != nil {
				return err
			}

			views := make([]contract.SourceView, len(sources))
			for i, s := range sources {
				views[i] = contract.NewSourceView(s)
			}
			return render(cmd, opts, views, formatter.FormatSourceList(sources, app.now()))
		},
	}
}

func newSourceShowCmd(app *App, opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "show <source-id>",
		Short: "Show a source and its topics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := opts.owner()
			if err != nil {
				return err
			}

			id, err := resolveSourceID(cmd.Context(), app, owner, args[0])
			if err != nil {
				return err
			}
			src, err := app.Sources.Get(cmd.Context(), owner, id)
			if err != nil {
				return err
			}
			return render(cmd, opts, contract.NewSourceView(src), formatter.FormatSource(src, app.now()))
		},
	}
}

func newSourceDeleteCmd(app *App, opts *options) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <source-id>",
		Short: "Delete a source with its decks and mock tests",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := opts.owner()
			if err != nil {
				return err
			}

			id, err := resolveSourceID(cmd.Context(), app, owner, args[0])
			if err != nil {
				return err
			}
			if !force {
				_, err := app.Roadmaps.GetBySource(cmd.Context(), owner, id)
				switch {
				case err == nil:
					return fmt.Errorf("source %s has roadmaps; pass --force to delete them too", id)
				case !errors.Is(err, domain.ErrNotFound):
					return err
				}
			}

			resp, err := app.Sources.Delete(cmd.Context(), owner, id)
			if err != nil {
				return err
			}
			return render(cmd, opts, contract.NewDeleteSourceView(resp), formatter.FormatDeleteSource(resp))
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Also delete the source's roadmaps and tasks")

	return cmd
}
