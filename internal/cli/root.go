package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/preplock/internal/logger"
	"github.com/alexanderramin/preplock/internal/service"
	"github.com/spf13/cobra"
)

const (
	formatText = "text"
	formatJSON = "json"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Sources    service.SourceService
	Roadmaps   service.RoadmapService
	Completion service.CompletionService
	Tasks      service.TaskService
	Content    service.ContentService
	Study      service.StudyService
	Logger     *logger.Logger

	// DefaultUser owns everything when --user is not given.
	DefaultUser string
	// HTTPAddr is the default listen address of `serve`.
	HTTPAddr string
	// Now is the clock; nil means time.Now.
	Now func() time.Time
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now().UTC()
	}
	return time.Now().UTC()
}

// options carries the persistent flags to every subcommand.
type options struct {
	user   string
	format string
}

func (o *options) owner() (string, error) {
	if o.user == "" {
		return "", fmt.Errorf("no user: pass --user or set PREPLOCK_USER")
	}
	return o.user, nil
}

func (o *options) json() bool {
	return o.format == formatJSON
}

// NewRootCmd creates the top-level "preplock" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "preplock",
		Short:         "Exam study roadmaps with a daily task blocker",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.format != formatText && opts.format != formatJSON {
				return fmt.Errorf("invalid --format %q: want %s or %s", opts.format, formatText, formatJSON)
			}
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&opts.user, "user", "u", app.DefaultUser, "Owner of the sources and roadmaps")
	root.PersistentFlags().StringVar(&opts.format, "format", formatText, "Output format: text or json")

	root.AddCommand(
		newSourceCmd(app, opts),
		newRoadmapCmd(app, opts),
		newDayCmd(app, opts),
		newTaskCmd(app, opts),
		newTodayCmd(app, opts),
		newContentCmd(app, opts),
		newDeckCmd(app, opts),
		newMockCmd(app, opts),
		newServeCmd(app),
	)

	return root
}
