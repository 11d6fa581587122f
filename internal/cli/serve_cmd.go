package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexanderramin/preplock/internal/httpapi"
	"github.com/alexanderramin/preplock/internal/logger"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API used by the browser blocker",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := app.Logger
			if log == nil {
				log = logger.NewNop()
			}

			server := httpapi.NewServer(httpapi.RouterConfig{
				Sources:    app.Sources,
				Roadmaps:   app.Roadmaps,
				Completion: app.Completion,
				Tasks:      app.Tasks,
				Content:    app.Content,
				Study:      app.Study,
				Logger:     log,
			})
			srv := &http.Server{
				Addr:              addr,
				Handler:           server.Handler(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			log.Info("http server starting", "addr", addr)
			return runServer(ctx, srv, log)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", app.HTTPAddr, "Listen address")

	return cmd
}

// runServer serves until ctx ends, then shuts down gracefully.
func runServer(ctx context.Context, srv *http.Server, log *logger.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn("http server shutdown", "error", err)
		}
		log.Info("http server stopped")
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
