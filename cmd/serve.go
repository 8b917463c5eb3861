package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/virtualboard/orf/internal/api"
	"github.com/virtualboard/orf/internal/route"
)

const shutdownTimeout = 5 * time.Second

func newServeCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the formatter over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := options()
			if err != nil {
				return err
			}
			settings := opts.Settings
			if cmd.Flags().Changed("addr") {
				settings.Serve.Addr = addr
			}
			mode, err := route.ParseMode(settings.Mode)
			if err != nil {
				return WrapCLIError(ExitCodeValidation, err)
			}

			log := opts.Logger().WithField("command", "serve")
			handler := api.NewServer(log, api.Defaults{
				Mode:         mode,
				Range:        route.Range{Lo: settings.Range.Lo, Hi: settings.Range.Hi},
				MaxBodyBytes: settings.Serve.MaxBodyBytes,
			})

			ln, err := net.Listen("tcp", settings.Serve.Addr)
			if err != nil {
				return WrapCLIError(ExitCodeServer, fmt.Errorf("failed to listen on %s: %w", settings.Serve.Addr, err))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "listening on %s\n", ln.Addr())

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if err := serve(ctx, ln, handler, log); err != nil {
				return WrapCLIError(ExitCodeServer, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "Listen address")
	return cmd
}

// serve runs the HTTP server on ln until ctx is cancelled, then shuts it down
// gracefully.
func serve(ctx context.Context, ln net.Listener, handler http.Handler, log *logrus.Entry) error {
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", ln.Addr().String()).Info("server starting")
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}
