package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"gitbrowse/internal/handler"
	"gitbrowse/internal/hub"
	"gitbrowse/internal/logging"
	"gitbrowse/internal/service"
	"gitbrowse/internal/watcher"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr != "" {
				a.cfg.Server.Addr = addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "HTTP listen address (overrides config)")
	return cmd
}

// serve runs the server until ctx is cancelled
func (a *app) serve(ctx context.Context) error {
	log := a.logger
	log.Info().Msg("starting gitbrowse server")
	log.Debug().Msg(a.cfg.Summary())

	store, err := a.openStore()
	if err != nil {
		return err
	}
	defer store.Close()
	log.Info().Str("path", a.cfg.Database.Path).Msg("database opened")

	eventBus := service.NewEventBus()

	done := make(chan struct{})
	defer close(done)

	sseHub := hub.New(logging.Component(log, "hub"))
	go sseHub.Run(done)

	eventChan := make(chan service.Event, 100)
	eventBus.Subscribe(eventChan)
	go func() {
		for {
			select {
			case event := <-eventChan:
				sseHub.Broadcast(event)
			case <-done:
				return
			}
		}
	}()

	listing := service.NewListingService(store, a.listingOptions())
	catalog := service.NewCatalogService(store, listing, eventBus, logging.Component(log, "catalog"))

	if path := a.cfg.Catalog.Path; path != "" {
		if _, err := catalog.Reload(ctx, path); err != nil {
			return err
		}

		if a.cfg.Catalog.Watch {
			w := watcher.New(path, func() {
				if _, err := catalog.Reload(ctx, path); err != nil {
					log.Error().Err(err).Str("path", path).Msg("catalog reload failed")
				}
			}, logging.Component(log, "watcher")).WithDebounce(a.cfg.Catalog.Debounce.Duration())

			go func() {
				if err := w.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
					log.Error().Err(err).Msg("catalog watcher stopped")
				}
			}()
		}
	}

	mux := http.NewServeMux()
	handler.NewListingHandler(listing, catalog, a.cfg, logging.Component(log, "http")).Register(mux)
	mux.Handle("GET /events", sseHub)

	httpLog := logging.Component(log, "http")
	server := &http.Server{
		Addr: a.cfg.Server.Addr,
		Handler: handler.Chain(mux,
			handler.Recover(httpLog),
			handler.CORS,
			handler.RequestID,
			handler.Logger(httpLog),
		),
		ReadTimeout:  a.cfg.Server.ReadTimeout.Duration(),
		WriteTimeout: a.cfg.Server.WriteTimeout.Duration(),
		IdleTimeout:  a.cfg.Server.IdleTimeout.Duration(),
		// SSE streams end with ctx instead of holding up Shutdown
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", server.Addr).Msg("server listening")
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info().Int("sse_clients", sseHub.ClientCount()).Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown error")
	}

	log.Info().Msg("server stopped")
	return nil
}
