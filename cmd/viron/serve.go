package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/tsutoringo/viron-go"
	"github.com/tsutoringo/viron-go/internal/config"
	"github.com/tsutoringo/viron-go/middleware"
	"github.com/tsutoringo/viron-go/oas"
	"github.com/tsutoringo/viron-go/page"
)

type ServeCmd struct {
	Listen string `help:"Address to listen on. Overrides listen." short:"l"`
}

func (c *ServeCmd) Run(g *Globals) error {
	cfg, logger, api, root, err := g.setup()
	if err != nil {
		return err
	}
	if c.Listen != "" {
		cfg.Listen = c.Listen
	}

	h, err := newRouter(cfg, logger, api, root)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return serve(ctx, cfg.Listen, h, logger)
}

// newRouter wires the API routes, the Viron routes and optional metrics
// behind request IDs, logging, panic recovery and dashboard CORS.
func newRouter(cfg *config.Config, logger *slog.Logger, api *viron.API, root page.Page) (http.Handler, error) {
	srv, err := oas.New(api, root,
		oas.WithOASPath(cfg.Viron.OASPath),
		oas.WithAuthPath(cfg.Viron.AuthPath),
		oas.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.RequestLogger(logger))
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS(middleware.DashboardCORS(cfg.CORS.AllowOrigins...)))

	if cfg.MetricsEnabled() {
		metrics := middleware.NewMetrics("viron")
		r.Use(metrics.Middleware)
		r.Method(http.MethodGet, cfg.MetricsPath, metrics.Handler())
	}

	api.Mount(r)
	srv.Mount(r)
	return r, nil
}

func serve(ctx context.Context, addr string, h http.Handler, logger *slog.Logger) error {
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", slog.String("addr", addr))
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}
