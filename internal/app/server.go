package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	adminhttp "github.com/obafemitayor/user-snack/internal/admin/handler/http"
	"github.com/obafemitayor/user-snack/pkg/health"
	"github.com/obafemitayor/user-snack/pkg/pagination"
)

func paginationProbe() pagination.Params {
	return pagination.Params{Page: 1, Limit: 1}
}

// AdminServer runs the admin order console HTTP API.
type AdminServer struct {
	app    *App
	server *http.Server
}

// NewAdminServer builds the console router on top of the assembled app.
func NewAdminServer(a *App) *AdminServer {
	healthHandler := health.NewHandler()
	// The console is only useful when the backend answers; readiness probes
	// it with a cheap one-item listing.
	healthHandler.Register("pizzeria-api", func(ctx context.Context) error {
		_, err := a.API.ListPizzas(ctx, paginationProbe())
		return err
	})
	if pinger, ok := a.Store.(interface{ Ping(context.Context) error }); ok {
		healthHandler.Register("storage", pinger.Ping)
	}

	orders := adminhttp.NewOrdersHandler(a.API, a.Logger)
	router := adminhttp.NewRouter(orders, adminhttp.RouterConfig{
		Logger:         a.Logger,
		Health:         healthHandler,
		AllowedOrigins: a.Config.AllowedOrigins,
		Environment:    a.Config.Environment,
	})

	return &AdminServer{
		app: a,
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", a.Config.AdminHTTPPort),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Run serves until the context is canceled, then shuts down gracefully.
func (s *AdminServer) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	s.app.Logger.Info("admin console listening", "addr", s.server.Addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown admin console: %w", err)
	}
	return nil
}
