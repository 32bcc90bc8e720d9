// Package app wires the storefront together: storage, session, API client,
// cart, and checkout workflow, built once from configuration.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/obafemitayor/user-snack/internal/api"
	"github.com/obafemitayor/user-snack/internal/cart"
	"github.com/obafemitayor/user-snack/internal/checkout"
	"github.com/obafemitayor/user-snack/internal/config"
	"github.com/obafemitayor/user-snack/internal/notify"
	"github.com/obafemitayor/user-snack/internal/session"
	"github.com/obafemitayor/user-snack/internal/storage"
	"github.com/obafemitayor/user-snack/pkg/httpclient"
	"github.com/obafemitayor/user-snack/pkg/logger"
)

// App holds the assembled application.
type App struct {
	Config   *config.Config
	Logger   *slog.Logger
	Store    storage.KV
	Session  *session.Manager
	API      *api.Client
	Cart     *cart.Store
	Workflow *checkout.Workflow
	Notifier notify.Notifier

	closers []io.Closer
}

// New assembles the application. out receives user-facing notifications.
func New(ctx context.Context, cfg *config.Config, out io.Writer) (*App, error) {
	log := logger.New("storefront", cfg.LogLevel)

	kv, closers, err := newStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	sess := session.NewManager(kv, log)
	notifier := notify.NewWriterNotifier(out)
	sess.OnInvalidate(func(ctx context.Context, reason string) {
		notifier.Notify(ctx, notify.Notification{
			Level:       notify.LevelWarning,
			Title:       "Session expired",
			Description: "Please log in again.",
		})
	})

	apiClient := newAPIClient(cfg, sess, log)
	cartStore := cart.NewStore(kv, log)

	// The CLI has no router to redirect through; landing on the menu route
	// is reported as a log line instead.
	nav := checkout.NavigatorFunc(func(ctx context.Context, route string) {
		log.InfoContext(ctx, "navigating", slog.String("route", route))
	})
	workflow := checkout.NewWorkflow(cartStore, apiClient, notifier, nav, log)

	return &App{
		Config:   cfg,
		Logger:   log,
		Store:    kv,
		Session:  sess,
		API:      apiClient,
		Cart:     cartStore,
		Workflow: workflow,
		Notifier: notifier,
		closers:  closers,
	}, nil
}

// Close releases held resources.
func (a *App) Close() error {
	var firstErr error
	for _, c := range a.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func newStore(ctx context.Context, cfg *config.Config) (storage.KV, []io.Closer, error) {
	switch cfg.StorageBackend {
	case config.StorageRedis:
		rs, err := storage.NewRedisStore(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, nil, err
		}
		return rs, []io.Closer{rs}, nil
	case config.StorageFile:
		fs, err := storage.NewFileStore(cfg.StateDir)
		if err != nil {
			return nil, nil, err
		}
		return fs, nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

// newAPIClient builds the two doers behind the API client: a retrying,
// optionally circuit-broken client for reads and a single-attempt client
// for mutating calls.
func newAPIClient(cfg *config.Config, sess *session.Manager, log *slog.Logger) *api.Client {
	readCfg := httpclient.DefaultConfig()
	readCfg.Transport = otelhttp.NewTransport(http.DefaultTransport)
	readClient := httpclient.New(readCfg)

	var reads api.Doer = readClient
	if cfg.CircuitBreakerEnabled {
		cbCfg := httpclient.DefaultCircuitBreakerConfig("pizzeria-api")
		reads = httpclient.NewCircuitBreakerClient(readClient, cbCfg, log)
	}

	writeCfg := httpclient.NoRetryConfig()
	writeCfg.Transport = otelhttp.NewTransport(http.DefaultTransport)
	writes := httpclient.New(writeCfg)

	return api.NewClient(cfg.APIBaseURL, reads, writes, sess, log)
}
