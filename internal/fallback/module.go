package fallback

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/loandesk/internal/config"
)

// Module provides the fallback data provider and keeps it in sync with its file.
var Module = fx.Options(
	fx.Provide(newProvider, NewWatcher),
	fx.Invoke(registerLifecycle),
)

func newProvider(cfg *config.Config, logger *slog.Logger) *Provider {
	return NewProvider(cfg.FallbackDataPath, logger)
}

type lifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Provider  *Provider
	Watcher   *Watcher
	Logger    *slog.Logger
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := p.Provider.Load(); err != nil {
				p.Logger.Error("initial fallback load failed", slog.String("error", err.Error()))
			}
			if err := p.Watcher.Start(context.Background()); err != nil {
				p.Logger.Warn("fallback hot reload disabled", slog.String("error", err.Error()))
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			p.Watcher.Stop()
			return nil
		},
	})
}
