package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/loandesk/internal/config"
	"github.com/polkiloo/loandesk/internal/server/http/handlers"
	"github.com/polkiloo/loandesk/internal/worker"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		NewLoanDeskFacade,
		func(f *LoanDeskFacade) handlers.LoanDeskFacade { return f },
		func(f *LoanDeskFacade) UserSeeder { return f },
		newHTTPServer,
		newOverdueSweeper,
	),
	fx.Invoke(registerLifecycle),
)

// UserSeeder bootstraps staff accounts on startup.
type UserSeeder interface {
	SeedUsers(ctx context.Context, path string) (int, error)
}

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:    p.Config.RunAddress,
		Handler: p.Router,
	}
}

type workerParams struct {
	fx.In

	Facade *LoanDeskFacade
	Config *config.Config
	Logger *slog.Logger
}

func newOverdueSweeper(p workerParams) *worker.OverdueSweeper {
	return worker.NewOverdueSweeper(
		p.Facade,
		p.Config.SweepInterval,
		p.Config.SweepBatch,
		p.Config.WorkerPoolSize,
		p.Logger,
	)
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Worker     *worker.OverdueSweeper
	Seeder     UserSeeder
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if p.Config.SeedUsersFile != "" {
				created, err := p.Seeder.SeedUsers(ctx, p.Config.SeedUsersFile)
				if err != nil {
					p.Logger.Warn("seed users failed", slog.String("file", p.Config.SeedUsersFile), slog.String("error", err.Error()))
				} else {
					p.Logger.Info("seed users applied", slog.Int("created", created))
				}
			}

			p.Logger.Info("starting loandesk", slog.String("addr", p.Server.Addr))
			p.Worker.Start(context.Background())
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			p.Worker.Stop()

			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			if err := p.Server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			p.Logger.Info("loandesk stopped")
			return nil
		},
	})
}
