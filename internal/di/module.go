package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/loandesk/internal/app"
	"github.com/polkiloo/loandesk/internal/config"
	"github.com/polkiloo/loandesk/internal/fallback"
	"github.com/polkiloo/loandesk/internal/logger"
	"github.com/polkiloo/loandesk/internal/metrics"
	"github.com/polkiloo/loandesk/internal/pkg/auth"
	"github.com/polkiloo/loandesk/internal/probe"
	"github.com/polkiloo/loandesk/internal/server/http/router"
	"github.com/polkiloo/loandesk/internal/storage/postgres"
	"github.com/polkiloo/loandesk/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		metrics.Module,
		auth.Module,
		postgres.Module,
		fx.Provide(func(s *postgres.Storage) probe.HealthChecker { return s }),
		probe.Module,
		fallback.Module,
		usecase.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
