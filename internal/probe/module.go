package probe

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/loandesk/internal/config"
	"github.com/polkiloo/loandesk/internal/metrics"
)

// Module provides the reachability prober.
var Module = fx.Provide(newProber)

type proberParams struct {
	fx.In

	Checker HealthChecker
	Config  *config.Config
	Logger  *slog.Logger
	Metrics *metrics.Metrics
}

func newProber(p proberParams) *Prober {
	return New(p.Checker, p.Config.ProbeAttempts, p.Config.ProbeBackoff, p.Logger, p.Metrics)
}
