package usecase

import (
	"go.uber.org/fx"

	"github.com/polkiloo/loandesk/internal/fallback"
	"github.com/polkiloo/loandesk/internal/probe"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	func(p *probe.Prober) ReachabilityChecker { return p },
	func(p *fallback.Provider) FallbackLoans { return p },
	NewAuthUseCase,
	NewUserUseCase,
	NewLoanUseCase,
	NewPaymentUseCase,
	NewDashboardUseCase,
	NewSweepUseCase,
)
