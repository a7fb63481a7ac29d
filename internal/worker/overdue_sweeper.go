package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/loandesk/internal/domain/errors"
	"github.com/polkiloo/loandesk/internal/domain/model"
)

// SweepFacade exposes the subset of application functionality required by the sweeper.
type SweepFacade interface {
	OverdueLoans(ctx context.Context, now time.Time, limit int) ([]model.Loan, error)
	SettleLoan(ctx context.Context, loan model.Loan) (model.LoanStatus, error)
}

// OverdueSweeper periodically settles past-due loans using a fixed worker pool.
type OverdueSweeper struct {
	facade    SweepFacade
	interval  time.Duration
	batchSize int
	workers   int
	logger    *slog.Logger
	now       func() time.Time

	jobs   chan model.Loan
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewOverdueSweeper constructs the sweeper worker pool.
func NewOverdueSweeper(facade SweepFacade, interval time.Duration, batchSize, workers int, logger *slog.Logger) *OverdueSweeper {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	if interval <= 0 {
		interval = time.Minute
	}
	return &OverdueSweeper{
		facade:    facade,
		interval:  interval,
		batchSize: batchSize,
		workers:   workers,
		logger:    logger,
		now:       time.Now,
		jobs:      make(chan model.Loan, batchSize*workers),
	}
}

// Start launches background processing.
func (s *OverdueSweeper) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		return
	}
	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	for i := 0; i < s.workers; i++ {
		s.wg.Add(1)
		go s.worker(runCtx)
	}

	s.wg.Add(1)
	go s.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (s *OverdueSweeper) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *OverdueSweeper) dispatch(ctx context.Context) {
	defer s.wg.Done()
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.fetchAndDispatch(ctx)
		}
	}
}

func (s *OverdueSweeper) fetchAndDispatch(ctx context.Context) {
	loans, err := s.facade.OverdueLoans(ctx, s.now().UTC(), s.batchSize)
	if err != nil {
		if errors.Is(err, domainErrors.ErrStoreUnavailable) {
			s.logger.Warn("overdue sweep skipped, database unreachable")
			return
		}
		s.logger.Error("fetch overdue loans failed", slog.String("error", err.Error()))
		return
	}
	for _, loan := range loans {
		select {
		case <-ctx.Done():
			return
		case s.jobs <- loan:
		}
	}
}

func (s *OverdueSweeper) worker(ctx context.Context) {
	defer s.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case loan := <-s.jobs:
			s.handleLoan(ctx, loan)
		}
	}
}

func (s *OverdueSweeper) handleLoan(ctx context.Context, loan model.Loan) {
	status, err := s.facade.SettleLoan(ctx, loan)
	if err != nil {
		s.logger.Error("settle loan failed", slog.String("loan", loan.ID), slog.String("error", err.Error()))
		return
	}
	if status != "" {
		s.logger.Info("loan status updated", slog.String("loan", loan.ID), slog.String("status", string(status)))
	}
}
