package test

import (
	"context"
	"sync/atomic"
	"time"

	domainErrors "github.com/polkiloo/loandesk/internal/domain/errors"
	"github.com/polkiloo/loandesk/internal/domain/model"
	"github.com/polkiloo/loandesk/internal/probe"
)

// ProberStub reports a fixed reachability result.
type ProberStub struct {
	Reachable bool
	Attempts  int
	checks    int32
}

// Check returns configured status.
func (p *ProberStub) Check(ctx context.Context) probe.Status {
	atomic.AddInt32(&p.checks, 1)
	attempts := p.Attempts
	if attempts == 0 {
		attempts = 1
	}
	return probe.Status{Reachable: p.Reachable, Attempts: attempts, CheckedAt: time.Unix(0, 0).UTC()}
}

// Checks returns number of Check invocations.
func (p *ProberStub) Checks() int {
	return int(atomic.LoadInt32(&p.checks))
}

// FallbackStub serves a fixed loan set.
type FallbackStub struct {
	Loans []model.Loan
	Err   error
}

// List returns copy of configured loans.
func (f *FallbackStub) List(ctx context.Context) ([]model.Loan, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	out := make([]model.Loan, len(f.Loans))
	copy(out, f.Loans)
	return out, nil
}

// Get returns configured loan with id.
func (f *FallbackStub) Get(ctx context.Context, id string) (*model.Loan, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	for _, loan := range f.Loans {
		if loan.ID == id {
			found := loan
			return &found, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}
