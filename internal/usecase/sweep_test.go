package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	domainErrors "github.com/polkiloo/loandesk/internal/domain/errors"
	"github.com/polkiloo/loandesk/internal/domain/model"
	"github.com/polkiloo/loandesk/internal/metrics"
	testhelpers "github.com/polkiloo/loandesk/internal/test"
)

func TestSweepUseCaseOverdueLoans(t *testing.T) {
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	loans := &testhelpers.LoanRepositoryStub{SelectOverdueFn: func(_ context.Context, at time.Time, limit int) ([]model.Loan, error) {
		if !at.Equal(now) || limit != 5 {
			t.Fatalf("unexpected arguments %v %d", at, limit)
		}
		return []model.Loan{{ID: "1"}}, nil
	}}
	uc := NewSweepUseCase(loans, &testhelpers.PaymentRepositoryStub{}, nil)

	got, err := uc.OverdueLoans(context.Background(), now, 5)
	if err != nil || len(got) != 1 {
		t.Fatalf("unexpected result %v %v", got, err)
	}
}

func TestSweepUseCaseSettle(t *testing.T) {
	cases := []struct {
		name   string
		repaid float64
		want   model.LoanStatus
	}{
		{"partially repaid", 40, model.LoanStatusOverdue},
		{"nothing repaid", 0, model.LoanStatusOverdue},
		{"fully repaid", 100, model.LoanStatusPaid},
		{"overpaid", 120, model.LoanStatusPaid},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var updated model.LoanStatus
			loans := &testhelpers.LoanRepositoryStub{UpdateStatusFn: func(_ context.Context, id string, status model.LoanStatus) error {
				if id != "L1" {
					t.Fatalf("unexpected loan %q", id)
				}
				updated = status
				return nil
			}}
			payments := &testhelpers.PaymentRepositoryStub{TotalByLoanFn: func(context.Context, string) (float64, error) {
				return tc.repaid, nil
			}}
			m := metrics.New(prometheus.NewRegistry())
			uc := NewSweepUseCase(loans, payments, m)

			status, err := uc.Settle(context.Background(), model.Loan{ID: "L1", Amount: 100})
			if err != nil {
				t.Fatalf("settle returned error: %v", err)
			}
			if status != tc.want || updated != tc.want {
				t.Fatalf("expected %q, got %q (stored %q)", tc.want, status, updated)
			}
			if got := testutil.ToFloat64(m.SweepUpdatesTotal.WithLabelValues(string(tc.want))); got != 1 {
				t.Fatalf("expected one %q update, got %v", tc.want, got)
			}
		})
	}
}

func TestSweepUseCaseSettleErrors(t *testing.T) {
	boom := errors.New("boom")
	payments := &testhelpers.PaymentRepositoryStub{TotalByLoanFn: func(context.Context, string) (float64, error) {
		return 0, boom
	}}
	loans := &testhelpers.LoanRepositoryStub{}
	uc := NewSweepUseCase(loans, payments, nil)
	if _, err := uc.Settle(context.Background(), model.Loan{ID: "1"}); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if loans.CallCount() != 0 {
		t.Fatal("status must not change when the balance is unknown")
	}

	payments.TotalByLoanFn = func(context.Context, string) (float64, error) { return 0, nil }
	loans.UpdateStatusFn = func(context.Context, string, model.LoanStatus) error { return domainErrors.ErrNotFound }
	status, err := uc.Settle(context.Background(), model.Loan{ID: "1", Amount: 10})
	if err != nil || status != "" {
		t.Fatalf("expected vanished loan to be skipped, got %q %v", status, err)
	}

	loans.UpdateStatusFn = func(context.Context, string, model.LoanStatus) error { return boom }
	if _, err := uc.Settle(context.Background(), model.Loan{ID: "1", Amount: 10}); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}
