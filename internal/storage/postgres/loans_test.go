package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmockv3 "github.com/pashagolub/pgxmock/v3"

	domainErrors "github.com/polkiloo/loandesk/internal/domain/errors"
	"github.com/polkiloo/loandesk/internal/domain/model"
)

var loanColumnNames = []string{
	"id", "borrower_name", "borrower_email", "borrower_phone", "amount", "purpose", "term_months",
	"status", "issued_at", "due_at", "created_by", "created_at", "updated_at",
}

func loanRow(rows *pgxmockv3.Rows, id int64, status string, at time.Time) *pgxmockv3.Rows {
	return rows.AddRow(id, "Jane Doe", "jane@example.com", "0700", 5000.0, "General", 3,
		status, at, at.AddDate(0, 3, 0), int64(1), at, at)
}

func TestLoanRepositoryCreate(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &loanRepository{storage: storage}

	issued := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	loan := model.Loan{
		Borrower:   model.Borrower{FullName: "Jane Doe", Email: "jane@example.com", Phone: "0700"},
		Amount:     5000,
		Purpose:    "General",
		TermMonths: 3,
		Status:     model.LoanStatusActive,
		IssuedAt:   issued,
		DueAt:      issued.AddDate(0, 3, 0),
		CreatedBy:  1,
	}

	mock.ExpectQuery("INSERT INTO loans").
		WithArgs("Jane Doe", "jane@example.com", "0700", 5000.0, "General", 3, "active", issued, issued.AddDate(0, 3, 0), int64(1)).
		WillReturnRows(loanRow(pgxmockv3.NewRows(loanColumnNames), 11, "active", issued))

	created, err := repo.Create(context.Background(), loan)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != "11" || created.Source != model.SourceDatabase || created.Status != model.LoanStatusActive {
		t.Fatalf("unexpected loan: %+v", created)
	}

	mock.ExpectQuery("INSERT INTO loans").WithArgs(
		pgxmockv3.AnyArg(), pgxmockv3.AnyArg(), pgxmockv3.AnyArg(), pgxmockv3.AnyArg(), pgxmockv3.AnyArg(),
		pgxmockv3.AnyArg(), pgxmockv3.AnyArg(), pgxmockv3.AnyArg(), pgxmockv3.AnyArg(), pgxmockv3.AnyArg(),
	).WillReturnError(errors.New("insert"))
	if _, err := repo.Create(context.Background(), loan); err == nil {
		t.Fatal("expected error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestLoanRepositoryGetByID(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &loanRepository{storage: storage}

	now := time.Now()
	mock.ExpectQuery("FROM loans WHERE id=").WithArgs(int64(7)).WillReturnRows(loanRow(pgxmockv3.NewRows(loanColumnNames), 7, "pending", now))
	loan, err := repo.GetByID(context.Background(), "7")
	if err != nil || loan.ID != "7" || loan.Borrower.FullName != "Jane Doe" {
		t.Fatalf("unexpected result: %+v err=%v", loan, err)
	}

	mock.ExpectQuery("FROM loans WHERE id=").WithArgs(int64(8)).WillReturnError(pgx.ErrNoRows)
	if _, err := repo.GetByID(context.Background(), "8"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	if _, err := repo.GetByID(context.Background(), "fallback-1"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found for non-numeric id, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestLoanRepositoryList(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &loanRepository{storage: storage}

	now := time.Now()
	rows := pgxmockv3.NewRows(loanColumnNames)
	loanRow(rows, 2, "active", now)
	loanRow(rows, 1, "paid", now)
	mock.ExpectQuery("FROM loans WHERE").WithArgs("", "").WillReturnRows(rows)

	loans, err := repo.List(context.Background(), model.LoanFilter{})
	if err != nil || len(loans) != 2 || loans[1].Status != model.LoanStatusPaid {
		t.Fatalf("unexpected result: %v err=%v", loans, err)
	}

	mock.ExpectQuery("FROM loans WHERE").WithArgs("overdue", "jane").WillReturnRows(pgxmockv3.NewRows(loanColumnNames))
	loans, err = repo.List(context.Background(), model.LoanFilter{Status: model.LoanStatusOverdue, Search: "jane"})
	if err != nil || len(loans) != 0 {
		t.Fatalf("expected empty result, got %v err=%v", loans, err)
	}

	mock.ExpectQuery("FROM loans WHERE").WithArgs("", "").WillReturnError(errors.New("query"))
	if _, err := repo.List(context.Background(), model.LoanFilter{}); err == nil {
		t.Fatal("expected error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestLoanRepositoryListRowsError(t *testing.T) {
	storage := &Storage{pool: &rowsErrorPool{rows: &errorRows{err: errors.New("rows err")}}}
	repo := &loanRepository{storage: storage}

	if _, err := repo.List(context.Background(), model.LoanFilter{}); err == nil || err.Error() != "rows err" {
		t.Fatalf("expected rows err, got %v", err)
	}
}

func TestLoanRepositoryUpdate(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &loanRepository{storage: storage}

	now := time.Now()
	loan := model.Loan{ID: "4", Borrower: model.Borrower{FullName: "Jane Doe"}, Amount: 10, Purpose: "General", TermMonths: 1, Status: model.LoanStatusActive, IssuedAt: now, DueAt: now}

	mock.ExpectQuery("UPDATE loans SET borrower_name=").WithArgs(
		"Jane Doe", "", "", 10.0, "General", 1, "active", now, now, int64(4),
	).WillReturnRows(loanRow(pgxmockv3.NewRows(loanColumnNames), 4, "active", now))
	updated, err := repo.Update(context.Background(), loan)
	if err != nil || updated.ID != "4" {
		t.Fatalf("unexpected result: %+v err=%v", updated, err)
	}

	mock.ExpectQuery("UPDATE loans SET borrower_name=").WithArgs(
		"Jane Doe", "", "", 10.0, "General", 1, "active", now, now, int64(4),
	).WillReturnError(pgx.ErrNoRows)
	if _, err := repo.Update(context.Background(), loan); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	loan.ID = "x"
	if _, err := repo.Update(context.Background(), loan); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestLoanRepositoryDelete(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &loanRepository{storage: storage}

	mock.ExpectExec("DELETE FROM loans WHERE id=").WithArgs(int64(3)).WillReturnResult(pgxmockv3.NewResult("DELETE", 1))
	if err := repo.Delete(context.Background(), "3"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectExec("DELETE FROM loans WHERE id=").WithArgs(int64(3)).WillReturnResult(pgxmockv3.NewResult("DELETE", 0))
	if err := repo.Delete(context.Background(), "3"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectExec("DELETE FROM loans WHERE id=").WithArgs(int64(3)).WillReturnError(errors.New("exec"))
	if err := repo.Delete(context.Background(), "3"); err == nil {
		t.Fatal("expected error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestLoanRepositorySelectOverdue(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &loanRepository{storage: storage}

	now := time.Now()
	past := now.AddDate(0, -4, 0)
	rows := pgxmockv3.NewRows(loanColumnNames)
	loanRow(rows, 1, "active", past)
	loanRow(rows, 2, "pending", past)
	mock.ExpectQuery("WHERE status IN").WithArgs(now, 5).WillReturnRows(rows)

	loans, err := repo.SelectOverdue(context.Background(), now, 5)
	if err != nil || len(loans) != 2 {
		t.Fatalf("unexpected result: %v err=%v", loans, err)
	}

	mock.ExpectQuery("WHERE status IN").WithArgs(now, 5).WillReturnRows(
		pgxmockv3.NewRows(loanColumnNames).AddRow("bad", "", "", "", 0.0, "", 1, "active", now, now, int64(0), now, now),
	)
	if _, err := repo.SelectOverdue(context.Background(), now, 5); err == nil {
		t.Fatal("expected scan error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestLoanRepositoryUpdateStatus(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &loanRepository{storage: storage}

	mock.ExpectExec("UPDATE loans SET status=").WithArgs("overdue", int64(1)).WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
	if err := repo.UpdateStatus(context.Background(), "1", model.LoanStatusOverdue); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectExec("UPDATE loans SET status=").WithArgs("overdue", int64(2)).WillReturnResult(pgxmockv3.NewResult("UPDATE", 0))
	if err := repo.UpdateStatus(context.Background(), "2", model.LoanStatusOverdue); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectExec("UPDATE loans SET status=").WithArgs("paid", int64(3)).WillReturnError(errors.New("exec"))
	if err := repo.UpdateStatus(context.Background(), "3", model.LoanStatusPaid); err == nil {
		t.Fatal("expected error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}
