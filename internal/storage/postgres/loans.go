package postgres

import (
	"context"
	"time"

	domainErrors "github.com/polkiloo/loandesk/internal/domain/errors"
	"github.com/polkiloo/loandesk/internal/domain/model"
)

type loanRepository struct {
	storage *Storage
}

const loanColumns = `id, borrower_name, borrower_email, borrower_phone, amount, purpose, term_months,
                     status, issued_at, due_at, created_by, created_at, updated_at`

func scanLoan(row scanner) (*model.Loan, error) {
	var (
		l      model.Loan
		id     int64
		status string
	)
	err := row.Scan(&id, &l.Borrower.FullName, &l.Borrower.Email, &l.Borrower.Phone, &l.Amount, &l.Purpose,
		&l.TermMonths, &status, &l.IssuedAt, &l.DueAt, &l.CreatedBy, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	l.ID = formatID(id)
	l.Status = model.LoanStatus(status)
	l.Source = model.SourceDatabase
	return &l, nil
}

func (r *loanRepository) Create(ctx context.Context, loan model.Loan) (*model.Loan, error) {
	const query = `INSERT INTO loans (borrower_name, borrower_email, borrower_phone, amount, purpose, term_months,
                                      status, issued_at, due_at, created_by)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
                   RETURNING ` + loanColumns
	created, err := scanLoan(r.storage.pool.QueryRow(ctx, query,
		loan.Borrower.FullName, loan.Borrower.Email, loan.Borrower.Phone, loan.Amount, loan.Purpose,
		loan.TermMonths, string(loan.Status), loan.IssuedAt, loan.DueAt, loan.CreatedBy))
	if err != nil {
		return nil, classify(err)
	}
	return created, nil
}

func (r *loanRepository) GetByID(ctx context.Context, id string) (*model.Loan, error) {
	loanID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	const query = `SELECT ` + loanColumns + ` FROM loans WHERE id=$1`
	loan, err := scanLoan(r.storage.pool.QueryRow(ctx, query, loanID))
	if err != nil {
		return nil, classify(err)
	}
	return loan, nil
}

func (r *loanRepository) List(ctx context.Context, filter model.LoanFilter) ([]model.Loan, error) {
	const query = `SELECT ` + loanColumns + ` FROM loans
                   WHERE ($1 = '' OR status = $1)
                     AND ($2 = '' OR borrower_name ILIKE '%' || $2 || '%' OR borrower_phone ILIKE '%' || $2 || '%')
                   ORDER BY issued_at DESC, id DESC`
	return r.query(ctx, query, string(filter.Status), filter.Search)
}

func (r *loanRepository) Update(ctx context.Context, loan model.Loan) (*model.Loan, error) {
	loanID, err := parseID(loan.ID)
	if err != nil {
		return nil, err
	}
	const query = `UPDATE loans SET borrower_name=$1, borrower_email=$2, borrower_phone=$3, amount=$4, purpose=$5,
                                    term_months=$6, status=$7, issued_at=$8, due_at=$9, updated_at=NOW()
                   WHERE id=$10
                   RETURNING ` + loanColumns
	updated, err := scanLoan(r.storage.pool.QueryRow(ctx, query,
		loan.Borrower.FullName, loan.Borrower.Email, loan.Borrower.Phone, loan.Amount, loan.Purpose,
		loan.TermMonths, string(loan.Status), loan.IssuedAt, loan.DueAt, loanID))
	if err != nil {
		return nil, classify(err)
	}
	return updated, nil
}

func (r *loanRepository) Delete(ctx context.Context, id string) error {
	loanID, err := parseID(id)
	if err != nil {
		return err
	}
	tag, err := r.storage.pool.Exec(ctx, `DELETE FROM loans WHERE id=$1`, loanID)
	if err != nil {
		return classify(err)
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// SelectOverdue returns unsettled loans whose due date passed before now.
func (r *loanRepository) SelectOverdue(ctx context.Context, now time.Time, limit int) ([]model.Loan, error) {
	const query = `SELECT ` + loanColumns + ` FROM loans
                   WHERE status IN ('pending', 'active') AND due_at < $1
                   ORDER BY due_at
                   LIMIT $2`
	return r.query(ctx, query, now, limit)
}

// UpdateStatus changes status of a loan that is not settled yet.
func (r *loanRepository) UpdateStatus(ctx context.Context, id string, status model.LoanStatus) error {
	loanID, err := parseID(id)
	if err != nil {
		return err
	}
	const query = `UPDATE loans SET status=$1, updated_at=NOW() WHERE id=$2 AND status NOT IN ('paid', 'defaulted')`
	tag, err := r.storage.pool.Exec(ctx, query, string(status), loanID)
	if err != nil {
		return classify(err)
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *loanRepository) query(ctx context.Context, query string, args ...any) ([]model.Loan, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	var result []model.Loan
	for rows.Next() {
		loan, err := scanLoan(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *loan)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
