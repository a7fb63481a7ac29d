package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/loandesk/internal/domain/errors"
	"github.com/polkiloo/loandesk/internal/domain/model"
)

type paymentRepository struct {
	storage *Storage
}

func (r *paymentRepository) Record(ctx context.Context, payment model.Payment) (*model.Payment, error) {
	loanID, err := parseID(payment.LoanID)
	if err != nil {
		return nil, err
	}

	err = r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const loanQuery = `SELECT amount, status FROM loans WHERE id=$1 FOR UPDATE`
		var (
			amount float64
			status string
		)
		if err := tx.QueryRow(ctx, loanQuery, loanID).Scan(&amount, &status); err != nil {
			return classify(err)
		}
		if model.LoanStatus(status).Closed() {
			return domainErrors.ErrLoanClosed
		}

		const insertPayment = `INSERT INTO payments (loan_id, amount, method, note, recorded_by)
                               VALUES ($1, $2, $3, $4, $5) RETURNING id, paid_at`
		if err := tx.QueryRow(ctx, insertPayment, loanID, payment.Amount, payment.Method, payment.Note, payment.RecordedBy).
			Scan(&payment.ID, &payment.PaidAt); err != nil {
			return err
		}

		const totalQuery = `SELECT COALESCE(SUM(amount), 0) FROM payments WHERE loan_id=$1`
		var repaid float64
		if err := tx.QueryRow(ctx, totalQuery, loanID).Scan(&repaid); err != nil {
			return err
		}

		if repaid >= amount {
			const settle = `UPDATE loans SET status='paid', updated_at=NOW() WHERE id=$1`
			if _, err := tx.Exec(ctx, settle, loanID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, classify(err)
	}

	payment.LoanID = formatID(loanID)
	return &payment, nil
}

func (r *paymentRepository) ListByLoan(ctx context.Context, loanID string) ([]model.Payment, error) {
	id, err := parseID(loanID)
	if err != nil {
		return nil, err
	}

	const query = `SELECT id, loan_id, amount, method, note, recorded_by, paid_at
                   FROM payments WHERE loan_id=$1 ORDER BY paid_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, id)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	var result []model.Payment
	for rows.Next() {
		var (
			p    model.Payment
			loan int64
		)
		if err := rows.Scan(&p.ID, &loan, &p.Amount, &p.Method, &p.Note, &p.RecordedBy, &p.PaidAt); err != nil {
			return nil, err
		}
		p.LoanID = formatID(loan)
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *paymentRepository) TotalByLoan(ctx context.Context, loanID string) (float64, error) {
	id, err := parseID(loanID)
	if err != nil {
		return 0, err
	}
	var total float64
	err = r.storage.pool.QueryRow(ctx, `SELECT COALESCE(SUM(amount), 0) FROM payments WHERE loan_id=$1`, id).Scan(&total)
	if err != nil {
		return 0, classify(err)
	}
	return total, nil
}

func (r *paymentRepository) Total(ctx context.Context) (float64, error) {
	var total float64
	if err := r.storage.pool.QueryRow(ctx, `SELECT COALESCE(SUM(amount), 0) FROM payments`).Scan(&total); err != nil {
		return 0, classify(err)
	}
	return total, nil
}
