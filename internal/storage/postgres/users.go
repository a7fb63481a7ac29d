package postgres

import (
	"context"

	domainErrors "github.com/polkiloo/loandesk/internal/domain/errors"
	"github.com/polkiloo/loandesk/internal/domain/model"
)

type userRepository struct {
	storage *Storage
}

const userColumns = `id, username, password_hash, role, full_name, active, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner) (*model.User, error) {
	var (
		u    model.User
		role string
	)
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &role, &u.FullName, &u.Active, &u.CreatedAt); err != nil {
		return nil, err
	}
	u.Role = model.Role(role)
	return &u, nil
}

func (r *userRepository) Create(ctx context.Context, user model.User) (*model.User, error) {
	const query = `INSERT INTO users (username, password_hash, role, full_name, active)
                   VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`
	err := r.storage.pool.QueryRow(ctx, query, user.Username, user.PasswordHash, string(user.Role), user.FullName, user.Active).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return nil, classify(err)
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE username=$1`
	u, err := scanUser(r.storage.pool.QueryRow(ctx, query, username))
	if err != nil {
		return nil, classify(err)
	}
	return u, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id=$1`
	u, err := scanUser(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, classify(err)
	}
	return u, nil
}

func (r *userRepository) List(ctx context.Context) ([]model.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users ORDER BY id`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	var result []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	return r.update(ctx, `UPDATE users SET password_hash=$1 WHERE id=$2`, passwordHash, id)
}

func (r *userRepository) UpdateRole(ctx context.Context, id int64, role model.Role) error {
	return r.update(ctx, `UPDATE users SET role=$1 WHERE id=$2`, string(role), id)
}

func (r *userRepository) SetActive(ctx context.Context, id int64, active bool) error {
	return r.update(ctx, `UPDATE users SET active=$1 WHERE id=$2`, active, id)
}

func (r *userRepository) update(ctx context.Context, query string, value any, id int64) error {
	tag, err := r.storage.pool.Exec(ctx, query, value, id)
	if err != nil {
		return classify(err)
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}
