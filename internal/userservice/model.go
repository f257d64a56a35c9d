package userservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sushihentaime/blogplatform/internal/common"
)

var sortColumns = map[string]string{
	"id":        "id",
	"login":     "login",
	"email":     "email",
	"createdAt": "created_at",
}

// userFilter matches everything when both terms are empty, otherwise any user
// whose login or email contains a non-empty term.
const userFilter = `
		WHERE ($1 = '' AND $2 = '')
		   OR ($1 <> '' AND login ILIKE $3)
		   OR ($2 <> '' AND email ILIKE $4)`

func newUserModel(db *sql.DB) *DBModel {
	return &DBModel{db: db}
}

func (m *DBModel) insertUser(ctx context.Context, u *User) error {
	query := `
		INSERT INTO users (login, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	return m.db.QueryRowContext(ctx, query, u.Login, u.Email, u.Password.hash, u.CreatedAt.Time).Scan(&u.ID)
}

func (m *DBModel) getUserByID(ctx context.Context, id string) (*User, error) {
	query := `
		SELECT id, login, email, created_at
		FROM users
		WHERE id = $1`

	var u User
	err := m.db.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.Login, &u.Email, &u.CreatedAt.Time)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, common.ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &u, nil
}

// getUserByLoginOrEmail returns the oldest user whose login or email contains
// term, ignoring case, together with the password hash.
func (m *DBModel) getUserByLoginOrEmail(ctx context.Context, term string) (*User, error) {
	query := `
		SELECT id, login, email, password_hash, created_at
		FROM users
		WHERE login ILIKE $1 OR email ILIKE $1
		ORDER BY created_at ASC, id ASC
		LIMIT 1`

	var u User
	err := m.db.QueryRowContext(ctx, query, common.ContainsPattern(term)).Scan(&u.ID, &u.Login, &u.Email, &u.Password.hash, &u.CreatedAt.Time)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, common.ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &u, nil
}

func (m *DBModel) getUsers(ctx context.Context, q UserQuery) ([]User, int, error) {
	args := []any{
		q.SearchLoginTerm,
		q.SearchEmailTerm,
		common.ContainsPattern(q.SearchLoginTerm),
		common.ContainsPattern(q.SearchEmailTerm),
	}

	var total int
	err := m.db.QueryRowContext(ctx, `SELECT count(*) FROM users`+userFilter, args...).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT id, login, email, created_at
		FROM users
		%s
		%s
		LIMIT $5 OFFSET $6`, userFilter, q.OrderBy(sortColumns))

	rows, err := m.db.QueryContext(ctx, query, append(args, q.PageSize, q.Offset())...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	users := []User{}
	for rows.Next() {
		var u User
		err := rows.Scan(&u.ID, &u.Login, &u.Email, &u.CreatedAt.Time)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func (m *DBModel) deleteUser(ctx context.Context, id string) error {
	res, err := m.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}

	return common.ExpectOneRow(res)
}

func (m *DBModel) deleteAll(ctx context.Context) error {
	_, err := m.db.ExecContext(ctx, `DELETE FROM users`)
	return err
}
