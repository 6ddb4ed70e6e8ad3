package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"angodata/pkg/platform/sentinel"
)

const userColumns = `id, username, email, password_hash, role, created_at`

// PostgresUserStore persists accounts in the users table.
type PostgresUserStore struct {
	db *sql.DB
}

func NewPostgresUserStore(db *sql.DB) *PostgresUserStore {
	return &PostgresUserStore{db: db}
}

// EnsureUserSchema creates the users table when absent.
func EnsureUserSchema(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id             BIGSERIAL PRIMARY KEY,
			username       TEXT NOT NULL,
			email          TEXT NOT NULL,
			password_hash  TEXT NOT NULL,
			role           TEXT NOT NULL,
			created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS users_username_key ON users (LOWER(username))`,
		`CREATE UNIQUE INDEX IF NOT EXISTS users_email_key ON users (LOWER(email))`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure users schema: %w", err)
		}
	}
	return nil
}

func translateUserErr(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return sentinel.ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return fmt.Errorf("%s: %w", pqErr.Message, sentinel.ErrConflict)
	}
	return err
}

func scanUser(row interface{ Scan(...any) error }) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt)
	return u, err
}

func (s *PostgresUserStore) List(ctx context.Context) ([]User, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	items := []User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		items = append(items, u)
	}
	return items, rows.Err()
}

func (s *PostgresUserStore) GetByID(ctx context.Context, id int64) (User, error) {
	u, err := scanUser(s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return User{}, fmt.Errorf("get user %d: %w", id, translateUserErr(err))
	}
	return u, nil
}

func (s *PostgresUserStore) GetByEmail(ctx context.Context, email string) (User, error) {
	u, err := scanUser(s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE LOWER(email) = LOWER($1)`, email))
	if err != nil {
		return User{}, fmt.Errorf("get user by email: %w", translateUserErr(err))
	}
	return u, nil
}

func (s *PostgresUserStore) GetByUsername(ctx context.Context, username string) (User, error) {
	u, err := scanUser(s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE LOWER(username) = LOWER($1)`, username))
	if err != nil {
		return User{}, fmt.Errorf("get user %q: %w", username, translateUserErr(err))
	}
	return u, nil
}

func (s *PostgresUserStore) Create(ctx context.Context, user *User) error {
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO users (username, email, password_hash, role, created_at)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		user.Username, user.Email, user.PasswordHash, user.Role, user.CreatedAt,
	).Scan(&user.ID)
	if err != nil {
		return fmt.Errorf("create user: %w", translateUserErr(err))
	}
	return nil
}

func (s *PostgresUserStore) Update(ctx context.Context, user User) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET username = $1, email = $2, password_hash = $3, role = $4 WHERE id = $5`,
		user.Username, user.Email, user.PasswordHash, user.Role, user.ID,
	)
	if err != nil {
		return fmt.Errorf("update user %d: %w", user.ID, translateUserErr(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update user %d: %w", user.ID, err)
	}
	if n == 0 {
		return fmt.Errorf("user %d: %w", user.ID, sentinel.ErrNotFound)
	}
	return nil
}

func (s *PostgresUserStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("user %d: %w", id, sentinel.ErrNotFound)
	}
	return nil
}
