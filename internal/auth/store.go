package auth

import "context"

// UserStore persists accounts. Username and email lookups are
// case-insensitive; implementations return sentinel errors.
type UserStore interface {
	List(ctx context.Context) ([]User, error)
	GetByID(ctx context.Context, id int64) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user User) error
	Delete(ctx context.Context, id int64) error
}
