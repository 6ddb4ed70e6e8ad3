// Package auth owns user accounts, credentials and role assignment. The
// rest of the API consumes identities through signed token claims, never
// through this package's stores.
package auth

import (
	"regexp"
	"strings"
	"time"

	derrors "angodata/pkg/domain-errors"
)

// Role is the authorization level carried in token claims.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleUser   Role = "user"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleEditor || r == RoleUser
}

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)

// User is the stored account. PasswordHash is serialized in snapshots but
// must never leave the API; responses go through Public.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash,omitempty"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// PublicUser is the API-facing shape of an account.
type PublicUser struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func (u User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// ValidateNew checks the registration fields. Email comparison elsewhere
// is case-insensitive; the address is stored lowercased.
func ValidateNew(username, email, password string, role Role) error {
	fields := accountFields(username, email, role)
	if len(password) < 8 {
		fields["password"] = "must be at least 8 characters"
	}
	if len(fields) > 0 {
		return derrors.New(derrors.CodeValidation, "invalid user").WithFields(fields)
	}
	return nil
}

// validateAccount checks everything but the password, for updates that
// keep the stored hash.
func validateAccount(username, email string, role Role) error {
	if fields := accountFields(username, email, role); len(fields) > 0 {
		return derrors.New(derrors.CodeValidation, "invalid user").WithFields(fields)
	}
	return nil
}

func accountFields(username, email string, role Role) map[string]string {
	fields := map[string]string{}
	switch {
	case len(username) < 3:
		fields["username"] = "must be at least 3 characters"
	case len(username) > 50:
		fields["username"] = "must be 50 characters or less"
	case !usernamePattern.MatchString(username):
		fields["username"] = "may only contain letters, digits, dot, dash and underscore"
	}
	if !strings.Contains(email, "@") || len(email) > 254 {
		fields["email"] = "must be a valid email address"
	}
	if !role.Valid() {
		fields["role"] = "must be admin, editor or user"
	}
	return fields
}
