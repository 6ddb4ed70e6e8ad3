package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"angodata/internal/audit"
	"angodata/internal/jwttoken"
	"angodata/internal/platform/metrics"
	derrors "angodata/pkg/domain-errors"
	"angodata/pkg/platform/sentinel"
)

// TokenPair is what a successful login or refresh returns.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Service implements registration, login and account administration.
type Service struct {
	store   UserStore
	tokens  *jwttoken.Service
	logger  *slog.Logger
	metrics *metrics.Metrics
	audit   *audit.Service
	persist func(ctx context.Context) error
}

// NewService wires the account service. persist flushes the user snapshot
// after each mutation and may be nil when the database backend owns
// durability.
func NewService(store UserStore, tokens *jwttoken.Service, logger *slog.Logger, m *metrics.Metrics, auditSvc *audit.Service, persist func(ctx context.Context) error) *Service {
	return &Service{
		store:   store,
		tokens:  tokens,
		logger:  logger,
		metrics: m,
		audit:   auditSvc,
		persist: persist,
	}
}

func (s *Service) Register(ctx context.Context, username, email, password string, role Role) (PublicUser, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	if err := ValidateNew(username, email, password, role); err != nil {
		return PublicUser{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return PublicUser{}, fmt.Errorf("hash password: %w", err)
	}

	user := User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.store.Create(ctx, &user); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return PublicUser{}, derrors.New(derrors.CodeConflict, "username or email already registered")
		}
		return PublicUser{}, fmt.Errorf("create user: %w", err)
	}

	s.flush(ctx)
	if s.metrics != nil {
		s.metrics.UsersCreated.Inc()
	}
	s.audit.Emit(ctx, audit.Event{
		Action:       audit.ActionRegister,
		ResourceType: "user",
		ResourceID:   strconv.FormatInt(user.ID, 10),
		Email:        user.Email,
	})
	s.logger.Info("user registered", "user_id", user.ID, "role", user.Role)

	return user.Public(), nil
}

// Authenticate verifies credentials and mints a token pair. Unknown email
// and wrong password return the same error.
func (s *Service) Authenticate(ctx context.Context, email, password string) (TokenPair, PublicUser, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return TokenPair{}, PublicUser{}, derrors.New(derrors.CodeUnauthorized, "invalid credentials")
		}
		return TokenPair{}, PublicUser{}, fmt.Errorf("lookup user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return TokenPair{}, PublicUser{}, derrors.New(derrors.CodeUnauthorized, "invalid credentials")
	}

	pair, err := s.mint(user)
	if err != nil {
		return TokenPair{}, PublicUser{}, err
	}

	if s.metrics != nil {
		s.metrics.Logins.Inc()
	}
	s.audit.Emit(ctx, audit.Event{
		Action:       audit.ActionLogin,
		ResourceType: "user",
		ResourceID:   strconv.FormatInt(user.ID, 10),
		Email:        user.Email,
	})

	return pair, user.Public(), nil
}

// Refresh exchanges a valid refresh token for a fresh pair. The account
// must still exist; a deleted user's refresh token dies with it.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	claims, err := s.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, err
	}
	id, err := strconv.ParseInt(claims.UserID, 10, 64)
	if err != nil {
		return TokenPair{}, derrors.New(derrors.CodeUnauthorized, "invalid token")
	}
	user, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return TokenPair{}, derrors.New(derrors.CodeUnauthorized, "invalid token")
		}
		return TokenPair{}, fmt.Errorf("lookup user: %w", err)
	}
	return s.mint(user)
}

func (s *Service) mint(user User) (TokenPair, error) {
	id := jwttoken.Identity{
		UserID:   strconv.FormatInt(user.ID, 10),
		Username: user.Username,
		Email:    user.Email,
		Role:     string(user.Role),
	}
	access, err := s.tokens.GenerateAccessToken(id)
	if err != nil {
		return TokenPair{}, fmt.Errorf("mint access token: %w", err)
	}
	refresh, err := s.tokens.GenerateRefreshToken(id)
	if err != nil {
		return TokenPair{}, fmt.Errorf("mint refresh token: %w", err)
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *Service) List(ctx context.Context) ([]PublicUser, error) {
	users, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	out := make([]PublicUser, len(users))
	for i, u := range users {
		out[i] = u.Public()
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id int64) (PublicUser, error) {
	user, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return PublicUser{}, derrors.Newf(derrors.CodeNotFound, "user %d not found", id)
		}
		return PublicUser{}, fmt.Errorf("get user: %w", err)
	}
	return user.Public(), nil
}

// UserUpdate is a partial account update; nil fields keep their value.
type UserUpdate struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *Role   `json:"role"`
}

// Update merges the patch into the account. Username and email stay
// unique case-insensitively; a new password is re-hashed.
func (s *Service) Update(ctx context.Context, id int64, patch UserUpdate) (PublicUser, error) {
	user, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return PublicUser{}, derrors.Newf(derrors.CodeNotFound, "user %d not found", id)
		}
		return PublicUser{}, fmt.Errorf("get user: %w", err)
	}

	if patch.Username != nil {
		user.Username = strings.TrimSpace(*patch.Username)
	}
	if patch.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*patch.Email))
	}
	if patch.Role != nil {
		user.Role = *patch.Role
	}
	if err := validateAccount(user.Username, user.Email, user.Role); err != nil {
		return PublicUser{}, err
	}
	if patch.Password != nil {
		if len(*patch.Password) < 8 {
			return PublicUser{}, derrors.New(derrors.CodeValidation, "invalid user").
				WithFields(map[string]string{"password": "must be at least 8 characters"})
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*patch.Password), bcrypt.DefaultCost)
		if err != nil {
			return PublicUser{}, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}

	if err := s.store.Update(ctx, user); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return PublicUser{}, derrors.New(derrors.CodeConflict, "username or email already registered")
		}
		return PublicUser{}, fmt.Errorf("update user %d: %w", id, err)
	}

	s.flush(ctx)
	s.audit.Emit(ctx, audit.Event{
		Action:       audit.ActionUpdate,
		ResourceType: "user",
		ResourceID:   strconv.FormatInt(id, 10),
	})
	return user.Public(), nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return derrors.Newf(derrors.CodeNotFound, "user %d not found", id)
		}
		return fmt.Errorf("delete user %d: %w", id, err)
	}

	s.flush(ctx)
	s.audit.Emit(ctx, audit.Event{
		Action:       audit.ActionDelete,
		ResourceType: "user",
		ResourceID:   strconv.FormatInt(id, 10),
	})
	return nil
}

func (s *Service) flush(ctx context.Context) {
	if s.persist == nil {
		return
	}
	if err := s.persist(ctx); err != nil {
		s.logger.Error("user snapshot failed", "error", err)
	}
}
