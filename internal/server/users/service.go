package users

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/absingh09/mydocuments/internal/common"
	"github.com/absingh09/mydocuments/internal/server/auth"
	"github.com/absingh09/mydocuments/internal/server/config"
)

// AuthResult bundles the account record with a freshly issued access token.
type AuthResult struct {
	Token string
	User  *User
}

type Service struct {
	repo                        Repository
	hasher                      *auth.PasswordHasher
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
}

func NewService(repo Repository, cfg *config.Config) *Service {
	return &Service{
		repo:                        repo,
		hasher:                      auth.NewPasswordHasher(cfg.BCryptCost),
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
	}
}

// Register creates a new account with a trimmed name and lowercased email
// and returns an access token for it. The lookup before insert is only a
// fast path for a friendly duplicate error; the unique index on email is
// the real guard, surfaced by the repository as ErrorAlreadyExists.
func (s *Service) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {

	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if err := validateRegistration(name, email, password); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, common.ErrorAlreadyExists
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, common.ErrorInternal
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user := &User{Name: name, Email: email, PasswordHash: hash}

	user, err = s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return s.issueToken(user)
}

// Login verifies the credentials and returns a fresh access token. Unknown
// email and wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (*AuthResult, error) {

	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, common.ErrorUnauthorized
	}

	return s.issueToken(user)
}

func (s *Service) issueToken(user *User) (*AuthResult, error) {
	token, err := auth.GenerateToken(user.ID, user.Email, user.Name, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return &AuthResult{Token: token, User: user}, nil
}

func validateRegistration(name, email, password string) error {
	if len(name) < 2 || len(name) > 60 {
		return fmt.Errorf("%w: name must be between 2 and 60 characters", common.ErrorValidation)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("%w: invalid email address", common.ErrorValidation)
	}
	if len(password) < 6 {
		return fmt.Errorf("%w: password must be at least 6 characters", common.ErrorValidation)
	}
	return nil
}
