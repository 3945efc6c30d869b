package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
)

var (
	ErrFederatedDisabled = errors.New("federated login is not configured")
	ErrInvalidIDToken    = errors.New("invalid identity token")
)

// FederatedConfig describes the external issuer trusted for federated login.
// ID tokens are HS256-signed with Secret.
type FederatedConfig struct {
	Issuer string
	Secret string
}

func (c FederatedConfig) enabled() bool {
	return c.Issuer != "" && c.Secret != ""
}

// ReminderCanceller drops the pending reminders of a user on logout.
type ReminderCanceller interface {
	CancelUser(userID string)
}

type AuthService struct {
	repo      domain.UserRepository
	tokens    *TokenService
	federated FederatedConfig
	reminders ReminderCanceller
}

func NewAuthService(repo domain.UserRepository, tokens *TokenService, federated FederatedConfig, reminders ReminderCanceller) *AuthService {
	return &AuthService{
		repo:      repo,
		tokens:    tokens,
		federated: federated,
		reminders: reminders,
	}
}

type RegisterInput struct {
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	user, err := domain.NewUser(input.Email)
	if err != nil {
		return nil, err
	}

	if err := user.SetPassword(input.Password); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("auth service: failed to create user: %w", err)
	}

	return user, nil
}

// Login checks the credentials and issues a session token. Unknown emails and
// wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (string, *domain.User, error) {
	user, err := s.repo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := user.CheckPassword(input.Password); err != nil {
		return "", nil, err
	}

	token, err := s.tokens.GenerateToken(user.ID)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// LoginFederated trusts an ID token from the configured issuer, creating the
// account on first sight of its email. The email must be verified by the
// issuer, and an existing account is only reused when it was created by the
// same issuer; a password account with that email is a conflict.
func (s *AuthService) LoginFederated(ctx context.Context, idToken string) (string, *domain.User, error) {
	if !s.federated.enabled() {
		return "", nil, ErrFederatedDisabled
	}

	parsed, err := jwt.Parse(idToken, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.federated.Secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.federated.Issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrInvalidIDToken, err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", nil, ErrInvalidIDToken
	}
	email, _ := claims["email"].(string)
	if email == "" {
		return "", nil, fmt.Errorf("%w: missing email claim", ErrInvalidIDToken)
	}
	if verified, _ := claims["email_verified"].(bool); !verified {
		return "", nil, fmt.Errorf("%w: email not verified", ErrInvalidIDToken)
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		user, err = domain.NewFederatedUser(email, s.federated.Issuer)
		if err != nil {
			return "", nil, err
		}
		if err := s.repo.Create(ctx, user); err != nil {
			return "", nil, fmt.Errorf("auth service: failed to create user: %w", err)
		}
	} else if err != nil {
		return "", nil, err
	} else if user.Provider != s.federated.Issuer {
		return "", nil, fmt.Errorf("%w: registered with another sign-in method", domain.ErrEmailAlreadyExists)
	}

	token, err := s.tokens.GenerateToken(user.ID)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Logout revokes the token and cancels the user's pending reminders.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	userID, err := s.tokens.Revoke(ctx, token)
	if err != nil {
		return err
	}
	if s.reminders != nil {
		s.reminders.CancelUser(userID)
	}
	return nil
}
