package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
)

var ErrTokenRevoked = errors.New("token has been revoked")

// RevocationStore remembers the ids of logged-out tokens until they expire.
type RevocationStore interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type TokenService struct {
	secretKey     []byte
	issuer        string
	tokenDuration time.Duration
	userRepo      domain.UserRepository
	revoked       RevocationStore
}

func NewTokenService(secretKey string, issuer string, tokenDuration time.Duration, userRepo domain.UserRepository, revoked RevocationStore) *TokenService {
	return &TokenService{
		secretKey:     []byte(secretKey),
		issuer:        issuer,
		tokenDuration: tokenDuration,
		userRepo:      userRepo,
		revoked:       revoked,
	}
}

func (s *TokenService) GenerateToken(userID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID,
		"exp": now.Add(s.tokenDuration).Unix(),
		"iat": now.Unix(),
		"iss": s.issuer,
		"jti": uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedToken, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("token service: failed to sign token: %w", err)
	}

	return signedToken, nil
}

func (s *TokenService) parse(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	if iss, ok := claims["iss"].(string); !ok || iss != s.issuer {
		return nil, fmt.Errorf("invalid token issuer")
	}
	if _, ok := claims["sub"].(string); !ok {
		return nil, fmt.Errorf("invalid token subject")
	}
	return claims, nil
}

// ValidateToken returns the user id of a valid, unrevoked token whose user
// still exists.
func (s *TokenService) ValidateToken(tokenString string) (string, error) {
	claims, err := s.parse(tokenString)
	if err != nil {
		return "", err
	}
	userID := claims["sub"].(string)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if jti, ok := claims["jti"].(string); ok && s.revoked != nil {
		revoked, err := s.revoked.IsRevoked(ctx, jti)
		if err != nil {
			return "", fmt.Errorf("revocation check failed: %w", err)
		}
		if revoked {
			return "", ErrTokenRevoked
		}
	}

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return "", fmt.Errorf("user no longer exists or db error: %w", err)
	}

	return userID, nil
}

// Revoke invalidates a token until its natural expiry and returns its subject.
func (s *TokenService) Revoke(ctx context.Context, tokenString string) (string, error) {
	claims, err := s.parse(tokenString)
	if err != nil {
		return "", err
	}
	userID := claims["sub"].(string)

	jti, ok := claims["jti"].(string)
	if !ok || s.revoked == nil {
		return "", fmt.Errorf("token cannot be revoked")
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return "", fmt.Errorf("invalid token expiry")
	}

	if err := s.revoked.Revoke(ctx, jti, time.Until(exp.Time)); err != nil {
		return "", err
	}
	return userID, nil
}
