package impl

import (
	"context"
	"errors"
	"time"

	"campusevents/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

type TokenConfig struct {
	Issuer     string
	TTL        time.Duration // e.g. 24h
	SigningKey []byte        // HS256 secret
}

// AccessClaims carries the email both as subject and as a named claim, which
// is what the frontend and older clients read.
type AccessClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type TokenServiceImpl struct {
	cfg TokenConfig
}

func NewTokenServiceHS256(cfg TokenConfig) *TokenServiceImpl {
	return &TokenServiceImpl{cfg: cfg}
}

func (t *TokenServiceImpl) Issue(_ context.Context, user *domain.User) (string, error) {
	now := time.Now().UTC()
	claims := AccessClaims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.cfg.Issuer,
			Subject:   user.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.cfg.TTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.cfg.SigningKey)
}

// Subject validates the token and returns the embedded email.
func (t *TokenServiceImpl) Subject(tokenString string) (string, error) {
	claims := &AccessClaims{}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	tok, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return t.cfg.SigningKey, nil
	})
	if err != nil {
		return "", err
	}
	if !tok.Valid {
		return "", errors.New("invalid token")
	}
	email := claims.Email
	if email == "" {
		email = claims.Subject
	}
	if email == "" {
		return "", errors.New("token has no subject")
	}
	return email, nil
}
