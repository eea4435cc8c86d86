// Package token issues and validates HS256 session tokens.
package token

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/maderas/backend/internal/auth/domain"
	"github.com/maderas/backend/internal/config"
)

var ErrMissingSecret = errors.New("auth jwt secret is required")

type claims struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Rol   string `json:"rol"`
	jwt.RegisteredClaims
}

type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewFromConfig(cfg config.Config) (*Issuer, error) {
	return New(cfg.AuthJWTSecret, cfg.AuthTokenTTL)
}

func New(secret string, ttl time.Duration) (*Issuer, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil, ErrMissingSecret
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Issuer{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// WithClock returns a copy of the issuer that reads time from now.
func (i *Issuer) WithClock(now func() time.Time) *Issuer {
	cp := *i
	cp.now = now
	return &cp
}

func (i *Issuer) TTL() time.Duration {
	return i.ttl
}

func (i *Issuer) Sign(p domain.Principal) (string, time.Time, error) {
	issuedAt := i.now().UTC()
	expiresAt := issuedAt.Add(i.ttl)

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		ID:    p.ID,
		Email: p.Email,
		Rol:   p.Rol,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.ID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Parse returns domain.ErrTokenExpired for expired tokens and
// domain.ErrInvalidToken for anything else it rejects.
func (i *Issuer) Parse(raw string) (domain.Principal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return domain.Principal{}, domain.ErrInvalidToken
	}

	var c claims
	_, err := jwt.ParseWithClaims(raw, &c, func(*jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.Principal{}, domain.ErrTokenExpired
		}
		return domain.Principal{}, domain.ErrInvalidToken
	}
	if strings.TrimSpace(c.ID) == "" {
		return domain.Principal{}, domain.ErrInvalidToken
	}

	return domain.Principal{ID: c.ID, Email: c.Email, Rol: c.Rol}, nil
}
