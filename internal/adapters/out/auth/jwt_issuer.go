// Package auth implements token issuing and password hashing for the credential service.
package auth

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
)

const (
	DefaultTokenTTL = 7 * 24 * time.Hour
	DefaultIssuer   = "dispatch"
)

var ErrSecretTooShort = errors.New("jwt secret must be at least 16 bytes")

var _ ports.TokenIssuer = (*JWTIssuer)(nil)

type claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// JWTIssuer signs HS256 tokens carrying the subject id and role.
type JWTIssuer struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewJWTIssuer(secret string, ttl time.Duration) (*JWTIssuer, error) {
	if len(secret) < 16 {
		return nil, ErrSecretTooShort
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &JWTIssuer{
		secret: []byte(secret),
		issuer: DefaultIssuer,
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

func (i *JWTIssuer) Issue(subject kernel.UUID, role kernel.Role) (string, error) {
	if err := subject.Validate(); err != nil {
		return "", err
	}
	if _, err := kernel.ParseRole(role.String()); err != nil {
		return "", err
	}

	now := i.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Role: role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject.String(),
			Issuer:    i.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	})

	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (i *JWTIssuer) Verify(token string) (ports.Principal, error) {
	var c claims
	_, err := jwt.ParseWithClaims(token, &c,
		func(*jwt.Token) (interface{}, error) { return i.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(i.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return ports.Principal{}, errs.NewUnauthorizedError(err.Error())
	}

	subject, err := kernel.UUIDFromString(c.Subject)
	if err != nil {
		return ports.Principal{}, errs.NewUnauthorizedError("token subject is not an id")
	}
	role, err := kernel.ParseRole(c.Role)
	if err != nil {
		return ports.Principal{}, errs.NewUnauthorizedError("token role is unknown")
	}

	return ports.Principal{Subject: subject, Role: role}, nil
}
