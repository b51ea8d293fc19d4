package token

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rl1809/food-order/internal/core/domain"
)

const DefaultTTL = 24 * time.Hour

type claims struct {
	Role      string `json:"role"`
	ProfileID int64  `json:"profile_id"`
	jwt.RegisteredClaims
}

// JWTIssuer signs principals as HS256 tokens.
type JWTIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewJWTIssuer(secret string, ttl time.Duration) *JWTIssuer {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &JWTIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (j *JWTIssuer) Issue(p domain.Principal) (string, error) {
	if !p.Authenticated() {
		return "", errors.New("cannot issue token for anonymous principal")
	}
	now := j.now()
	c := claims{
		Role:      p.Role.String(),
		ProfileID: p.ProfileID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(p.UserID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(j.secret)
}

func (j *JWTIssuer) Parse(raw string) (domain.Principal, error) {
	var c claims
	_, err := jwt.ParseWithClaims(raw, &c, func(t *jwt.Token) (any, error) {
		return j.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(j.now))
	if err != nil {
		return domain.Principal{}, err
	}

	userID, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return domain.Principal{}, fmt.Errorf("invalid subject %q: %w", c.Subject, err)
	}
	role := domain.ParseRole(c.Role)
	if role == domain.RoleAnonymous {
		return domain.Principal{}, fmt.Errorf("invalid role %q", c.Role)
	}
	return domain.Principal{UserID: userID, Role: role, ProfileID: c.ProfileID}, nil
}
