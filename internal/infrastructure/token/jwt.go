package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pressroom/auth-service/internal/core/domain"
)

// ErrMissingSecret is returned when the issuer is built without a signing key.
var ErrMissingSecret = errors.New("token: signing secret is required")

var signingMethod = jwt.SigningMethodHS256

// Claims binds a session to a user id. UserID duplicates the subject so
// tokens carry the "id" claim older clients decode.
type Claims struct {
	UserID string `json:"id"`
	jwt.RegisteredClaims
}

// JWTIssuer issues and verifies HS256 session tokens.
type JWTIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// Option configures a JWTIssuer.
type Option func(*JWTIssuer)

// WithClock overrides the time source used for issuing and verifying.
func WithClock(now func() time.Time) Option {
	return func(i *JWTIssuer) { i.now = now }
}

func NewJWTIssuer(secret []byte, ttl time.Duration, opts ...Option) (*JWTIssuer, error) {
	if len(secret) == 0 {
		return nil, ErrMissingSecret
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	i := &JWTIssuer{secret: secret, ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(i)
	}
	return i, nil
}

// TTL is the lifetime of every issued token.
func (i *JWTIssuer) TTL() time.Duration { return i.ttl }

func (i *JWTIssuer) Issue(userID string) (string, error) {
	now := i.now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}
	return jwt.NewWithClaims(signingMethod, claims).SignedString(i.secret)
}

// Verify returns the user id bound to token. Every failure collapses into
// domain.ErrInvalidToken.
func (i *JWTIssuer) Verify(token string) (string, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{signingMethod.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil || !parsed.Valid {
		return "", domain.ErrInvalidToken
	}

	userID := claims.Subject
	if userID == "" {
		userID = claims.UserID
	}
	if userID == "" {
		return "", domain.ErrInvalidToken
	}
	return userID, nil
}
