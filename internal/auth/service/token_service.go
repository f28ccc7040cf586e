package service

//go:generate mockgen -destination=../../mocks/mock_token_generator.go -package=mocks github.com/AnthoniusHendriyanto/blog-service/internal/auth/service TokenGenerator

import (
	"errors"
	"fmt"
	"time"

	autherror "github.com/AnthoniusHendriyanto/blog-service/internal/errors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	DefaultAccessTokenExpiry = 15 * time.Minute
	DefaultSigningAlgorithm  = "HS256"
)

type TokenGenerator interface {
	Issue(subject string, ttl time.Duration) (string, error)
	Validate(tokenString string) (*Claims, error)
	GetAccessTokenExpiry() time.Duration
}

// Claims carries the username in sub and a random jti used for revocation.
type Claims struct {
	jwt.RegisteredClaims
}

type TokenService struct {
	secret            []byte
	method            jwt.SigningMethod
	AccessTokenExpiry time.Duration
	now               func() time.Time
}

// NewTokenService builds the process-wide token service. Only HMAC algorithms
// are accepted; accessMinutes <= 0 falls back to DefaultAccessTokenExpiry.
func NewTokenService(secret, algorithm string, accessMinutes int, opts ...Option) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("token secret is empty")
	}
	if algorithm == "" {
		algorithm = DefaultSigningAlgorithm
	}

	method, ok := jwt.GetSigningMethod(algorithm).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("unsupported signing algorithm: %q", algorithm)
	}

	expiry := time.Duration(accessMinutes) * time.Minute
	if expiry <= 0 {
		expiry = DefaultAccessTokenExpiry
	}

	s := applyOptions(opts)

	return &TokenService{
		secret:            []byte(secret),
		method:            method,
		AccessTokenExpiry: expiry,
		now:               s.now,
	}, nil
}

func (ts *TokenService) GetAccessTokenExpiry() time.Duration {
	return ts.AccessTokenExpiry
}

func (ts *TokenService) Algorithm() string {
	return ts.method.Alg()
}

// Issue signs a token for subject valid for ttl, or for the configured access
// expiry when ttl is not positive.
func (ts *TokenService) Issue(subject string, ttl time.Duration) (string, error) {
	if subject == "" {
		return "", errors.New("token subject is empty")
	}
	if ttl <= 0 {
		ttl = ts.AccessTokenExpiry
	}

	now := ts.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}

	token, err := jwt.NewWithClaims(ts.method, claims).SignedString(ts.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return token, nil
}

// Validate verifies signature and algorithm before any claim is read. Every
// failure is reported as ErrInvalidToken.
func (ts *TokenService) Validate(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, autherror.ErrInvalidToken
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return ts.secret, nil
	},
		jwt.WithValidMethods([]string{ts.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(ts.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", autherror.ErrInvalidToken, err)
	}

	if !token.Valid {
		return nil, autherror.ErrInvalidToken
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", autherror.ErrInvalidToken)
	}

	return claims, nil
}
