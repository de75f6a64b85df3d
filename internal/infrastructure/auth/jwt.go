package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopmall/backend/internal/infrastructure/config"
)

var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrTokenNotYetValid = errors.New("token is not yet valid")
	ErrMissingUserID    = errors.New("missing user_id in claims")
	ErrTokenBlacklisted = errors.New("token has been revoked")
)

const (
	defaultTokenLifetime = time.Hour
	clockLeeway          = 5 * time.Second
)

// Claims are the claims carried by an access token
type Claims struct {
	jwt.RegisteredClaims
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// IssuedAtTime returns iat, or the zero time when the claim is absent
func (c *Claims) IssuedAtTime() time.Time {
	if c.IssuedAt == nil {
		return time.Time{}
	}
	return c.IssuedAt.Time
}

// RemainingTTL is the time left before exp, never negative
func (c *Claims) RemainingTTL() time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	return max(time.Until(c.ExpiresAt.Time), 0)
}

// AccessToken is what login hands back to the client
type AccessToken struct {
	Token     string    `json:"accessToken"`
	TokenType string    `json:"tokenType"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// JWTService issues and verifies HS256 access tokens. When an issuer is
// configured, tokens must carry it as both iss and aud.
type JWTService struct {
	secret   []byte
	lifetime time.Duration
	issuer   string
	parser   *jwt.Parser
	now      func() time.Time
}

func NewJWTService(cfg config.JWTConfig) *JWTService {
	s := &JWTService{
		secret:   []byte(cfg.Secret),
		lifetime: cfg.AccessTokenExpiration,
		issuer:   cfg.Issuer,
		now:      time.Now,
	}
	if s.lifetime <= 0 {
		s.lifetime = defaultTokenLifetime
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithLeeway(clockLeeway),
		jwt.WithTimeFunc(func() time.Time { return s.now() }),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer), jwt.WithAudience(s.issuer))
	}
	s.parser = jwt.NewParser(opts...)
	return s
}

// Expiration is the lifetime given to new tokens
func (s *JWTService) Expiration() time.Duration {
	return s.lifetime
}

// GenerateAccessToken signs a token for the user with a fresh jti
func (s *JWTService) GenerateAccessToken(userID int64, username, role string) (*AccessToken, error) {
	issuedAt := s.now()
	expiresAt := issuedAt.Add(s.lifetime)

	registered := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		NotBefore: jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	if s.issuer != "" {
		registered.Issuer = s.issuer
		registered.Audience = jwt.ClaimStrings{s.issuer}
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: registered,
		UserID:           userID,
		Username:         username,
		Role:             role,
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, err
	}
	return &AccessToken{Token: signed, TokenType: "Bearer", ExpiresAt: expiresAt}, nil
}

// ValidateAccessToken verifies the signature and registered claims.
// Expiry and not-before failures keep their own errors so callers can tell
// them apart; everything else is ErrInvalidToken.
func (s *JWTService) ValidateAccessToken(raw string) (*Claims, error) {
	claims := &Claims{}
	_, err := s.parser.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	})
	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrExpiredToken
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return nil, ErrTokenNotYetValid
	default:
		return nil, ErrInvalidToken
	}

	if claims.UserID <= 0 {
		return nil, ErrMissingUserID
	}
	return claims, nil
}
