package member

import (
	"context"
	"errors"

	"github.com/shopmall/backend/internal/domain/member"
	"github.com/shopmall/backend/internal/domain/shared"
	"github.com/shopmall/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

var (
	errInvalidCredentials = shared.NewAccessDeniedError("invalid username or password")
	errTokenRevoked       = shared.NewAccessDeniedError("token has been revoked")
	errTokenInvalid       = shared.NewAccessDeniedError("invalid or expired token")
)

// AuthService handles login, logout and token checks
type AuthService struct {
	users     member.UserRepository
	jwt       *auth.JWTService
	blacklist auth.TokenBlacklist
	logger    *zap.Logger
}

// NewAuthService creates a new authentication service. blacklist may be nil,
// in which case tokens stay valid until they expire.
func NewAuthService(users member.UserRepository, jwtService *auth.JWTService, blacklist auth.TokenBlacklist, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{users: users, jwt: jwtService, blacklist: blacklist, logger: logger}
}

// Login verifies the credentials and issues an access token
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.users.FindByUsername(ctx, shared.NormalizeName(req.Username))
	if err != nil {
		if shared.IsNotFound(err) {
			s.logger.Warn("User not found during login", zap.String("username", req.Username))
			return nil, errInvalidCredentials
		}
		return nil, err
	}

	if !user.VerifyPassword(req.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("username", req.Username))
		return nil, errInvalidCredentials
	}

	token, err := s.jwt.GenerateAccessToken(user.ID, user.Username, user.Role)
	if err != nil {
		s.logger.Error("Failed to generate access token", zap.Error(err))
		return nil, err
	}

	s.logger.Info("User logged in successfully",
		zap.String("username", user.Username),
		zap.Int64("user_id", user.ID))

	return &LoginResponse{
		AccessToken: token.Token,
		TokenType:   token.TokenType,
		ExpiresAt:   token.ExpiresAt,
		User:        ToUserResponse(user),
	}, nil
}

// Logout revokes the presented token for the rest of its lifetime
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	if s.blacklist == nil || claims == nil {
		return nil
	}
	ttl := claims.RemainingTTL()
	if ttl <= 0 {
		return nil
	}
	if err := s.blacklist.AddToBlacklist(ctx, claims.ID, ttl); err != nil {
		s.logger.Error("Failed to revoke token", zap.Int64("user_id", claims.UserID), zap.Error(err))
		return err
	}
	s.logger.Info("User logged out", zap.Int64("user_id", claims.UserID))
	return nil
}

// InvalidateUser revokes every token issued to the user before now
func (s *AuthService) InvalidateUser(ctx context.Context, userID int64) error {
	if s.blacklist == nil {
		return nil
	}
	return s.blacklist.AddUserTokensToBlacklist(ctx, userID, s.jwt.Expiration())
}

// Authenticate validates a bearer token and checks it against the blacklist.
// Blacklist lookups that fail are logged and the token is accepted.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*auth.Claims, error) {
	claims, err := s.jwt.ValidateAccessToken(token)
	if err != nil {
		if errors.Is(err, auth.ErrExpiredToken) {
			return nil, shared.NewAccessDeniedError("token has expired")
		}
		return nil, errTokenInvalid
	}
	if s.blacklist == nil {
		return claims, nil
	}

	revoked, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
	if err != nil {
		s.logger.Warn("Token blacklist lookup failed", zap.Error(err))
		return claims, nil
	}
	if revoked {
		return nil, errTokenRevoked
	}

	invalidated, err := s.blacklist.IsUserTokenInvalidated(ctx, claims.UserID, claims.IssuedAtTime())
	if err != nil {
		s.logger.Warn("User token invalidation lookup failed", zap.Error(err))
		return claims, nil
	}
	if invalidated {
		return nil, errTokenRevoked
	}
	return claims, nil
}

var _ SessionInvalidator = (*AuthService)(nil)
