package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"harbor/internal/cache"
	"harbor/internal/config"
	"harbor/internal/middleware"
	"harbor/internal/models"
	"harbor/internal/repository"
	"harbor/internal/validation"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles registration and session lifecycle.
type AuthService struct {
	users repository.UserRepository
	cfg   *config.Config
}

// NewAuthService creates a new AuthService.
func NewAuthService(users repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{users: users, cfg: cfg}
}

// Register creates a new account. The password is stored only as a bcrypt
// digest.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if err := validation.ValidateUsername(username); err != nil {
		return nil, models.NewInvalidInputError(err.Error())
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, models.NewInvalidInputError(err.Error())
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, models.NewInvalidInputError(err.Error())
	}

	// Pre-insert check for a friendlier message; the unique index on
	// username still guards the race.
	existing, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &models.AppError{Code: models.CodeDuplicateIdentity, Message: "That username is already taken"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewStorageError(err)
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	middleware.Logger.InfoContext(ctx, "user registered", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// Authenticate verifies credentials and issues a signed session token. The
// failure message is identical for an unknown email and a wrong password.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		// Burn a comparison anyway so response time does not reveal
		// whether the email exists.
		_ = bcrypt.CompareHashAndPassword(
			[]byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"), []byte(password))
		return "", nil, models.NewInvalidCredentialsError()
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, models.NewInvalidCredentialsError()
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Validate checks a session token and returns the user it belongs to.
func (s *AuthService) Validate(ctx context.Context, token string) (uint, error) {
	claims, err := middleware.ParseSessionToken(token)
	if err != nil {
		return 0, err
	}
	if cache.IsSessionRevoked(ctx, claims.JTI) {
		return 0, models.NewUnauthenticatedError("Session has been revoked")
	}
	return claims.UserID, nil
}

// Refresh issues a fresh token for an already-authenticated user.
func (s *AuthService) Refresh(ctx context.Context, userID uint) (string, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return "", err
	}
	return s.issueToken(userID)
}

// Logout revokes the session's jti until the token would have expired.
func (s *AuthService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	if err := cache.RevokeSession(ctx, jti, expiresAt); err != nil {
		middleware.Logger.WarnContext(ctx, "failed to revoke session", "error", err)
		return models.NewStorageError(err)
	}
	return nil
}

func (s *AuthService) issueToken(userID uint) (string, error) {
	now := time.Now()
	ttl := time.Duration(s.cfg.SessionTTLHours) * time.Hour

	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(userID), 10),
		"iss": middleware.TokenIssuer,
		"aud": middleware.TokenAudience,
		"iat": now.Unix(),
		"nbf": now.Unix(),
		"exp": now.Add(ttl).Unix(),
		"jti": uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", models.NewStorageError(err)
	}
	return signed, nil
}
