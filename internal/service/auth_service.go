package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"todolist-service/internal/config"
	"todolist-service/internal/entity"
	"todolist-service/internal/repository"
)

const (
	// DefaultAccessTokenTTL applies when a caller has no opinion on token
	// lifetime. The login endpoint asks for LoginAccessTokenTTL instead.
	DefaultAccessTokenTTL = 15 * time.Minute
	LoginAccessTokenTTL   = 30 * time.Minute

	TokenTypeBearer = "bearer"
)

var (
	// ErrInvalidCredentials covers both unknown usernames and wrong passwords
	// so the response does not leak which one it was.
	ErrInvalidCredentials = errors.New("could not validate credentials")
	ErrInvalidToken       = errors.New("could not validate credentials")
	ErrInactiveUser       = errors.New("inactive user")
)

// TokenClaims is the claim set embedded in access tokens. The subject is the
// username.
type TokenClaims struct {
	jwt.RegisteredClaims
}

// AuthService issues and validates access tokens against an injected user
// store and signing key. No package-level secrets.
type AuthService struct {
	users     repository.UserStore
	secretKey []byte
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(users repository.UserStore, secretKey []byte) *AuthService {
	return &AuthService{
		users:     users,
		secretKey: secretKey,
	}
}

// HashPassword hashes a plaintext password with bcrypt. The salt makes the
// output differ between calls; VerifyPassword is the only equality path.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// VerifyPassword reports whether password matches the bcrypt hash.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Authenticate checks a username/password pair against the user store.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*entity.UserCredential, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		logger.Error().Err(err).Str("username", username).Msg("Error looking up user")
		return nil, err
	}

	if !VerifyPassword(password, user.HashedPassword) {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// CreateAccessToken signs an HS256 token for the given subject. The ttl is
// taken as given: ttl=0 produces a token that is already expired.
func (s *AuthService) CreateAccessToken(subject string, ttl time.Duration) (*entity.Token, error) {
	claims := &TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}

	tkn := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tkn.SignedString(s.secretKey)
	if err != nil {
		return nil, err
	}

	return &entity.Token{AccessToken: signed, TokenType: TokenTypeBearer}, nil
}

// ParseAccessToken verifies signature and expiry and returns the claims.
func (s *AuthService) ParseAccessToken(tokenString string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secretKey, nil
	}, jwt.WithValidMethods([]string{config.TokenAlgorithm}))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// ResolveCurrentUser maps a raw bearer token to the user profile it asserts.
func (s *AuthService) ResolveCurrentUser(ctx context.Context, tokenString string) (*entity.UserProfile, error) {
	claims, err := s.ParseAccessToken(tokenString)
	if err != nil {
		return nil, err
	}

	return s.CurrentUser(ctx, claims.Subject)
}

// CurrentUser returns the profile for an already-verified subject claim.
func (s *AuthService) CurrentUser(ctx context.Context, username string) (*entity.UserProfile, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidToken
		}
		logger.Error().Err(err).Str("username", username).Msg("Error looking up user")
		return nil, err
	}

	return user.Profile(), nil
}

// RequireActiveUser rejects profiles that have been disabled.
func (s *AuthService) RequireActiveUser(profile *entity.UserProfile) error {
	if profile.Disabled {
		return ErrInactiveUser
	}
	return nil
}
