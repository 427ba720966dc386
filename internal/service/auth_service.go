package service

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"crop_forecast/internal/models"
	"crop_forecast/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const defaultSessionTTL = 24 * time.Hour

// Domain errors for auth flows.
var (
	ErrUserExists         = errors.New("user already registered")
	ErrEmailTaken         = errors.New("email already registered")
	ErrEmptyPassword      = errors.New("password is empty")
	ErrEmptyUsername      = errors.New("username is empty")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

// AuthService handles user auth logic
type AuthService struct {
	authRepo   repository.Authorization
	signingKey []byte
	ttl        time.Duration
}

func NewAuthService(repo repository.Authorization, cfg SessionConfig) *AuthService {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &AuthService{authRepo: repo, signingKey: []byte(cfg.SigningKey), ttl: ttl}
}

// Register rejects a taken username or email, then stores the user with a
// bcrypt hash of the password.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) error {
	if strings.TrimSpace(in.Username) == "" {
		return ErrEmptyUsername
	}

	existing, err := s.authRepo.GetByUsername(ctx, in.Username)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrUserExists
	}

	taken, err := s.authRepo.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return err
	}
	if taken {
		return ErrEmailTaken
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return err
	}
	return s.authRepo.Create(ctx, models.User{
		Username:     in.Username,
		Name:         in.Name,
		Email:        in.Email,
		Phone:        in.Phone,
		PasswordHash: hash,
	})
}

// Authenticate succeeds only for an existing username whose hash matches password.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) error {
	u, err := s.authRepo.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrInvalidCredentials
	}
	if err := verifyPassword(u.PasswordHash, password); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// Claims defines the session JWT claims; the subject is the username.
type Claims struct {
	jwt.RegisteredClaims
}

// IssueSession returns a signed session token for username.
func (s *AuthService) IssueSession(username string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	})
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("sign session: %w", err)
	}
	return signed, nil
}

// ParseSession verifies the token and returns the username it was issued for.
func (s *AuthService) ParseSession(accessToken string) (string, error) {
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.signingKey, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

// helper: hash password safely
func hashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", ErrEmptyPassword
	}
	hash, err := bcrypt.GenerateFromPassword(bcryptInput(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// helper: verify password against hash
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), bcryptInput(password))
}

// bcrypt only takes 72 bytes; longer passwords are reduced to a SHA-256 digest first.
const bcryptMaxPassword = 72

func bcryptInput(password string) []byte {
	if len(password) <= bcryptMaxPassword {
		return []byte(password)
	}
	sum := sha256.Sum256([]byte(password))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}
