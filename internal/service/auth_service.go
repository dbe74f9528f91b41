package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"profiles-feed-be/internal/cache"
	"profiles-feed-be/internal/models"
	"profiles-feed-be/internal/repository"
)

const (
	tokenBytes       = 20 // 40 hex characters on the wire
	tokenCachePrefix = "authtoken:"
	maxTokenAttempts = 3
)

// AuthService defines the interface for authentication business logic
type AuthService interface {
	Signup(ctx context.Context, req *models.SignupRequest) (*models.UserResponse, error)
	IssueToken(ctx context.Context, req *models.TokenRequest) (*models.TokenResponse, error)
	Authenticate(ctx context.Context, key string) (string, error)
}

type authService struct {
	userRepo          repository.UserRepository
	tokenRepo         repository.TokenRepository
	cache             cache.Cache
	cacheTTL          time.Duration
	minPasswordLength int
}

// NewAuthService creates a new auth service. cacheClient may be nil.
func NewAuthService(
	userRepo repository.UserRepository,
	tokenRepo repository.TokenRepository,
	cacheClient cache.Cache,
	cacheTTL time.Duration,
	minPasswordLength int,
) AuthService {
	return &authService{
		userRepo:          userRepo,
		tokenRepo:         tokenRepo,
		cache:             cacheClient,
		cacheTTL:          cacheTTL,
		minPasswordLength: minPasswordLength,
	}
}

// Signup creates a new user account
func (s *authService) Signup(ctx context.Context, req *models.SignupRequest) (*models.UserResponse, error) {
	email := normalizeEmail(req.Email)
	if email == "" {
		return nil, invalid("email", "email may not be blank")
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, invalid("name", "name may not be blank")
	}

	passwordHash, err := hashPassword(req.Password, s.minPasswordLength)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.Create(ctx, email, passwordHash, name)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, invalid("email", "user with this email already exists")
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return models.NewUserResponse(user), nil
}

// IssueToken checks the credentials and persists a fresh token for the user
func (s *authService) IssueToken(ctx context.Context, req *models.TokenRequest) (*models.TokenResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid email or password", ErrAuthentication)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !checkPassword(user.PasswordHash, req.Password) {
		return nil, fmt.Errorf("%w: invalid email or password", ErrAuthentication)
	}

	for i := 0; i < maxTokenAttempts; i++ {
		key, err := generateTokenKey()
		if err != nil {
			return nil, err
		}

		token, err := s.tokenRepo.Create(ctx, key, user.ID)
		if errors.Is(err, repository.ErrDuplicate) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to create token: %w", err)
		}

		s.remember(ctx, token.Key, token.UserID)
		return &models.TokenResponse{Token: token.Key}, nil
	}

	return nil, fmt.Errorf("failed to generate unique token after %d attempts", maxTokenAttempts)
}

// Authenticate resolves a token key to the id of the user it belongs to
func (s *authService) Authenticate(ctx context.Context, key string) (string, error) {
	if !wellFormedTokenKey(key) {
		return "", fmt.Errorf("%w: invalid token", ErrAuthentication)
	}

	if s.cache != nil {
		userID, err := s.cache.Get(ctx, tokenCachePrefix+key)
		if err == nil && userID != "" {
			return userID, nil
		}
		if err != nil && !errors.Is(err, cache.ErrMiss) {
			log.Printf("Warning: token cache lookup failed: %v", err)
		}
	}

	token, err := s.tokenRepo.FindByKey(ctx, key)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", fmt.Errorf("%w: invalid token", ErrAuthentication)
		}
		return "", fmt.Errorf("failed to find token: %w", err)
	}

	s.remember(ctx, token.Key, token.UserID)
	return token.UserID, nil
}

// remember caches key -> userID; tokens never expire or get revoked, so entries stay valid.
func (s *authService) remember(ctx context.Context, key, userID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, tokenCachePrefix+key, userID, s.cacheTTL); err != nil {
		log.Printf("Warning: failed to cache token: %v", err)
	}
}

func generateTokenKey() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

func wellFormedTokenKey(key string) bool {
	if len(key) != tokenBytes*2 {
		return false
	}
	_, err := hex.DecodeString(key)
	return err == nil
}
