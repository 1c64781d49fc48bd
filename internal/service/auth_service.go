package service

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/classroom-service/internal/auth"
	"github.com/spec-kit/classroom-service/internal/config"
	"github.com/spec-kit/classroom-service/internal/domain"
	"github.com/spec-kit/classroom-service/internal/repository"
	apperrors "github.com/spec-kit/classroom-service/pkg/util"
)

// TokenRevoker stores revoked tokens until their natural expiry.
type TokenRevoker interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
}

// AuthService coordinates signup, login and logout flows.
type AuthService struct {
	profiles   repository.ProfileRepository
	tokenMgr   *auth.TokenManager
	revoker    TokenRevoker
	bcryptCost int
}

// AuthDependencies encapsulates collaborators for the auth service.
type AuthDependencies struct {
	ProfileRepo repository.ProfileRepository
	Revoker     TokenRevoker
}

// RegisterInput describes the signup payload.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		profiles:   deps.ProfileRepo,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		revoker:    deps.Revoker,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Register creates a student or teacher account. Admin accounts are only
// provisioned through the admin surface.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.Profile, string, time.Time, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	if name == "" || email == "" || input.Password == "" {
		return nil, "", time.Time{}, apperrors.NewValidationError("Name, email and password are required")
	}

	role := input.Role
	if role == "" {
		role = domain.RoleStudent
	}
	if role != domain.RoleStudent && role != domain.RoleTeacher {
		return nil, "", time.Time{}, apperrors.NewValidationError("Role must be student or teacher")
	}

	if _, err := s.profiles.GetByEmail(ctx, email); err == nil {
		return nil, "", time.Time{}, apperrors.NewValidationError("Email already registered")
	} else if err != pgx.ErrNoRows {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}

	profile := &domain.Profile{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if role == domain.RoleStudent {
		profile.StudentNumber = GenerateStudentNumber()
	}
	if err := s.profiles.Create(ctx, profile); err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}

	token, exp, err := s.tokenMgr.GenerateToken(profile.ID, profile.Email, string(profile.Role))
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	return profile, token, exp, nil
}

// Login authenticates an account by email and password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Profile, string, time.Time, error) {
	profile, err := s.profiles.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("Invalid email or password")
		}
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	if err := auth.ComparePassword(profile.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("Invalid email or password")
	}

	token, exp, err := s.tokenMgr.GenerateToken(profile.ID, profile.Email, string(profile.Role))
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	return profile, token, exp, nil
}

// Logout revokes the presented token for the remainder of its lifetime.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if s.revoker == nil {
		return nil
	}
	claims, err := s.tokenMgr.ParseToken(token)
	if err != nil {
		// an unparsable token can never authenticate, nothing to revoke
		return nil
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	return apperrors.MapError(s.revoker.Revoke(ctx, token, ttl))
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
