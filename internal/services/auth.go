package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"fleetwatch-backend/internal/apperr"
	"fleetwatch-backend/internal/models"
	"fleetwatch-backend/pkg/jwt"
	"fleetwatch-backend/pkg/session"
)

type AuthService struct {
	users    UserStore
	jwtUtil  *jwt.JWTUtil
	sessions *session.Store
}

func NewAuthService(users UserStore, jwtUtil *jwt.JWTUtil, sessions *session.Store) *AuthService {
	return &AuthService{
		users:    users,
		jwtUtil:  jwtUtil,
		sessions: sessions,
	}
}

type SignupRequest struct {
	Username  string `json:"username" validate:"required,min=3,max=50"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	Telephone string `json:"telephone,omitempty"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	UserID   int64  `json:"userId"`
}

// Signup creates an active account and logs it straight in.
func (s *AuthService) Signup(ctx context.Context, req *SignupRequest) (*AuthResponse, error) {
	if _, err := s.users.FindByUsername(ctx, req.Username); err == nil {
		return nil, fmt.Errorf("%w: username already exists", apperr.ErrInvalidArgument)
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}
	if _, err := s.users.FindByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("%w: email already exists", apperr.ErrInvalidArgument)
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, &models.User{
		Username:  req.Username,
		Email:     req.Email,
		Password:  string(hashed),
		Telephone: req.Telephone,
		Status:    models.UserStatusActive,
	})
	if err != nil {
		return nil, err
	}

	return s.issueToken(ctx, user)
}

func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	user, err := s.users.FindByUsername(ctx, req.Username)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, fmt.Errorf("invalid username or password: %w", apperr.ErrUnauthorized)
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("invalid username or password: %w", apperr.ErrUnauthorized)
	}
	if user.Status != models.UserStatusActive {
		return nil, fmt.Errorf("account is not active: %w", apperr.ErrUnauthorized)
	}

	return s.issueToken(ctx, user)
}

// Logout revokes the session behind the token. An already-invalid token is
// treated as logged out.
func (s *AuthService) Logout(ctx context.Context, bearerToken string) error {
	claims, err := s.jwtUtil.ValidateToken(stripBearer(bearerToken))
	if err != nil {
		return nil
	}
	return s.sessions.Revoke(ctx, claims.TokenID)
}

// ResolveToken maps a bearer token to its active user. Bad signatures,
// expired or revoked sessions and inactive accounts all fail with
// ErrUnauthorized.
func (s *AuthService) ResolveToken(ctx context.Context, bearerToken string) (*models.AuthUser, error) {
	claims, err := s.jwtUtil.ValidateToken(stripBearer(bearerToken))
	if err != nil {
		return nil, fmt.Errorf("invalid or expired token: %w", apperr.ErrUnauthorized)
	}

	userID, err := s.sessions.Resolve(ctx, claims.TokenID)
	if err != nil {
		return nil, err
	}
	if userID != claims.UserID {
		return nil, fmt.Errorf("token does not match session: %w", apperr.ErrUnauthorized)
	}

	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, fmt.Errorf("user no longer exists: %w", apperr.ErrUnauthorized)
	}
	if err != nil {
		return nil, err
	}
	if user.Status != models.UserStatusActive {
		return nil, fmt.Errorf("account is not active: %w", apperr.ErrUnauthorized)
	}

	return &models.AuthUser{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Status:   user.Status,
	}, nil
}

func (s *AuthService) issueToken(ctx context.Context, user *models.User) (*AuthResponse, error) {
	token, tokenID, err := s.jwtUtil.GenerateToken(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	if err := s.sessions.Create(ctx, tokenID, user.ID); err != nil {
		return nil, err
	}
	return &AuthResponse{
		Token:    token,
		Username: user.Username,
		UserID:   user.ID,
	}, nil
}

func stripBearer(token string) string {
	return strings.TrimPrefix(token, "Bearer ")
}
