// internal/services/auth_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bantconfirm/backend/internal/backend"
	"github.com/bantconfirm/backend/internal/config"
	"github.com/bantconfirm/backend/internal/models"
	"github.com/bantconfirm/backend/internal/utils"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

type AuthService struct {
	client backend.Client
	cfg    *config.Config
	mailer *Mailer
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Name     string          `json:"name" validate:"required,min=2,max=100"`
	Email    string          `json:"email" validate:"required,email"`
	Password string          `json:"password" validate:"required,strong_password"`
	Role     models.UserRole `json:"role" validate:"omitempty,oneof=user vendor"`
	Mobile   string          `json:"mobile" validate:"omitempty,mobile"`
	Location string          `json:"location" validate:"omitempty,max=150"`
}

type AuthResponse struct {
	User         *models.User `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	TokenType    string       `json:"token_type"`
	ExpiresIn    int          `json:"expires_in"` // in seconds
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,strong_password"`
}

func NewAuthService(client backend.Client, cfg *config.Config, mailer *Mailer) *AuthService {
	return &AuthService{
		client: client,
		cfg:    cfg,
		mailer: mailer,
	}
}

func (s *AuthService) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if existing, err := s.client.UserByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, ErrEmailTaken
	} else if err != nil && !errors.Is(err, backend.ErrNotFound) {
		return nil, fmt.Errorf("backend error: %w", err)
	}

	role := req.Role
	if role == "" {
		role = models.UserRoleUser
	}

	confirmToken, err := utils.GenerateVerificationCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate confirmation token: %w", err)
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		Role:         role,
		Mobile:       req.Mobile,
		Location:     req.Location,
		JoinedDate:   time.Now(),
		ConfirmToken: confirmToken,
	}

	if err := user.SetPassword(req.Password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.client.InsertUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	go s.mailer.SendConfirmationEmail(user, confirmToken)

	return s.issueTokens(user)
}

func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	user, err := s.client.UserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, backend.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("backend error: %w", err)
	}

	if err := user.CheckPassword(req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := s.client.SaveUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to record login: %w", err)
	}

	return s.issueTokens(user)
}

func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	userIDStr, err := utils.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", err)
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID in token: %w", err)
	}

	user, err := s.client.UserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, backend.ErrNotFound) {
			return nil, errors.New("user not found")
		}
		return nil, fmt.Errorf("backend error: %w", err)
	}

	return s.issueTokens(user)
}

// ConfirmEmail marks the account confirmed and returns the post-confirmation
// redirect target.
func (s *AuthService) ConfirmEmail(ctx context.Context, token string) (string, error) {
	user, err := s.client.UserByConfirmToken(ctx, token)
	if err != nil {
		if errors.Is(err, backend.ErrNotFound) {
			return "", ErrInvalidToken
		}
		return "", fmt.Errorf("backend error: %w", err)
	}

	now := time.Now()
	user.ConfirmedAt = &now
	user.ConfirmToken = ""
	if err := s.client.SaveUser(ctx, user); err != nil {
		return "", fmt.Errorf("failed to confirm email: %w", err)
	}

	return s.cfg.Site.EmailConfirmRedirect, nil
}

func (s *AuthService) ResendConfirmation(ctx context.Context, email string) error {
	user, err := s.client.UserByEmail(ctx, email)
	if err != nil {
		// Do not reveal whether the email exists.
		return nil
	}
	if user.ConfirmedAt != nil {
		return nil
	}

	token := user.ConfirmToken
	if token == "" {
		token, err = utils.GenerateVerificationCode()
		if err != nil {
			return fmt.Errorf("failed to generate confirmation token: %w", err)
		}
		user.ConfirmToken = token
		if err := s.client.SaveUser(ctx, user); err != nil {
			return fmt.Errorf("failed to save confirmation token: %w", err)
		}
	}

	go s.mailer.SendConfirmationEmail(user, token)
	return nil
}

func (s *AuthService) ForgotPassword(ctx context.Context, req *ForgotPasswordRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	user, err := s.client.UserByEmail(ctx, req.Email)
	if err != nil {
		// Do not reveal whether the email exists.
		return nil
	}

	resetToken, err := utils.GenerateVerificationCode()
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}

	expires := time.Now().Add(1 * time.Hour)
	user.ResetToken = resetToken
	user.ResetExpires = &expires
	if err := s.client.SaveUser(ctx, user); err != nil {
		return fmt.Errorf("failed to save reset token: %w", err)
	}

	go s.mailer.SendPasswordResetEmail(user, resetToken)
	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, req *ResetPasswordRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	user, err := s.client.UserByResetToken(ctx, req.Token)
	if err != nil {
		return ErrInvalidToken
	}

	if user.ResetExpires == nil || time.Now().After(*user.ResetExpires) {
		return ErrInvalidToken
	}

	if err := user.SetPassword(req.NewPassword); err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.ResetToken = ""
	user.ResetExpires = nil
	if err := s.client.SaveUser(ctx, user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

func (s *AuthService) GetUserByID(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.client.UserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, backend.ErrNotFound) {
			return nil, errors.New("user not found")
		}
		return nil, fmt.Errorf("backend error: %w", err)
	}
	return user, nil
}

func (s *AuthService) issueTokens(user *models.User) (*AuthResponse, error) {
	accessToken, err := utils.GenerateJWT(user.ID, user.Name, string(user.Role), s.cfg.JWT.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := utils.GenerateRefreshToken(user.ID, s.cfg.JWT.RefreshTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &AuthResponse{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    s.cfg.JWT.AccessTokenTTL * 3600,
	}, nil
}
