package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/vietanh2810/meetup-api/internal/config"
	"github.com/vietanh2810/meetup-api/internal/domain"
	"github.com/vietanh2810/meetup-api/internal/mailer"
	"github.com/vietanh2810/meetup-api/internal/pkg/jwthelper"
	"github.com/vietanh2810/meetup-api/internal/repository"
)

var (
	ErrUserEmailExists     = repository.ErrUserEmailExists
	ErrWrongPassword       = errors.New("wrong password")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrInvalidResetToken   = errors.New("invalid password reset token")
)

type AuthUserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	UpdatePassword(ctx context.Context, id uint, hash string) error
	SetResetToken(ctx context.Context, id uint, token string) error
	ResetPassword(ctx context.Context, token, hash string) error
}

// TokenRepository persists issued refresh tokens so they can be revoked.
type TokenRepository interface {
	Save(ctx context.Context, token string, userID uint, ttl time.Duration) error
	Exists(ctx context.Context, token string) (bool, error)
	Delete(ctx context.Context, token string) error
}

type AuthService struct {
	conf   *config.APIConfig
	repo   AuthUserRepository
	tokens TokenRepository
	mailer mailer.Mailer
}

func NewAuthService(conf *config.APIConfig, repo AuthUserRepository, tokens TokenRepository, m mailer.Mailer) *AuthService {
	return &AuthService{
		conf:   conf,
		repo:   repo,
		tokens: tokens,
		mailer: m,
	}
}

// Register stores a new user with a hashed password and a random display color.
func (s *AuthService) Register(ctx context.Context, user domain.User) (domain.User, error) {
	hash, err := hashPassword(user.Password)
	if err != nil {
		return domain.User{}, err
	}
	user.Password = hash
	user.Color = domain.RandomUserColor()

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// Login checks the credentials and issues a fresh access and refresh token pair.
// An unknown email yields ErrUserNotFound and a bad password ErrWrongPassword.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.TokenPair, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.TokenPair{}, ErrUserNotFound
		}

		return domain.TokenPair{}, fmt.Errorf("s.repo.FindByEmail -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return domain.TokenPair{}, ErrWrongPassword
	}

	access, err := jwthelper.GenerateToken([]byte(s.conf.JWTSigningKey), user.ID, s.conf.AccessTokenTTL)
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("jwthelper.GenerateToken -> %w", err)
	}

	refresh, err := jwthelper.GenerateToken([]byte(s.conf.JWTRefreshSigningKey), user.ID, s.conf.RefreshTokenTTL)
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("jwthelper.GenerateToken -> %w", err)
	}

	if err = s.tokens.Save(ctx, refresh, user.ID, s.conf.RefreshTokenTTL); err != nil {
		return domain.TokenPair{}, fmt.Errorf("s.tokens.Save -> %w", err)
	}

	return domain.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

// Refresh issues a new access token for a stored, correctly signed refresh token.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	ok, err := s.tokens.Exists(ctx, refreshToken)
	if err != nil {
		return "", fmt.Errorf("s.tokens.Exists -> %w", err)
	}
	if !ok {
		return "", ErrInvalidRefreshToken
	}

	userID, err := jwthelper.ParseToken([]byte(s.conf.JWTRefreshSigningKey), refreshToken)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidRefreshToken, err)
	}

	access, err := jwthelper.GenerateToken([]byte(s.conf.JWTSigningKey), userID, s.conf.AccessTokenTTL)
	if err != nil {
		return "", fmt.Errorf("jwthelper.GenerateToken -> %w", err)
	}

	return access, nil
}

func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}

	if err := s.tokens.Delete(ctx, refreshToken); err != nil {
		return fmt.Errorf("s.tokens.Delete -> %w", err)
	}

	return nil
}

func (s *AuthService) ChangePassword(ctx context.Context, userID uint, current, next string) error {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(current)); err != nil {
		return ErrWrongPassword
	}

	hash, err := hashPassword(next)
	if err != nil {
		return err
	}

	if err = s.repo.UpdatePassword(ctx, userID, hash); err != nil {
		return fmt.Errorf("s.repo.UpdatePassword -> %w", err)
	}

	return nil
}

// RequestPasswordReset mails a reset link to email. Unknown addresses succeed
// silently so the endpoint does not reveal which accounts exist.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil
		}

		return fmt.Errorf("s.repo.FindByEmail -> %w", err)
	}

	token := uuid.NewString()
	if err = s.repo.SetResetToken(ctx, user.ID, token); err != nil {
		return fmt.Errorf("s.repo.SetResetToken -> %w", err)
	}

	s.mailer.SendPasswordReset(ctx, user.Email, token)

	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, token, password string) error {
	hash, err := hashPassword(password)
	if err != nil {
		return err
	}

	if err = s.repo.ResetPassword(ctx, token, hash); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrInvalidResetToken
		}

		return fmt.Errorf("s.repo.ResetPassword -> %w", err)
	}

	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("bcrypt.GenerateFromPassword -> %w", err)
	}

	return string(hash), nil
}
