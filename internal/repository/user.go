package repository

import (
	"context"
	"fmt"

	"github.com/vietanh2810/meetup-api/internal/domain"
	"github.com/vietanh2810/meetup-api/internal/repository/dao"
)

var (
	ErrUserEmailExists = dao.ErrUserEmailExists
	ErrUserNotFound    = dao.ErrUserNotFound
)

type UserDAO interface {
	Insert(ctx context.Context, user dao.User) (dao.User, error)
	FindByID(ctx context.Context, id uint) (dao.User, error)
	FindByEmail(ctx context.Context, email string) (dao.User, error)
	Search(ctx context.Context, excludeID uint, words []string) ([]dao.User, error)
	SearchNotInMeeting(ctx context.Context, meetingID uint, words []string) ([]dao.User, error)
	UpdatePassword(ctx context.Context, id uint, hash string) error
	SetResetToken(ctx context.Context, id uint, token *string) error
	ResetPassword(ctx context.Context, token, hash string) error
}

type UserRepository struct {
	dao UserDAO
}

func NewUserRepository(dao UserDAO) *UserRepository {
	return &UserRepository{
		dao: dao,
	}
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	created, err := r.dao.Insert(ctx, dao.User{
		Email:    user.Email,
		Password: user.Password,
		Name:     user.Name,
		LastName: user.LastName,
		Color:    string(user.Color),
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return userToDomain(created), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (domain.User, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return userToDomain(found), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	found, err := r.dao.FindByEmail(ctx, email)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByEmail -> %w", err)
	}

	return userToDomain(found), nil
}

func (r *UserRepository) Search(ctx context.Context, excludeID uint, words []string) ([]domain.User, error) {
	found, err := r.dao.Search(ctx, excludeID, words)
	if err != nil {
		return nil, fmt.Errorf("r.dao.Search -> %w", err)
	}

	return usersToDomain(found), nil
}

func (r *UserRepository) SearchNotInMeeting(ctx context.Context, meetingID uint, words []string) ([]domain.User, error) {
	found, err := r.dao.SearchNotInMeeting(ctx, meetingID, words)
	if err != nil {
		return nil, fmt.Errorf("r.dao.SearchNotInMeeting -> %w", err)
	}

	return usersToDomain(found), nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id uint, hash string) error {
	if err := r.dao.UpdatePassword(ctx, id, hash); err != nil {
		return fmt.Errorf("r.dao.UpdatePassword -> %w", err)
	}

	return nil
}

func (r *UserRepository) SetResetToken(ctx context.Context, id uint, token string) error {
	if err := r.dao.SetResetToken(ctx, id, &token); err != nil {
		return fmt.Errorf("r.dao.SetResetToken -> %w", err)
	}

	return nil
}

func (r *UserRepository) ResetPassword(ctx context.Context, token, hash string) error {
	if err := r.dao.ResetPassword(ctx, token, hash); err != nil {
		return fmt.Errorf("r.dao.ResetPassword -> %w", err)
	}

	return nil
}

func userToDomain(u dao.User) domain.User {
	return domain.User{
		ID:                 u.ID,
		Email:              u.Email,
		Password:           u.Password,
		Name:               u.Name,
		LastName:           u.LastName,
		Color:              domain.UserColor(u.Color),
		PasswordResetToken: u.PasswordResetToken,
		CreatedAt:          u.CreatedAt,
		UpdatedAt:          u.UpdatedAt,
	}
}

func usersToDomain(list []dao.User) []domain.User {
	users := make([]domain.User, 0, len(list))
	for _, u := range list {
		users = append(users, userToDomain(u))
	}
	return users
}
