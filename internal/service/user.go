package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/vietanh2810/meetup-api/internal/domain"
	"github.com/vietanh2810/meetup-api/internal/repository"
)

var (
	ErrUserNotFound = repository.ErrUserNotFound
)

type UserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
	Search(ctx context.Context, excludeID uint, words []string) ([]domain.User, error)
	SearchNotInMeeting(ctx context.Context, meetingID uint, words []string) ([]domain.User, error)
}

type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{
		repo: repo,
	}
}

func (s *UserService) GetUser(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return user, nil
}

// SelectOptions lists every user but userID whose name matches a word of searchText.
func (s *UserService) SelectOptions(ctx context.Context, userID uint, searchText string) ([]domain.UserOption, error) {
	users, err := s.repo.Search(ctx, userID, strings.Fields(searchText))
	if err != nil {
		return nil, fmt.Errorf("s.repo.Search -> %w", err)
	}

	return toOptions(users), nil
}

// InvitationOptions lists users that could still be invited to meetingID.
func (s *UserService) InvitationOptions(ctx context.Context, meetingID uint, searchText string) ([]domain.UserOption, error) {
	users, err := s.repo.SearchNotInMeeting(ctx, meetingID, strings.Fields(searchText))
	if err != nil {
		return nil, fmt.Errorf("s.repo.SearchNotInMeeting -> %w", err)
	}

	return toOptions(users), nil
}

func toOptions(users []domain.User) []domain.UserOption {
	options := make([]domain.UserOption, 0, len(users))
	for _, u := range users {
		options = append(options, u.Option())
	}
	return options
}
