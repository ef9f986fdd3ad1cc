package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/vietanh2810/meetup-api/internal/domain"
	"github.com/vietanh2810/meetup-api/internal/repository"
)

var (
	ErrActivityNotFound    = repository.ErrActivityNotFound
	ErrInvalidActivityTime = errors.New("activity must end after it starts")
)

type ActivityRepository interface {
	Create(ctx context.Context, a domain.Activity) (domain.Activity, error)
	List(ctx context.Context, meetingID uint) ([]domain.Activity, error)
	Update(ctx context.Context, meetingID, id uint, update domain.ActivityUpdate) (domain.Activity, error)
	Delete(ctx context.Context, meetingID, id uint) error
}

type ActivityService struct {
	repo ActivityRepository
}

func NewActivityService(repo ActivityRepository) *ActivityService {
	return &ActivityService{
		repo: repo,
	}
}

func (s *ActivityService) ListActivities(ctx context.Context, meetingID uint) ([]domain.Activity, error) {
	activities, err := s.repo.List(ctx, meetingID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.List -> %w", err)
	}

	return activities, nil
}

func (s *ActivityService) CreateActivity(ctx context.Context, a domain.Activity) (domain.Activity, error) {
	if a.EndTime.Before(a.StartTime) {
		return domain.Activity{}, ErrInvalidActivityTime
	}

	created, err := s.repo.Create(ctx, a)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *ActivityService) UpdateActivity(ctx context.Context, meetingID, id uint, update domain.ActivityUpdate) (domain.Activity, error) {
	if update.StartTime != nil && update.EndTime != nil && update.EndTime.Before(*update.StartTime) {
		return domain.Activity{}, ErrInvalidActivityTime
	}

	updated, err := s.repo.Update(ctx, meetingID, id, update)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *ActivityService) DeleteActivity(ctx context.Context, meetingID, id uint) error {
	if err := s.repo.Delete(ctx, meetingID, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}
