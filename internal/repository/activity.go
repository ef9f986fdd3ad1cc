package repository

import (
	"context"
	"fmt"

	"github.com/vietanh2810/meetup-api/internal/domain"
	"github.com/vietanh2810/meetup-api/internal/repository/dao"
)

var ErrActivityNotFound = dao.ErrActivityNotFound

type ActivityDAO interface {
	Insert(ctx context.Context, a dao.Activity) (dao.Activity, error)
	FindByID(ctx context.Context, meetingID, id uint) (dao.Activity, error)
	ListByMeeting(ctx context.Context, meetingID uint) ([]dao.Activity, error)
	Update(ctx context.Context, meetingID, id uint, fields map[string]any) (dao.Activity, error)
	Delete(ctx context.Context, meetingID, id uint) error
}

type ActivityRepository struct {
	dao ActivityDAO
}

func NewActivityRepository(dao ActivityDAO) *ActivityRepository {
	return &ActivityRepository{
		dao: dao,
	}
}

func (r *ActivityRepository) Create(ctx context.Context, a domain.Activity) (domain.Activity, error) {
	created, err := r.dao.Insert(ctx, dao.Activity{
		MeetingID:   a.MeetingID,
		Name:        a.Name,
		Description: a.Description,
		StartTime:   a.StartTime,
		EndTime:     a.EndTime,
	})
	if err != nil {
		return domain.Activity{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return activityToDomain(created), nil
}

func (r *ActivityRepository) List(ctx context.Context, meetingID uint) ([]domain.Activity, error) {
	found, err := r.dao.ListByMeeting(ctx, meetingID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListByMeeting -> %w", err)
	}

	activities := make([]domain.Activity, 0, len(found))
	for _, a := range found {
		activities = append(activities, activityToDomain(a))
	}

	return activities, nil
}

func (r *ActivityRepository) Update(ctx context.Context, meetingID, id uint, update domain.ActivityUpdate) (domain.Activity, error) {
	fields := make(map[string]any)
	if update.Name != nil {
		fields["name"] = *update.Name
	}
	if update.Description != nil {
		fields["description"] = *update.Description
	}
	if update.StartTime != nil {
		fields["start_time"] = *update.StartTime
	}
	if update.EndTime != nil {
		fields["end_time"] = *update.EndTime
	}

	updated, err := r.dao.Update(ctx, meetingID, id, fields)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return activityToDomain(updated), nil
}

func (r *ActivityRepository) Delete(ctx context.Context, meetingID, id uint) error {
	if err := r.dao.Delete(ctx, meetingID, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func activityToDomain(a dao.Activity) domain.Activity {
	return domain.Activity{
		ID:          a.ID,
		MeetingID:   a.MeetingID,
		Name:        a.Name,
		Description: a.Description,
		StartTime:   a.StartTime,
		EndTime:     a.EndTime,
	}
}
