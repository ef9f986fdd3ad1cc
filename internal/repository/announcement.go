package repository

import (
	"context"
	"fmt"

	"github.com/vietanh2810/meetup-api/internal/domain"
	"github.com/vietanh2810/meetup-api/internal/repository/dao"
)

var ErrAnnouncementNotFound = dao.ErrAnnouncementNotFound

type AnnouncementDAO interface {
	Insert(ctx context.Context, a dao.Announcement) (dao.Announcement, error)
	FindByID(ctx context.Context, meetingID, id uint) (dao.Announcement, error)
	ListByMeeting(ctx context.Context, meetingID uint, limit, offset int) ([]dao.Announcement, int64, error)
	Update(ctx context.Context, meetingID, id uint, fields map[string]any) (dao.Announcement, error)
	Delete(ctx context.Context, meetingID, id uint) error
}

type AnnouncementRepository struct {
	dao AnnouncementDAO
}

func NewAnnouncementRepository(dao AnnouncementDAO) *AnnouncementRepository {
	return &AnnouncementRepository{
		dao: dao,
	}
}

func (r *AnnouncementRepository) Create(ctx context.Context, a domain.Announcement) (domain.Announcement, error) {
	created, err := r.dao.Insert(ctx, dao.Announcement{
		MeetingID:   a.MeetingID,
		UserID:      a.UserID,
		Title:       a.Title,
		Description: a.Description,
	})
	if err != nil {
		return domain.Announcement{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return announcementToDomain(created), nil
}

func (r *AnnouncementRepository) FindByID(ctx context.Context, meetingID, id uint) (domain.Announcement, error) {
	found, err := r.dao.FindByID(ctx, meetingID, id)
	if err != nil {
		return domain.Announcement{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return announcementToDomain(found), nil
}

func (r *AnnouncementRepository) List(ctx context.Context, meetingID uint, limit, offset int) (domain.AnnouncementPage, error) {
	found, count, err := r.dao.ListByMeeting(ctx, meetingID, limit, offset)
	if err != nil {
		return domain.AnnouncementPage{}, fmt.Errorf("r.dao.ListByMeeting -> %w", err)
	}

	page := domain.AnnouncementPage{
		Announcements: make([]domain.Announcement, 0, len(found)),
		Count:         count,
	}
	for _, a := range found {
		page.Announcements = append(page.Announcements, announcementToDomain(a))
	}

	return page, nil
}

func (r *AnnouncementRepository) Update(ctx context.Context, meetingID, id uint, update domain.AnnouncementUpdate) (domain.Announcement, error) {
	fields := make(map[string]any)
	if update.Title != nil {
		fields["title"] = *update.Title
	}
	if update.Description != nil {
		fields["description"] = *update.Description
	}

	updated, err := r.dao.Update(ctx, meetingID, id, fields)
	if err != nil {
		return domain.Announcement{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return announcementToDomain(updated), nil
}

func (r *AnnouncementRepository) Delete(ctx context.Context, meetingID, id uint) error {
	if err := r.dao.Delete(ctx, meetingID, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func announcementToDomain(a dao.Announcement) domain.Announcement {
	return domain.Announcement{
		ID:          a.ID,
		MeetingID:   a.MeetingID,
		Title:       a.Title,
		Description: a.Description,
		UserID:      a.UserID,
		User:        userToDomain(a.User),
		CreatedAt:   a.CreatedAt,
	}
}
