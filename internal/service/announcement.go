package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/vietanh2810/meetup-api/internal/domain"
	"github.com/vietanh2810/meetup-api/internal/repository"
)

const AnnouncementsPageSize = 5

var (
	ErrAnnouncementNotFound = repository.ErrAnnouncementNotFound
	ErrNotAnnouncementOwner = errors.New("only the author or the meeting creator can delete an announcement")
)

type AnnouncementRepository interface {
	Create(ctx context.Context, a domain.Announcement) (domain.Announcement, error)
	FindByID(ctx context.Context, meetingID, id uint) (domain.Announcement, error)
	List(ctx context.Context, meetingID uint, limit, offset int) (domain.AnnouncementPage, error)
	Update(ctx context.Context, meetingID, id uint, update domain.AnnouncementUpdate) (domain.Announcement, error)
	Delete(ctx context.Context, meetingID, id uint) error
}

type AnnouncementService struct {
	repo AnnouncementRepository
}

func NewAnnouncementService(repo AnnouncementRepository) *AnnouncementService {
	return &AnnouncementService{
		repo: repo,
	}
}

// ListAnnouncements returns one page of the meeting's announcements, newest first.
func (s *AnnouncementService) ListAnnouncements(ctx context.Context, meetingID uint, page int) (domain.AnnouncementPage, error) {
	if page < 1 {
		return domain.AnnouncementPage{}, ErrInvalidPage
	}

	result, err := s.repo.List(ctx, meetingID, AnnouncementsPageSize, (page-1)*AnnouncementsPageSize)
	if err != nil {
		return domain.AnnouncementPage{}, fmt.Errorf("s.repo.List -> %w", err)
	}

	return result, nil
}

func (s *AnnouncementService) CreateAnnouncement(ctx context.Context, a domain.Announcement) (domain.Announcement, error) {
	created, err := s.repo.Create(ctx, a)
	if err != nil {
		return domain.Announcement{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// UpdateAnnouncement edits an announcement written by userID. Announcements by
// someone else are reported as missing.
func (s *AnnouncementService) UpdateAnnouncement(ctx context.Context, meetingID, id, userID uint, update domain.AnnouncementUpdate) (domain.Announcement, error) {
	found, err := s.repo.FindByID(ctx, meetingID, id)
	if err != nil {
		return domain.Announcement{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if found.UserID != userID {
		return domain.Announcement{}, ErrAnnouncementNotFound
	}

	updated, err := s.repo.Update(ctx, meetingID, id, update)
	if err != nil {
		return domain.Announcement{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

// DeleteAnnouncement lets the author or the meeting creator remove an announcement.
func (s *AnnouncementService) DeleteAnnouncement(ctx context.Context, access domain.MeetingAccess, id uint) error {
	found, err := s.repo.FindByID(ctx, access.MeetingID, id)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if found.UserID != access.UserID && !access.IsCreator() {
		return ErrNotAnnouncementOwner
	}

	if err = s.repo.Delete(ctx, access.MeetingID, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}
