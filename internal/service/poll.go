package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/vietanh2810/meetup-api/internal/domain"
	"github.com/vietanh2810/meetup-api/internal/repository"
)

var (
	ErrPollInactive          = errors.New("the dates poll is not active")
	ErrPollEntriesNotAllowed = errors.New("only the meeting creator can add poll entries")
	ErrPollEntryNotFound     = repository.ErrPollEntryNotFound
	ErrInvalidPollEntry      = errors.New("poll entry must end after it starts")
)

// UpdatePoll applies userID's new entries and votes to the meeting's date poll.
// Nothing is written when the poll is closed, when the caller may not add
// entries, or when a vote references an entry outside the meeting.
func (s *MeetingService) UpdatePoll(ctx context.Context, meetingID, userID uint, update domain.PollUpdate) ([]domain.DatePollEntry, error) {
	meeting, err := s.repo.FindPlain(ctx, meetingID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindPlain -> %w", err)
	}

	if !meeting.IsDatesPollActive {
		return nil, ErrPollInactive
	}
	if update.AddsEntries() && !meeting.CanAddPollEntries(userID) {
		return nil, ErrPollEntriesNotAllowed
	}
	if err = validatePollEntries(update.NewEntries); err != nil {
		return nil, err
	}

	entries, err := s.repo.ApplyPollUpdate(ctx, meetingID, userID, update)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ApplyPollUpdate -> %w", err)
	}

	return entries, nil
}

func validatePollEntries(entries []domain.NewDatePollEntry) error {
	for _, e := range entries {
		if e.EndDate.Before(e.StartDate) {
			return ErrInvalidPollEntry
		}
	}
	return nil
}
