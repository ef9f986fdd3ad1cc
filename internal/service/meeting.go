package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/vietanh2810/meetup-api/internal/domain"
	"github.com/vietanh2810/meetup-api/internal/mailer"
	"github.com/vietanh2810/meetup-api/internal/repository"
)

const MeetingsPageSize = 10

var (
	ErrMeetingNotFound            = repository.ErrMeetingNotFound
	ErrNotParticipant             = errors.New("user does not participate in the meeting")
	ErrNotMeetingCreator          = errors.New("only the meeting creator can do this")
	ErrInvalidPage                = errors.New("page must be a positive integer")
	ErrInvalidMeetingStatus       = errors.New("invalid meeting status")
	ErrInvalidParticipationStatus = errors.New("invalid participation status")
	ErrInvalidMeetingDates        = errors.New("endDate must not be before startDate")
)

type MeetingRepository interface {
	Create(ctx context.Context, meeting domain.Meeting, pollEntries []domain.NewDatePollEntry, inviteeIDs []uint) (domain.Meeting, []domain.Participant, error)
	FindByID(ctx context.Context, id uint) (domain.Meeting, error)
	FindPlain(ctx context.Context, id uint) (domain.Meeting, error)
	FindAccess(ctx context.Context, meetingID, userID uint) (domain.MeetingAccess, error)
	ListForUser(ctx context.Context, userID uint, statuses []domain.MeetingStatus, limit, offset int) (domain.MeetingPage, error)
	Update(ctx context.Context, id uint, update domain.MeetingUpdate) (domain.Meeting, error)
	AddInvitations(ctx context.Context, meetingID uint, userIDs []uint) ([]domain.Participant, error)
	SetParticipation(ctx context.Context, meetingID, userID uint, status domain.ParticipationStatus) (domain.Participant, error)
	FindInvitations(ctx context.Context, userID uint) ([]domain.Invitation, error)
	ApplyPollUpdate(ctx context.Context, meetingID, userID uint, update domain.PollUpdate) ([]domain.DatePollEntry, error)
}

type MeetingService struct {
	repo   MeetingRepository
	mailer mailer.Mailer
}

func NewMeetingService(repo MeetingRepository, m mailer.Mailer) *MeetingService {
	return &MeetingService{
		repo:   repo,
		mailer: m,
	}
}

// Authorize resolves how userID relates to meetingID. It only fails when the
// meeting is missing; the caller decides what relationship it needs.
func (s *MeetingService) Authorize(ctx context.Context, meetingID, userID uint) (domain.MeetingAccess, error) {
	access, err := s.repo.FindAccess(ctx, meetingID, userID)
	if err != nil {
		return domain.MeetingAccess{}, fmt.Errorf("s.repo.FindAccess -> %w", err)
	}

	return access, nil
}

// AuthorizeParticipant passes for any participation status, declined included.
func (s *MeetingService) AuthorizeParticipant(ctx context.Context, meetingID, userID uint) (domain.MeetingAccess, error) {
	access, err := s.Authorize(ctx, meetingID, userID)
	if err != nil {
		return domain.MeetingAccess{}, err
	}
	if !access.IsParticipant() {
		return domain.MeetingAccess{}, ErrNotParticipant
	}

	return access, nil
}

// AuthorizeCreator reports outsiders as ErrNotParticipant, so creator routes
// do not reveal that a meeting exists.
func (s *MeetingService) AuthorizeCreator(ctx context.Context, meetingID, userID uint) (domain.MeetingAccess, error) {
	access, err := s.Authorize(ctx, meetingID, userID)
	if err != nil {
		return domain.MeetingAccess{}, err
	}
	if !access.IsParticipant() {
		return domain.MeetingAccess{}, ErrNotParticipant
	}
	if !access.IsCreator() {
		return domain.MeetingAccess{}, ErrNotMeetingCreator
	}

	return access, nil
}

// CreateMeeting stores meeting for creatorID and invites participantIDs. Poll
// entries are kept only when the poll is active. Unknown and duplicate ids are
// dropped, as is the creator's own id.
func (s *MeetingService) CreateMeeting(ctx context.Context, creatorID uint, meeting domain.Meeting, pollEntries []domain.NewDatePollEntry, participantIDs []uint) (domain.Meeting, error) {
	if !meeting.Status.Valid() {
		return domain.Meeting{}, ErrInvalidMeetingStatus
	}
	if err := validatePollEntries(pollEntries); err != nil {
		return domain.Meeting{}, err
	}

	meeting.CreatorID = creatorID
	if !meeting.IsDatesPollActive {
		pollEntries = nil
	}

	created, invited, err := s.repo.Create(ctx, meeting, pollEntries, uniqueIDs(participantIDs, creatorID))
	if err != nil {
		return domain.Meeting{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	s.mailer.SendMeetingInvitation(ctx, participantUsers(invited), created)

	created.DatePollEntries = domain.SortByPopularity(created.DatePollEntries)

	return created, nil
}

// GetMeeting returns the meeting with its poll entries most voted first.
func (s *MeetingService) GetMeeting(ctx context.Context, id uint) (domain.Meeting, error) {
	meeting, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Meeting{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	meeting.DatePollEntries = domain.SortByPopularity(meeting.DatePollEntries)

	return meeting, nil
}

func (s *MeetingService) ListMeetings(ctx context.Context, userID uint, page int, view domain.MeetingView) (domain.MeetingPage, error) {
	if page < 1 {
		return domain.MeetingPage{}, ErrInvalidPage
	}

	result, err := s.repo.ListForUser(ctx, userID, view.Statuses(), MeetingsPageSize, (page-1)*MeetingsPageSize)
	if err != nil {
		return domain.MeetingPage{}, fmt.Errorf("s.repo.ListForUser -> %w", err)
	}

	for i := range result.Meetings {
		result.Meetings[i].DatePollEntries = domain.SortByPopularity(result.Meetings[i].DatePollEntries)
	}

	return result, nil
}

// UpdateMeeting applies update after checking the patched meeting still has a
// valid status and date range. An empty update just returns the meeting.
func (s *MeetingService) UpdateMeeting(ctx context.Context, id uint, update domain.MeetingUpdate) (domain.Meeting, error) {
	if update.IsEmpty() {
		return s.GetMeeting(ctx, id)
	}
	if update.Status != nil && !update.Status.Valid() {
		return domain.Meeting{}, ErrInvalidMeetingStatus
	}

	current, err := s.repo.FindPlain(ctx, id)
	if err != nil {
		return domain.Meeting{}, fmt.Errorf("s.repo.FindPlain -> %w", err)
	}
	next := update.Apply(current)
	if next.StartDate != nil && next.EndDate != nil && next.EndDate.Before(*next.StartDate) {
		return domain.Meeting{}, ErrInvalidMeetingDates
	}

	updated, err := s.repo.Update(ctx, id, update)
	if err != nil {
		return domain.Meeting{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	updated.DatePollEntries = domain.SortByPopularity(updated.DatePollEntries)

	return updated, nil
}

// InviteUsers invites userIDs that are not part of the meeting yet and mails
// only them. Users that already have a participation row are skipped.
func (s *MeetingService) InviteUsers(ctx context.Context, meetingID uint, userIDs []uint) ([]domain.Participant, error) {
	invited, err := s.repo.AddInvitations(ctx, meetingID, uniqueIDs(userIDs, 0))
	if err != nil {
		return nil, fmt.Errorf("s.repo.AddInvitations -> %w", err)
	}
	if len(invited) == 0 {
		return invited, nil
	}

	meeting, err := s.repo.FindPlain(ctx, meetingID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindPlain -> %w", err)
	}

	s.mailer.SendMeetingInvitation(ctx, participantUsers(invited), meeting)

	return invited, nil
}

// SetParticipationStatus moves the caller to status. Every transition is allowed.
func (s *MeetingService) SetParticipationStatus(ctx context.Context, meetingID, userID uint, status domain.ParticipationStatus) (domain.Participant, error) {
	if !status.Valid() {
		return domain.Participant{}, ErrInvalidParticipationStatus
	}

	saved, err := s.repo.SetParticipation(ctx, meetingID, userID, status)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("s.repo.SetParticipation -> %w", err)
	}

	return saved, nil
}

func (s *MeetingService) ListInvitations(ctx context.Context, userID uint) ([]domain.Invitation, error) {
	invitations, err := s.repo.FindInvitations(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindInvitations -> %w", err)
	}

	return invitations, nil
}

// uniqueIDs drops duplicates, zeros and skip while keeping the first-seen order.
func uniqueIDs(ids []uint, skip uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 || id == skip {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func participantUsers(participants []domain.Participant) []domain.User {
	users := make([]domain.User, 0, len(participants))
	for _, p := range participants {
		users = append(users, p.User)
	}
	return users
}
