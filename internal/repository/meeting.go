package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/vietanh2810/meetup-api/internal/domain"
	"github.com/vietanh2810/meetup-api/internal/repository/dao"
)

var (
	ErrMeetingNotFound       = dao.ErrMeetingNotFound
	ErrParticipationNotFound = dao.ErrParticipationNotFound
	ErrPollEntryNotFound     = errors.New("poll entry not found")
)

type MeetingDAO interface {
	Transaction(ctx context.Context, fn func(tx *dao.MeetingDAO) error) error
	FindByID(ctx context.Context, id uint) (dao.Meeting, error)
	FindPlain(ctx context.Context, id uint) (dao.Meeting, error)
	FindAccess(ctx context.Context, meetingID, userID uint) (dao.Access, error)
	ListForUser(ctx context.Context, userID uint, statuses []int, limit, offset int) ([]dao.Meeting, int64, error)
	Update(ctx context.Context, id uint, fields map[string]any) error
	UpsertParticipation(ctx context.Context, meetingID, userID uint, status string) (dao.ParticipationStatus, error)
	FindParticipationsByStatus(ctx context.Context, userID uint, status string) ([]dao.ParticipationStatus, error)
}

type MeetingRepository struct {
	dao MeetingDAO
}

func NewMeetingRepository(dao MeetingDAO) *MeetingRepository {
	return &MeetingRepository{
		dao: dao,
	}
}

// Create stores the meeting, seeds the creator as going, stores the initial poll
// entries and invites inviteeIDs, all in one transaction. It returns the freshly
// loaded meeting and the participants that were actually invited.
func (r *MeetingRepository) Create(ctx context.Context, meeting domain.Meeting, pollEntries []domain.NewDatePollEntry, inviteeIDs []uint) (domain.Meeting, []domain.Participant, error) {
	var (
		meetingID uint
		invited   []domain.Participant
	)

	err := r.dao.Transaction(ctx, func(tx *dao.MeetingDAO) error {
		created, err := tx.Insert(ctx, meetingToDAO(meeting))
		if err != nil {
			return fmt.Errorf("tx.Insert -> %w", err)
		}
		meetingID = created.ID

		_, err = tx.InsertParticipations(ctx, []dao.ParticipationStatus{{
			MeetingID: created.ID,
			UserID:    created.CreatorID,
			Status:    string(domain.ParticipationGoing),
		}})
		if err != nil {
			return fmt.Errorf("tx.InsertParticipations -> %w", err)
		}

		if len(pollEntries) > 0 {
			entries := make([]dao.DatePollEntry, 0, len(pollEntries))
			for _, e := range pollEntries {
				entries = append(entries, dao.DatePollEntry{
					MeetingID: created.ID,
					StartDate: e.StartDate,
					EndDate:   e.EndDate,
				})
			}
			if _, err = tx.InsertPollEntries(ctx, entries); err != nil {
				return fmt.Errorf("tx.InsertPollEntries -> %w", err)
			}
		}

		invited, err = addInvitations(ctx, tx, created.ID, inviteeIDs)
		return err
	})
	if err != nil {
		return domain.Meeting{}, nil, fmt.Errorf("r.dao.Transaction -> %w", err)
	}

	loaded, err := r.FindByID(ctx, meetingID)
	if err != nil {
		return domain.Meeting{}, nil, err
	}

	return loaded, invited, nil
}

func (r *MeetingRepository) FindByID(ctx context.Context, id uint) (domain.Meeting, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Meeting{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return meetingToDomain(found), nil
}

// FindPlain loads the meeting without creator, participants or poll entries.
func (r *MeetingRepository) FindPlain(ctx context.Context, id uint) (domain.Meeting, error) {
	found, err := r.dao.FindPlain(ctx, id)
	if err != nil {
		return domain.Meeting{}, fmt.Errorf("r.dao.FindPlain -> %w", err)
	}

	return meetingToDomain(found), nil
}

func (r *MeetingRepository) FindAccess(ctx context.Context, meetingID, userID uint) (domain.MeetingAccess, error) {
	found, err := r.dao.FindAccess(ctx, meetingID, userID)
	if err != nil {
		return domain.MeetingAccess{}, fmt.Errorf("r.dao.FindAccess -> %w", err)
	}

	access := domain.MeetingAccess{
		MeetingID: meetingID,
		UserID:    userID,
		CreatorID: found.CreatorID,
	}
	if found.Status != nil {
		access.Status = domain.ParticipationStatus(*found.Status)
	}

	return access, nil
}

func (r *MeetingRepository) ListForUser(ctx context.Context, userID uint, statuses []domain.MeetingStatus, limit, offset int) (domain.MeetingPage, error) {
	raw := make([]int, 0, len(statuses))
	for _, s := range statuses {
		raw = append(raw, int(s))
	}

	found, count, err := r.dao.ListForUser(ctx, userID, raw, limit, offset)
	if err != nil {
		return domain.MeetingPage{}, fmt.Errorf("r.dao.ListForUser -> %w", err)
	}

	page := domain.MeetingPage{
		Meetings: make([]domain.Meeting, 0, len(found)),
		Count:    count,
	}
	for _, m := range found {
		page.Meetings = append(page.Meetings, meetingToDomain(m))
	}

	return page, nil
}

func (r *MeetingRepository) Update(ctx context.Context, id uint, update domain.MeetingUpdate) (domain.Meeting, error) {
	if err := r.dao.Update(ctx, id, meetingUpdateFields(update)); err != nil {
		return domain.Meeting{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.FindByID(ctx, id)
}

// AddInvitations invites userIDs that exist and are not yet part of the meeting.
// Users already holding a row of any status are left untouched.
func (r *MeetingRepository) AddInvitations(ctx context.Context, meetingID uint, userIDs []uint) ([]domain.Participant, error) {
	var invited []domain.Participant

	err := r.dao.Transaction(ctx, func(tx *dao.MeetingDAO) error {
		var err error
		invited, err = addInvitations(ctx, tx, meetingID, userIDs)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("r.dao.Transaction -> %w", err)
	}

	return invited, nil
}

func addInvitations(ctx context.Context, tx *dao.MeetingDAO, meetingID uint, userIDs []uint) ([]domain.Participant, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}

	existing, err := tx.FindExistingUserIDs(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("tx.FindExistingUserIDs -> %w", err)
	}

	already, err := tx.FindParticipantUserIDs(ctx, meetingID, existing)
	if err != nil {
		return nil, fmt.Errorf("tx.FindParticipantUserIDs -> %w", err)
	}
	skip := make(map[uint]struct{}, len(already))
	for _, id := range already {
		skip[id] = struct{}{}
	}

	rows := make([]dao.ParticipationStatus, 0, len(existing))
	for _, id := range existing {
		if _, ok := skip[id]; ok {
			continue
		}
		rows = append(rows, dao.ParticipationStatus{
			MeetingID: meetingID,
			UserID:    id,
			Status:    string(domain.ParticipationInvited),
		})
	}

	created, err := tx.InsertParticipations(ctx, rows)
	if err != nil {
		return nil, fmt.Errorf("tx.InsertParticipations -> %w", err)
	}

	return participantsToDomain(created), nil
}

func (r *MeetingRepository) SetParticipation(ctx context.Context, meetingID, userID uint, status domain.ParticipationStatus) (domain.Participant, error) {
	saved, err := r.dao.UpsertParticipation(ctx, meetingID, userID, string(status))
	if err != nil {
		return domain.Participant{}, fmt.Errorf("r.dao.UpsertParticipation -> %w", err)
	}

	return participantToDomain(saved), nil
}

func (r *MeetingRepository) FindInvitations(ctx context.Context, userID uint) ([]domain.Invitation, error) {
	rows, err := r.dao.FindParticipationsByStatus(ctx, userID, string(domain.ParticipationInvited))
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindParticipationsByStatus -> %w", err)
	}

	invitations := make([]domain.Invitation, 0, len(rows))
	for _, row := range rows {
		invitations = append(invitations, domain.Invitation{
			ID:        row.ID,
			MeetingID: row.MeetingID,
			UserID:    row.UserID,
			Status:    domain.ParticipationStatus(row.Status),
			Meeting:   meetingToDomain(row.Meeting),
		})
	}

	return invitations, nil
}

func meetingUpdateFields(u domain.MeetingUpdate) map[string]any {
	fields := make(map[string]any)
	if u.Name != nil {
		fields["name"] = *u.Name
	}
	if u.Description != nil {
		fields["description"] = *u.Description
	}
	if u.Status != nil {
		fields["status"] = int(*u.Status)
	}
	if u.LocationID != nil {
		fields["location_id"] = *u.LocationID
	}
	if u.LocationString != nil {
		fields["location_string"] = *u.LocationString
	}
	if u.StartDate != nil {
		fields["start_date"] = *u.StartDate
	}
	if u.EndDate != nil {
		fields["end_date"] = *u.EndDate
	}
	if u.IsDatesPollActive != nil {
		fields["is_dates_poll_active"] = *u.IsDatesPollActive
	}
	if u.CanUsersAddPollEntries != nil {
		fields["can_users_add_poll_entries"] = *u.CanUsersAddPollEntries
	}
	return fields
}

func meetingToDAO(m domain.Meeting) dao.Meeting {
	return dao.Meeting{
		Name:                   m.Name,
		Description:            m.Description,
		StartDate:              m.StartDate,
		EndDate:                m.EndDate,
		Status:                 int(m.Status),
		LocationID:             m.LocationID,
		LocationString:         m.LocationString,
		IsDatesPollActive:      m.IsDatesPollActive,
		CanUsersAddPollEntries: m.CanUsersAddPollEntries,
		CreatorID:              m.CreatorID,
	}
}

func meetingToDomain(m dao.Meeting) domain.Meeting {
	meeting := domain.Meeting{
		ID:                     m.ID,
		Name:                   m.Name,
		Description:            m.Description,
		StartDate:              m.StartDate,
		EndDate:                m.EndDate,
		Status:                 domain.MeetingStatus(m.Status),
		LocationID:             m.LocationID,
		LocationString:         m.LocationString,
		IsDatesPollActive:      m.IsDatesPollActive,
		CanUsersAddPollEntries: m.CanUsersAddPollEntries,
		CreatorID:              m.CreatorID,
		Creator:                userToDomain(m.Creator),
		Participants:           participantsToDomain(m.Participations),
		DatePollEntries:        pollEntriesToDomain(m.DatePollEntries),
		CreatedAt:              m.CreatedAt,
		UpdatedAt:              m.UpdatedAt,
	}
	return meeting
}

func participantToDomain(p dao.ParticipationStatus) domain.Participant {
	return domain.Participant{
		User:   userToDomain(p.User),
		Status: domain.ParticipationStatus(p.Status),
	}
}

func participantsToDomain(rows []dao.ParticipationStatus) []domain.Participant {
	participants := make([]domain.Participant, 0, len(rows))
	for _, row := range rows {
		participants = append(participants, participantToDomain(row))
	}
	return participants
}
