package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/meetup-api/internal/domain"
)

func TestMeetingService_AuthorizeParticipant(t *testing.T) {
	ctx := context.Background()

	tcases := []struct {
		name      string
		access    domain.MeetingAccess
		findErr   error
		expectErr error
	}{
		{
			name:   "going participant",
			access: domain.MeetingAccess{MeetingID: 1, UserID: 2, CreatorID: 1, Status: domain.ParticipationGoing},
		},
		{
			name:   "declined participant keeps access",
			access: domain.MeetingAccess{MeetingID: 1, UserID: 2, CreatorID: 1, Status: domain.ParticipationDeclined},
		},
		{
			name:      "no participation row",
			access:    domain.MeetingAccess{MeetingID: 1, UserID: 2, CreatorID: 1},
			expectErr: ErrNotParticipant,
		},
		{
			name:      "missing meeting",
			findErr:   ErrMeetingNotFound,
			expectErr: ErrMeetingNotFound,
		},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &mockMeetingRepository{}
			repo.On("FindAccess", ctx, uint(1), uint(2)).Return(tc.access, tc.findErr).Once()

			s := NewMeetingService(repo, &mockMailer{})
			access, err := s.AuthorizeParticipant(ctx, 1, 2)

			if tc.expectErr != nil {
				assert.ErrorIs(t, err, tc.expectErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.access, access)
		})
	}
}

func TestMeetingService_AuthorizeCreator(t *testing.T) {
	ctx := context.Background()
	repo := &mockMeetingRepository{}
	repo.On("FindAccess", ctx, uint(1), uint(1)).
		Return(domain.MeetingAccess{MeetingID: 1, UserID: 1, CreatorID: 1, Status: domain.ParticipationGoing}, nil).Once()
	repo.On("FindAccess", ctx, uint(1), uint(2)).
		Return(domain.MeetingAccess{MeetingID: 1, UserID: 2, CreatorID: 1, Status: domain.ParticipationGoing}, nil).Once()
	repo.On("FindAccess", ctx, uint(1), uint(3)).
		Return(domain.MeetingAccess{MeetingID: 1, UserID: 3, CreatorID: 1}, nil).Once()

	s := NewMeetingService(repo, &mockMailer{})

	_, err := s.AuthorizeCreator(ctx, 1, 1)
	assert.NoError(t, err)

	_, err = s.AuthorizeCreator(ctx, 1, 2)
	assert.ErrorIs(t, err, ErrNotMeetingCreator)

	_, err = s.AuthorizeCreator(ctx, 1, 3)
	assert.ErrorIs(t, err, ErrNotParticipant)
}

func TestMeetingService_CreateMeeting(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	entries := []domain.NewDatePollEntry{{StartDate: start, EndDate: start.Add(time.Hour)}}

	t.Run("dedupes invitees and mails them", func(t *testing.T) {
		repo := &mockMeetingRepository{}
		m := &mockMailer{}
		defer repo.AssertExpectations(t)
		defer m.AssertExpectations(t)

		invited := []domain.Participant{
			{User: domain.User{ID: 2}, Status: domain.ParticipationInvited},
			{User: domain.User{ID: 3}, Status: domain.ParticipationInvited},
		}
		created := domain.Meeting{ID: 10, Name: "Picnic", CreatorID: 1, IsDatesPollActive: true}

		repo.On("Create", ctx, mock.MatchedBy(func(m domain.Meeting) bool {
			return m.CreatorID == 1 && m.Name == "Picnic"
		}), entries, []uint{2, 3}).Return(created, invited, nil).Once()
		m.On("SendMeetingInvitation", ctx, []domain.User{{ID: 2}, {ID: 3}}, created).Once()

		s := NewMeetingService(repo, m)
		got, err := s.CreateMeeting(ctx, 1,
			domain.Meeting{Name: "Picnic", IsDatesPollActive: true},
			entries, []uint{2, 1, 3, 2, 0})

		require.NoError(t, err)
		assert.Equal(t, uint(10), got.ID)
	})

	t.Run("inactive poll drops entries", func(t *testing.T) {
		repo := &mockMeetingRepository{}
		m := &mockMailer{}
		defer repo.AssertExpectations(t)

		repo.On("Create", ctx, mock.Anything, []domain.NewDatePollEntry(nil), []uint{}).
			Return(domain.Meeting{ID: 11}, []domain.Participant{}, nil).Once()
		m.On("SendMeetingInvitation", ctx, []domain.User{}, domain.Meeting{ID: 11}).Once()

		s := NewMeetingService(repo, m)
		_, err := s.CreateMeeting(ctx, 1, domain.Meeting{Name: "Picnic"}, entries, nil)

		require.NoError(t, err)
	})

	t.Run("invalid status", func(t *testing.T) {
		repo := &mockMeetingRepository{}

		s := NewMeetingService(repo, &mockMailer{})
		_, err := s.CreateMeeting(ctx, 1, domain.Meeting{Name: "Picnic", Status: domain.MeetingStatus(9)}, nil, nil)

		assert.ErrorIs(t, err, ErrInvalidMeetingStatus)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("entry ending before it starts", func(t *testing.T) {
		repo := &mockMeetingRepository{}
		bad := []domain.NewDatePollEntry{{StartDate: start, EndDate: start.Add(-time.Hour)}}

		s := NewMeetingService(repo, &mockMailer{})
		_, err := s.CreateMeeting(ctx, 1, domain.Meeting{Name: "Picnic", IsDatesPollActive: true}, bad, nil)

		assert.ErrorIs(t, err, ErrInvalidPollEntry)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestMeetingService_ListMeetings(t *testing.T) {
	ctx := context.Background()
	repo := &mockMeetingRepository{}
	defer repo.AssertExpectations(t)

	page := domain.MeetingPage{Meetings: []domain.Meeting{{ID: 4}}, Count: 11}
	repo.On("ListForUser", ctx, uint(1), domain.MeetingViewArchived.Statuses(), MeetingsPageSize, MeetingsPageSize).
		Return(page, nil).Once()

	s := NewMeetingService(repo, &mockMailer{})

	got, err := s.ListMeetings(ctx, 1, 2, domain.MeetingViewArchived)
	require.NoError(t, err)
	assert.Equal(t, page, got)

	_, err = s.ListMeetings(ctx, 1, 0, domain.MeetingViewPlanned)
	assert.ErrorIs(t, err, ErrInvalidPage)
}

func TestMeetingService_ListMeetingsSortsPoll(t *testing.T) {
	ctx := context.Background()
	repo := &mockMeetingRepository{}
	defer repo.AssertExpectations(t)

	start := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	page := domain.MeetingPage{Count: 1, Meetings: []domain.Meeting{{
		ID: 4,
		DatePollEntries: []domain.DatePollEntry{
			{ID: 1, StartDate: start},
			{ID: 2, StartDate: start.Add(time.Hour), Voters: []domain.User{{ID: 1}}},
		},
	}}}
	repo.On("ListForUser", ctx, uint(1), domain.MeetingViewPlanned.Statuses(), MeetingsPageSize, 0).
		Return(page, nil).Once()

	got, err := NewMeetingService(repo, &mockMailer{}).ListMeetings(ctx, 1, 1, domain.MeetingViewPlanned)
	require.NoError(t, err)
	require.Len(t, got.Meetings, 1)
	require.Len(t, got.Meetings[0].DatePollEntries, 2)
	assert.EqualValues(t, 2, got.Meetings[0].DatePollEntries[0].ID)
	assert.EqualValues(t, 1, got.Meetings[0].DatePollEntries[1].ID)
}

func TestMeetingService_InviteUsers(t *testing.T) {
	ctx := context.Background()
	meeting := domain.Meeting{ID: 5, Name: "Picnic"}

	t.Run("mails only the newly invited", func(t *testing.T) {
		repo := &mockMeetingRepository{}
		m := &mockMailer{}
		defer repo.AssertExpectations(t)
		defer m.AssertExpectations(t)

		fresh := []domain.Participant{{User: domain.User{ID: 8}, Status: domain.ParticipationInvited}}
		repo.On("AddInvitations", ctx, uint(5), []uint{7, 8}).Return(fresh, nil).Once()
		repo.On("FindPlain", ctx, uint(5)).Return(meeting, nil).Once()
		m.On("SendMeetingInvitation", ctx, []domain.User{{ID: 8}}, meeting).Once()

		s := NewMeetingService(repo, m)
		got, err := s.InviteUsers(ctx, 5, []uint{7, 8, 7})

		require.NoError(t, err)
		assert.Equal(t, fresh, got)
	})

	t.Run("everyone already invited", func(t *testing.T) {
		repo := &mockMeetingRepository{}
		m := &mockMailer{}
		repo.On("AddInvitations", ctx, uint(5), []uint{7}).Return([]domain.Participant{}, nil).Once()

		s := NewMeetingService(repo, m)
		got, err := s.InviteUsers(ctx, 5, []uint{7})

		require.NoError(t, err)
		assert.Empty(t, got)
		m.AssertNotCalled(t, "SendMeetingInvitation", mock.Anything, mock.Anything, mock.Anything)
		repo.AssertNotCalled(t, "FindPlain", mock.Anything, mock.Anything)
	})
}

func TestMeetingService_SetParticipationStatus(t *testing.T) {
	ctx := context.Background()
	repo := &mockMeetingRepository{}
	saved := domain.Participant{User: domain.User{ID: 2}, Status: domain.ParticipationMaybe}
	repo.On("SetParticipation", ctx, uint(1), uint(2), domain.ParticipationMaybe).Return(saved, nil).Once()

	s := NewMeetingService(repo, &mockMailer{})

	got, err := s.SetParticipationStatus(ctx, 1, 2, domain.ParticipationMaybe)
	require.NoError(t, err)
	assert.Equal(t, saved, got)

	_, err = s.SetParticipationStatus(ctx, 1, 2, domain.ParticipationStatus("sleeping"))
	assert.ErrorIs(t, err, ErrInvalidParticipationStatus)
}

func TestMeetingService_GetMeetingSortsEntries(t *testing.T) {
	ctx := context.Background()
	early := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	late := early.Add(48 * time.Hour)

	repo := &mockMeetingRepository{}
	repo.On("FindByID", ctx, uint(1)).Return(domain.Meeting{
		ID: 1,
		DatePollEntries: []domain.DatePollEntry{
			{ID: 1, StartDate: early},
			{ID: 2, StartDate: late, Voters: []domain.User{{ID: 3}}},
		},
	}, nil).Once()

	s := NewMeetingService(repo, &mockMailer{})
	got, err := s.GetMeeting(ctx, 1)

	require.NoError(t, err)
	require.Len(t, got.DatePollEntries, 2)
	assert.Equal(t, uint(2), got.DatePollEntries[0].ID)
}

func TestMeetingService_UpdateMeeting(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	before := start.Add(-24 * time.Hour)
	after := start.Add(24 * time.Hour)
	name := "Offsite"
	current := domain.Meeting{ID: 5, Name: "Standup", StartDate: &start}

	t.Run("empty patch reads the meeting", func(t *testing.T) {
		repo := &mockMeetingRepository{}
		repo.On("FindByID", ctx, uint(5)).Return(current, nil).Once()

		got, err := NewMeetingService(repo, &mockMailer{}).UpdateMeeting(ctx, 5, domain.MeetingUpdate{})
		require.NoError(t, err)
		assert.Equal(t, "Standup", got.Name)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
		repo.AssertExpectations(t)
	})

	t.Run("end moved before the stored start", func(t *testing.T) {
		repo := &mockMeetingRepository{}
		repo.On("FindPlain", ctx, uint(5)).Return(current, nil).Once()

		_, err := NewMeetingService(repo, &mockMailer{}).UpdateMeeting(ctx, 5, domain.MeetingUpdate{EndDate: &before})
		assert.ErrorIs(t, err, ErrInvalidMeetingDates)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
		repo.AssertExpectations(t)
	})

	t.Run("valid patch", func(t *testing.T) {
		update := domain.MeetingUpdate{Name: &name, EndDate: &after}
		repo := &mockMeetingRepository{}
		repo.On("FindPlain", ctx, uint(5)).Return(current, nil).Once()
		repo.On("Update", ctx, uint(5), update).Return(update.Apply(current), nil).Once()

		got, err := NewMeetingService(repo, &mockMailer{}).UpdateMeeting(ctx, 5, update)
		require.NoError(t, err)
		assert.Equal(t, "Offsite", got.Name)
		repo.AssertExpectations(t)
	})
}
