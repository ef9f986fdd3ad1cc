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

func TestAnnouncementService_ListAnnouncements(t *testing.T) {
	ctx := context.Background()
	repo := &mockAnnouncementRepository{}
	defer repo.AssertExpectations(t)
	repo.On("List", ctx, uint(1), AnnouncementsPageSize, 2*AnnouncementsPageSize).
		Return(domain.AnnouncementPage{Count: 12}, nil).Once()

	s := NewAnnouncementService(repo)

	page, err := s.ListAnnouncements(ctx, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(12), page.Count)

	_, err = s.ListAnnouncements(ctx, 1, -1)
	assert.ErrorIs(t, err, ErrInvalidPage)
}

func TestAnnouncementService_UpdateAnnouncement(t *testing.T) {
	ctx := context.Background()
	title := "Bring snacks"
	update := domain.AnnouncementUpdate{Title: &title}

	repo := &mockAnnouncementRepository{}
	repo.On("FindByID", ctx, uint(1), uint(9)).Return(domain.Announcement{ID: 9, MeetingID: 1, UserID: 3}, nil)
	repo.On("Update", ctx, uint(1), uint(9), update).Return(domain.Announcement{ID: 9, Title: title}, nil).Once()

	s := NewAnnouncementService(repo)

	got, err := s.UpdateAnnouncement(ctx, 1, 9, 3, update)
	require.NoError(t, err)
	assert.Equal(t, title, got.Title)

	_, err = s.UpdateAnnouncement(ctx, 1, 9, 4, update)
	assert.ErrorIs(t, err, ErrAnnouncementNotFound)
	repo.AssertNumberOfCalls(t, "Update", 1)
}

func TestAnnouncementService_DeleteAnnouncement(t *testing.T) {
	ctx := context.Background()

	tcases := []struct {
		name      string
		access    domain.MeetingAccess
		expectErr error
	}{
		{
			name:   "author",
			access: domain.MeetingAccess{MeetingID: 1, UserID: 3, CreatorID: 1, Status: domain.ParticipationGoing},
		},
		{
			name:   "meeting creator",
			access: domain.MeetingAccess{MeetingID: 1, UserID: 1, CreatorID: 1, Status: domain.ParticipationGoing},
		},
		{
			name:      "other participant",
			access:    domain.MeetingAccess{MeetingID: 1, UserID: 4, CreatorID: 1, Status: domain.ParticipationGoing},
			expectErr: ErrNotAnnouncementOwner,
		},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &mockAnnouncementRepository{}
			repo.On("FindByID", ctx, uint(1), uint(9)).Return(domain.Announcement{ID: 9, MeetingID: 1, UserID: 3}, nil).Once()
			if tc.expectErr == nil {
				repo.On("Delete", ctx, uint(1), uint(9)).Return(nil).Once()
			}

			err := NewAnnouncementService(repo).DeleteAnnouncement(ctx, tc.access, 9)

			if tc.expectErr != nil {
				assert.ErrorIs(t, err, tc.expectErr)
				repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
				return
			}
			assert.NoError(t, err)
			repo.AssertExpectations(t)
		})
	}
}

func TestExpenseService_CreateExpenseDedupesUsers(t *testing.T) {
	ctx := context.Background()
	e := domain.Expense{MeetingID: 1, Name: "Pizza", Amount: 42.5, CreatedByID: 2}

	repo := &mockExpenseRepository{}
	defer repo.AssertExpectations(t)
	repo.On("Create", ctx, e, []uint{2, 3}).Return(domain.Expense{ID: 1, Name: "Pizza"}, nil).Once()

	_, err := NewExpenseService(repo).CreateExpense(ctx, e, []uint{2, 3, 2})
	assert.NoError(t, err)
}

func TestExpenseService_UpdateExpense(t *testing.T) {
	ctx := context.Background()
	ids := []uint{3, 3, 4}
	update := domain.ExpenseUpdate{UserIDs: &ids}

	repo := &mockExpenseRepository{}
	repo.On("FindByID", ctx, uint(1), uint(5)).Return(domain.Expense{ID: 5, CreatedByID: 2}, nil)
	repo.On("Update", ctx, uint(1), uint(5), mock.MatchedBy(func(u domain.ExpenseUpdate) bool {
		return u.UserIDs != nil && assert.ObjectsAreEqual([]uint{3, 4}, *u.UserIDs)
	})).Return(domain.Expense{ID: 5}, nil).Once()

	s := NewExpenseService(repo)

	_, err := s.UpdateExpense(ctx, 1, 5, 2, update)
	require.NoError(t, err)

	_, err = s.UpdateExpense(ctx, 1, 5, 1, update)
	assert.ErrorIs(t, err, ErrNotExpenseCreator)
	repo.AssertNumberOfCalls(t, "Update", 1)
}

func TestExpenseService_DeleteExpense(t *testing.T) {
	ctx := context.Background()

	repo := &mockExpenseRepository{}
	repo.On("FindByID", ctx, uint(1), uint(5)).Return(domain.Expense{ID: 5, CreatedByID: 2}, nil)
	repo.On("Delete", ctx, uint(1), uint(5)).Return(nil)

	s := NewExpenseService(repo)

	assert.NoError(t, s.DeleteExpense(ctx, domain.MeetingAccess{MeetingID: 1, UserID: 2, CreatorID: 1}, 5))
	assert.NoError(t, s.DeleteExpense(ctx, domain.MeetingAccess{MeetingID: 1, UserID: 1, CreatorID: 1}, 5))
	assert.ErrorIs(t, s.DeleteExpense(ctx, domain.MeetingAccess{MeetingID: 1, UserID: 3, CreatorID: 1}, 5), ErrNotExpenseCreator)
	repo.AssertNumberOfCalls(t, "Delete", 2)
}

func TestActivityService_CreateActivityRejectsBackwardsTimes(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)

	repo := &mockActivityRepository{}
	s := NewActivityService(repo)

	_, err := s.CreateActivity(ctx, domain.Activity{MeetingID: 1, Name: "Hike", StartTime: start, EndTime: start.Add(-time.Hour)})
	assert.ErrorIs(t, err, ErrInvalidActivityTime)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUserService_SelectOptionsSplitsWords(t *testing.T) {
	ctx := context.Background()
	repo := &mockUserRepository{}
	defer repo.AssertExpectations(t)
	repo.On("Search", ctx, uint(1), []string{"ada", "love"}).
		Return([]domain.User{{ID: 2, Email: "ada@example.com", Name: "Ada", LastName: "Lovelace"}}, nil).Once()

	options, err := NewUserService(repo).SelectOptions(ctx, 1, "  ada   love ")

	require.NoError(t, err)
	assert.Equal(t, []domain.UserOption{{ID: 2, Name: "Ada", LastName: "Lovelace"}}, options)
}
