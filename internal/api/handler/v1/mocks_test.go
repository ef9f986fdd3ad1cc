package v1

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/vietanh2810/meetup-api/internal/domain"
)

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) Register(ctx context.Context, user domain.User) (domain.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (domain.TokenPair, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(domain.TokenPair), args.Error(1)
}

func (m *mockAuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	args := m.Called(ctx, refreshToken)
	return args.String(0), args.Error(1)
}

func (m *mockAuthService) Logout(ctx context.Context, refreshToken string) error {
	return m.Called(ctx, refreshToken).Error(0)
}

func (m *mockAuthService) ChangePassword(ctx context.Context, userID uint, current, next string) error {
	return m.Called(ctx, userID, current, next).Error(0)
}

func (m *mockAuthService) RequestPasswordReset(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *mockAuthService) ResetPassword(ctx context.Context, token, password string) error {
	return m.Called(ctx, token, password).Error(0)
}

type mockAuthorizer struct {
	mock.Mock
}

func (m *mockAuthorizer) AuthorizeParticipant(ctx context.Context, meetingID, userID uint) (domain.MeetingAccess, error) {
	args := m.Called(ctx, meetingID, userID)
	return args.Get(0).(domain.MeetingAccess), args.Error(1)
}

func (m *mockAuthorizer) AuthorizeCreator(ctx context.Context, meetingID, userID uint) (domain.MeetingAccess, error) {
	args := m.Called(ctx, meetingID, userID)
	return args.Get(0).(domain.MeetingAccess), args.Error(1)
}

type mockMeetingService struct {
	mock.Mock
}

func (m *mockMeetingService) CreateMeeting(ctx context.Context, creatorID uint, meeting domain.Meeting, pollEntries []domain.NewDatePollEntry, participantIDs []uint) (domain.Meeting, error) {
	args := m.Called(ctx, creatorID, meeting, pollEntries, participantIDs)
	return args.Get(0).(domain.Meeting), args.Error(1)
}

func (m *mockMeetingService) GetMeeting(ctx context.Context, id uint) (domain.Meeting, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Meeting), args.Error(1)
}

func (m *mockMeetingService) ListMeetings(ctx context.Context, userID uint, page int, view domain.MeetingView) (domain.MeetingPage, error) {
	args := m.Called(ctx, userID, page, view)
	return args.Get(0).(domain.MeetingPage), args.Error(1)
}

func (m *mockMeetingService) UpdateMeeting(ctx context.Context, id uint, update domain.MeetingUpdate) (domain.Meeting, error) {
	args := m.Called(ctx, id, update)
	return args.Get(0).(domain.Meeting), args.Error(1)
}

func (m *mockMeetingService) InviteUsers(ctx context.Context, meetingID uint, userIDs []uint) ([]domain.Participant, error) {
	args := m.Called(ctx, meetingID, userIDs)
	return args.Get(0).([]domain.Participant), args.Error(1)
}

func (m *mockMeetingService) SetParticipationStatus(ctx context.Context, meetingID, userID uint, status domain.ParticipationStatus) (domain.Participant, error) {
	args := m.Called(ctx, meetingID, userID, status)
	return args.Get(0).(domain.Participant), args.Error(1)
}

func (m *mockMeetingService) ListInvitations(ctx context.Context, userID uint) ([]domain.Invitation, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Invitation), args.Error(1)
}

func (m *mockMeetingService) UpdatePoll(ctx context.Context, meetingID, userID uint, update domain.PollUpdate) ([]domain.DatePollEntry, error) {
	args := m.Called(ctx, meetingID, userID, update)
	return args.Get(0).([]domain.DatePollEntry), args.Error(1)
}

type mockAnnouncementService struct {
	mock.Mock
}

func (m *mockAnnouncementService) ListAnnouncements(ctx context.Context, meetingID uint, page int) (domain.AnnouncementPage, error) {
	args := m.Called(ctx, meetingID, page)
	return args.Get(0).(domain.AnnouncementPage), args.Error(1)
}

func (m *mockAnnouncementService) CreateAnnouncement(ctx context.Context, a domain.Announcement) (domain.Announcement, error) {
	args := m.Called(ctx, a)
	return args.Get(0).(domain.Announcement), args.Error(1)
}

func (m *mockAnnouncementService) UpdateAnnouncement(ctx context.Context, meetingID, id, userID uint, update domain.AnnouncementUpdate) (domain.Announcement, error) {
	args := m.Called(ctx, meetingID, id, userID, update)
	return args.Get(0).(domain.Announcement), args.Error(1)
}

func (m *mockAnnouncementService) DeleteAnnouncement(ctx context.Context, access domain.MeetingAccess, id uint) error {
	return m.Called(ctx, access, id).Error(0)
}

type mockExpenseService struct {
	mock.Mock
}

func (m *mockExpenseService) ListExpenses(ctx context.Context, meetingID uint) ([]domain.Expense, error) {
	args := m.Called(ctx, meetingID)
	return args.Get(0).([]domain.Expense), args.Error(1)
}

func (m *mockExpenseService) CreateExpense(ctx context.Context, e domain.Expense, userIDs []uint) (domain.Expense, error) {
	args := m.Called(ctx, e, userIDs)
	return args.Get(0).(domain.Expense), args.Error(1)
}

func (m *mockExpenseService) UpdateExpense(ctx context.Context, meetingID, id, userID uint, update domain.ExpenseUpdate) (domain.Expense, error) {
	args := m.Called(ctx, meetingID, id, userID, update)
	return args.Get(0).(domain.Expense), args.Error(1)
}

func (m *mockExpenseService) DeleteExpense(ctx context.Context, access domain.MeetingAccess, id uint) error {
	return m.Called(ctx, access, id).Error(0)
}

type mockActivityService struct {
	mock.Mock
}

func (m *mockActivityService) ListActivities(ctx context.Context, meetingID uint) ([]domain.Activity, error) {
	args := m.Called(ctx, meetingID)
	return args.Get(0).([]domain.Activity), args.Error(1)
}

func (m *mockActivityService) CreateActivity(ctx context.Context, a domain.Activity) (domain.Activity, error) {
	args := m.Called(ctx, a)
	return args.Get(0).(domain.Activity), args.Error(1)
}

func (m *mockActivityService) UpdateActivity(ctx context.Context, meetingID, id uint, update domain.ActivityUpdate) (domain.Activity, error) {
	args := m.Called(ctx, meetingID, id, update)
	return args.Get(0).(domain.Activity), args.Error(1)
}

func (m *mockActivityService) DeleteActivity(ctx context.Context, meetingID, id uint) error {
	return m.Called(ctx, meetingID, id).Error(0)
}
