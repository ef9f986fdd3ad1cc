package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/vietanh2810/meetup-api/internal/domain"
)

type mockMeetingRepository struct {
	mock.Mock
}

func (m *mockMeetingRepository) Create(ctx context.Context, meeting domain.Meeting, pollEntries []domain.NewDatePollEntry, inviteeIDs []uint) (domain.Meeting, []domain.Participant, error) {
	args := m.Called(ctx, meeting, pollEntries, inviteeIDs)
	return args.Get(0).(domain.Meeting), args.Get(1).([]domain.Participant), args.Error(2)
}
func (m *mockMeetingRepository) FindByID(ctx context.Context, id uint) (domain.Meeting, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Meeting), args.Error(1)
}
func (m *mockMeetingRepository) FindPlain(ctx context.Context, id uint) (domain.Meeting, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Meeting), args.Error(1)
}
func (m *mockMeetingRepository) FindAccess(ctx context.Context, meetingID, userID uint) (domain.MeetingAccess, error) {
	args := m.Called(ctx, meetingID, userID)
	return args.Get(0).(domain.MeetingAccess), args.Error(1)
}
func (m *mockMeetingRepository) ListForUser(ctx context.Context, userID uint, statuses []domain.MeetingStatus, limit, offset int) (domain.MeetingPage, error) {
	args := m.Called(ctx, userID, statuses, limit, offset)
	return args.Get(0).(domain.MeetingPage), args.Error(1)
}
func (m *mockMeetingRepository) Update(ctx context.Context, id uint, update domain.MeetingUpdate) (domain.Meeting, error) {
	args := m.Called(ctx, id, update)
	return args.Get(0).(domain.Meeting), args.Error(1)
}
func (m *mockMeetingRepository) AddInvitations(ctx context.Context, meetingID uint, userIDs []uint) ([]domain.Participant, error) {
	args := m.Called(ctx, meetingID, userIDs)
	return args.Get(0).([]domain.Participant), args.Error(1)
}
func (m *mockMeetingRepository) SetParticipation(ctx context.Context, meetingID, userID uint, status domain.ParticipationStatus) (domain.Participant, error) {
	args := m.Called(ctx, meetingID, userID, status)
	return args.Get(0).(domain.Participant), args.Error(1)
}
func (m *mockMeetingRepository) FindInvitations(ctx context.Context, userID uint) ([]domain.Invitation, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Invitation), args.Error(1)
}
func (m *mockMeetingRepository) ApplyPollUpdate(ctx context.Context, meetingID, userID uint, update domain.PollUpdate) ([]domain.DatePollEntry, error) {
	args := m.Called(ctx, meetingID, userID, update)
	return args.Get(0).([]domain.DatePollEntry), args.Error(1)
}

type mockAuthUserRepository struct {
	mock.Mock
}

func (m *mockAuthUserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(domain.User), args.Error(1)
}
func (m *mockAuthUserRepository) FindByID(ctx context.Context, id uint) (domain.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.User), args.Error(1)
}
func (m *mockAuthUserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(domain.User), args.Error(1)
}
func (m *mockAuthUserRepository) UpdatePassword(ctx context.Context, id uint, hash string) error {
	args := m.Called(ctx, id, hash)
	return args.Error(0)
}
func (m *mockAuthUserRepository) SetResetToken(ctx context.Context, id uint, token string) error {
	args := m.Called(ctx, id, token)
	return args.Error(0)
}
func (m *mockAuthUserRepository) ResetPassword(ctx context.Context, token, hash string) error {
	args := m.Called(ctx, token, hash)
	return args.Error(0)
}

type mockTokenRepository struct {
	mock.Mock
}

func (m *mockTokenRepository) Save(ctx context.Context, token string, userID uint, ttl time.Duration) error {
	args := m.Called(ctx, token, userID, ttl)
	return args.Error(0)
}
func (m *mockTokenRepository) Exists(ctx context.Context, token string) (bool, error) {
	args := m.Called(ctx, token)
	return args.Bool(0), args.Error(1)
}
func (m *mockTokenRepository) Delete(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uint) (domain.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.User), args.Error(1)
}
func (m *mockUserRepository) Search(ctx context.Context, excludeID uint, words []string) ([]domain.User, error) {
	args := m.Called(ctx, excludeID, words)
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *mockUserRepository) SearchNotInMeeting(ctx context.Context, meetingID uint, words []string) ([]domain.User, error) {
	args := m.Called(ctx, meetingID, words)
	return args.Get(0).([]domain.User), args.Error(1)
}

type mockAnnouncementRepository struct {
	mock.Mock
}

func (m *mockAnnouncementRepository) Create(ctx context.Context, a domain.Announcement) (domain.Announcement, error) {
	args := m.Called(ctx, a)
	return args.Get(0).(domain.Announcement), args.Error(1)
}
func (m *mockAnnouncementRepository) FindByID(ctx context.Context, meetingID, id uint) (domain.Announcement, error) {
	args := m.Called(ctx, meetingID, id)
	return args.Get(0).(domain.Announcement), args.Error(1)
}
func (m *mockAnnouncementRepository) List(ctx context.Context, meetingID uint, limit, offset int) (domain.AnnouncementPage, error) {
	args := m.Called(ctx, meetingID, limit, offset)
	return args.Get(0).(domain.AnnouncementPage), args.Error(1)
}
func (m *mockAnnouncementRepository) Update(ctx context.Context, meetingID, id uint, update domain.AnnouncementUpdate) (domain.Announcement, error) {
	args := m.Called(ctx, meetingID, id, update)
	return args.Get(0).(domain.Announcement), args.Error(1)
}
func (m *mockAnnouncementRepository) Delete(ctx context.Context, meetingID, id uint) error {
	args := m.Called(ctx, meetingID, id)
	return args.Error(0)
}

type mockExpenseRepository struct {
	mock.Mock
}

func (m *mockExpenseRepository) Create(ctx context.Context, e domain.Expense, userIDs []uint) (domain.Expense, error) {
	args := m.Called(ctx, e, userIDs)
	return args.Get(0).(domain.Expense), args.Error(1)
}
func (m *mockExpenseRepository) FindByID(ctx context.Context, meetingID, id uint) (domain.Expense, error) {
	args := m.Called(ctx, meetingID, id)
	return args.Get(0).(domain.Expense), args.Error(1)
}
func (m *mockExpenseRepository) List(ctx context.Context, meetingID uint) ([]domain.Expense, error) {
	args := m.Called(ctx, meetingID)
	return args.Get(0).([]domain.Expense), args.Error(1)
}
func (m *mockExpenseRepository) Update(ctx context.Context, meetingID, id uint, update domain.ExpenseUpdate) (domain.Expense, error) {
	args := m.Called(ctx, meetingID, id, update)
	return args.Get(0).(domain.Expense), args.Error(1)
}
func (m *mockExpenseRepository) Delete(ctx context.Context, meetingID, id uint) error {
	args := m.Called(ctx, meetingID, id)
	return args.Error(0)
}

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) SendMeetingInvitation(ctx context.Context, recipients []domain.User, meeting domain.Meeting) {
	m.Called(ctx, recipients, meeting)
}

func (m *mockMailer) SendPasswordReset(ctx context.Context, email, token string) {
	m.Called(ctx, email, token)
}

type mockActivityRepository struct {
	mock.Mock
}

func (m *mockActivityRepository) Create(ctx context.Context, a domain.Activity) (domain.Activity, error) {
	args := m.Called(ctx, a)
	return args.Get(0).(domain.Activity), args.Error(1)
}
func (m *mockActivityRepository) List(ctx context.Context, meetingID uint) ([]domain.Activity, error) {
	args := m.Called(ctx, meetingID)
	return args.Get(0).([]domain.Activity), args.Error(1)
}
func (m *mockActivityRepository) Update(ctx context.Context, meetingID, id uint, update domain.ActivityUpdate) (domain.Activity, error) {
	args := m.Called(ctx, meetingID, id, update)
	return args.Get(0).(domain.Activity), args.Error(1)
}
func (m *mockActivityRepository) Delete(ctx context.Context, meetingID, id uint) error {
	args := m.Called(ctx, meetingID, id)
	return args.Error(0)
}
