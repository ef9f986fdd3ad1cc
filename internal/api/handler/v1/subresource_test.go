package v1

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/meetup-api/internal/domain"
	"github.com/vietanh2810/meetup-api/internal/service"
)

func TestAnnouncementHandler_HandleGetAnnouncements(t *testing.T) {
	svc := &mockAnnouncementService{}
	svc.On("ListAnnouncements", mock.Anything, testMeetingID, 2).Return(domain.AnnouncementPage{
		Announcements: []domain.Announcement{{ID: 1, Title: "Bring snacks", UserID: testUserID}},
		Count:         6,
	}, nil).Once()

	r := participantRouter(allowAll(), func(g *gin.RouterGroup) {
		g.GET("/announcements", NewAnnouncementHandler(svc).HandleGetAnnouncements)
	})
	rr := authed(t, r, httptest.NewRequest(http.MethodGet, "/meeting/3/announcements?page=2", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	body := decodeErr(t, rr)
	assert.EqualValues(t, 6, body["count"])
	assert.Len(t, body["announcements"], 1)
	svc.AssertExpectations(t)
}

func TestAnnouncementHandler_HandleCreateAnnouncement(t *testing.T) {
	svc := &mockAnnouncementService{}
	svc.On("CreateAnnouncement", mock.Anything, domain.Announcement{
		MeetingID:   testMeetingID,
		UserID:      testUserID,
		Title:       "Venue changed",
		Description: "Room 4",
	}).Return(domain.Announcement{ID: 12, Title: "Venue changed"}, nil).Once()

	r := participantRouter(allowAll(), func(g *gin.RouterGroup) {
		g.POST("/announcements", NewAnnouncementHandler(svc).HandleCreateAnnouncement)
	})
	rr := authed(t, r, httptest.NewRequest(http.MethodPost, "/meeting/3/announcements",
		jsonBody(t, map[string]string{"title": "Venue changed", "description": "Room 4"})))

	require.Equal(t, http.StatusCreated, rr.Code)
	created, ok := decodeErr(t, rr)["createdAnnouncement"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 12, created["id"])
	svc.AssertExpectations(t)
}

func TestAnnouncementHandler_HandleUpdateAnnouncement_NotAuthor(t *testing.T) {
	svc := &mockAnnouncementService{}
	svc.On("UpdateAnnouncement", mock.Anything, testMeetingID, uint(12), testUserID, mock.AnythingOfType("domain.AnnouncementUpdate")).
		Return(domain.Announcement{}, service.ErrAnnouncementNotFound).Once()

	r := participantRouter(allowAll(), func(g *gin.RouterGroup) {
		g.PATCH("/announcements/:announcementId", NewAnnouncementHandler(svc).HandleUpdateAnnouncement)
	})
	rr := authed(t, r, httptest.NewRequest(http.MethodPatch, "/meeting/3/announcements/12",
		jsonBody(t, map[string]string{"title": "Mine now"})))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	svc.AssertExpectations(t)
}

func TestAnnouncementHandler_HandleDeleteAnnouncement(t *testing.T) {
	tcases := []struct {
		name         string
		mockErr      error
		expectStatus int
	}{
		{name: "deleted", expectStatus: http.StatusNoContent},
		{name: "neither author nor creator", mockErr: service.ErrNotAnnouncementOwner, expectStatus: http.StatusForbidden},
		{name: "missing", mockErr: service.ErrAnnouncementNotFound, expectStatus: http.StatusNotFound},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mockAnnouncementService{}
			svc.On("DeleteAnnouncement", mock.Anything, testAccess, uint(12)).Return(tc.mockErr).Once()

			r := participantRouter(allowAll(), func(g *gin.RouterGroup) {
				g.DELETE("/announcements/:announcementId", NewAnnouncementHandler(svc).HandleDeleteAnnouncement)
			})
			rr := authed(t, r, httptest.NewRequest(http.MethodDelete, "/meeting/3/announcements/12", nil))

			assert.Equal(t, tc.expectStatus, rr.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestExpenseHandler_HandleCreateExpense(t *testing.T) {
	tcases := []struct {
		name         string
		mockErr      error
		expectStatus int
	}{
		{name: "created", expectStatus: http.StatusCreated},
		{name: "split user deleted meanwhile", mockErr: service.ErrUnknownUser, expectStatus: http.StatusBadRequest},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mockExpenseService{}
			svc.On("CreateExpense", mock.Anything, domain.Expense{
				MeetingID:   testMeetingID,
				Name:        "Pizza",
				Amount:      42.5,
				CreatedByID: testUserID,
			}, []uint{7, 8}).Return(domain.Expense{ID: 2, Name: "Pizza", Amount: 42.5}, tc.mockErr).Once()

			r := participantRouter(allowAll(), func(g *gin.RouterGroup) {
				g.POST("/expenses", NewExpenseHandler(svc).HandleCreateExpense)
			})
			rr := authed(t, r, httptest.NewRequest(http.MethodPost, "/meeting/3/expenses",
				jsonBody(t, map[string]any{"name": "Pizza", "amount": 42.5, "userIds": []uint{7, 8}})))

			assert.Equal(t, tc.expectStatus, rr.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestExpenseHandler_HandleCreateExpense_NegativeAmount(t *testing.T) {
	svc := &mockExpenseService{}
	r := participantRouter(allowAll(), func(g *gin.RouterGroup) {
		g.POST("/expenses", NewExpenseHandler(svc).HandleCreateExpense)
	})
	rr := authed(t, r, httptest.NewRequest(http.MethodPost, "/meeting/3/expenses",
		jsonBody(t, map[string]any{"name": "Refund", "amount": -3, "userIds": []uint{7}})))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	svc.AssertNotCalled(t, "CreateExpense", mock.Anything, mock.Anything, mock.Anything)
}

func TestExpenseHandler_HandleUpdateExpense_NotCreator(t *testing.T) {
	svc := &mockExpenseService{}
	svc.On("UpdateExpense", mock.Anything, testMeetingID, uint(2), testUserID, mock.AnythingOfType("domain.ExpenseUpdate")).
		Return(domain.Expense{}, service.ErrNotExpenseCreator).Once()

	r := participantRouter(allowAll(), func(g *gin.RouterGroup) {
		g.PATCH("/expenses/:expenseId", NewExpenseHandler(svc).HandleUpdateExpense)
	})
	rr := authed(t, r, httptest.NewRequest(http.MethodPatch, "/meeting/3/expenses/2",
		jsonBody(t, map[string]any{"amount": 10})))

	assert.Equal(t, http.StatusForbidden, rr.Code)
	svc.AssertExpectations(t)
}

func TestActivityHandler_HandleDeleteActivity(t *testing.T) {
	svc := &mockActivityService{}
	svc.On("DeleteActivity", mock.Anything, testMeetingID, uint(5)).Return(service.ErrActivityNotFound).Once()

	r := participantRouter(allowAll(), func(g *gin.RouterGroup) {
		g.DELETE("/activities/:activityId", NewActivityHandler(svc).HandleDeleteActivity)
	})
	rr := authed(t, r, httptest.NewRequest(http.MethodDelete, "/meeting/3/activities/5", nil))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	svc.AssertExpectations(t)
}

func TestActivityHandler_HandleGetActivities(t *testing.T) {
	svc := &mockActivityService{}
	svc.On("ListActivities", mock.Anything, testMeetingID).Return([]domain.Activity{{ID: 1, Name: "Hike"}, {ID: 2, Name: "Dinner"}}, nil).Once()

	r := participantRouter(allowAll(), func(g *gin.RouterGroup) {
		g.GET("/activities", NewActivityHandler(svc).HandleGetActivities)
	})
	rr := authed(t, r, httptest.NewRequest(http.MethodGet, "/meeting/3/activities", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"name":"Hike"`)
	svc.AssertExpectations(t)
}
