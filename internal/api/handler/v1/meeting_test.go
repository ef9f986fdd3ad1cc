package v1

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/meetup-api/internal/api/middleware"
	"github.com/vietanh2810/meetup-api/internal/domain"
	"github.com/vietanh2810/meetup-api/internal/service"
)

func meetingRouter(svc MeetingService) *gin.Engine {
	h := NewMeetingHandler(svc)
	r := gin.New()
	auth := middleware.NewAuthenticator(testSigningKey).VerifyJWT()
	r.GET("/meeting", auth, h.HandleGetMeetings)
	r.POST("/meeting", auth, h.HandleCreateMeeting)
	return r
}

func TestMeetingHandler_HandleGetMeetings_Page(t *testing.T) {
	tcases := []struct {
		name         string
		query        string
		expectPage   int
		expectView   domain.MeetingView
		expectStatus int
	}{
		{name: "defaults to first page", query: "", expectPage: 1, expectView: domain.MeetingViewPlanned, expectStatus: http.StatusOK},
		{name: "archived second page", query: "?page=2&typeOfMeeting=archived", expectPage: 2, expectView: domain.MeetingViewArchived, expectStatus: http.StatusOK},
		{name: "zero page", query: "?page=0", expectStatus: http.StatusBadRequest},
		{name: "non numeric page", query: "?page=two", expectStatus: http.StatusBadRequest},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mockMeetingService{}
			if tc.expectStatus == http.StatusOK {
				svc.On("ListMeetings", mock.Anything, testUserID, tc.expectPage, tc.expectView).
					Return(domain.MeetingPage{Meetings: []domain.Meeting{{ID: 1, Name: "Standup"}}, Count: 11}, nil).Once()
			}

			rr := authed(t, meetingRouter(svc), httptest.NewRequest(http.MethodGet, "/meeting"+tc.query, nil))

			assert.Equal(t, tc.expectStatus, rr.Code)
			if tc.expectStatus == http.StatusOK {
				body := decodeErr(t, rr)
				assert.EqualValues(t, 11, body["count"])
				assert.Len(t, body["meetings"], 1)
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestMeetingHandler_HandleCreateMeeting(t *testing.T) {
	svc := &mockMeetingService{}
	svc.On("CreateMeeting", mock.Anything, testUserID,
		mock.MatchedBy(func(m domain.Meeting) bool { return m.Name == "Retro" && m.IsDatesPollActive }),
		mock.MatchedBy(func(entries []domain.NewDatePollEntry) bool { return len(entries) == 1 }),
		[]uint{2, 5},
	).Return(domain.Meeting{ID: 9, Name: "Retro", CreatorID: testUserID}, nil).Once()

	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	body := jsonBody(t, map[string]any{
		"name":              "Retro",
		"isDatesPollActive": true,
		"participantIds":    []uint{2, 5},
		"datesPollEntries": []map[string]time.Time{
			{"startDate": start, "endDate": start.Add(time.Hour)},
		},
	})
	rr := authed(t, meetingRouter(svc), httptest.NewRequest(http.MethodPost, "/meeting", body))

	require.Equal(t, http.StatusCreated, rr.Code)
	created, ok := decodeErr(t, rr)["createdMeeting"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 9, created["id"])
	svc.AssertExpectations(t)
}

func TestMeetingHandler_HandleCreateMeeting_Invalid(t *testing.T) {
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	tcases := []struct {
		name string
		body map[string]any
	}{
		{name: "missing name", body: map[string]any{"description": "no name"}},
		{name: "status out of range", body: map[string]any{"name": "Retro", "status": 9}},
		{name: "poll entry ends before it starts", body: map[string]any{
			"name": "Retro",
			"datesPollEntries": []map[string]time.Time{
				{"startDate": start, "endDate": start.Add(-time.Hour)},
			},
		}},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mockMeetingService{}
			rr := authed(t, meetingRouter(svc), httptest.NewRequest(http.MethodPost, "/meeting", jsonBody(t, tc.body)))

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			svc.AssertNotCalled(t, "CreateMeeting", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestMeetingHandler_HandleVote(t *testing.T) {
	tcases := []struct {
		name         string
		body         map[string]any
		mockErr      error
		callsService bool
		expectStatus int
	}{
		{
			name:         "votes applied",
			body:         map[string]any{"votes": map[string]bool{"4": true, "5": false}},
			callsService: true,
			expectStatus: http.StatusOK,
		},
		{
			name:         "vote key is not an id",
			body:         map[string]any{"votes": map[string]bool{"abc": true}},
			expectStatus: http.StatusBadRequest,
		},
		{
			name:         "poll closed",
			body:         map[string]any{"votes": map[string]bool{"4": true}},
			mockErr:      service.ErrPollInactive,
			callsService: true,
			expectStatus: http.StatusBadRequest,
		},
		{
			name:         "adding entries not allowed",
			body:         map[string]any{"votes": map[string]bool{"4": true}},
			mockErr:      service.ErrPollEntriesNotAllowed,
			callsService: true,
			expectStatus: http.StatusForbidden,
		},
		{
			name:         "foreign entry",
			body:         map[string]any{"votes": map[string]bool{"4": true}},
			mockErr:      service.ErrPollEntryNotFound,
			callsService: true,
			expectStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mockMeetingService{}
			if tc.callsService {
				svc.On("UpdatePoll", mock.Anything, testMeetingID, testUserID, mock.AnythingOfType("domain.PollUpdate")).
					Return([]domain.DatePollEntry{{ID: 4, Voters: []domain.User{{ID: testUserID}}}}, tc.mockErr).Once()
			}

			r := participantRouter(allowAll(), func(g *gin.RouterGroup) {
				g.POST("/vote", NewMeetingHandler(svc).HandleVote)
			})
			rr := authed(t, r, httptest.NewRequest(http.MethodPost, "/meeting/3/vote", jsonBody(t, tc.body)))

			assert.Equal(t, tc.expectStatus, rr.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestMeetingHandler_HandleSetStatus(t *testing.T) {
	t.Run("valid status", func(t *testing.T) {
		svc := &mockMeetingService{}
		svc.On("SetParticipationStatus", mock.Anything, testMeetingID, testUserID, domain.ParticipationMaybe).
			Return(domain.Participant{Status: domain.ParticipationMaybe}, nil).Once()

		r := participantRouter(allowAll(), func(g *gin.RouterGroup) {
			g.POST("/status", NewMeetingHandler(svc).HandleSetStatus)
		})
		rr := authed(t, r, httptest.NewRequest(http.MethodPost, "/meeting/3/status",
			jsonBody(t, map[string]string{"status": "maybe"})))

		assert.Equal(t, http.StatusOK, rr.Code)
		svc.AssertExpectations(t)
	})

	t.Run("unknown status", func(t *testing.T) {
		svc := &mockMeetingService{}
		r := participantRouter(allowAll(), func(g *gin.RouterGroup) {
			g.POST("/status", NewMeetingHandler(svc).HandleSetStatus)
		})
		rr := authed(t, r, httptest.NewRequest(http.MethodPost, "/meeting/3/status",
			jsonBody(t, map[string]string{"status": "sleeping"})))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		svc.AssertNotCalled(t, "SetParticipationStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestMeetingHandler_HandleGetMeeting_StoreFailure(t *testing.T) {
	svc := &mockMeetingService{}
	svc.On("GetMeeting", mock.Anything, testMeetingID).Return(domain.Meeting{}, errors.New("db down")).Once()

	r := participantRouter(allowAll(), func(g *gin.RouterGroup) {
		g.GET("", NewMeetingHandler(svc).HandleGetMeeting)
	})
	rr := authed(t, r, httptest.NewRequest(http.MethodGet, "/meeting/3", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	body := decodeErr(t, rr)
	assert.Equal(t, "Internal server error.", body["status"])
	assert.NotContains(t, body, "error")
	svc.AssertExpectations(t)
}
