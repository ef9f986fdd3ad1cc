package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/meetup-api/internal/api/handler/v1/request"
	"github.com/vietanh2810/meetup-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/meetup-api/internal/domain"
	"github.com/vietanh2810/meetup-api/internal/service"
)

type MeetingService interface {
	CreateMeeting(ctx context.Context, creatorID uint, meeting domain.Meeting, pollEntries []domain.NewDatePollEntry, participantIDs []uint) (domain.Meeting, error)
	GetMeeting(ctx context.Context, id uint) (domain.Meeting, error)
	ListMeetings(ctx context.Context, userID uint, page int, view domain.MeetingView) (domain.MeetingPage, error)
	UpdateMeeting(ctx context.Context, id uint, update domain.MeetingUpdate) (domain.Meeting, error)
	InviteUsers(ctx context.Context, meetingID uint, userIDs []uint) ([]domain.Participant, error)
	SetParticipationStatus(ctx context.Context, meetingID, userID uint, status domain.ParticipationStatus) (domain.Participant, error)
	ListInvitations(ctx context.Context, userID uint) ([]domain.Invitation, error)
	UpdatePoll(ctx context.Context, meetingID, userID uint, update domain.PollUpdate) ([]domain.DatePollEntry, error)
}

type MeetingHandler struct {
	svc MeetingService
}

func NewMeetingHandler(svc MeetingService) *MeetingHandler {
	return &MeetingHandler{
		svc: svc,
	}
}

// HandleCreateMeeting godoc
// @Summary      Create a meeting
// @Description  The caller becomes the creator with status going. participantIds are invited and emailed.
// @Tags         meetings
// @Accept       json
// @Produce      json
// @Param        request  body  request.CreateMeetingRequest  true  "request body"
// @Success      201      {object}   response.CreatedMeetingResponse
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /meeting [post]
func (h *MeetingHandler) HandleCreateMeeting(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req request.CreateMeetingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	meeting, err := h.svc.CreateMeeting(ctx.Request.Context(), userID, req.Meeting(), req.PollEntries(), req.ParticipantIDs)
	if err != nil {
		if errors.Is(err, service.ErrInvalidMeetingStatus) || errors.Is(err, service.ErrInvalidPollEntry) {
			response.RenderErr(ctx, response.ErrBadRequest(err))

			return
		}

		err = fmt.Errorf("v1.HandleCreateMeeting -> h.svc.CreateMeeting -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, response.CreatedMeetingResponse{
		CreatedMeeting: response.NewMeeting(meeting),
	})
}

// HandleGetMeetings godoc
// @Summary      List the caller's meetings
// @Tags         meetings
// @Produce      json
// @Param        page           query  int     false  "page number, starting at 1"
// @Param        typeOfMeeting  query  string  false  "planned or archived"
// @Success      200      {object}   response.MeetingsResponse
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /meeting [get]
func (h *MeetingHandler) HandleGetMeetings(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	page, ok := pageQuery(ctx)
	if !ok {
		return
	}

	view := domain.ParseMeetingView(ctx.Query("typeOfMeeting"))

	result, err := h.svc.ListMeetings(ctx.Request.Context(), userID, page, view)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetMeetings -> h.svc.ListMeetings -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.NewMeetingsResponse(result))
}

// HandleGetMeeting godoc
// @Summary      Get a meeting
// @Tags         meetings
// @Produce      json
// @Param        id   path      int  true  "meeting ID"
// @Success      200      {object}   response.MeetingResponse
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /meeting/{id} [get]
func (h *MeetingHandler) HandleGetMeeting(ctx *gin.Context) {
	access, ok := meetingAccess(ctx)
	if !ok {
		return
	}

	meeting, err := h.svc.GetMeeting(ctx.Request.Context(), access.MeetingID)
	if err != nil {
		if errors.Is(err, service.ErrMeetingNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("meeting", "ID", access.MeetingID))

			return
		}

		err = fmt.Errorf("v1.HandleGetMeeting -> h.svc.GetMeeting -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.MeetingResponse{
		Meeting: response.NewMeeting(meeting),
	})
}

// HandleUpdateMeeting godoc
// @Summary      Update a meeting
// @Description  Creator only. Absent fields are left untouched.
// @Tags         meetings
// @Accept       json
// @Produce      json
// @Param        id       path  int                           true  "meeting ID"
// @Param        request  body  request.UpdateMeetingRequest  true  "request body"
// @Success      200      {object}   response.UpdatedMeetingResponse
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /meeting/{id} [patch]
func (h *MeetingHandler) HandleUpdateMeeting(ctx *gin.Context) {
	access, ok := meetingAccess(ctx)
	if !ok {
		return
	}

	var req request.UpdateMeetingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	meeting, err := h.svc.UpdateMeeting(ctx.Request.Context(), access.MeetingID, req.Update())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidMeetingStatus), errors.Is(err, service.ErrInvalidMeetingDates):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		case errors.Is(err, service.ErrMeetingNotFound):
			response.RenderErr(ctx, response.ErrNotFound("meeting", "ID", access.MeetingID))
		default:
			err = fmt.Errorf("v1.HandleUpdateMeeting -> h.svc.UpdateMeeting -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, response.UpdatedMeetingResponse{
		UpdatedMeeting: response.NewMeeting(meeting),
	})
}

// HandleVote godoc
// @Summary      Update the dates poll
// @Description  Adds new candidate dates (each with the caller's vote) and applies the caller's votes.
// @Tags         meetings
// @Accept       json
// @Produce      json
// @Param        id       path  int                  true  "meeting ID"
// @Param        request  body  request.VoteRequest  true  "request body"
// @Success      200      {array}    response.DatePollEntry
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /meeting/{id}/vote [post]
func (h *MeetingHandler) HandleVote(ctx *gin.Context) {
	access, ok := meetingAccess(ctx)
	if !ok {
		return
	}

	var req request.VoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	update, err := req.PollUpdate()
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	entries, err := h.svc.UpdatePoll(ctx.Request.Context(), access.MeetingID, access.UserID, update)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPollInactive),
			errors.Is(err, service.ErrPollEntryNotFound),
			errors.Is(err, service.ErrInvalidPollEntry):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		case errors.Is(err, service.ErrPollEntriesNotAllowed):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrMeetingNotFound):
			response.RenderErr(ctx, response.ErrNotFound("meeting", "ID", access.MeetingID))
		default:
			err = fmt.Errorf("v1.HandleVote -> h.svc.UpdatePoll -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, response.NewDatePollEntries(entries))
}

// HandleSetStatus godoc
// @Summary      Set the caller's participation status
// @Tags         meetings
// @Accept       json
// @Param        id       path  int                                 true  "meeting ID"
// @Param        request  body  request.ParticipationStatusRequest  true  "request body"
// @Success      200
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /meeting/{id}/status [post]
func (h *MeetingHandler) HandleSetStatus(ctx *gin.Context) {
	access, ok := meetingAccess(ctx)
	if !ok {
		return
	}

	var req request.ParticipationStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	_, err := h.svc.SetParticipationStatus(ctx.Request.Context(), access.MeetingID, access.UserID, req.Status)
	if err != nil {
		if errors.Is(err, service.ErrInvalidParticipationStatus) {
			response.RenderErr(ctx, response.ErrBadRequest(err))

			return
		}

		err = fmt.Errorf("v1.HandleSetStatus -> h.svc.SetParticipationStatus -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.Status(http.StatusOK)
}

// HandleInvite godoc
// @Summary      Invite users to a meeting
// @Description  Creator only. Users that already participate are skipped and not emailed again.
// @Tags         meetings
// @Accept       json
// @Produce      json
// @Param        id       path  int                    true  "meeting ID"
// @Param        request  body  request.InviteRequest  true  "request body"
// @Success      200      {object}   response.NewParticipantsResponse
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /meeting/{id}/invite [post]
func (h *MeetingHandler) HandleInvite(ctx *gin.Context) {
	access, ok := meetingAccess(ctx)
	if !ok {
		return
	}

	var req request.InviteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	invited, err := h.svc.InviteUsers(ctx.Request.Context(), access.MeetingID, req.UserIDs)
	if err != nil {
		if errors.Is(err, service.ErrMeetingNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("meeting", "ID", access.MeetingID))

			return
		}

		err = fmt.Errorf("v1.HandleInvite -> h.svc.InviteUsers -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.NewParticipantsResponse{
		NewParticipants: response.NewParticipants(invited),
	})
}

// HandleGetInvitations godoc
// @Summary      List the caller's pending invitations
// @Tags         meetings
// @Produce      json
// @Success      200      {array}    response.Invitation
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /meeting/invitations [get]
func (h *MeetingHandler) HandleGetInvitations(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	invitations, err := h.svc.ListInvitations(ctx.Request.Context(), userID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetInvitations -> h.svc.ListInvitations -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.NewInvitations(invitations))
}
