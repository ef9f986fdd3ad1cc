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

type AnnouncementService interface {
	ListAnnouncements(ctx context.Context, meetingID uint, page int) (domain.AnnouncementPage, error)
	CreateAnnouncement(ctx context.Context, a domain.Announcement) (domain.Announcement, error)
	UpdateAnnouncement(ctx context.Context, meetingID, id, userID uint, update domain.AnnouncementUpdate) (domain.Announcement, error)
	DeleteAnnouncement(ctx context.Context, access domain.MeetingAccess, id uint) error
}

type AnnouncementHandler struct {
	svc AnnouncementService
}

func NewAnnouncementHandler(svc AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{
		svc: svc,
	}
}

// HandleGetAnnouncements godoc
// @Summary      List a meeting's announcements, newest first
// @Tags         announcements
// @Produce      json
// @Param        id    path   int  true   "meeting ID"
// @Param        page  query  int  false  "page number, starting at 1"
// @Success      200      {object}   response.AnnouncementsResponse
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /meeting/{id}/announcements [get]
func (h *AnnouncementHandler) HandleGetAnnouncements(ctx *gin.Context) {
	access, ok := meetingAccess(ctx)
	if !ok {
		return
	}
	page, ok := pageQuery(ctx)
	if !ok {
		return
	}

	result, err := h.svc.ListAnnouncements(ctx.Request.Context(), access.MeetingID, page)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetAnnouncements -> h.svc.ListAnnouncements -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.NewAnnouncementsResponse(result))
}

// HandleCreateAnnouncement godoc
// @Summary      Post an announcement
// @Tags         announcements
// @Accept       json
// @Produce      json
// @Param        id       path  int                          true  "meeting ID"
// @Param        request  body  request.AnnouncementRequest  true  "request body"
// @Success      201      {object}   response.CreatedAnnouncementResponse
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /meeting/{id}/announcements [post]
func (h *AnnouncementHandler) HandleCreateAnnouncement(ctx *gin.Context) {
	access, ok := meetingAccess(ctx)
	if !ok {
		return
	}

	var req request.AnnouncementRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	created, err := h.svc.CreateAnnouncement(ctx.Request.Context(), domain.Announcement{
		MeetingID:   access.MeetingID,
		UserID:      access.UserID,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateAnnouncement -> h.svc.CreateAnnouncement -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, response.CreatedAnnouncementResponse{
		CreatedAnnouncement: response.NewAnnouncement(created),
	})
}

// HandleUpdateAnnouncement godoc
// @Summary      Edit an announcement
// @Description  Only the author can edit; other callers get 404.
// @Tags         announcements
// @Accept       json
// @Produce      json
// @Param        id              path  int                                true  "meeting ID"
// @Param        announcementId  path  int                                true  "announcement ID"
// @Param        request         body  request.UpdateAnnouncementRequest  true  "request body"
// @Success      200      {object}   response.Announcement
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /meeting/{id}/announcements/{announcementId} [patch]
func (h *AnnouncementHandler) HandleUpdateAnnouncement(ctx *gin.Context) {
	access, ok := meetingAccess(ctx)
	if !ok {
		return
	}
	id, ok := idParam(ctx, "announcementId")
	if !ok {
		return
	}

	var req request.UpdateAnnouncementRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	updated, err := h.svc.UpdateAnnouncement(ctx.Request.Context(), access.MeetingID, id, access.UserID, req.Update())
	if err != nil {
		if errors.Is(err, service.ErrAnnouncementNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("announcement", "ID", id))

			return
		}

		err = fmt.Errorf("v1.HandleUpdateAnnouncement -> h.svc.UpdateAnnouncement -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.NewAnnouncement(updated))
}

// HandleDeleteAnnouncement godoc
// @Summary      Delete an announcement
// @Description  Allowed for the author and the meeting creator.
// @Tags         announcements
// @Param        id              path  int  true  "meeting ID"
// @Param        announcementId  path  int  true  "announcement ID"
// @Success      204
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /meeting/{id}/announcements/{announcementId} [delete]
func (h *AnnouncementHandler) HandleDeleteAnnouncement(ctx *gin.Context) {
	access, ok := meetingAccess(ctx)
	if !ok {
		return
	}
	id, ok := idParam(ctx, "announcementId")
	if !ok {
		return
	}

	if err := h.svc.DeleteAnnouncement(ctx.Request.Context(), access, id); err != nil {
		switch {
		case errors.Is(err, service.ErrAnnouncementNotFound):
			response.RenderErr(ctx, response.ErrNotFound("announcement", "ID", id))
		case errors.Is(err, service.ErrNotAnnouncementOwner):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		default:
			err = fmt.Errorf("v1.HandleDeleteAnnouncement -> h.svc.DeleteAnnouncement -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.Status(http.StatusNoContent)
}
