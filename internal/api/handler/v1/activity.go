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

type ActivityService interface {
	ListActivities(ctx context.Context, meetingID uint) ([]domain.Activity, error)
	CreateActivity(ctx context.Context, a domain.Activity) (domain.Activity, error)
	UpdateActivity(ctx context.Context, meetingID, id uint, update domain.ActivityUpdate) (domain.Activity, error)
	DeleteActivity(ctx context.Context, meetingID, id uint) error
}

type ActivityHandler struct {
	svc ActivityService
}

func NewActivityHandler(svc ActivityService) *ActivityHandler {
	return &ActivityHandler{
		svc: svc,
	}
}

// HandleGetActivities godoc
// @Summary      List a meeting's activities by start time
// @Tags         activities
// @Produce      json
// @Param        id   path      int  true  "meeting ID"
// @Success      200      {array}    response.Activity
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /meeting/{id}/activities [get]
func (h *ActivityHandler) HandleGetActivities(ctx *gin.Context) {
	access, ok := meetingAccess(ctx)
	if !ok {
		return
	}

	activities, err := h.svc.ListActivities(ctx.Request.Context(), access.MeetingID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetActivities -> h.svc.ListActivities -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.NewActivities(activities))
}

// HandleCreateActivity godoc
// @Summary      Add an activity
// @Tags         activities
// @Accept       json
// @Produce      json
// @Param        id       path  int                      true  "meeting ID"
// @Param        request  body  request.ActivityRequest  true  "request body"
// @Success      201      {object}   response.Activity
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /meeting/{id}/activities [post]
func (h *ActivityHandler) HandleCreateActivity(ctx *gin.Context) {
	access, ok := meetingAccess(ctx)
	if !ok {
		return
	}

	var req request.ActivityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	created, err := h.svc.CreateActivity(ctx.Request.Context(), domain.Activity{
		MeetingID:   access.MeetingID,
		Name:        req.Name,
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidActivityTime) {
			response.RenderErr(ctx, response.ErrBadRequest(err))

			return
		}

		err = fmt.Errorf("v1.HandleCreateActivity -> h.svc.CreateActivity -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, response.NewActivity(created))
}

// HandleUpdateActivity godoc
// @Summary      Edit an activity
// @Tags         activities
// @Accept       json
// @Produce      json
// @Param        id          path  int                            true  "meeting ID"
// @Param        activityId  path  int                            true  "activity ID"
// @Param        request     body  request.UpdateActivityRequest  true  "request body"
// @Success      200      {object}   response.Activity
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /meeting/{id}/activities/{activityId} [patch]
func (h *ActivityHandler) HandleUpdateActivity(ctx *gin.Context) {
	access, ok := meetingAccess(ctx)
	if !ok {
		return
	}
	id, ok := idParam(ctx, "activityId")
	if !ok {
		return
	}

	var req request.UpdateActivityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	updated, err := h.svc.UpdateActivity(ctx.Request.Context(), access.MeetingID, id, req.Update())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrActivityNotFound):
			response.RenderErr(ctx, response.ErrNotFound("activity", "ID", id))
		case errors.Is(err, service.ErrInvalidActivityTime):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleUpdateActivity -> h.svc.UpdateActivity -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, response.NewActivity(updated))
}

// HandleDeleteActivity godoc
// @Summary      Delete an activity
// @Tags         activities
// @Param        id          path  int  true  "meeting ID"
// @Param        activityId  path  int  true  "activity ID"
// @Success      204
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /meeting/{id}/activities/{activityId} [delete]
func (h *ActivityHandler) HandleDeleteActivity(ctx *gin.Context) {
	access, ok := meetingAccess(ctx)
	if !ok {
		return
	}
	id, ok := idParam(ctx, "activityId")
	if !ok {
		return
	}

	if err := h.svc.DeleteActivity(ctx.Request.Context(), access.MeetingID, id); err != nil {
		if errors.Is(err, service.ErrActivityNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("activity", "ID", id))

			return
		}

		err = fmt.Errorf("v1.HandleDeleteActivity -> h.svc.DeleteActivity -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.Status(http.StatusNoContent)
}
