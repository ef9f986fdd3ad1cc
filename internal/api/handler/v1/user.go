package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/meetup-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/meetup-api/internal/domain"
	"github.com/vietanh2810/meetup-api/internal/service"
)

type UserService interface {
	GetUser(ctx context.Context, id uint) (domain.User, error)
	SelectOptions(ctx context.Context, userID uint, searchText string) ([]domain.UserOption, error)
	InvitationOptions(ctx context.Context, meetingID uint, searchText string) ([]domain.UserOption, error)
}

type UserHandler struct {
	svc UserService
}

func NewUserHandler(svc UserService) *UserHandler {
	return &UserHandler{
		svc: svc,
	}
}

// HandleGetSelf godoc
// @Summary      Get the caller's profile
// @Tags         users
// @Produce      json
// @Success      200      {object}   response.User
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /user/self [get]
func (h *UserHandler) HandleGetSelf(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	user, err := h.svc.GetUser(ctx.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.RenderErr(ctx, response.ErrUnauthorized())

			return
		}

		err = fmt.Errorf("v1.HandleGetSelf -> h.svc.GetUser -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.NewUser(user))
}

// HandleSelectOptions godoc
// @Summary      Search users
// @Description  Every user but the caller whose name or last name contains a word of searchText.
// @Tags         users
// @Produce      json
// @Param        searchText  query  string  false  "space separated words"
// @Success      200      {object}   response.OptionsResponse
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /user/selectOptions [get]
func (h *UserHandler) HandleSelectOptions(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	options, err := h.svc.SelectOptions(ctx.Request.Context(), userID, ctx.Query("searchText"))
	if err != nil {
		err = fmt.Errorf("v1.HandleSelectOptions -> h.svc.SelectOptions -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.OptionsResponse{Options: options})
}

// HandleInvitationOptions godoc
// @Summary      Search users that can still be invited
// @Tags         meetings
// @Produce      json
// @Param        id          path   int     true   "meeting ID"
// @Param        searchText  query  string  false  "space separated words"
// @Success      200      {object}   response.OptionsResponse
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /meeting/{id}/invitationOptions [get]
func (h *UserHandler) HandleInvitationOptions(ctx *gin.Context) {
	access, ok := meetingAccess(ctx)
	if !ok {
		return
	}

	options, err := h.svc.InvitationOptions(ctx.Request.Context(), access.MeetingID, ctx.Query("searchText"))
	if err != nil {
		err = fmt.Errorf("v1.HandleInvitationOptions -> h.svc.InvitationOptions -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.OptionsResponse{Options: options})
}
