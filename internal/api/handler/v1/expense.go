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

type ExpenseService interface {
	ListExpenses(ctx context.Context, meetingID uint) ([]domain.Expense, error)
	CreateExpense(ctx context.Context, e domain.Expense, userIDs []uint) (domain.Expense, error)
	UpdateExpense(ctx context.Context, meetingID, id, userID uint, update domain.ExpenseUpdate) (domain.Expense, error)
	DeleteExpense(ctx context.Context, access domain.MeetingAccess, id uint) error
}

type ExpenseHandler struct {
	svc ExpenseService
}

func NewExpenseHandler(svc ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{
		svc: svc,
	}
}

// HandleGetExpenses godoc
// @Summary      List a meeting's expenses
// @Tags         expenses
// @Produce      json
// @Param        id   path      int  true  "meeting ID"
// @Success      200      {array}    response.Expense
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /meeting/{id}/expenses [get]
func (h *ExpenseHandler) HandleGetExpenses(ctx *gin.Context) {
	access, ok := meetingAccess(ctx)
	if !ok {
		return
	}

	expenses, err := h.svc.ListExpenses(ctx.Request.Context(), access.MeetingID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetExpenses -> h.svc.ListExpenses -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.NewExpenses(expenses))
}

// HandleCreateExpense godoc
// @Summary      Add an expense
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Param        id       path  int                     true  "meeting ID"
// @Param        request  body  request.ExpenseRequest  true  "request body"
// @Success      201      {object}   response.Expense
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /meeting/{id}/expenses [post]
func (h *ExpenseHandler) HandleCreateExpense(ctx *gin.Context) {
	access, ok := meetingAccess(ctx)
	if !ok {
		return
	}

	var req request.ExpenseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	created, err := h.svc.CreateExpense(ctx.Request.Context(), domain.Expense{
		MeetingID:   access.MeetingID,
		Name:        req.Name,
		Description: req.Description,
		Amount:      req.Amount,
		CreatedByID: access.UserID,
	}, req.UserIDs)
	if err != nil {
		if errors.Is(err, service.ErrUnknownUser) {
			response.RenderErr(ctx, response.ErrBadRequest(err))

			return
		}

		err = fmt.Errorf("v1.HandleCreateExpense -> h.svc.CreateExpense -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, response.NewExpense(created))
}

// HandleUpdateExpense godoc
// @Summary      Edit an expense
// @Description  Only the user who added the expense can edit it.
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Param        id         path  int                           true  "meeting ID"
// @Param        expenseId  path  int                           true  "expense ID"
// @Param        request    body  request.UpdateExpenseRequest  true  "request body"
// @Success      200      {object}   response.Expense
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /meeting/{id}/expenses/{expenseId} [patch]
func (h *ExpenseHandler) HandleUpdateExpense(ctx *gin.Context) {
	access, ok := meetingAccess(ctx)
	if !ok {
		return
	}
	id, ok := idParam(ctx, "expenseId")
	if !ok {
		return
	}

	var req request.UpdateExpenseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	updated, err := h.svc.UpdateExpense(ctx.Request.Context(), access.MeetingID, id, access.UserID, req.Update())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExpenseNotFound):
			response.RenderErr(ctx, response.ErrNotFound("expense", "ID", id))
		case errors.Is(err, service.ErrNotExpenseCreator):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrUnknownUser):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleUpdateExpense -> h.svc.UpdateExpense -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, response.NewExpense(updated))
}

// HandleDeleteExpense godoc
// @Summary      Delete an expense
// @Description  Allowed for the user who added it and the meeting creator.
// @Tags         expenses
// @Param        id         path  int  true  "meeting ID"
// @Param        expenseId  path  int  true  "expense ID"
// @Success      204
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /meeting/{id}/expenses/{expenseId} [delete]
func (h *ExpenseHandler) HandleDeleteExpense(ctx *gin.Context) {
	access, ok := meetingAccess(ctx)
	if !ok {
		return
	}
	id, ok := idParam(ctx, "expenseId")
	if !ok {
		return
	}

	if err := h.svc.DeleteExpense(ctx.Request.Context(), access, id); err != nil {
		switch {
		case errors.Is(err, service.ErrExpenseNotFound):
			response.RenderErr(ctx, response.ErrNotFound("expense", "ID", id))
		case errors.Is(err, service.ErrNotExpenseCreator):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		default:
			err = fmt.Errorf("v1.HandleDeleteExpense -> h.svc.DeleteExpense -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.Status(http.StatusNoContent)
}
