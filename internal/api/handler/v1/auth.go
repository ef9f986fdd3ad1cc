package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/meetup-api/internal/api/handler/v1/request"
	"github.com/vietanh2810/meetup-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/meetup-api/internal/api/middleware"
	"github.com/vietanh2810/meetup-api/internal/config"
	"github.com/vietanh2810/meetup-api/internal/domain"
	"github.com/vietanh2810/meetup-api/internal/service"
)

type AuthService interface {
	Register(ctx context.Context, user domain.User) (domain.User, error)
	Login(ctx context.Context, email, password string) (domain.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	Logout(ctx context.Context, refreshToken string) error
	ChangePassword(ctx context.Context, userID uint, current, next string) error
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password string) error
}

type AuthHandler struct {
	conf *config.APIConfig
	svc  AuthService
}

func NewAuthHandler(conf *config.APIConfig, svc AuthService) *AuthHandler {
	return &AuthHandler{
		conf: conf,
		svc:  svc,
	}
}

func (h *AuthHandler) setTokenCookie(ctx *gin.Context, name, token string) {
	maxAge := int(h.conf.AccessTokenTTL.Seconds())
	if name == middleware.RefreshTokenCookie {
		maxAge = int(h.conf.RefreshTokenTTL.Seconds())
	}

	middleware.SetCookie(ctx, name, token, maxAge, h.conf.IsProduction())
}

// HandleRegister godoc
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Param        request  body  request.RegisterRequest  true  "request body"
// @Success      201
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /auth/register [post]
func (h *AuthHandler) HandleRegister(ctx *gin.Context) {
	var req request.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	_, err := h.svc.Register(ctx.Request.Context(), domain.User{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		LastName: req.LastName,
	})
	if err != nil {
		if errors.Is(err, service.ErrUserEmailExists) {
			response.RenderErr(ctx, response.ErrBadRequest(errors.New("User already exists")))

			return
		}

		err = fmt.Errorf("v1.HandleRegister -> h.svc.Register -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.Status(http.StatusCreated)
}

// HandleLogin godoc
// @Summary      Login a user
// @Description  Sets the accessToken and refreshToken cookies.
// @Tags         auth
// @Accept       json
// @Param        request  body  request.LoginRequest  true  "request body"
// @Success      200
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /auth/login [post]
func (h *AuthHandler) HandleLogin(ctx *gin.Context) {
	var req request.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	tokens, err := h.svc.Login(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) || errors.Is(err, service.ErrWrongPassword) {
			response.RenderErr(ctx, response.ErrWrongCredentials(err))

			return
		}

		err = fmt.Errorf("v1.HandleLogin -> h.svc.Login -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	h.setTokenCookie(ctx, middleware.AccessTokenCookie, tokens.AccessToken)
	h.setTokenCookie(ctx, middleware.RefreshTokenCookie, tokens.RefreshToken)

	ctx.Status(http.StatusOK)
}

// HandleRefreshToken godoc
// @Summary      Issue a new access token
// @Description  Reads the refreshToken cookie and sets a fresh accessToken cookie.
// @Tags         auth
// @Success      200
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /auth/token [get]
func (h *AuthHandler) HandleRefreshToken(ctx *gin.Context) {
	refresh, err := ctx.Cookie(middleware.RefreshTokenCookie)
	if err != nil || refresh == "" {
		response.RenderErr(ctx, response.ErrUnauthorized())

		return
	}

	access, err := h.svc.Refresh(ctx.Request.Context(), refresh)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRefreshToken) {
			response.RenderErr(ctx, response.ErrInvalidToken(err, false))

			return
		}

		err = fmt.Errorf("v1.HandleRefreshToken -> h.svc.Refresh -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	h.setTokenCookie(ctx, middleware.AccessTokenCookie, access)

	ctx.Status(http.StatusOK)
}

// HandleLogout godoc
// @Summary      Logout
// @Description  Revokes the refresh token and clears both token cookies.
// @Tags         auth
// @Success      200
// @Failure      500      {object}   response.Err
// @Router       /auth/logout [post]
func (h *AuthHandler) HandleLogout(ctx *gin.Context) {
	refresh, _ := ctx.Cookie(middleware.RefreshTokenCookie)

	if err := h.svc.Logout(ctx.Request.Context(), refresh); err != nil {
		err = fmt.Errorf("v1.HandleLogout -> h.svc.Logout -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	middleware.ClearCookie(ctx, middleware.AccessTokenCookie, h.conf.IsProduction())
	middleware.ClearCookie(ctx, middleware.RefreshTokenCookie, h.conf.IsProduction())

	ctx.Status(http.StatusOK)
}

// HandleChangePassword godoc
// @Summary      Change the caller's password
// @Tags         auth
// @Accept       json
// @Param        request  body  request.ChangePasswordRequest  true  "request body"
// @Success      200
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /auth/changepassword [post]
func (h *AuthHandler) HandleChangePassword(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req request.ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	err := h.svc.ChangePassword(ctx.Request.Context(), userID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		if errors.Is(err, service.ErrWrongPassword) {
			response.RenderErr(ctx, response.ErrBadRequest(err))

			return
		}
		if errors.Is(err, service.ErrUserNotFound) {
			response.RenderErr(ctx, response.ErrUnauthorized())

			return
		}

		err = fmt.Errorf("v1.HandleChangePassword -> h.svc.ChangePassword -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.Status(http.StatusOK)
}

// HandleRequestPasswordReset godoc
// @Summary      Email a password reset link
// @Description  Always answers 200 so the endpoint does not reveal which accounts exist.
// @Tags         auth
// @Accept       json
// @Param        request  body  request.RequestPasswordResetRequest  true  "request body"
// @Success      200
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /auth/requestpasswordreset [post]
func (h *AuthHandler) HandleRequestPasswordReset(ctx *gin.Context) {
	var req request.RequestPasswordResetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := h.svc.RequestPasswordReset(ctx.Request.Context(), req.Email); err != nil {
		err = fmt.Errorf("v1.HandleRequestPasswordReset -> h.svc.RequestPasswordReset -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.Status(http.StatusOK)
}

// HandleResetPassword godoc
// @Summary      Set a new password with a reset token
// @Tags         auth
// @Accept       json
// @Param        request  body  request.ResetPasswordRequest  true  "request body"
// @Success      200
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /auth/resetpassword [post]
func (h *AuthHandler) HandleResetPassword(ctx *gin.Context) {
	var req request.ResetPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := h.svc.ResetPassword(ctx.Request.Context(), req.Token, req.Password); err != nil {
		if errors.Is(err, service.ErrInvalidResetToken) {
			response.RenderErr(ctx, response.ErrPermissionDenied(err))

			return
		}

		err = fmt.Errorf("v1.HandleResetPassword -> h.svc.ResetPassword -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.Status(http.StatusOK)
}
