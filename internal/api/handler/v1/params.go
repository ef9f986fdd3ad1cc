package v1

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/meetup-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/meetup-api/internal/api/middleware"
)

var (
	errInvalidID   = errors.New("id must be a positive integer")
	errInvalidPage = errors.New("page must be a positive integer")
)

// idParam parses a positive path id. It renders 400 and returns false otherwise.
func idParam(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil || id == 0 {
		response.RenderErr(ctx, response.ErrBadRequest(errInvalidID))

		return 0, false
	}

	return uint(id), true
}

// pageQuery reads ?page=, defaulting to 1 when it is absent.
func pageQuery(ctx *gin.Context) (int, bool) {
	raw, ok := ctx.GetQuery("page")
	if !ok {
		return 1, true
	}

	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		response.RenderErr(ctx, response.ErrBadRequest(errInvalidPage))

		return 0, false
	}

	return page, true
}

// currentUserID returns the authenticated caller. Routes without the
// authenticator get a 401.
func currentUserID(ctx *gin.Context) (uint, bool) {
	id, ok := middleware.UserID(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrUnauthorized())

		return 0, false
	}

	return id, true
}
