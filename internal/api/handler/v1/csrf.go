package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/meetup-api/internal/api/handler/v1/response"
)

type CSRFTokenIssuer interface {
	IssueToken(ctx *gin.Context) string
}

type CSRFHandler struct {
	issuer CSRFTokenIssuer
}

func NewCSRFHandler(issuer CSRFTokenIssuer) *CSRFHandler {
	return &CSRFHandler{
		issuer: issuer,
	}
}

// HandleGetToken godoc
// @Summary      Issue a CSRF token
// @Description  Sets the _csrf cookie. Send the returned token back in the X-CSRF-Token header.
// @Tags         csrf
// @Produce      json
// @Success      200  {object}  response.CSRFResponse
// @Router       /csrf [get]
func (h *CSRFHandler) HandleGetToken(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, response.CSRFResponse{
		CSRFToken: h.issuer.IssueToken(ctx),
	})
}
