package middleware

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vietanh2810/meetup-api/internal/api/handler/v1/response"
)

const (
	CSRFCookie = "_csrf"
	CSRFHeader = "X-CSRF-Token"
)

var errCSRFMismatch = errors.New("invalid csrf token")

// CSRF implements the double-submit cookie pattern: the token handed out by
// IssueToken is stored in a cookie and must be echoed in CSRFHeader on every
// state-changing request.
type CSRF struct {
	production bool
}

func NewCSRF(production bool) *CSRF {
	return &CSRF{
		production: production,
	}
}

func (c *CSRF) IssueToken(ctx *gin.Context) string {
	token := uuid.NewString()
	SetCookie(ctx, CSRFCookie, token, 0, c.production)

	return token
}

func (c *CSRF) Protect() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		switch ctx.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			ctx.Next()

			return
		}

		cookie, err := ctx.Cookie(CSRFCookie)
		header := ctx.GetHeader(CSRFHeader)
		if err != nil || cookie == "" || subtle.ConstantTimeCompare([]byte(cookie), []byte(header)) != 1 {
			response.RenderErr(ctx, response.ErrPermissionDenied(errCSRFMismatch))

			return
		}

		ctx.Next()
	}
}

// SetCookie writes an httpOnly cookie at "/". Production cookies are sent
// cross-site, so they also need SameSite=None and Secure.
func SetCookie(ctx *gin.Context, name, value string, maxAge int, production bool) {
	if production {
		ctx.SetSameSite(http.SameSiteNoneMode)
	} else {
		ctx.SetSameSite(http.SameSiteLaxMode)
	}

	ctx.SetCookie(name, value, maxAge, "/", "", production, true)
}

func ClearCookie(ctx *gin.Context, name string, production bool) {
	SetCookie(ctx, name, "", -1, production)
}
