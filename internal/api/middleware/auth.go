package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/meetup-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/meetup-api/internal/pkg/jwthelper"
)

const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"

	ctxUserIDKey = "userID"
)

type Authenticator struct {
	key []byte
}

func NewAuthenticator(signingKey string) *Authenticator {
	return &Authenticator{
		key: []byte(signingKey),
	}
}

// VerifyJWT reads the access token cookie and stores the user id in the
// request context. A missing cookie is 401, an unusable token 403.
func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token, err := ctx.Cookie(AccessTokenCookie)
		if err != nil || token == "" {
			response.RenderErr(ctx, response.ErrUnauthorized())

			return
		}

		userID, err := jwthelper.ParseToken(a.key, token)
		if err != nil {
			response.RenderErr(ctx, response.ErrInvalidToken(err, errors.Is(err, jwthelper.ErrTokenExpired)))

			return
		}

		ctx.Set(ctxUserIDKey, userID)
		ctx.Next()
	}
}

// UserID returns the id stored by VerifyJWT.
func UserID(ctx *gin.Context) (uint, bool) {
	v, ok := ctx.Get(ctxUserIDKey)
	if !ok {
		return 0, false
	}

	id, ok := v.(uint)

	return id, ok && id != 0
}
