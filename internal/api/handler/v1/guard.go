package v1

import (
	"context"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/meetup-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/meetup-api/internal/domain"
	"github.com/vietanh2810/meetup-api/internal/service"
)

const ctxMeetingAccessKey = "meetingAccess"

type MeetingAuthorizer interface {
	AuthorizeParticipant(ctx context.Context, meetingID, userID uint) (domain.MeetingAccess, error)
	AuthorizeCreator(ctx context.Context, meetingID, userID uint) (domain.MeetingAccess, error)
}

// MeetingGuard checks the caller's relationship to the meeting in the :id
// path parameter and stores the result for the handlers that follow.
type MeetingGuard struct {
	svc MeetingAuthorizer
}

func NewMeetingGuard(svc MeetingAuthorizer) *MeetingGuard {
	return &MeetingGuard{
		svc: svc,
	}
}

// RequireParticipant lets through any user with a participation row.
func (g *MeetingGuard) RequireParticipant() gin.HandlerFunc {
	return g.require(g.svc.AuthorizeParticipant)
}

func (g *MeetingGuard) RequireCreator() gin.HandlerFunc {
	return g.require(g.svc.AuthorizeCreator)
}

func (g *MeetingGuard) require(authorize func(ctx context.Context, meetingID, userID uint) (domain.MeetingAccess, error)) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userID, ok := currentUserID(ctx)
		if !ok {
			return
		}
		meetingID, ok := idParam(ctx, "id")
		if !ok {
			return
		}

		access, err := authorize(ctx.Request.Context(), meetingID, userID)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrMeetingNotFound), errors.Is(err, service.ErrNotParticipant):
				response.RenderErr(ctx, response.ErrNotFound("meeting", "ID", meetingID))
			case errors.Is(err, service.ErrNotMeetingCreator):
				response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrNotMeetingCreator))
			default:
				err = fmt.Errorf("v1.MeetingGuard -> authorize -> %w", err)
				response.RenderErr(ctx, response.ErrInternalServerError(err))
			}

			return
		}

		ctx.Set(ctxMeetingAccessKey, access)
		ctx.Next()
	}
}

// meetingAccess returns what the guard stored. Handlers mounted without a
// guard get a 500, since that is a routing mistake.
func meetingAccess(ctx *gin.Context) (domain.MeetingAccess, bool) {
	v, ok := ctx.Get(ctxMeetingAccessKey)
	access, valid := v.(domain.MeetingAccess)
	if !ok || !valid {
		response.RenderErr(ctx, response.ErrInternalServerError(errors.New("meeting access missing from context")))

		return domain.MeetingAccess{}, false
	}

	return access, true
}
