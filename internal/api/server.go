package api

import (
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/vietanh2810/meetup-api/docs"
	v1 "github.com/vietanh2810/meetup-api/internal/api/handler/v1"
	"github.com/vietanh2810/meetup-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/meetup-api/internal/api/middleware"
	"github.com/vietanh2810/meetup-api/internal/config"
	"github.com/vietanh2810/meetup-api/internal/mailer"
	"github.com/vietanh2810/meetup-api/internal/repository"
	"github.com/vietanh2810/meetup-api/internal/repository/dao"
	"github.com/vietanh2810/meetup-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine

	redis *redis.Client
	csrf  *middleware.CSRF
}

type handlers struct {
	auth         *v1.AuthHandler
	user         *v1.UserHandler
	meeting      *v1.MeetingHandler
	announcement *v1.AnnouncementHandler
	expense      *v1.ExpenseHandler
	activity     *v1.ActivityHandler
	csrf         *v1.CSRFHandler
	guard        *v1.MeetingGuard
}

// NewServer wires every layer on top of db. rdb may be nil, in which case
// refresh tokens live in Postgres and rate limiting is off.
func NewServer(conf *config.AppConfig, db *gorm.DB, rdb *redis.Client) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()
	engine.HandleMethodNotAllowed = true

	s := &Server{
		Config: conf,
		Router: engine,
		redis:  rdb,
		csrf:   middleware.NewCSRF(conf.API.IsProduction()),
	}

	s.MountMiddlewares()

	m := mailer.New(conf.API, conf.Mail)
	meetingSvc := s.initMeetingService(db, m)

	s.MountHandlers(handlers{
		auth:         s.initAuthHandler(db, m),
		user:         s.initUserHandler(db),
		meeting:      v1.NewMeetingHandler(meetingSvc),
		announcement: s.initAnnouncementHandler(db),
		expense:      s.initExpenseHandler(db),
		activity:     s.initActivityHandler(db),
		csrf:         v1.NewCSRFHandler(s.csrf),
		guard:        v1.NewMeetingGuard(meetingSvc),
	})

	return s
}

func (s *Server) tokenRepository(db *gorm.DB) service.TokenRepository {
	if s.redis != nil {
		return repository.NewRedisTokenRepository(s.redis)
	}

	return repository.NewTokenRepository(dao.NewTokenDAO(db))
}

func (s *Server) initAuthHandler(db *gorm.DB, m mailer.Mailer) *v1.AuthHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewAuthService(s.Config.API, repo, s.tokenRepository(db), m)
	handler := v1.NewAuthHandler(s.Config.API, svc)

	return handler
}

func (s *Server) initUserHandler(db *gorm.DB) *v1.UserHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewUserService(repo)
	handler := v1.NewUserHandler(svc)

	return handler
}

func (s *Server) initMeetingService(db *gorm.DB, m mailer.Mailer) *service.MeetingService {
	meetingDAO := dao.NewMeetingDAO(db)
	repo := repository.NewMeetingRepository(meetingDAO)

	return service.NewMeetingService(repo, m)
}

func (s *Server) initAnnouncementHandler(db *gorm.DB) *v1.AnnouncementHandler {
	announcementDAO := dao.NewAnnouncementDAO(db)
	repo := repository.NewAnnouncementRepository(announcementDAO)
	svc := service.NewAnnouncementService(repo)
	handler := v1.NewAnnouncementHandler(svc)

	return handler
}

func (s *Server) initExpenseHandler(db *gorm.DB) *v1.ExpenseHandler {
	expenseDAO := dao.NewExpenseDAO(db)
	repo := repository.NewExpenseRepository(expenseDAO)
	svc := service.NewExpenseService(repo)
	handler := v1.NewExpenseHandler(svc)

	return handler
}

func (s *Server) initActivityHandler(db *gorm.DB) *v1.ActivityHandler {
	activityDAO := dao.NewActivityDAO(db)
	repo := repository.NewActivityRepository(activityDAO)
	svc := service.NewActivityService(repo)
	handler := v1.NewActivityHandler(svc)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))

	if s.redis != nil && s.Config.API.RateLimitPerMinute > 0 {
		s.Router.Use(middleware.NewRateLimiter(s.redis, s.Config.API.RateLimitPerMinute, time.Minute).Limit())
	}
	if s.Config.API.CSRFEnabled {
		s.Router.Use(s.csrf.Protect())
	}

	s.Router.NoRoute(func(ctx *gin.Context) {
		response.RenderErr(ctx, response.ErrNotFound("route", "path", ctx.Request.URL.Path))
	})
	s.Router.NoMethod(func(ctx *gin.Context) {
		response.RenderErr(ctx, response.ErrMethodNotAllowed())
	})
}

func (s *Server) MountHandlers(h handlers) {
	const basePath = "/"

	authenticate := middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT()

	s.Router.GET("/", v1.HandleHealthcheck)
	s.Router.GET("/csrf", h.csrf.HandleGetToken)

	auth := s.Router.Group("/auth")
	{
		auth.GET("/token", h.auth.HandleRefreshToken)
		auth.POST("/login", h.auth.HandleLogin)
		auth.POST("/logout", h.auth.HandleLogout)
		auth.POST("/register", h.auth.HandleRegister)
		auth.POST("/changepassword", authenticate, h.auth.HandleChangePassword)
		auth.POST("/requestpasswordreset", h.auth.HandleRequestPasswordReset)
		auth.POST("/resetpassword", h.auth.HandleResetPassword)
	}

	users := s.Router.Group("/user", authenticate)
	{
		users.GET("/self", h.user.HandleGetSelf)
		users.GET("/selectOptions", h.user.HandleSelectOptions)
	}

	meetings := s.Router.Group("/meeting", authenticate)
	{
		meetings.GET("/invitations", h.meeting.HandleGetInvitations)
		meetings.GET("", h.meeting.HandleGetMeetings)
		meetings.POST("", h.meeting.HandleCreateMeeting)
	}

	participant := s.Router.Group("/meeting/:id", authenticate, h.guard.RequireParticipant())
	{
		participant.GET("", h.meeting.HandleGetMeeting)
		participant.POST("/vote", h.meeting.HandleVote)
		participant.POST("/status", h.meeting.HandleSetStatus)
		participant.GET("/invitationOptions", h.user.HandleInvitationOptions)

		participant.GET("/announcements", h.announcement.HandleGetAnnouncements)
		participant.POST("/announcements", h.announcement.HandleCreateAnnouncement)
		participant.PATCH("/announcements/:announcementId", h.announcement.HandleUpdateAnnouncement)
		participant.DELETE("/announcements/:announcementId", h.announcement.HandleDeleteAnnouncement)

		participant.GET("/expenses", h.expense.HandleGetExpenses)
		participant.POST("/expenses", h.expense.HandleCreateExpense)
		participant.PATCH("/expenses/:expenseId", h.expense.HandleUpdateExpense)
		participant.DELETE("/expenses/:expenseId", h.expense.HandleDeleteExpense)

		participant.GET("/activities", h.activity.HandleGetActivities)
	}

	creator := s.Router.Group("/meeting/:id", authenticate, h.guard.RequireCreator())
	{
		creator.PATCH("", h.meeting.HandleUpdateMeeting)
		creator.POST("/invite", h.meeting.HandleInvite)

		creator.POST("/activities", h.activity.HandleCreateActivity)
		creator.PATCH("/activities/:activityId", h.activity.HandleUpdateActivity)
		creator.DELETE("/activities/:activityId", h.activity.HandleDeleteActivity)
	}

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Meetup API"
	docs.SwaggerInfo.Description = "Plan meetings, vote on dates and share announcements, expenses and activities."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
