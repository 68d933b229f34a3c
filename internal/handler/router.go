package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"coachly/internal/domain/user"
	"coachly/internal/handler/api"
	"coachly/internal/handler/middleware"
	"coachly/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	authHandler *api.AuthHandler,
	eventHandler *api.EventHandler,
	scheduleHandler *api.ScheduleHandler,
	ruleHandler *api.RuleHandler,
	bookingHandler *api.BookingHandler,
	negotiationHandler *api.NegotiationHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, authHandler, eventHandler, scheduleHandler, ruleHandler, bookingHandler, negotiationHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	authHandler *api.AuthHandler,
	eventHandler *api.EventHandler,
	scheduleHandler *api.ScheduleHandler,
	ruleHandler *api.RuleHandler,
	bookingHandler *api.BookingHandler,
	negotiationHandler *api.NegotiationHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/register", Handler: authHandler.Register},
				{Method: http.MethodPost, Path: "/login", Handler: authHandler.Login},
				{Method: http.MethodPost, Path: "/refresh", Handler: authHandler.Refresh},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "/logout", Handler: authHandler.Logout},
				{Method: http.MethodGet, Path: "/me", Handler: authHandler.Me},
			})
		}

		events := apiGroup.Group("/events")
		events.Use(authMiddleware.RequireAuth())
		{
			addRoutes(events, []route{
				{Method: http.MethodPost, Path: "", Handler: eventHandler.CreateEvent, Mw: []gin.HandlerFunc{authMiddleware.RequireRoleAtLeast(user.RoleCoach)}},
				{Method: http.MethodGet, Path: "/:id", Handler: eventHandler.GetEvent},
				{Method: http.MethodPatch, Path: "/:id", Handler: eventHandler.UpdateEvent, Mw: []gin.HandlerFunc{authMiddleware.RequireRoleAtLeast(user.RoleCoach)}},
				{Method: http.MethodDelete, Path: "/:id", Handler: eventHandler.DeleteEvent, Mw: []gin.HandlerFunc{authMiddleware.RequireRoleAtLeast(user.RoleCoach)}},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: eventHandler.CancelEvent, Mw: []gin.HandlerFunc{authMiddleware.RequireRoleAtLeast(user.RoleCoach)}},
				{Method: http.MethodPut, Path: "/:id/rsvp", Handler: eventHandler.SetRSVP},
			})
		}

		calendars := apiGroup.Group("/calendars")
		calendars.Use(authMiddleware.RequireAuth())
		{
			addRoutes(calendars, []route{
				{Method: http.MethodGet, Path: "/:id/events", Handler: eventHandler.ListCalendarEvents},
				{Method: http.MethodGet, Path: "/:id/free-busy", Handler: scheduleHandler.FreeBusy},
			})
		}

		coaches := apiGroup.Group("/coaches")
		{
			// Composed schedule is public; the viewer role just decides
			// how much booking detail survives redaction.
			withOptionalAuth := coaches.Group("")
			withOptionalAuth.Use(authMiddleware.OptionalAuth())
			addRoutes(withOptionalAuth, []route{
				{Method: http.MethodGet, Path: "/:coachID/schedule", Handler: scheduleHandler.ComposedSchedule},
			})

			authRequired := coaches.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "/:coachID/slot-check", Handler: scheduleHandler.CheckSlot},
			})
		}

		rules := apiGroup.Group("/rules")
		rules.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRoleAtLeast(user.RoleCoach))
		{
			addRoutes(rules, []route{
				{Method: http.MethodPut, Path: "", Handler: ruleHandler.ReplaceRules},
			})
		}

		bookings := apiGroup.Group("/bookings")
		bookings.Use(authMiddleware.RequireAuth())
		{
			addRoutes(bookings, []route{
				{Method: http.MethodPost, Path: "", Handler: bookingHandler.CreateBooking},
			})
		}

		negotiation := apiGroup.Group("/negotiation-draft")
		negotiation.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRoleAtLeast(user.RoleCoach))
		{
			addRoutes(negotiation, []route{
				{Method: http.MethodPost, Path: "", Handler: negotiationHandler.BuildDraft},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
