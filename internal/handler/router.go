package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"slotmarket/internal/domain/user"
	"slotmarket/internal/handler/api"
	"slotmarket/internal/handler/middleware"
	"slotmarket/internal/pkg/config"
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
	bookingHandler *api.BookingHandler,
	serviceHandler *api.ServiceHandler,
	slotHandler *api.SlotHandler,
	rateHandler *api.RateHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, authHandler, bookingHandler, serviceHandler, slotHandler, rateHandler, authMiddleware)
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
	bookingHandler *api.BookingHandler,
	serviceHandler *api.ServiceHandler,
	slotHandler *api.SlotHandler,
	rateHandler *api.RateHandler,
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
				{Method: http.MethodPost, Path: "/login", Handler: authHandler.Login},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "/logout", Handler: authHandler.Logout},
				{Method: http.MethodGet, Path: "/me", Handler: authHandler.Me},
			})
		}

		services := apiGroup.Group("/services")
		{
			addRoutes(services, []route{
				{Method: http.MethodGet, Path: "", Handler: serviceHandler.List},
				{Method: http.MethodGet, Path: "/:id", Handler: serviceHandler.Get},
				{Method: http.MethodGet, Path: "/:id/avg-rating", Handler: serviceHandler.AvgRating},
				{Method: http.MethodGet, Path: "/:id/rates", Handler: serviceHandler.ListRates},
				{Method: http.MethodGet, Path: "/:id/slots", Handler: serviceHandler.ListSlots},
			})

			managed := services.Group("")
			managed.Use(authMiddleware.RequireAuth(), authMiddleware.RequireAction(user.ActionManageServices))
			addRoutes(managed, []route{
				{Method: http.MethodPost, Path: "", Handler: serviceHandler.Create},
				{Method: http.MethodPatch, Path: "/:id", Handler: serviceHandler.Update},
				{Method: http.MethodDelete, Path: "/:id", Handler: serviceHandler.Delete},
			})
		}

		slots := apiGroup.Group("/slots")
		slots.Use(authMiddleware.RequireAuth(), authMiddleware.RequireAction(user.ActionManageSlots))
		{
			addRoutes(slots, []route{
				{Method: http.MethodPost, Path: "", Handler: slotHandler.Create},
				{Method: http.MethodGet, Path: "/:id", Handler: slotHandler.Get},
				{Method: http.MethodPatch, Path: "/:id", Handler: slotHandler.Update},
				{Method: http.MethodDelete, Path: "/:id", Handler: slotHandler.Delete},
			})
		}

		bookings := apiGroup.Group("/bookings")
		{
			addRoutes(bookings, []route{
				{Method: http.MethodGet, Path: "/check-slot", Handler: bookingHandler.CheckSlot},
			})

			authed := bookings.Group("")
			authed.Use(authMiddleware.RequireAuth())
			addRoutes(authed, []route{
				{Method: http.MethodPost, Path: "", Handler: bookingHandler.Create},
				{Method: http.MethodGet, Path: "", Handler: bookingHandler.List},
				{Method: http.MethodGet, Path: "/:id", Handler: bookingHandler.Get},
				{Method: http.MethodPatch, Path: "/:id", Handler: bookingHandler.Update},
				{Method: http.MethodPut, Path: "/:id", Handler: bookingHandler.Update},
				{Method: http.MethodDelete, Path: "/:id", Handler: bookingHandler.Delete},
			})
		}

		rates := apiGroup.Group("/rates")
		rates.Use(authMiddleware.RequireAuth())
		{
			addRoutes(rates, []route{
				{Method: http.MethodPost, Path: "", Handler: rateHandler.Create},
				{Method: http.MethodPatch, Path: "/:id", Handler: rateHandler.Update},
				{Method: http.MethodDelete, Path: "/:id", Handler: rateHandler.Delete},
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
