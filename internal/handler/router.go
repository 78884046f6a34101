package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"dealspot/internal/domain/user"
	"dealspot/internal/handler/api"
	"dealspot/internal/handler/middleware"
	"dealspot/internal/pkg/config"
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
	dealHandler *api.DealHandler,
	redemptionHandler *api.RedemptionHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, authHandler, dealHandler, redemptionHandler, authMiddleware)
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
	dealHandler *api.DealHandler,
	redemptionHandler *api.RedemptionHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	vendorOnly := authMiddleware.RequireRole(user.RoleVendor, user.RoleAdmin)

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
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

		deals := apiGroup.Group("/deals")
		{
			addRoutes(deals, []route{
				{Method: http.MethodGet, Path: "", Handler: dealHandler.ListDeals},
				{Method: http.MethodGet, Path: "/:id", Handler: dealHandler.GetDeal},
			})

			dealsAuth := deals.Group("")
			dealsAuth.Use(authMiddleware.RequireAuth())
			addRoutes(dealsAuth, []route{
				{Method: http.MethodGet, Path: "/:id/eligibility", Handler: redemptionHandler.PreviewEligibility},
				{Method: http.MethodPost, Path: "", Handler: dealHandler.CreateDeal, Mw: []gin.HandlerFunc{vendorOnly}},
				{Method: http.MethodPatch, Path: "/:id", Handler: dealHandler.UpdateDeal, Mw: []gin.HandlerFunc{vendorOnly}},
				{Method: http.MethodDelete, Path: "/:id", Handler: dealHandler.DeleteDeal, Mw: []gin.HandlerFunc{vendorOnly}},
				{Method: http.MethodPost, Path: "/:id/publish", Handler: dealHandler.PublishDeal, Mw: []gin.HandlerFunc{vendorOnly}},
				{Method: http.MethodPost, Path: "/:id/pause", Handler: dealHandler.PauseDeal, Mw: []gin.HandlerFunc{vendorOnly}},
				{Method: http.MethodPost, Path: "/:id/expire", Handler: dealHandler.ExpireDeal, Mw: []gin.HandlerFunc{vendorOnly}},
			})
		}

		redemptions := apiGroup.Group("/redemptions")
		redemptions.Use(authMiddleware.RequireAuth())
		{
			addRoutes(redemptions, []route{
				{Method: http.MethodPost, Path: "", Handler: redemptionHandler.Redeem},
				{Method: http.MethodGet, Path: "", Handler: redemptionHandler.ListMyRedemptions},
				{Method: http.MethodGet, Path: "/:id", Handler: redemptionHandler.GetRedemption},
				{Method: http.MethodPost, Path: "/:id/void", Handler: redemptionHandler.VoidRedemption, Mw: []gin.HandlerFunc{vendorOnly}},
			})
		}

		vendors := apiGroup.Group("/vendors/me")
		vendors.Use(authMiddleware.RequireAuth(), vendorOnly)
		{
			addRoutes(vendors, []route{
				{Method: http.MethodGet, Path: "/deals", Handler: dealHandler.ListMyDeals},
				{Method: http.MethodGet, Path: "/redemptions", Handler: redemptionHandler.ListVendorRedemptions},
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
