package app

import (
	"car-rental/pkg/auth"
	"car-rental/pkg/linktoken"
	"car-rental/pkg/logger"
	"car-rental/pkg/model"
	middleware "car-rental/service-api/internal/app/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// maxMultipartMemory bounds the part of a multipart form kept in memory
const maxMultipartMemory = 8 << 20

func (a *AppServer) RegisterHandlers() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	handler := gin.New()
	handler.MaxMultipartMemory = maxMultipartMemory

	// middlewares
	logger.Debugf("allowing CORS origins: %v", a.config.CORS.AllowedOrigins)
	logger.Debugf("allowing CORS methods: %v", a.config.CORS.AllowedMethods)
	logger.Debugf("allowing CORS headers: %v", a.config.CORS.AllowedHeaders)

	// cors middleware
	corsConfig := cors.Config{
		AllowMethods:     a.config.CORS.AllowedMethods,
		AllowHeaders:     a.config.CORS.AllowedHeaders,
		ExposeHeaders:    []string{"Retry-After", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		AllowOriginFunc:  a.allowedOrigin,
	}
	handler.Use(cors.New(corsConfig))
	handler.Use(gin.Logger())
	handler.Use(gin.Recovery())

	handler.OPTIONS("/*path", func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && a.allowedOrigin(origin) {
			c.Header("Access-Control-Allow-Origin", origin)
		}
		c.Header("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type,Authorization")
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Max-Age", "43200")
		c.Status(200)
	})

	// create JWT middleware
	authMiddleware := auth.AuthMiddleware(a.jwtManager, a.sessions)
	adminMiddleware := auth.RequireRole(model.RoleAdmin)

	// health check
	handler.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy"})
	})

	// api routes
	api := handler.Group("/api/v1")

	// public routes (no authentication required)
	{
		api.POST("/requests", middleware.RateLimit(a.requestLimiter), a.requestController.SubmitRequest)
		api.POST("/admin/login", a.controller.Login)
	}

	// admin-only routes (authentication + admin role required)
	adminRoutes := api.Group("/admin")
	adminRoutes.Use(authMiddleware)
	adminRoutes.Use(adminMiddleware)
	{
		adminRoutes.GET("/me", a.controller.GetProfile)
		adminRoutes.POST("/logout", a.controller.Logout)
		adminRoutes.GET("/requests", a.requestController.ListRequests)

		adminRoutes.POST("/rentals", a.rentalController.CreateRental)
		adminRoutes.GET("/rentals", a.rentalController.ListRentals)
		adminRoutes.GET("/rentals/:folderId", a.rentalController.GetRental)
		adminRoutes.GET("/files/*path", a.rentalController.GetFile)

		adminRoutes.GET("/events", a.eventController.Stream)
	}

	// capability link routes, authorized by the t query parameter
	linkRoutes := api.Group("/links")
	{
		links := []struct {
			path   string
			step   linktoken.Step
			submit gin.HandlerFunc
		}{
			{"/customer-info", linktoken.StepCustomerInfo, a.linkController.SubmitCustomerInfo},
			{"/pickup-instructions", linktoken.StepPickupInstructions, a.linkController.SubmitPickupInstructions},
			{"/dropoff-instructions", linktoken.StepDropoffInstructions, a.linkController.SubmitDropoffInstructions},
			{"/mileage-out", linktoken.StepMileageOut, a.linkController.SubmitMileageOut},
			{"/mileage-in", linktoken.StepMileageIn, a.linkController.SubmitMileageIn},
			{"/signed-contract", linktoken.StepSignedContract, a.linkController.SubmitSignedContract},
		}
		for _, l := range links {
			requireLink := middleware.RequireLink(a.sequencer, l.step)
			linkRoutes.GET(l.path, requireLink, a.linkController.Preview)
			linkRoutes.POST(l.path, requireLink, l.submit)
		}
	}

	return handler
}

func (a *AppServer) allowedOrigin(origin string) bool {
	for _, allowedOrigin := range a.config.CORS.AllowedOrigins {
		if origin == allowedOrigin || allowedOrigin == "*" {
			return true
		}
	}
	return false
}
