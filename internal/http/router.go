package httpapi

import (
	"net/http"
	"time"

	"backend/internal/config"
	"backend/internal/http/handlers"
	"backend/internal/http/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter wires middleware and all API routes.
func NewRouter(env config.Env) *gin.Engine {
	handlers.SetJWTSecret(env.JWTSecret)

	r := gin.New()
	r.SetTrustedProxies(nil)

	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Disposition", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route tidak ditemukan"})
	})

	r.GET("/health", handlers.Health)
	r.GET("/health/db", handlers.DBCheck)

	api := r.Group("/api")
	{
		// publik
		api.POST("/auth/register", handlers.Register)
		api.POST("/auth/login", handlers.Login)

		api.GET("/languages", handlers.GetLanguages)
		api.GET("/languages/:code/translations", handlers.GetTranslations)
		api.GET("/locations", handlers.GetLocations)
		api.GET("/locations/:id", handlers.GetLocation)
		api.GET("/routes", handlers.GetRoutes)
		api.GET("/routes/:id", handlers.GetRoute)
		api.GET("/routes/:id/schedules", handlers.GetRouteSchedules)
		api.GET("/routes/:id/seasonal-prices", handlers.GetRouteSeasonalPrices)
		api.POST("/routes/search", handlers.SearchRoutes)
		api.GET("/fastboats", handlers.GetFastboats)
		api.GET("/fastboats/:id", handlers.GetFastboat)
		api.GET("/schedules/:id", handlers.GetSchedule)
		api.GET("/schedules/:id/activity", handlers.GetScheduleActivity)
		api.GET("/daily-schedules/:id", handlers.GetDailySchedule)
		api.GET("/settings", handlers.GetPublicSettings)

		// perlu login
		auth := api.Group("")
		auth.Use(middleware.RequireAuth(handlers.JWTSecret()))
		{
			auth.GET("/auth/me", handlers.Me)

			auth.POST("/bookings", handlers.CreateBooking)
			auth.GET("/bookings", handlers.GetMyBookings)
			auth.GET("/bookings/by-reference/:ref", handlers.GetBookingByReference)
			auth.GET("/bookings/:id", handlers.GetBooking)
			auth.POST("/bookings/:id/cancel", handlers.CancelBooking)
			auth.GET("/bookings/:id/eticket", handlers.GetBookingETicket)
			auth.GET("/bookings/:id/payments", handlers.GetBookingPayments)

			auth.POST("/payments", handlers.CreatePayment)
			auth.GET("/payments/by-reference/:ref", handlers.GetPaymentByReference)
			auth.GET("/payments/:id", handlers.GetPayment)
		}

		// admin
		admin := api.Group("/admin")
		admin.Use(middleware.RequireAuth(handlers.JWTSecret()), middleware.RequireAdmin())
		{
			admin.POST("/languages", handlers.CreateLanguage)
			admin.PUT("/languages/:code/translations", handlers.UpsertTranslation)

			admin.POST("/locations", handlers.CreateLocation)
			admin.PUT("/locations/:id/active", handlers.SetLocationActive)

			admin.POST("/routes", handlers.CreateRoute)
			admin.POST("/routes/:id/seasonal-prices", handlers.CreateSeasonalPrice)

			admin.POST("/fastboats", handlers.CreateFastboat)
			admin.PUT("/fastboats/:id/active", handlers.SetFastboatActive)

			admin.POST("/schedules", handlers.CreateSchedule)
			admin.PUT("/schedules/:id/status", handlers.SetScheduleStatus)
			admin.POST("/schedules/:id/daily-schedules", handlers.GenerateDailySchedules)
			admin.PATCH("/daily-schedules/:id", handlers.PatchDailySchedule)

			admin.POST("/bookings/expire-sweep", handlers.ExpireOverdueBookings)
			admin.POST("/payments/:id/gateway-result", handlers.ApplyGatewayResult)

			admin.GET("/reports/sales", handlers.GetSalesReport)
			admin.GET("/reports/sales.pdf", handlers.GetSalesReportPDF)

			admin.GET("/settings/:key", handlers.GetSetting)
			admin.PUT("/settings", handlers.UpsertSetting)
			admin.GET("/actions", handlers.GetAdminActions)
		}
	}

	return r
}
