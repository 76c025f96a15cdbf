package router

import (
	"turf_analytics_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupStatsRoutes sets up the statistics routes.
func SetupStatsRoutes(apiGroup *gin.RouterGroup, statsHandler *handlers.StatsHandler) {
	statsRoutes := apiGroup.Group("/stats")
	{
		statsRoutes.GET("/summary", statsHandler.GetSummary)
		statsRoutes.GET("/category", statsHandler.GetCategoryStats)
		statsRoutes.GET("/categories", statsHandler.GetAllCategoryStats)
		statsRoutes.GET("/payments/monthly", statsHandler.GetMonthlyPayments)
		statsRoutes.GET("/payments/daily", statsHandler.GetDailyPaymentsByMode)
		statsRoutes.DELETE("/cache", statsHandler.ClearCache)
	}
}

// SetupBookingRoutes sets up the booking listing routes.
func SetupBookingRoutes(apiGroup *gin.RouterGroup, bookingHandler *handlers.BookingHandler) {
	bookingRoutes := apiGroup.Group("/bookings")
	{
		bookingRoutes.GET("", bookingHandler.GetBookings)
		bookingRoutes.GET("/sort-direction", bookingHandler.GetNextSortDirection)
	}
}
