package handlers

import (
	"net/http"

	"turf_analytics_backend/internal/services"
	"turf_analytics_backend/internal/stats"
	"turf_analytics_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// BookingHandler exposes the raw booking collection with the engine's
// sorting applied, for the dashboard's table view.
type BookingHandler struct {
	statsService services.StatsService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(ss services.StatsService) *BookingHandler {
	return &BookingHandler{statsService: ss}
}

// GetBookings returns the financial year's bookings ordered by sort_by /
// direction. Direction defaults to descending, matching the dashboard's
// column-header convention.
func (h *BookingHandler) GetBookings(c *gin.Context) {
	fy, ok := financialYearParam(c)
	if !ok {
		return
	}
	sortBy := c.DefaultQuery("sort_by", "slot_date")
	direction := c.DefaultQuery("direction", stats.SortDescending)

	records, err := h.statsService.SortBookings(c.Request.Context(), fy, sortBy, direction)
	if err != nil {
		respondStatsError(c, err, "GetBookings: Error from statsService.SortBookings")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"bookings":       records,
		"total":          len(records),
		"sort_by":        sortBy,
		"sort_direction": direction,
	})
}

// GetNextSortDirection reports the direction a column header click should
// switch to. Kept server-side so table views across the dashboard stay
// consistent.
func (h *BookingHandler) GetNextSortDirection(c *gin.Context) {
	currentField := c.Query("current_field")
	newField := c.Query("new_field")
	currentDirection := c.DefaultQuery("current_direction", stats.SortDescending)

	if utils.IsEmpty(newField) {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "new_field query parameter is required.", ""))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"field":     newField,
		"direction": stats.NextSortDirection(currentField, newField, currentDirection),
	})
}
