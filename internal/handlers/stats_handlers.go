package handlers

import (
	"errors"
	"net/http"

	"turf_analytics_backend/internal/services"
	"turf_analytics_backend/internal/stats"
	"turf_analytics_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// StatsHandler holds the stats service.
type StatsHandler struct {
	statsService services.StatsService
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(ss services.StatsService) *StatsHandler {
	return &StatsHandler{statsService: ss}
}

// financialYearParam reads the mandatory financial_year query parameter.
func financialYearParam(c *gin.Context) (string, bool) {
	fy := c.Query("financial_year")
	if utils.IsEmpty(fy) {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "financial_year query parameter is required.", ""))
		return "", false
	}
	return fy, true
}

// respondStatsError maps service errors onto the API error envelope. An
// unknown dimension is a configuration error and gets a 400 with its own
// code; everything else is internal.
func respondStatsError(c *gin.Context, err error, context string) {
	utils.LogError(err, context)
	switch {
	case errors.Is(err, services.ErrUnknownCategory), errors.Is(err, stats.ErrUnknownDimension):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeInvalidConfig, err.Error(), err.Error()))
	case errors.Is(err, services.ErrInvalidYearFormat):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), err.Error()))
	default:
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to compute statistics.", "Internal error"))
	}
}

// GetSummary returns the whole-collection summary for a financial year.
func (h *StatsHandler) GetSummary(c *gin.Context) {
	fy, ok := financialYearParam(c)
	if !ok {
		return
	}
	summary, err := h.statsService.GetSummary(c.Request.Context(), fy)
	if err != nil {
		respondStatsError(c, err, "GetSummary: Error from statsService.GetSummary")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GetCategoryStats returns the stats of one bucket of one dimension, e.g.
// dimension=location&key=Andheri.
func (h *StatsHandler) GetCategoryStats(c *gin.Context) {
	fy, ok := financialYearParam(c)
	if !ok {
		return
	}
	dimension := c.Query("dimension")
	if utils.IsEmpty(dimension) {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "dimension query parameter is required.", ""))
		return
	}
	categoryKey := c.Query("key")

	result, err := h.statsService.GetCategoryStats(c.Request.Context(), fy, dimension, categoryKey)
	if err != nil {
		respondStatsError(c, err, "GetCategoryStats: Error from statsService.GetCategoryStats")
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetAllCategoryStats returns every bucket of every configured dimension
// in one response, computed as a concurrent batch.
func (h *StatsHandler) GetAllCategoryStats(c *gin.Context) {
	fy, ok := financialYearParam(c)
	if !ok {
		return
	}
	all, err := h.statsService.GetAllCategoryStats(c.Request.Context(), fy)
	if err != nil {
		respondStatsError(c, err, "GetAllCategoryStats: Error from statsService.GetAllCategoryStats")
		return
	}
	c.JSON(http.StatusOK, all)
}

// GetMonthlyPayments returns the fixed twelve-entry payment breakdown.
func (h *StatsHandler) GetMonthlyPayments(c *gin.Context) {
	fy, ok := financialYearParam(c)
	if !ok {
		return
	}
	entries, err := h.statsService.GetMonthlyPayments(c.Request.Context(), fy)
	if err != nil {
		respondStatsError(c, err, "GetMonthlyPayments: Error from statsService.GetMonthlyPayments")
		return
	}
	c.JSON(http.StatusOK, entries)
}

// GetDailyPaymentsByMode returns per-date canonical channel sums.
func (h *StatsHandler) GetDailyPaymentsByMode(c *gin.Context) {
	fy, ok := financialYearParam(c)
	if !ok {
		return
	}
	daily, err := h.statsService.GetDailyPaymentsByMode(c.Request.Context(), fy)
	if err != nil {
		respondStatsError(c, err, "GetDailyPaymentsByMode: Error from statsService.GetDailyPaymentsByMode")
		return
	}
	c.JSON(http.StatusOK, daily)
}

// ClearCache invalidates cached results, either one financial year
// (?financial_year=2024-25) or everything.
func (h *StatsHandler) ClearCache(c *gin.Context) {
	if fy := c.Query("financial_year"); !utils.IsEmpty(fy) {
		removed := h.statsService.ClearCacheForYear(c.Request.Context(), fy)
		c.JSON(http.StatusOK, gin.H{"cleared": removed, "financial_year": fy})
		return
	}
	h.statsService.ClearCache()
	c.JSON(http.StatusOK, gin.H{"cleared": "all"})
}
