package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"turf_analytics_backend/internal/cache"
	"turf_analytics_backend/internal/models"
	"turf_analytics_backend/internal/repositories"
	"turf_analytics_backend/internal/stats"

	"golang.org/x/sync/errgroup"
)

// --- Custom Service Errors for Stats ---
var (
	ErrUnknownCategory   = errors.New("unknown category dimension")
	ErrStatsLoadFailed   = errors.New("failed to load booking records")
	ErrInvalidYearFormat = errors.New("invalid financial year format")
)

// summaryDimension is the pseudo-dimension under which whole-collection
// summaries are cached.
const summaryDimension = "summary"

// --- StatsService Interface ---
type StatsService interface {
	GetSummary(ctx context.Context, financialYear string) (*models.StatsResult, error)
	GetCategoryStats(ctx context.Context, financialYear, dimension, categoryKey string) (*models.StatsResult, error)
	GetAllCategoryStats(ctx context.Context, financialYear string) (map[string]map[string]*models.StatsResult, error)
	GetMonthlyPayments(ctx context.Context, financialYear string) ([]models.MonthlyPaymentEntry, error)
	GetDailyPaymentsByMode(ctx context.Context, financialYear string) (map[string]models.DailyPaymentModes, error)
	SortBookings(ctx context.Context, financialYear, field, direction string) ([]models.BookingRecord, error)
	ClearCacheForYear(ctx context.Context, financialYear string) int
	ClearCache()
}

// --- statsService Implementation ---
type statsService struct {
	bookingRepo repositories.BookingRepository
	results     *cache.FIFOCache[*models.StatsResult]
	configs     map[string]models.CategoryConfig
}

// NewStatsService creates a new instance of StatsService. cacheSize bounds
// the result cache; pass 0 for the default bound.
func NewStatsService(br repositories.BookingRepository, cacheSize int) StatsService {
	return &statsService{
		bookingRepo: br,
		results:     cache.NewFIFOCache[*models.StatsResult](cacheSize),
		configs:     DefaultCategoryConfigs(),
	}
}

// DefaultCategoryConfigs is the static category configuration: one entry
// per supported dimension, each with its extra-stat calculators.
func DefaultCategoryConfigs() map[string]models.CategoryConfig {
	return map[string]models.CategoryConfig{
		stats.DimensionLocation: {
			Category: stats.DimensionLocation,
			KeyField: "location",
			ExtraStats: []models.ExtraStatCalculator{
				stats.TopCustomerExtra("Top Customer", stats.TopByRevenue),
				stats.TopWeekdayExtra("Top Weekday"),
				stats.BestSellingDateExtra("Best Selling Date"),
				stats.AverageBookingValueExtra("Average Booking Value"),
			},
		},
		stats.DimensionMonth: {
			Category: stats.DimensionMonth,
			KeyField: "slot_date",
			KeyOrder: stats.FinancialYearMonths,
			ExtraStats: []models.ExtraStatCalculator{
				stats.TopCustomerExtra("Top Customer", stats.TopByCount),
				stats.BestSellingDateExtra("Best Selling Date"),
			},
		},
		stats.DimensionSport: {
			Category: stats.DimensionSport,
			KeyField: "sport",
			ExtraStats: []models.ExtraStatCalculator{
				stats.TopCustomerExtra("Top Customer", stats.TopByRevenue),
				stats.AverageBookingValueExtra("Average Booking Value"),
			},
		},
		stats.DimensionStatus: {
			Category: stats.DimensionStatus,
			KeyField: "status",
		},
		stats.DimensionSource: {
			Category: stats.DimensionSource,
			KeyField: "source",
			ExtraStats: []models.ExtraStatCalculator{
				stats.AverageBookingValueExtra("Average Booking Value"),
			},
		},
	}
}

func (s *statsService) loadRecords(ctx context.Context, financialYear string) ([]models.BookingRecord, error) {
	records, err := s.bookingRepo.GetBookings(ctx, financialYear)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStatsLoadFailed, err)
	}
	return records, nil
}

// GetSummary returns the whole-collection summary for a financial year,
// memoized in the result cache.
func (s *statsService) GetSummary(ctx context.Context, financialYear string) (*models.StatsResult, error) {
	records, err := s.loadRecords(ctx, financialYear)
	if err != nil {
		return nil, err
	}

	key := stats.CacheKey(financialYear, summaryDimension, "", records)
	if cached, ok := s.results.Get(key); ok {
		return cached, nil
	}

	result := stats.SummaryStats(records)
	s.results.Set(key, result)
	return result, nil
}

// GetCategoryStats returns the stats of one bucket of one dimension.
func (s *statsService) GetCategoryStats(ctx context.Context, financialYear, dimension, categoryKey string) (*models.StatsResult, error) {
	cfg, ok := s.configs[dimension]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, dimension)
	}

	records, err := s.loadRecords(ctx, financialYear)
	if err != nil {
		return nil, err
	}

	key := stats.CacheKey(financialYear, dimension, categoryKey, records)
	if cached, ok := s.results.Get(key); ok {
		return cached, nil
	}

	result, err := stats.CategoryStats(records, categoryKey, cfg)
	if err != nil {
		return nil, err
	}
	s.results.Set(key, result)
	return result, nil
}

// GetAllCategoryStats computes every bucket of every configured dimension
// as a batch: the per-dimension computations are independent, so they run
// concurrently and are awaited together. Only the result cache is shared,
// and it is safe for concurrent insertion.
func (s *statsService) GetAllCategoryStats(ctx context.Context, financialYear string) (map[string]map[string]*models.StatsResult, error) {
	records, err := s.loadRecords(ctx, financialYear)
	if err != nil {
		return nil, err
	}

	var mu sync.Mutex
	all := make(map[string]map[string]*models.StatsResult, len(s.configs))

	g, _ := errgroup.WithContext(ctx)
	for dimension, cfg := range s.configs {
		g.Go(func() error {
			grouped, err := stats.Group(records, dimension)
			if err != nil {
				return err
			}
			perKey := make(map[string]*models.StatsResult, len(grouped))
			for categoryKey := range grouped {
				cacheKey := stats.CacheKey(financialYear, dimension, categoryKey, records)
				if cached, ok := s.results.Get(cacheKey); ok {
					perKey[categoryKey] = cached
					continue
				}
				result, err := stats.CategoryStats(records, categoryKey, cfg)
				if err != nil {
					return err
				}
				s.results.Set(cacheKey, result)
				perKey[categoryKey] = result
			}
			mu.Lock()
			all[dimension] = perKey
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return all, nil
}

// GetMonthlyPayments returns the fixed twelve-entry per-month payment
// breakdown for a financial year.
func (s *statsService) GetMonthlyPayments(ctx context.Context, financialYear string) ([]models.MonthlyPaymentEntry, error) {
	records, err := s.loadRecords(ctx, financialYear)
	if err != nil {
		return nil, err
	}
	return stats.CalculateMonthlyPayments(records), nil
}

// GetDailyPaymentsByMode returns per-date channel sums restricted to the
// financial year.
func (s *statsService) GetDailyPaymentsByMode(ctx context.Context, financialYear string) (map[string]models.DailyPaymentModes, error) {
	records, err := s.loadRecords(ctx, financialYear)
	if err != nil {
		return nil, err
	}
	daily, err := stats.CalculateDailyPaymentsByMode(records, financialYear)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidYearFormat, err)
	}
	return daily, nil
}

// SortBookings returns the year's records ordered by the given field.
func (s *statsService) SortBookings(ctx context.Context, financialYear, field, direction string) ([]models.BookingRecord, error) {
	records, err := s.loadRecords(ctx, financialYear)
	if err != nil {
		return nil, err
	}
	return stats.SortRecords(records, field, direction), nil
}

// ClearCacheForYear invalidates both the computed results of a year and
// the repository's cached collection. Returns the number of cached
// results dropped.
func (s *statsService) ClearCacheForYear(ctx context.Context, financialYear string) int {
	s.bookingRepo.InvalidateYear(ctx, financialYear)
	return s.results.ClearScope(stats.ScopePrefix(financialYear))
}

// ClearCache empties the result cache.
func (s *statsService) ClearCache() {
	s.results.ClearAll()
}
