package stats

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"turf_analytics_backend/internal/models"
	"turf_analytics_backend/pkg/utils"
)

// ReconciliationTolerance is the allowed absolute drift between the sum
// of the three canonical channel totals and the sum of the total-paid
// field. The two are independently entered at the venue and may diverge;
// beyond the tolerance a warning is logged but the result still stands.
const ReconciliationTolerance = 10.0

// DefaultTopCustomers is the length of the top-customer list embedded in
// a summary.
const DefaultTopCustomers = 5

// Peak hours run 18:00 to 23:00 local slot time.
const (
	peakStartHour = 18
	peakEndHour   = 23
)

// Top-customer ranking metrics.
const (
	TopByCount   = "count"
	TopByRevenue = "revenue"
)

// SummaryStats computes the full summary snapshot for a record
// collection: totals, rates, the canonical payment distribution, the
// peak/non-peak split, top customers and the monthly and per-location
// sub-aggregates.
func SummaryStats(records []models.BookingRecord) *models.StatsResult {
	result := &models.StatsResult{
		TotalBookings: len(records),
		StatusCounts: map[string]int{
			StatusConfirmed:          0,
			StatusCancelled:          0,
			StatusPartiallyCancelled: 0,
			StatusUnknown:            0,
		},
	}

	phones := make(map[string]struct{})
	for _, r := range records {
		result.TotalCollection += r.TotalPaid
		result.TotalSlots += r.SlotCount
		result.TotalBalance += r.Balance
		result.StatusCounts[NormalizeStatus(r.Status)]++
		if NormalizeSource(r.Source) == SourceOnline {
			result.OnlineCount++
		}
		if phone := NormalizePhone(r.Phone); phone != "" {
			phones[phone] = struct{}{}
		}
	}
	result.UniqueCustomers = len(phones)

	if result.TotalSlots > 0 {
		result.AvgRevenuePerSlot = result.TotalCollection / float64(result.TotalSlots)
	}
	if result.TotalBookings > 0 {
		result.CompletionRate = float64(result.StatusCounts[StatusConfirmed]) / float64(result.TotalBookings) * 100
		result.OnlinePercentage = float64(result.OnlineCount) / float64(result.TotalBookings) * 100
	}

	result.Payments = paymentDistribution(records)
	result.TimeOfDay = timeOfDayDistribution(records)
	result.TopCustomers = TopCustomers(records, TopByRevenue, DefaultTopCustomers)
	result.Monthly = monthlyAggregates(records)
	result.Locations = locationAggregates(records)

	reconcilePayments(records, result.Payments)
	return result
}

// CategoryStats computes the summary scoped to one bucket of the
// configured dimension, then evaluates the configuration's extra-stat
// calculators against that bucket and merges their values verbatim.
func CategoryStats(records []models.BookingRecord, categoryKey string, cfg models.CategoryConfig) (*models.StatsResult, error) {
	dimension, err := resolveDimension(cfg.Category)
	if err != nil {
		return nil, err
	}
	grouped, err := Group(records, dimension)
	if err != nil {
		return nil, err
	}

	// An absent key is an empty scope, not an error.
	subset := grouped[categoryKey]
	result := SummaryStats(subset)

	if len(cfg.ExtraStats) > 0 {
		result.Extras = make(map[string]interface{}, len(cfg.ExtraStats))
		for _, extra := range cfg.ExtraStats {
			if extra.Calc == nil {
				continue
			}
			result.Extras[extra.Label] = extra.Calc(subset)
		}
	}
	return result, nil
}

// resolveDimension maps a category config name onto a grouping dimension,
// case-insensitively. A name the engine does not recognize is an invalid
// configuration and is surfaced, never swallowed.
func resolveDimension(category string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(category)) {
	case DimensionLocation:
		return DimensionLocation, nil
	case DimensionMonth:
		return DimensionMonth, nil
	case DimensionYear:
		return DimensionYear, nil
	case DimensionDay:
		return DimensionDay, nil
	case DimensionSport:
		return DimensionSport, nil
	case DimensionStatus:
		return DimensionStatus, nil
	case DimensionSource:
		return DimensionSource, nil
	default:
		return "", fmt.Errorf("%w: category config %q", ErrUnknownDimension, category)
	}
}

// paymentDistribution computes the three canonical channel totals with
// percentages of their combined sum. All percentages are 0, not NaN, when
// nothing was collected.
func paymentDistribution(records []models.BookingRecord) models.PaymentDistribution {
	var cash, bank, hudle float64
	for _, r := range records {
		c, b, h := ChannelSums(r)
		cash += c
		bank += b
		hudle += h
	}

	total := cash + bank + hudle
	pct := func(amount float64) float64 {
		if total == 0 {
			return 0
		}
		return amount / total * 100
	}
	return models.PaymentDistribution{
		Cash:  models.ChannelAmount{Amount: cash, Percentage: pct(cash)},
		Bank:  models.ChannelAmount{Amount: bank, Percentage: pct(bank)},
		Hudle: models.ChannelAmount{Amount: hudle, Percentage: pct(hudle)},
	}
}

// reconcilePayments cross-checks the channel totals against the
// total-paid column. Channel fields and total-paid are entered
// independently at the venue, so drift within tolerance is normal; beyond
// it we log and move on.
func reconcilePayments(records []models.BookingRecord, dist models.PaymentDistribution) {
	var totalPaid float64
	for _, r := range records {
		totalPaid += r.TotalPaid
	}
	channelTotal := dist.Cash.Amount + dist.Bank.Amount + dist.Hudle.Amount
	if diff := math.Abs(channelTotal - totalPaid); diff > ReconciliationTolerance {
		utils.LogWarn("Payment channel totals diverge from total paid", map[string]interface{}{
			"channel_total": channelTotal,
			"total_paid":    totalPaid,
			"difference":    diff,
		})
	}
}

// timeOfDayDistribution splits bookings into peak and non-peak slots.
// Records without a parseable slot time fall out of the denominator.
func timeOfDayDistribution(records []models.BookingRecord) models.TimeOfDayDistribution {
	var dist models.TimeOfDayDistribution
	for _, r := range records {
		hour, ok := ParseSlotTime(r.SlotTime)
		if !ok {
			continue
		}
		if hour >= peakStartHour && hour < peakEndHour {
			dist.PeakCount++
		} else {
			dist.NonPeakCount++
		}
	}
	timed := dist.PeakCount + dist.NonPeakCount
	if timed > 0 {
		dist.PeakPercentage = float64(dist.PeakCount) / float64(timed) * 100
		dist.NonPeakPercentage = float64(dist.NonPeakCount) / float64(timed) * 100
	}
	return dist
}

// TopCustomers ranks customers by booking count or revenue and returns
// the first n. Customers are identified by customer id, falling back to
// the normalized phone; ranking ties keep first-encounter order.
func TopCustomers(records []models.BookingRecord, by string, n int) []models.CustomerStat {
	index := make(map[string]int)
	var customers []models.CustomerStat

	for _, r := range records {
		key := strings.TrimSpace(r.CustomerID)
		if key == "" {
			key = NormalizePhone(r.Phone)
		}
		if key == "" {
			continue
		}
		i, seen := index[key]
		if !seen {
			i = len(customers)
			index[key] = i
			customers = append(customers, models.CustomerStat{
				CustomerID: key,
				Name:       r.CustomerName,
				Phone:      r.Phone,
			})
		}
		customers[i].Bookings++
		customers[i].Revenue += r.TotalPaid
	}

	sort.SliceStable(customers, func(i, j int) bool {
		if by == TopByCount {
			return customers[i].Bookings > customers[j].Bookings
		}
		return customers[i].Revenue > customers[j].Revenue
	})

	if n > 0 && len(customers) > n {
		customers = customers[:n]
	}
	return customers
}

// monthlyAggregates builds one sub-aggregate per financial-year month
// bucket present in the collection, in financial-year order.
func monthlyAggregates(records []models.BookingRecord) []models.MonthlyAggregate {
	grouped, err := Group(records, DimensionMonth)
	if err != nil {
		return nil
	}

	entries := make([]models.CategoryEntry, 0, len(grouped))
	for label := range grouped {
		entries = append(entries, models.CategoryEntry{Label: label})
	}
	entries = SortCategoryEntriesForFinancialYear(entries)

	aggregates := make([]models.MonthlyAggregate, 0, len(entries))
	for _, entry := range entries {
		aggregates = append(aggregates, models.MonthlyAggregate{
			Month:        entry.Label,
			SubAggregate: subAggregate(grouped[entry.Label]),
		})
	}
	return aggregates
}

// locationAggregates builds one sub-aggregate per location.
func locationAggregates(records []models.BookingRecord) map[string]models.SubAggregate {
	grouped, err := Group(records, DimensionLocation)
	if err != nil {
		return nil
	}
	aggregates := make(map[string]models.SubAggregate, len(grouped))
	for location, subset := range grouped {
		aggregates[location] = subAggregate(subset)
	}
	return aggregates
}

func subAggregate(records []models.BookingRecord) models.SubAggregate {
	agg := models.SubAggregate{Count: len(records)}
	phones := make(map[string]struct{})
	for _, r := range records {
		agg.Revenue += r.TotalPaid
		agg.Slots += r.SlotCount
		if phone := NormalizePhone(r.Phone); phone != "" {
			phones[phone] = struct{}{}
		}
	}
	agg.UniqueCustomers = len(phones)
	return agg
}
