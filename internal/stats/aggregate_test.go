package stats

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"turf_analytics_backend/internal/models"
)

func TestSummaryStatsTotals(t *testing.T) {
	result := SummaryStats(sampleRecords())

	if result.TotalBookings != 4 {
		t.Errorf("TotalBookings = %d, want 4", result.TotalBookings)
	}
	if result.TotalCollection != 2300 {
		t.Errorf("TotalCollection = %v, want 2300", result.TotalCollection)
	}
	if result.TotalSlots != 5 {
		t.Errorf("TotalSlots = %d, want 5", result.TotalSlots)
	}
	// Records 1 and 2 share a phone after normalization; record 4 has none.
	if result.UniqueCustomers != 2 {
		t.Errorf("UniqueCustomers = %d, want 2", result.UniqueCustomers)
	}
	if result.AvgRevenuePerSlot != 2300.0/5 {
		t.Errorf("AvgRevenuePerSlot = %v", result.AvgRevenuePerSlot)
	}
	if result.CompletionRate != 50 {
		t.Errorf("CompletionRate = %v, want 50", result.CompletionRate)
	}
	if result.OnlineCount != 2 || result.OnlinePercentage != 50 {
		t.Errorf("online split = %d/%v, want 2/50", result.OnlineCount, result.OnlinePercentage)
	}
}

func TestSummaryStatsEmpty(t *testing.T) {
	result := SummaryStats(nil)
	if result.TotalBookings != 0 || result.CompletionRate != 0 || result.AvgRevenuePerSlot != 0 {
		t.Errorf("empty collection must produce zero rates, got %+v", result)
	}
	p := result.Payments
	if p.Cash.Percentage != 0 || p.Bank.Percentage != 0 || p.Hudle.Percentage != 0 {
		t.Error("payment percentages must be 0, not NaN, on an empty collection")
	}
	if math.IsNaN(p.Cash.Percentage) || math.IsNaN(result.CompletionRate) {
		t.Error("no NaN allowed in an empty summary")
	}
}

func TestPaymentDistributionPercentagesSum(t *testing.T) {
	result := SummaryStats(sampleRecords())
	p := result.Payments

	if p.Cash.Amount != 700 || p.Bank.Amount != 500 || p.Hudle.Amount != 1100 {
		t.Errorf("channel amounts = %v/%v/%v, want 700/500/1100", p.Cash.Amount, p.Bank.Amount, p.Hudle.Amount)
	}
	sum := p.Cash.Percentage + p.Bank.Percentage + p.Hudle.Percentage
	if math.Abs(sum-100) > 0.01 {
		t.Errorf("percentages sum to %v, want 100 within 0.01", sum)
	}
}

func TestTimeOfDayDistribution(t *testing.T) {
	records := []models.BookingRecord{
		{SlotTime: "06:30 PM"}, // peak
		{SlotTime: "10:00 PM"}, // peak
		{SlotTime: "11:00 PM"}, // 23:00 is outside [18,23)
		{SlotTime: "09:00 AM"}, // non-peak
		{SlotTime: ""},         // no time: excluded entirely
	}
	dist := timeOfDayDistribution(records)
	if dist.PeakCount != 2 || dist.NonPeakCount != 2 {
		t.Errorf("peak/non-peak = %d/%d, want 2/2", dist.PeakCount, dist.NonPeakCount)
	}
	if dist.PeakPercentage != 50 {
		t.Errorf("PeakPercentage = %v, want 50 (untimed records excluded from denominator)", dist.PeakPercentage)
	}
}

func TestTopCustomers(t *testing.T) {
	records := []models.BookingRecord{
		{CustomerID: "c1", CustomerName: "Asha", TotalPaid: 500},
		{CustomerID: "c2", CustomerName: "Ravi", TotalPaid: 900},
		{CustomerID: "c1", CustomerName: "Asha", TotalPaid: 600},
		{CustomerID: "c3", CustomerName: "Meera", TotalPaid: 1100},
	}

	t.Run("by revenue", func(t *testing.T) {
		top := TopCustomers(records, TopByRevenue, 2)
		if len(top) != 2 || top[0].CustomerID != "c1" || top[1].CustomerID != "c3" {
			t.Errorf("unexpected ranking: %+v", top)
		}
	})

	t.Run("by count with stable ties", func(t *testing.T) {
		top := TopCustomers(records, TopByCount, 3)
		if top[0].CustomerID != "c1" {
			t.Errorf("c1 has most bookings, got %+v", top)
		}
		// c2 and c3 tie on one booking each; encounter order breaks the tie.
		if top[1].CustomerID != "c2" || top[2].CustomerID != "c3" {
			t.Errorf("ties must keep encounter order: %+v", top)
		}
	})

	t.Run("phone fallback", func(t *testing.T) {
		top := TopCustomers([]models.BookingRecord{
			{Phone: "98765 43210", TotalPaid: 100},
			{Phone: "9876543210", TotalPaid: 200},
		}, TopByRevenue, 5)
		if len(top) != 1 || top[0].Revenue != 300 {
			t.Errorf("normalized phones must merge into one customer: %+v", top)
		}
	})
}

func TestSummaryStatsMonthlyOrder(t *testing.T) {
	result := SummaryStats(sampleRecords())
	if len(result.Monthly) != 3 {
		t.Fatalf("expected 3 month buckets, got %+v", result.Monthly)
	}
	// Financial-year order within FY 2024: April, May, then January.
	if result.Monthly[0].Month != "April 2024" || result.Monthly[1].Month != "May 2024" || result.Monthly[2].Month != "January 2024" {
		t.Errorf("monthly buckets out of financial-year order: %+v", result.Monthly)
	}
	if result.Monthly[2].Count != 2 || result.Monthly[2].Revenue != 1300 {
		t.Errorf("January 2024 aggregate wrong: %+v", result.Monthly[2])
	}
}

func TestCategoryStats(t *testing.T) {
	cfg := models.CategoryConfig{
		Category: "Location",
		KeyField: "location",
		ExtraStats: []models.ExtraStatCalculator{
			TopCustomerExtra("Top Customer", TopByRevenue),
			AverageBookingValueExtra("Average Booking Value"),
		},
	}

	t.Run("scoped base stats", func(t *testing.T) {
		result, err := CategoryStats(sampleRecords(), "Andheri", cfg)
		if err != nil {
			t.Fatal(err)
		}
		if result.TotalBookings != 2 || result.TotalCollection != 1000 {
			t.Errorf("Andheri scope wrong: %d bookings, %v collection", result.TotalBookings, result.TotalCollection)
		}
	})

	t.Run("extras keep their shape", func(t *testing.T) {
		result, err := CategoryStats(sampleRecords(), "Andheri", cfg)
		if err != nil {
			t.Fatal(err)
		}
		top, ok := result.Extras["Top Customer"].(models.TopCustomerValue)
		if !ok {
			t.Fatalf("Top Customer extra must stay structured, got %T", result.Extras["Top Customer"])
		}
		if top.Phone == "" {
			t.Error("top customer value must carry the phone back-reference")
		}
		if _, ok := result.Extras["Average Booking Value"].(float64); !ok {
			t.Errorf("Average Booking Value must be a float, got %T", result.Extras["Average Booking Value"])
		}
	})

	t.Run("missing key is empty scope, not error", func(t *testing.T) {
		result, err := CategoryStats(sampleRecords(), "Nowhere", cfg)
		if err != nil {
			t.Fatal(err)
		}
		if result.TotalBookings != 0 {
			t.Errorf("unknown key must yield empty stats, got %d", result.TotalBookings)
		}
	})

	t.Run("invalid category config", func(t *testing.T) {
		_, err := CategoryStats(sampleRecords(), "x", models.CategoryConfig{Category: "galaxy"})
		if !errors.Is(err, ErrUnknownDimension) {
			t.Errorf("expected ErrUnknownDimension, got %v", err)
		}
	})

	t.Run("deterministic recomputation", func(t *testing.T) {
		first, err := CategoryStats(sampleRecords(), "Andheri", cfg)
		if err != nil {
			t.Fatal(err)
		}
		second, err := CategoryStats(sampleRecords(), "Andheri", cfg)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(first, second) {
			t.Error("repeated computation over unchanged input must be deep-equal")
		}
	})
}

func TestExtraStatCalculators(t *testing.T) {
	t.Run("top weekday skips weekends", func(t *testing.T) {
		records := []models.BookingRecord{
			{SlotDate: "13/04/2024", TotalPaid: 9000}, // Saturday
			{SlotDate: "15/04/2024", TotalPaid: 500},  // Monday
			{SlotDate: "16/04/2024", TotalPaid: 700},  // Tuesday
		}
		value := TopWeekdayExtra("Top Weekday").Calc(records)
		weekday, ok := value.(WeekdayRevenueValue)
		if !ok {
			t.Fatalf("unexpected value type %T", value)
		}
		if weekday.Weekday != "Tuesday" {
			t.Errorf("Saturday revenue must be ignored; got %+v", weekday)
		}
	})

	t.Run("best selling date counts weekends", func(t *testing.T) {
		records := []models.BookingRecord{
			{SlotDate: "13/04/2024", TotalPaid: 9000}, // Saturday
			{SlotDate: "15/04/2024", TotalPaid: 500},
		}
		value := BestSellingDateExtra("Best Selling Date").Calc(records)
		date, ok := value.(DateRevenueValue)
		if !ok {
			t.Fatalf("unexpected value type %T", value)
		}
		if date.Date != "13/04/2024" || date.Revenue != 9000 {
			t.Errorf("best selling date must include weekends: %+v", date)
		}
	})

	t.Run("empty buckets", func(t *testing.T) {
		if TopWeekdayExtra("w").Calc(nil) != nil {
			t.Error("top weekday over empty bucket must be nil")
		}
		if BestSellingDateExtra("d").Calc(nil) != nil {
			t.Error("best selling date over empty bucket must be nil")
		}
		if avg := AverageBookingValueExtra("a").Calc(nil); avg != 0.0 {
			t.Errorf("average over empty bucket must be 0, got %v", avg)
		}
	})
}
