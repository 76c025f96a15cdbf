package stats

import (
	"time"

	"turf_analytics_backend/internal/models"
)

// Extra-stat calculators attached to category configurations. Each is a
// pure function over the selected sub-collection; the aggregation engine
// merges the returned values into StatsResult.Extras under the given
// label without reshaping them.

// TopCustomerExtra ranks the bucket's customers by the given metric and
// reports the winner as a structured value: display text for the card
// plus the phone number the frontend tooltip links back to.
func TopCustomerExtra(label, by string) models.ExtraStatCalculator {
	return models.ExtraStatCalculator{
		Label: label,
		Calc: func(records []models.BookingRecord) interface{} {
			top := TopCustomers(records, by, 1)
			if len(top) == 0 {
				return nil
			}
			display := top[0].Name
			if display == "" {
				display = top[0].CustomerID
			}
			return models.TopCustomerValue{
				Display: display,
				Phone:   top[0].Phone,
				Revenue: top[0].Revenue,
			}
		},
	}
}

// WeekdayRevenueValue is the structured value of the top-weekday extra.
type WeekdayRevenueValue struct {
	Weekday string  `json:"weekday"`
	Revenue float64 `json:"revenue"`
}

// TopWeekdayExtra reports the weekday with the highest revenue. Only
// Monday through Friday are compared; weekend days are excluded from this
// particular report.
func TopWeekdayExtra(label string) models.ExtraStatCalculator {
	return models.ExtraStatCalculator{
		Label: label,
		Calc: func(records []models.BookingRecord) interface{} {
			revenue := make(map[time.Weekday]float64)
			for _, r := range records {
				t, ok := ParseSlotDate(r.SlotDate)
				if !ok {
					continue
				}
				day := t.Weekday()
				if day == time.Saturday || day == time.Sunday {
					continue
				}
				revenue[day] += r.TotalPaid
			}
			if len(revenue) == 0 {
				return nil
			}
			best := time.Monday
			for day := time.Monday; day <= time.Friday; day++ {
				if revenue[day] > revenue[best] {
					best = day
				}
			}
			return WeekdayRevenueValue{Weekday: best.String(), Revenue: revenue[best]}
		},
	}
}

// DateRevenueValue is the structured value of the best-selling-date extra.
type DateRevenueValue struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
}

// BestSellingDateExtra reports the single slot date with the highest
// revenue across the bucket. All days count here, weekends included.
func BestSellingDateExtra(label string) models.ExtraStatCalculator {
	return models.ExtraStatCalculator{
		Label: label,
		Calc: func(records []models.BookingRecord) interface{} {
			revenue := make(map[string]float64)
			order := make([]string, 0)
			for _, r := range records {
				t, ok := ParseSlotDate(r.SlotDate)
				if !ok {
					continue
				}
				key := t.Format(SlotDateLayout)
				if _, seen := revenue[key]; !seen {
					order = append(order, key)
				}
				revenue[key] += r.TotalPaid
			}
			if len(order) == 0 {
				return nil
			}
			best := order[0]
			for _, key := range order[1:] {
				if revenue[key] > revenue[best] {
					best = key
				}
			}
			return DateRevenueValue{Date: best, Revenue: revenue[best]}
		},
	}
}

// AverageBookingValueExtra reports revenue per booking in the bucket, 0
// when the bucket is empty.
func AverageBookingValueExtra(label string) models.ExtraStatCalculator {
	return models.ExtraStatCalculator{
		Label: label,
		Calc: func(records []models.BookingRecord) interface{} {
			if len(records) == 0 {
				return 0.0
			}
			var total float64
			for _, r := range records {
				total += r.TotalPaid
			}
			return total / float64(len(records))
		},
	}
}
