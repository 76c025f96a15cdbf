package stats

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"turf_analytics_backend/internal/models"
	"turf_analytics_backend/pkg/utils"
)

// Grouping dimensions.
const (
	DimensionDay            = "day"
	DimensionMonth          = "month"
	DimensionYear           = "year"
	DimensionLocation       = "location"
	DimensionSport          = "sport"
	DimensionSource         = "source"
	DimensionStatus         = "status"
	DimensionPaymentChannel = "payment_channel"
)

// Canonical payment channel keys.
const (
	ChannelCash  = "Cash"
	ChannelBank  = "Bank"
	ChannelHudle = "Hudle"
)

// UnknownSport is the bucket for records without a sport. Sport is never
// dropped, unlike location.
const UnknownSport = "Unknown"

// ErrUnknownDimension is returned when Group is asked for a dimension it
// does not know. An unrecognized dimension is a configuration error, not
// a data issue, and is surfaced to the caller.
var ErrUnknownDimension = errors.New("unknown grouping dimension")

// FinancialYearMonths is the fixed month order of an April-March
// financial year.
var FinancialYearMonths = []string{
	"April", "May", "June", "July", "August", "September",
	"October", "November", "December", "January", "February", "March",
}

// FinancialYearMonthIndex returns a month's position within the financial
// year (April=0 ... March=11), or -1 for an unrecognized month name.
func FinancialYearMonthIndex(monthName string) int {
	for i, m := range FinancialYearMonths {
		if strings.EqualFold(m, monthName) {
			return i
		}
	}
	return -1
}

// FinancialYearStart returns the calendar year in which the financial
// year containing t started. January-March dates belong to the financial
// year that began the previous April.
func FinancialYearStart(t time.Time) int {
	if t.Month() < time.April {
		return t.Year() - 1
	}
	return t.Year()
}

// FinancialYearLabel formats the financial year containing t as "Y-YY+1",
// e.g. "2024-25".
func FinancialYearLabel(t time.Time) string {
	start := FinancialYearStart(t)
	return fmt.Sprintf("%d-%02d", start, (start+1)%100)
}

// MonthBucketLabel is the month-dimension key for t: the month name plus
// the start year of its financial year, so a January 2025 slot is keyed
// "January 2024".
func MonthBucketLabel(t time.Time) string {
	return fmt.Sprintf("%s %d", t.Month().String(), FinancialYearStart(t))
}

// Group partitions records into named buckets along one dimension. Input
// order is preserved within each bucket and records are never mutated.
// Records whose key field cannot be derived (unparsable date, missing
// location) are dropped with a warning; every other record lands in
// exactly one bucket.
func Group(records []models.BookingRecord, dimension string) (models.GroupedResult, error) {
	keyFn, err := groupKeyFunc(dimension)
	if err != nil {
		return nil, err
	}

	result := make(models.GroupedResult)
	dropped := 0
	for _, r := range records {
		key, ok := keyFn(r)
		if !ok {
			dropped++
			continue
		}
		result[key] = append(result[key], r)
	}
	if dropped > 0 {
		utils.LogWarn("Records dropped during grouping", map[string]interface{}{
			"dimension": dimension,
			"dropped":   dropped,
			"total":     len(records),
		})
	}
	return result, nil
}

// groupKeyFunc resolves a dimension name to its key-derivation function.
// The bool result reports whether the record is assignable at all.
func groupKeyFunc(dimension string) (func(models.BookingRecord) (string, bool), error) {
	switch strings.ToLower(strings.TrimSpace(dimension)) {
	case DimensionDay:
		return func(r models.BookingRecord) (string, bool) {
			t, ok := ParseSlotDate(r.SlotDate)
			if !ok {
				return "", false
			}
			return t.Format(SlotDateLayout), true
		}, nil
	case DimensionMonth:
		return func(r models.BookingRecord) (string, bool) {
			t, ok := ParseSlotDate(r.SlotDate)
			if !ok {
				return "", false
			}
			return MonthBucketLabel(t), true
		}, nil
	case DimensionYear:
		return func(r models.BookingRecord) (string, bool) {
			t, ok := ParseSlotDate(r.SlotDate)
			if !ok {
				return "", false
			}
			return FinancialYearLabel(t), true
		}, nil
	case DimensionLocation:
		return func(r models.BookingRecord) (string, bool) {
			loc := strings.TrimSpace(r.Location)
			if loc == "" {
				return "", false
			}
			return loc, true
		}, nil
	case DimensionSport:
		return func(r models.BookingRecord) (string, bool) {
			sport := strings.TrimSpace(r.Sport)
			if sport == "" {
				return UnknownSport, true
			}
			return sport, true
		}, nil
	case DimensionSource:
		return func(r models.BookingRecord) (string, bool) {
			return NormalizeSource(r.Source), true
		}, nil
	case DimensionStatus:
		return func(r models.BookingRecord) (string, bool) {
			return NormalizeStatus(r.Status), true
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDimension, dimension)
	}
}

// ChannelSums reduces a record's raw payment fields to the three
// canonical reporting channels: cash is the cash field, bank combines UPI
// and bank transfers, hudle combines every app/QR/wallet/pass/discount
// field.
func ChannelSums(r models.BookingRecord) (cash, bank, hudle float64) {
	cash = r.Cash
	bank = r.UPI + r.BankTransfer
	hudle = r.HudleApp + r.HudleQR + r.HudleWallet + r.HudlePass + r.HudleDiscount + r.VenueDiscount
	return cash, bank, hudle
}

// GroupByPaymentChannel explodes records into the canonical channel
// buckets. A record is appended to every bucket whose channel sum is
// positive, as a copy carrying that channel's amount in PaymentAmount, so
// a booking paid part-cash part-app appears in both Cash and Hudle. Bucket
// sizes therefore do not sum to the input length.
func GroupByPaymentChannel(records []models.BookingRecord) models.MultiGroupedResult {
	result := make(models.MultiGroupedResult)
	for _, r := range records {
		cash, bank, hudle := ChannelSums(r)
		if cash > 0 {
			augmented := r
			augmented.PaymentAmount = cash
			result[ChannelCash] = append(result[ChannelCash], augmented)
		}
		if bank > 0 {
			augmented := r
			augmented.PaymentAmount = bank
			result[ChannelBank] = append(result[ChannelBank], augmented)
		}
		if hudle > 0 {
			augmented := r
			augmented.PaymentAmount = hudle
			result[ChannelHudle] = append(result[ChannelHudle], augmented)
		}
	}
	return result
}
