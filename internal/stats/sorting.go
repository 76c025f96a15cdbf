package stats

import (
	"regexp"
	"sort"
	"strings"

	"turf_analytics_backend/internal/models"
)

// Sort directions. Switching to a new field always starts descending;
// repeating a field toggles.
const (
	SortAscending  = "asc"
	SortDescending = "desc"
)

var (
	slotDatePattern = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)
	currencyPattern = regexp.MustCompile(`^\s*(₹|\$|[Rr][Ss]\.?)\s*[\d,]+(\.\d+)?\s*$`)
)

// sortValue is one comparable cell: either a number, a string, or missing.
type sortValue struct {
	num     float64
	str     string
	isNum   bool
	missing bool
}

// fieldSortValue extracts the named field from a record for comparison.
// Unknown fields and empty strings are treated as missing, which sorts to
// the front ascending.
func fieldSortValue(r models.BookingRecord, field string) sortValue {
	switch strings.ToLower(strings.TrimSpace(field)) {
	case "sequence_id", "id":
		return sortValue{num: float64(r.SequenceID), isNum: true}
	case "slot_date", "date":
		return stringSortValue(r.SlotDate)
	case "slot_time", "time":
		return stringSortValue(r.SlotTime)
	case "location":
		return stringSortValue(r.Location)
	case "sport":
		return stringSortValue(r.Sport)
	case "status":
		return stringSortValue(r.Status)
	case "source":
		return stringSortValue(r.Source)
	case "customer_id":
		return stringSortValue(r.CustomerID)
	case "customer_name", "name":
		return stringSortValue(r.CustomerName)
	case "phone":
		return stringSortValue(r.Phone)
	case "cash":
		return sortValue{num: r.Cash, isNum: true}
	case "upi":
		return sortValue{num: r.UPI, isNum: true}
	case "bank_transfer":
		return sortValue{num: r.BankTransfer, isNum: true}
	case "total_paid", "revenue":
		return sortValue{num: r.TotalPaid, isNum: true}
	case "balance":
		return sortValue{num: r.Balance, isNum: true}
	case "slot_count", "slots":
		return sortValue{num: float64(r.SlotCount), isNum: true}
	case "payment_amount":
		return sortValue{num: r.PaymentAmount, isNum: true}
	default:
		return sortValue{missing: true}
	}
}

func stringSortValue(s string) sortValue {
	if strings.TrimSpace(s) == "" {
		return sortValue{missing: true}
	}
	return sortValue{str: s}
}

// compareSortValues is the type-aware comparison kernel: missing values
// first, then numeric compare, then DD/MM/YYYY date compare, then
// currency-string compare, then case-insensitive string compare. Returns
// a negative, zero, or positive result like strings.Compare.
func compareSortValues(a, b sortValue) int {
	switch {
	case a.missing && b.missing:
		return 0
	case a.missing:
		return -1
	case b.missing:
		return 1
	}

	if a.isNum && b.isNum {
		return compareFloats(a.num, b.num)
	}
	if !a.isNum && !b.isNum {
		if slotDatePattern.MatchString(a.str) && slotDatePattern.MatchString(b.str) {
			da, okA := ParseSlotDate(a.str)
			db, okB := ParseSlotDate(b.str)
			if okA && okB {
				switch {
				case da.Before(db):
					return -1
				case da.After(db):
					return 1
				default:
					return 0
				}
			}
		}
		if currencyPattern.MatchString(a.str) && currencyPattern.MatchString(b.str) {
			return compareFloats(ParseAmount(a.str), ParseAmount(b.str))
		}
		return strings.Compare(strings.ToLower(a.str), strings.ToLower(b.str))
	}

	// Mixed number vs string: compare the string's parsed amount so
	// currency columns with stray numeric cells still order sensibly.
	if a.isNum {
		return compareFloats(a.num, ParseAmount(b.str))
	}
	return compareFloats(ParseAmount(a.str), b.num)
}

func compareFloats(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// SortRecords returns a new slice of records ordered by the given field.
// The sort is stable and the input slice is left untouched.
func SortRecords(records []models.BookingRecord, field, direction string) []models.BookingRecord {
	sorted := make([]models.BookingRecord, len(records))
	copy(sorted, records)

	descending := strings.EqualFold(direction, SortDescending)
	sort.SliceStable(sorted, func(i, j int) bool {
		cmp := compareSortValues(fieldSortValue(sorted[i], field), fieldSortValue(sorted[j], field))
		if descending {
			return cmp > 0
		}
		return cmp < 0
	})
	return sorted
}

// NextSortDirection implements the column-header toggle: clicking a new
// column always resets to descending, clicking the current column flips
// the direction.
func NextSortDirection(currentField, newField, currentDirection string) string {
	if currentField != newField {
		return SortDescending
	}
	if currentDirection == SortAscending {
		return SortDescending
	}
	return SortAscending
}

// SortCategoryEntriesForFinancialYear orders "{MonthName} {Year}" labelled
// entries by the embedded year first and then by financial-year month
// position (April=0 ... March=11). Calendar month order is deliberately
// not used. Entries whose label does not parse keep their relative order
// at the end.
func SortCategoryEntriesForFinancialYear(entries []models.CategoryEntry) []models.CategoryEntry {
	sorted := make([]models.CategoryEntry, len(entries))
	copy(sorted, entries)

	sort.SliceStable(sorted, func(i, j int) bool {
		yearI, monthI, okI := parseMonthLabel(sorted[i].Label)
		yearJ, monthJ, okJ := parseMonthLabel(sorted[j].Label)
		if okI != okJ {
			return okI
		}
		if !okI {
			return false
		}
		if yearI != yearJ {
			return yearI < yearJ
		}
		return monthI < monthJ
	})
	return sorted
}

// parseMonthLabel splits "April 2023" into (2023, 0, true); monthIdx is
// the financial-year position.
func parseMonthLabel(label string) (year, monthIdx int, ok bool) {
	parts := strings.Fields(label)
	if len(parts) != 2 {
		return 0, 0, false
	}
	monthIdx = FinancialYearMonthIndex(parts[0])
	if monthIdx < 0 {
		return 0, 0, false
	}
	year = 0
	for _, r := range parts[1] {
		if r < '0' || r > '9' {
			return 0, 0, false
		}
		year = year*10 + int(r-'0')
	}
	return year, monthIdx, true
}
