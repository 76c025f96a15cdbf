package stats

import (
	"fmt"
	"strconv"
	"strings"

	"turf_analytics_backend/internal/models"
)

// CalculateMonthlyPayments breaks the collection's canonical channel sums
// down by financial-year month. It always returns exactly twelve entries
// in April through March order; months without records are zero-filled.
// Records with an unparsable slot date are skipped.
func CalculateMonthlyPayments(records []models.BookingRecord) []models.MonthlyPaymentEntry {
	entries := make([]models.MonthlyPaymentEntry, len(FinancialYearMonths))
	for i, month := range FinancialYearMonths {
		entries[i] = models.MonthlyPaymentEntry{Month: month}
	}

	for _, r := range records {
		t, ok := ParseSlotDate(r.SlotDate)
		if !ok {
			continue
		}
		idx := FinancialYearMonthIndex(t.Month().String())
		if idx < 0 {
			continue
		}
		cash, bank, hudle := ChannelSums(r)
		entries[idx].CashAmount += cash
		entries[idx].BankAmount += bank
		entries[idx].HudleAmount += hudle
		entries[idx].TotalAmount += cash + bank + hudle
	}
	return entries
}

// CalculateDailyPaymentsByMode maps each slot date inside the given
// financial year to its canonical channel sums. The year label accepts
// both the compact "202425" and the display "2024-25" form; January to
// March dates of the following calendar year belong to the labelled year.
func CalculateDailyPaymentsByMode(records []models.BookingRecord, financialYearLabel string) (map[string]models.DailyPaymentModes, error) {
	startYear, err := parseFinancialYearLabel(financialYearLabel)
	if err != nil {
		return nil, err
	}

	daily := make(map[string]models.DailyPaymentModes)
	for _, r := range records {
		t, ok := ParseSlotDate(r.SlotDate)
		if !ok {
			continue
		}
		if FinancialYearStart(t) != startYear {
			continue
		}
		cash, bank, hudle := ChannelSums(r)
		modes := daily[t.Format(SlotDateLayout)]
		modes.Cash += cash
		modes.Bank += bank
		modes.Hudle += hudle
		daily[t.Format(SlotDateLayout)] = modes
	}
	return daily, nil
}

// parseFinancialYearLabel extracts the start year from labels like
// "202425", "2024-25" or "2024-2025".
func parseFinancialYearLabel(label string) (int, error) {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, label)
	if len(digits) < 4 {
		return 0, fmt.Errorf("invalid financial year label: %q", label)
	}
	startYear, err := strconv.Atoi(digits[:4])
	if err != nil {
		return 0, fmt.Errorf("invalid financial year label: %q", label)
	}
	return startYear, nil
}
