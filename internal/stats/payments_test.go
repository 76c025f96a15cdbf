package stats

import (
	"testing"

	"turf_analytics_backend/internal/models"
)

func TestCalculateMonthlyPaymentsFixedShape(t *testing.T) {
	entries := CalculateMonthlyPayments(nil)
	if len(entries) != 12 {
		t.Fatalf("expected 12 entries, got %d", len(entries))
	}
	if entries[0].Month != "April" || entries[11].Month != "March" {
		t.Errorf("entries must run April through March, got %q ... %q", entries[0].Month, entries[11].Month)
	}
	for _, e := range entries {
		if e.CashAmount != 0 || e.BankAmount != 0 || e.HudleAmount != 0 || e.TotalAmount != 0 {
			t.Errorf("empty month %s must be zero-filled: %+v", e.Month, e)
		}
	}
}

func TestCalculateMonthlyPayments(t *testing.T) {
	entries := CalculateMonthlyPayments(sampleRecords())
	if len(entries) != 12 {
		t.Fatalf("expected 12 entries, got %d", len(entries))
	}

	byMonth := make(map[string]models.MonthlyPaymentEntry, len(entries))
	for _, e := range entries {
		byMonth[e.Month] = e
	}
	if e := byMonth["April"]; e.CashAmount != 500 || e.TotalAmount != 500 {
		t.Errorf("April entry wrong: %+v", e)
	}
	if e := byMonth["May"]; e.BankAmount != 500 || e.TotalAmount != 500 {
		t.Errorf("May entry wrong: %+v", e)
	}
	if e := byMonth["January"]; e.HudleAmount != 1100 || e.CashAmount != 200 || e.TotalAmount != 1300 {
		t.Errorf("January entry wrong: %+v", e)
	}
	if e := byMonth["June"]; e.TotalAmount != 0 {
		t.Errorf("June should be empty: %+v", e)
	}
}

func TestCalculateDailyPaymentsByMode(t *testing.T) {
	records := []models.BookingRecord{
		{SlotDate: "15/04/2024", Cash: 500},
		{SlotDate: "25/05/2024", UPI: 300, BankTransfer: 200},
		{SlotDate: "10/01/2025", HudleApp: 1000},
	}

	daily, err := CalculateDailyPaymentsByMode(records, "202425")
	if err != nil {
		t.Fatal(err)
	}
	if len(daily) != 3 {
		t.Fatalf("expected 3 date keys, got %v", daily)
	}
	if m := daily["15/04/2024"]; m.Cash != 500 || m.Bank != 0 || m.Hudle != 0 {
		t.Errorf("15/04/2024 = %+v, want Cash=500 only", m)
	}
	if m := daily["25/05/2024"]; m.Bank != 500 || m.Cash != 0 || m.Hudle != 0 {
		t.Errorf("25/05/2024 = %+v, want Bank=500 only", m)
	}
	// January 2025 falls inside financial year 2024-25.
	if m := daily["10/01/2025"]; m.Hudle != 1000 || m.Cash != 0 || m.Bank != 0 {
		t.Errorf("10/01/2025 = %+v, want Hudle=1000 only", m)
	}
}

func TestCalculateDailyPaymentsByModeFiltersYear(t *testing.T) {
	records := []models.BookingRecord{
		{SlotDate: "15/04/2024", Cash: 500},
		{SlotDate: "15/03/2024", Cash: 900}, // March 2024 is FY 2023-24
	}
	daily, err := CalculateDailyPaymentsByMode(records, "2024-25")
	if err != nil {
		t.Fatal(err)
	}
	if _, present := daily["15/03/2024"]; present {
		t.Error("a March 2024 record belongs to FY 2023-24 and must be filtered out")
	}
	if len(daily) != 1 {
		t.Errorf("expected only the 2024-25 record, got %v", daily)
	}
}

func TestCalculateDailyPaymentsByModeBadLabel(t *testing.T) {
	if _, err := CalculateDailyPaymentsByMode(nil, "FY"); err == nil {
		t.Error("expected an error for an unparsable year label")
	}
}
