package services

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"turf_analytics_backend/internal/models"
)

// stubBookingRepository serves a fixed in-memory collection, standing in
// for the Postgres-backed repository.
type stubBookingRepository struct {
	records     []models.BookingRecord
	invalidated []string
}

func (s *stubBookingRepository) GetBookings(ctx context.Context, financialYear string) ([]models.BookingRecord, error) {
	return s.records, nil
}

func (s *stubBookingRepository) InvalidateYear(ctx context.Context, financialYear string) {
	s.invalidated = append(s.invalidated, financialYear)
}

func fixtureRecords() []models.BookingRecord {
	return []models.BookingRecord{
		{SequenceID: 1, SlotDate: "15/04/2024", Location: "Andheri", Sport: "Football", Status: "Confirmed", Source: "Online", Phone: "9876543210", Cash: 500, TotalPaid: 500, SlotCount: 1},
		{SequenceID: 2, SlotDate: "25/05/2024", Location: "Powai", Sport: "Cricket", Status: "Cancelled", Source: "Offline", Phone: "9000000000", UPI: 300, BankTransfer: 200, TotalPaid: 500, SlotCount: 2},
		{SequenceID: 3, SlotDate: "10/01/2025", Location: "Andheri", Sport: "Football", Status: "Confirmed", Source: "online", Phone: "9111111111", HudleApp: 1000, TotalPaid: 1000, SlotCount: 1},
	}
}

func newTestService() (StatsService, *stubBookingRepository) {
	repo := &stubBookingRepository{records: fixtureRecords()}
	return NewStatsService(repo, 0), repo
}

func TestGetSummary(t *testing.T) {
	svc, _ := newTestService()
	summary, err := svc.GetSummary(context.Background(), "2024-25")
	if err != nil {
		t.Fatal(err)
	}
	if summary.TotalBookings != 3 || summary.TotalCollection != 2000 {
		t.Errorf("summary = %d bookings / %v collection", summary.TotalBookings, summary.TotalCollection)
	}
}

func TestGetSummaryIsCached(t *testing.T) {
	svc, _ := newTestService()
	first, err := svc.GetSummary(context.Background(), "2024-25")
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.GetSummary(context.Background(), "2024-25")
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Error("unchanged input must return the cached snapshot")
	}
}

func TestGetCategoryStats(t *testing.T) {
	svc, _ := newTestService()

	t.Run("known dimension and key", func(t *testing.T) {
		result, err := svc.GetCategoryStats(context.Background(), "2024-25", "location", "Andheri")
		if err != nil {
			t.Fatal(err)
		}
		if result.TotalBookings != 2 || result.TotalCollection != 1500 {
			t.Errorf("Andheri stats = %d / %v", result.TotalBookings, result.TotalCollection)
		}
		if _, ok := result.Extras["Top Customer"]; !ok {
			t.Error("location config must contribute the Top Customer extra")
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		first, err := svc.GetCategoryStats(context.Background(), "2024-25", "location", "Andheri")
		if err != nil {
			t.Fatal(err)
		}
		second, err := svc.GetCategoryStats(context.Background(), "2024-25", "location", "Andheri")
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(first, second) {
			t.Error("repeat calls with unchanged input must be deep-equal")
		}
	})

	t.Run("unknown dimension", func(t *testing.T) {
		_, err := svc.GetCategoryStats(context.Background(), "2024-25", "galaxy", "x")
		if !errors.Is(err, ErrUnknownCategory) {
			t.Errorf("expected ErrUnknownCategory, got %v", err)
		}
	})
}

func TestChangedCollectionMissesCache(t *testing.T) {
	repo := &stubBookingRepository{records: fixtureRecords()}
	svc := NewStatsService(repo, 0)

	first, err := svc.GetSummary(context.Background(), "2024-25")
	if err != nil {
		t.Fatal(err)
	}

	// A new record changes length and boundary ids, so the old snapshot
	// must not be served.
	repo.records = append(repo.records, models.BookingRecord{SequenceID: 4, SlotDate: "11/01/2025", TotalPaid: 700, SlotCount: 1})
	second, err := svc.GetSummary(context.Background(), "2024-25")
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Error("changed collection must not return the stale cached result")
	}
	if second.TotalBookings != 4 {
		t.Errorf("TotalBookings = %d, want 4", second.TotalBookings)
	}
}

func TestGetAllCategoryStats(t *testing.T) {
	svc, _ := newTestService()
	all, err := svc.GetAllCategoryStats(context.Background(), "2024-25")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != len(DefaultCategoryConfigs()) {
		t.Errorf("expected one entry per configured dimension, got %d", len(all))
	}
	locations, ok := all["location"]
	if !ok {
		t.Fatal("location dimension missing from batch result")
	}
	if locations["Andheri"].TotalBookings != 2 || locations["Powai"].TotalBookings != 1 {
		t.Errorf("location buckets wrong: %+v", locations)
	}
}

func TestGetMonthlyPayments(t *testing.T) {
	svc, _ := newTestService()
	entries, err := svc.GetMonthlyPayments(context.Background(), "2024-25")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 12 {
		t.Fatalf("expected 12 entries, got %d", len(entries))
	}
	if entries[0].Month != "April" || entries[0].CashAmount != 500 {
		t.Errorf("April entry wrong: %+v", entries[0])
	}
}

func TestGetDailyPaymentsByMode(t *testing.T) {
	svc, _ := newTestService()
	daily, err := svc.GetDailyPaymentsByMode(context.Background(), "2024-25")
	if err != nil {
		t.Fatal(err)
	}
	if len(daily) != 3 {
		t.Errorf("expected 3 dates, got %v", daily)
	}
	if daily["10/01/2025"].Hudle != 1000 {
		t.Errorf("10/01/2025 = %+v", daily["10/01/2025"])
	}

	t.Run("bad year label", func(t *testing.T) {
		_, err := svc.GetDailyPaymentsByMode(context.Background(), "FY")
		if !errors.Is(err, ErrInvalidYearFormat) {
			t.Errorf("expected ErrInvalidYearFormat, got %v", err)
		}
	})
}

func TestSortBookings(t *testing.T) {
	svc, _ := newTestService()
	sorted, err := svc.SortBookings(context.Background(), "2024-25", "total_paid", "desc")
	if err != nil {
		t.Fatal(err)
	}
	if sorted[0].TotalPaid != 1000 {
		t.Errorf("descending sort wrong: %+v", sorted[0])
	}
}

func TestClearCacheForYear(t *testing.T) {
	svc, repo := newTestService()
	first, err := svc.GetSummary(context.Background(), "2024-25")
	if err != nil {
		t.Fatal(err)
	}

	removed := svc.ClearCacheForYear(context.Background(), "2024-25")
	if removed != 1 {
		t.Errorf("expected 1 cached result cleared, got %d", removed)
	}
	if len(repo.invalidated) != 1 || repo.invalidated[0] != "2024-25" {
		t.Errorf("repository cache must be invalidated too: %v", repo.invalidated)
	}

	second, err := svc.GetSummary(context.Background(), "2024-25")
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Error("summary after a clear must recompute")
	}
}

func TestClearCache(t *testing.T) {
	svc, _ := newTestService()
	first, err := svc.GetSummary(context.Background(), "2024-25")
	if err != nil {
		t.Fatal(err)
	}
	svc.ClearCache()
	second, err := svc.GetSummary(context.Background(), "2024-25")
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Error("ClearCache must drop the cached snapshot")
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("recomputation over unchanged input must be deep-equal")
	}
}
