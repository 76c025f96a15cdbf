package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"turf_analytics_backend/internal/models"
	"turf_analytics_backend/internal/stats"
	"turf_analytics_backend/pkg/utils"

	"github.com/redis/go-redis/v9"
)

// bookingCacheTTL is how long a loaded booking collection is kept in
// Redis before it is re-read from Postgres.
const bookingCacheTTL = 60 * time.Second

// BookingRepository loads the in-memory booking collection the stats
// engine works on. Monetary columns come back as numbers; slot dates stay
// in their DD/MM/YYYY display form.
type BookingRepository interface {
	// GetBookings returns the records of one financial year ("2024-25"),
	// or every record when financialYear is empty, in sequence order.
	GetBookings(ctx context.Context, financialYear string) ([]models.BookingRecord, error)

	// InvalidateYear drops any cached collection for the given year.
	InvalidateYear(ctx context.Context, financialYear string)
}

type bookingRepository struct {
	db    *sql.DB
	redis *redis.Client // optional; nil disables collection caching
}

// NewBookingRepository creates a new instance of BookingRepository.
func NewBookingRepository(db *sql.DB, redisClient *redis.Client) BookingRepository {
	return &bookingRepository{db: db, redis: redisClient}
}

const selectBookingsQuery = `
	SELECT sequence_id, slot_date, slot_time, location, sport, status, source,
	       customer_id, customer_name, phone,
	       cash, upi, bank_transfer, hudle_app, hudle_qr, hudle_wallet,
	       hudle_pass, hudle_discount, venue_discount,
	       total_paid, balance, slot_count
	FROM bookings
	ORDER BY sequence_id`

func (r *bookingRepository) GetBookings(ctx context.Context, financialYear string) ([]models.BookingRecord, error) {
	cacheKey := "bookings:" + financialYear

	// Try the collection cache first.
	if r.redis != nil {
		cached, err := r.redis.Get(ctx, cacheKey).Result()
		if err == nil {
			var records []models.BookingRecord
			if err := json.Unmarshal([]byte(cached), &records); err == nil {
				return records, nil
			}
		}
	}

	rows, err := r.db.QueryContext(ctx, selectBookingsQuery)
	if err != nil {
		return nil, fmt.Errorf("%w: query bookings: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	var records []models.BookingRecord
	for rows.Next() {
		record, err := scanBookingRow(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan booking: %v", ErrDatabaseError, err)
		}
		if financialYear != "" && !recordInFinancialYear(record, financialYear) {
			continue
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate bookings: %v", ErrDatabaseError, err)
	}

	if r.redis != nil {
		if data, err := json.Marshal(records); err == nil {
			r.redis.SetEx(ctx, cacheKey, data, bookingCacheTTL)
		}
	}
	return records, nil
}

func (r *bookingRepository) InvalidateYear(ctx context.Context, financialYear string) {
	if r.redis == nil {
		return
	}
	if err := r.redis.Del(ctx, "bookings:"+financialYear).Err(); err != nil {
		utils.LogWarn("Failed to invalidate booking cache", map[string]interface{}{
			"financial_year": financialYear,
			"error":          err.Error(),
		})
	}
}

// scanBookingRow scans a single booking row. Optional text columns are
// scanned through sql.NullString so a NULL lands as the documented ""
// default rather than an error.
func scanBookingRow(row scanner) (models.BookingRecord, error) {
	var record models.BookingRecord
	var slotTime, location, sport, status, source sql.NullString
	var customerID, customerName, phone sql.NullString

	err := row.Scan(
		&record.SequenceID, &record.SlotDate, &slotTime, &location, &sport, &status, &source,
		&customerID, &customerName, &phone,
		&record.Cash, &record.UPI, &record.BankTransfer, &record.HudleApp, &record.HudleQR,
		&record.HudleWallet, &record.HudlePass, &record.HudleDiscount, &record.VenueDiscount,
		&record.TotalPaid, &record.Balance, &record.SlotCount,
	)
	if err != nil {
		return models.BookingRecord{}, err
	}

	record.SlotTime = slotTime.String
	record.Location = location.String
	record.Sport = sport.String
	record.Status = status.String
	record.Source = source.String
	record.CustomerID = customerID.String
	record.CustomerName = customerName.String
	record.Phone = phone.String
	return record, nil
}

// recordInFinancialYear filters by the slot date's financial year. Slot
// dates are stored as display strings, so the filter runs after the scan.
// Records with an unparsable date never match a year filter.
func recordInFinancialYear(record models.BookingRecord, financialYear string) bool {
	t, ok := stats.ParseSlotDate(record.SlotDate)
	if !ok {
		return false
	}
	return stats.FinancialYearLabel(t) == financialYear
}
