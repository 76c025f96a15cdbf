package models

// BookingRecord is a single row of the booking export that feeds every
// report. The collection is loaded once by the repository layer and then
// treated as immutable input by the stats engine: engines never mutate a
// record in place, they copy when an augmented view is needed.
//
// Field defaults for absent source data: 0 for amounts and slot counts,
// "" for strings. A missing sport is keyed under "Unknown" at grouping
// time; a missing location drops the record from location groupings.
type BookingRecord struct {
	SequenceID   int64  `json:"sequence_id"`
	SlotDate     string `json:"slot_date"` // DD/MM/YYYY as displayed
	SlotTime     string `json:"slot_time"` // "hh:mm AM/PM", may be empty
	Location     string `json:"location"`
	Sport        string `json:"sport"`
	Status       string `json:"status"` // free-form, normalized on use
	Source       string `json:"source"` // "Online" or anything else
	CustomerID   string `json:"customer_id"`
	CustomerName string `json:"customer_name"`
	Phone        string `json:"phone"`

	// Raw payment fields as entered at the venue. A single booking can be
	// paid through several of these at once.
	Cash          float64 `json:"cash"`
	UPI           float64 `json:"upi"`
	BankTransfer  float64 `json:"bank_transfer"`
	HudleApp      float64 `json:"hudle_app"`
	HudleQR       float64 `json:"hudle_qr"`
	HudleWallet   float64 `json:"hudle_wallet"`
	HudlePass     float64 `json:"hudle_pass"`
	HudleDiscount float64 `json:"hudle_discount"`
	VenueDiscount float64 `json:"venue_discount"`

	TotalPaid float64 `json:"total_paid"`
	Balance   float64 `json:"balance"`
	SlotCount int     `json:"slot_count"`

	// PaymentAmount is set only on the defensive copies placed into
	// payment-channel buckets; it carries the amount attributable to that
	// channel. Zero on original records.
	PaymentAmount float64 `json:"payment_amount,omitempty"`
}
