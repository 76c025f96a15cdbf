package models

// GroupedResult maps a category key to the records that fell into that
// bucket, in input order. For every one-to-one dimension (day, month,
// year, location, sport, status, source) each input record lands in at
// most one bucket; records missing the key field are dropped, never
// duplicated.
type GroupedResult map[string][]BookingRecord

// MultiGroupedResult is the payment-channel grouping. It is a distinct
// type because its invariant differs: a booking paid through several
// channels appears in every channel bucket whose sum is positive, so
// bucket sizes do not add up to the input length.
type MultiGroupedResult map[string][]BookingRecord

// CategoryEntry is a (label, value) pair as consumed by category charts,
// e.g. ("April 2023", 15400).
type CategoryEntry struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// ExtraStatCalculator is a category-specific derived metric: a label plus
// a pure function over a record slice. The returned value may be a scalar
// or a structured value (e.g. TopCustomerValue); it is merged into
// StatsResult.Extras verbatim, never flattened.
type ExtraStatCalculator struct {
	Label string
	Calc  func(records []BookingRecord) interface{}
}

// CategoryConfig is the static configuration for one grouping dimension.
type CategoryConfig struct {
	Category   string                // dimension name, matched case-insensitively
	KeyField   string                // record field the dimension keys on
	KeyOrder   []string              // optional explicit key ordering (e.g. financial-year months)
	ExtraStats []ExtraStatCalculator // evaluated against the selected sub-collection
}

// TopCustomerValue is the structured value produced by the top-customer
// extra stat. Phone is a back-reference for the frontend tooltip, not an
// ownership reference.
type TopCustomerValue struct {
	Display string  `json:"display"`
	Phone   string  `json:"phone"`
	Revenue float64 `json:"revenue"`
}

// ChannelAmount is one slice of the payment distribution.
type ChannelAmount struct {
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
}

// PaymentDistribution is the canonical three-channel split.
type PaymentDistribution struct {
	Cash  ChannelAmount `json:"cash"`
	Bank  ChannelAmount `json:"bank"`
	Hudle ChannelAmount `json:"hudle"`
}

// TimeOfDayDistribution splits bookings into peak (18:00-23:00) and
// non-peak slots. Records without a parseable slot time are excluded
// from the percentages entirely.
type TimeOfDayDistribution struct {
	PeakCount         int     `json:"peak_count"`
	NonPeakCount      int     `json:"non_peak_count"`
	PeakPercentage    float64 `json:"peak_percentage"`
	NonPeakPercentage float64 `json:"non_peak_percentage"`
}

// CustomerStat is one row of the top-customer list.
type CustomerStat struct {
	CustomerID string  `json:"customer_id"`
	Name       string  `json:"name"`
	Phone      string  `json:"phone"`
	Bookings   int     `json:"bookings"`
	Revenue    float64 `json:"revenue"`
}

// SubAggregate is the shared shape of the monthly and per-location
// sub-aggregates inside a summary.
type SubAggregate struct {
	Count           int     `json:"count"`
	Revenue         float64 `json:"revenue"`
	Slots           int     `json:"slots"`
	UniqueCustomers int     `json:"unique_customers"`
}

// MonthlyAggregate is a SubAggregate keyed by its financial-year month
// bucket label.
type MonthlyAggregate struct {
	Month string `json:"month"`
	SubAggregate
}

// MonthlyPaymentEntry is one of the twelve fixed entries returned by
// CalculateMonthlyPayments, in financial-year order April through March.
type MonthlyPaymentEntry struct {
	Month       string  `json:"month"`
	CashAmount  float64 `json:"cash_amount"`
	BankAmount  float64 `json:"bank_amount"`
	HudleAmount float64 `json:"hudle_amount"`
	TotalAmount float64 `json:"total_amount"`
}

// DailyPaymentModes holds the per-date canonical channel sums returned by
// CalculateDailyPaymentsByMode.
type DailyPaymentModes struct {
	Cash  float64 `json:"cash"`
	Bank  float64 `json:"bank"`
	Hudle float64 `json:"hudle"`
}

// StatsResult is an immutable computed snapshot for one scope (the whole
// collection, or one category key). It is created by the aggregation
// engine, memoized by the result cache, and never mutated afterwards.
type StatsResult struct {
	TotalBookings     int     `json:"total_bookings"`
	TotalCollection   float64 `json:"total_collection"`
	TotalSlots        int     `json:"total_slots"`
	TotalBalance      float64 `json:"total_balance"`
	UniqueCustomers   int     `json:"unique_customers"`
	AvgRevenuePerSlot float64 `json:"avg_revenue_per_slot"`

	CompletionRate   float64        `json:"completion_rate"`
	OnlineCount      int            `json:"online_count"`
	OnlinePercentage float64        `json:"online_percentage"`
	StatusCounts     map[string]int `json:"status_counts"`

	Payments  PaymentDistribution   `json:"payments"`
	TimeOfDay TimeOfDayDistribution `json:"time_of_day"`

	TopCustomers []CustomerStat          `json:"top_customers"`
	Monthly      []MonthlyAggregate      `json:"monthly"`
	Locations    map[string]SubAggregate `json:"locations"`

	// Extras holds the values contributed by the category configuration's
	// ExtraStatCalculators, keyed by label. Values keep their original
	// shape so the presentation layer can distinguish them.
	Extras map[string]interface{} `json:"extras,omitempty"`
}
