package stats

import (
	"strconv"
	"strings"
	"time"
)

// Canonical status buckets. Raw status strings from the booking export are
// free-form ("Confirmed", "CANCELLED (partial)", ...) and are reduced to
// these four values everywhere in the engine.
const (
	StatusConfirmed          = "confirmed"
	StatusCancelled          = "cancelled"
	StatusPartiallyCancelled = "partially_cancelled"
	StatusUnknown            = "unknown"
)

// Canonical source buckets.
const (
	SourceOnline  = "online"
	SourceOffline = "offline"
)

// SlotDateLayout is the display format of slot dates across the system.
const SlotDateLayout = "02/01/2006"

// ParseAmount parses a monetary string into a float64. Currency symbols,
// "Rs." prefixes, thousands separators and surrounding whitespace are
// stripped first. Empty or unparsable input yields 0: a dirty row must
// never abort a whole report, so monetary parsing is silent-zero rather
// than fail-fast.
func ParseAmount(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, "₹", "")
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "rs.") {
		s = s[3:]
	} else if strings.HasPrefix(lower, "rs") {
		s = s[2:]
	}
	s = strings.TrimSpace(s)

	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return value
}

// ParseSlotDate parses a DD/MM/YYYY slot date. ok is false on malformed
// input; callers skip such records rather than failing.
func ParseSlotDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(SlotDateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ParseSlotTime parses a 12-hour "hh:mm AM/PM" slot time and returns the
// 24-hour hour. ok is false when the time is absent or malformed; such
// records are excluded from time-of-day percentages, not counted as
// non-peak.
func ParseSlotTime(raw string) (int, bool) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if s == "" {
		return 0, false
	}
	var meridiem string
	switch {
	case strings.HasSuffix(s, "AM"):
		meridiem = "AM"
	case strings.HasSuffix(s, "PM"):
		meridiem = "PM"
	default:
		return 0, false
	}
	s = strings.TrimSpace(strings.TrimSuffix(s, meridiem))

	parts := strings.SplitN(s, ":", 2)
	hour, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || hour < 1 || hour > 12 {
		return 0, false
	}
	if meridiem == "PM" && hour != 12 {
		hour += 12
	}
	if meridiem == "AM" && hour == 12 {
		hour = 0
	}
	return hour, true
}

// NormalizeStatus reduces a free-form status string to one of the four
// canonical buckets via case-insensitive substring matching.
func NormalizeStatus(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.Contains(s, "cancel") && strings.Contains(s, "partial"):
		return StatusPartiallyCancelled
	case strings.Contains(s, "cancel"):
		return StatusCancelled
	case strings.Contains(s, "confirm"):
		return StatusConfirmed
	default:
		return StatusUnknown
	}
}

// NormalizeSource maps a source string to online/offline. Only a
// case-insensitive "online" counts as online; everything else, including
// blank, is offline.
func NormalizeSource(raw string) string {
	if strings.EqualFold(strings.TrimSpace(raw), "online") {
		return SourceOnline
	}
	return SourceOffline
}

// NormalizePhone strips every non-digit from a phone number so that
// "98765 43210" and "9876543210" count as the same customer. Blank input
// stays blank and is excluded from unique-customer counts.
func NormalizePhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
