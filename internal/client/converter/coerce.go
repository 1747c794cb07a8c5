package converter

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const DateLayout = "2006-01-02"

// scalar unwraps a JSON number or string into its text form. ok is false for null,
// missing, objects and arrays.
func scalar(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", false
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", false
		}
		s = strings.TrimSpace(s)
		return s, s != ""
	case '{', '[', 't', 'f':
		return "", false
	default:
		return string(raw), true
	}
}

func parseDecimal(raw json.RawMessage) (decimal.Decimal, bool) {
	s, ok := scalar(raw)
	if !ok {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// Money coerces a cost to a non-negative decimal; anything unusable becomes zero.
func Money(raw json.RawMessage) decimal.Decimal {
	d, ok := parseDecimal(raw)
	if !ok || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// NullableMoney keeps nil for absent or unusable costs.
func NullableMoney(raw json.RawMessage) *decimal.Decimal {
	d, ok := parseDecimal(raw)
	if !ok {
		return nil
	}
	if d.IsNegative() {
		d = decimal.Zero
	}
	return &d
}

// maxCount bounds quantities and mileage; larger values are treated as garbage.
var maxCount = decimal.NewFromInt(math.MaxInt32)

// Quantity truncates to an integer and falls back to 1 when the value is missing,
// non-numeric, below 1 or above MaxInt32.
func Quantity(raw json.RawMessage) int {
	d, ok := parseDecimal(raw)
	if !ok || d.GreaterThan(maxCount) {
		return 1
	}
	q := d.IntPart()
	if q < 1 {
		return 1
	}
	return int(q)
}

// NormalizeQuantity applies the same default to an outgoing value.
func NormalizeQuantity(q int) int {
	if q < 1 {
		return 1
	}
	return q
}

// nonNegativeInt yields 0 for anything missing, negative or above MaxInt32.
func nonNegativeInt(raw json.RawMessage) int64 {
	d, ok := parseDecimal(raw)
	if !ok || d.IsNegative() || d.GreaterThan(maxCount) {
		return 0
	}
	return d.IntPart()
}

// ParseDate accepts YYYY-MM-DD or an RFC 3339 timestamp and returns the calendar day in UTC.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		y, m, d := t.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}

func FormatDate(t time.Time) string { return t.Format(DateLayout) }

func datePtr(s *string) *time.Time {
	if s == nil {
		return nil
	}
	t, ok := ParseDate(*s)
	if !ok {
		return nil
	}
	return &t
}

func timestampPtr(s *string) *time.Time {
	if s == nil {
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(*s))
	if err != nil {
		return nil
	}
	return &t
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
