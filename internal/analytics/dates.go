package analytics

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Timestamp is the epoch-seconds wrapper shape some source systems deliver
// instead of a plain date.
type Timestamp struct {
	Seconds     int64 `json:"seconds"`
	Nanoseconds int64 `json:"nanoseconds"`
}

// dateConvertible covers wrapper objects exposing a ToDate conversion.
type dateConvertible interface {
	ToDate() time.Time
}

var stringLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
}

// NormalizeDate coerces the supported date shapes into a UTC time. The second
// return value reports validity; callers treat invalid dates as excluded from
// range membership rather than failing the whole aggregation.
func NormalizeDate(value any) (time.Time, bool) {
	switch v := value.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		if v.IsZero() {
			return time.Time{}, false
		}
		return v.UTC(), true
	case *time.Time:
		if v == nil {
			return time.Time{}, false
		}
		return NormalizeDate(*v)
	case Timestamp:
		return fromEpoch(v.Seconds, v.Nanoseconds)
	case *Timestamp:
		if v == nil {
			return time.Time{}, false
		}
		return fromEpoch(v.Seconds, v.Nanoseconds)
	case dateConvertible:
		return NormalizeDate(v.ToDate())
	case string:
		return parseDateString(v)
	case json.Number:
		return parseDateString(v.String())
	case int:
		return epochGuess(float64(v))
	case int64:
		return epochGuess(float64(v))
	case float64:
		return epochGuess(v)
	case map[string]any:
		// JSON-decoded epoch wrapper.
		if seconds, ok := numericField(v, "seconds"); ok {
			nanos, _ := numericField(v, "nanoseconds")
			return fromEpoch(int64(seconds), int64(nanos))
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}

func fromEpoch(seconds, nanos int64) (time.Time, bool) {
	if seconds <= 0 {
		return time.Time{}, false
	}
	return time.Unix(seconds, nanos).UTC(), true
}

// epochGuess treats large magnitudes as epoch milliseconds.
func epochGuess(value float64) (time.Time, bool) {
	if value <= 0 {
		return time.Time{}, false
	}
	if value >= 1e12 {
		return time.UnixMilli(int64(value)).UTC(), true
	}
	return time.Unix(int64(value), 0).UTC(), true
}

func parseDateString(value string) (time.Time, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, false
	}
	for _, layout := range stringLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t.UTC(), true
		}
	}
	if numeric, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return epochGuess(numeric)
	}
	return time.Time{}, false
}

func numericField(m map[string]any, key string) (float64, bool) {
	raw, ok := m[key]
	if !ok {
		return 0, false
	}
	switch n := raw.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}
