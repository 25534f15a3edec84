package value

import (
	"time"
)

// Unset marks a bound value that should be left untouched by the server.
// It serializes to the UNSET sentinel (length -2), never to NULL.
type Unset struct{}

// Counter is a 64-bit counter delta. It encodes identically to a plain
// 64-bit integer.
type Counter int64

// MaybeUnset wraps a value that may be intentionally omitted from a bind.
// The zero value is unset. An unset MaybeUnset always serializes as UNSET,
// never as NULL.
type MaybeUnset[V any] struct {
	// Set reports whether Value should be bound.
	Set bool
	// Value is the bound value when Set is true.
	Value V
}

// SetValue returns a MaybeUnset holding v.
func SetValue[V any](v V) MaybeUnset[V] {
	return MaybeUnset[V]{Set: true, Value: v}
}

// CqlDate is the native CQL date representation: an unsigned day offset
// where day 0 is 2^31 days before the Unix epoch. The representable range
// (roughly -5877641-06-23 to 5881580-07-11) exceeds what most calendar
// libraries cover, which is why the raw offset is the canonical form.
type CqlDate uint32

// CqlTimestamp is the native CQL timestamp representation: signed
// milliseconds since the Unix epoch.
type CqlTimestamp int64

// CqlTime is the native CQL time representation: nanoseconds since midnight.
type CqlTime int64

// CqlDuration is a CQL duration value. Each component is independently
// vint-encoded on the wire.
type CqlDuration struct {
	Months      int32
	Days        int32
	Nanoseconds int64
}

const (
	// dateEpochOffset places CqlDate day 0 at 2^31 days before the epoch.
	dateEpochOffset = int64(1) << 31

	secondsPerDay = 86400

	// maxCqlTime is 23:59:59.999999999 with a leap-second allowance.
	maxCqlTime = CqlTime(86399999999999)
)

// CqlDateFromTime converts the calendar date of t (in its location) to a
// CqlDate. Dates outside the CqlDate range fail with ErrValueOverflow.
func CqlDateFromTime(t time.Time) (CqlDate, error) {
	year, month, day := t.Date()
	midnight := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)

	days := floorDiv(midnight.Unix(), secondsPerDay) + dateEpochOffset
	if days < 0 || days > int64(^uint32(0)) {
		return 0, ErrValueOverflow
	}

	return CqlDate(days), nil
}

// Time returns the date as midnight UTC of the corresponding calendar day.
func (d CqlDate) Time() time.Time {
	days := int64(d) - dateEpochOffset

	return time.Unix(days*secondsPerDay, 0).UTC()
}

// CqlTimestampFromTime converts t to a millisecond-precision timestamp.
func CqlTimestampFromTime(t time.Time) CqlTimestamp {
	return CqlTimestamp(t.UnixMilli())
}

// Time returns the timestamp as a time.Time in UTC.
func (ts CqlTimestamp) Time() time.Time {
	return time.UnixMilli(int64(ts)).UTC()
}

// CqlTimeFromDuration converts a duration since midnight to a CqlTime.
// Durations outside [0, 23:59:59.999999999] fail with ErrValueOverflow.
func CqlTimeFromDuration(d time.Duration) (CqlTime, error) {
	ns := CqlTime(d.Nanoseconds())
	if ns < 0 || ns > maxCqlTime {
		return 0, ErrValueOverflow
	}

	return ns, nil
}

// Duration returns the time as a duration since midnight. Values outside the
// valid CQL time range fail with ErrValueOverflow.
func (t CqlTime) Duration() (time.Duration, error) {
	if t < 0 || t > maxCqlTime {
		return 0, ErrValueOverflow
	}

	return time.Duration(t), nil
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b < 0 {
		q--
	}

	return q
}
