package ledger

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Timestamp is a point in time as seconds and nanoseconds since the epoch
type Timestamp struct {
	Seconds int64
	Nanos   int32
}

// TimestampFromTime converts a time.Time to a Timestamp.
func TimestampFromTime(t time.Time) Timestamp {
	return Timestamp{
		Seconds: t.Unix(),
		Nanos:   int32(t.Nanosecond()),
	}
}

// ParseTimestamp parses a timestamp in the form "seconds.nanos". The nanos
// part is optional.
func ParseTimestamp(s string) (Timestamp, error) {
	secs, nanos, found := strings.Cut(strings.TrimSpace(s), ".")

	seconds, err := strconv.ParseInt(secs, 10, 64)
	if err != nil {
		return Timestamp{}, parseError("timestamp", s, "{seconds}.{nanos}")
	}
	if !found {
		return Timestamp{Seconds: seconds}, nil
	}

	n, err := strconv.ParseUint(nanos, 10, 32)
	if err != nil || n >= uint64(time.Second) {
		return Timestamp{}, parseError("timestamp", s, "{seconds}.{nanos}")
	}
	return Timestamp{Seconds: seconds, Nanos: int32(n)}, nil
}

// Time converts a Timestamp to a time.Time (UTC).
func (ts Timestamp) Time() time.Time {
	return time.Unix(ts.Seconds, int64(ts.Nanos)).UTC()
}

func (ts Timestamp) String() string {
	return fmt.Sprintf("%d.%09d", ts.Seconds, ts.Nanos)
}

// Duration is a span of time with a granularity of seconds
type Duration struct {
	Seconds int64
}

// DurationFromStd converts a time.Duration to a Duration truncating anything
// below the second.
func DurationFromStd(d time.Duration) Duration {
	return Duration{Seconds: int64(d / time.Second)}
}

// Std converts a Duration to a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d.Seconds) * time.Second
}

func (d Duration) String() string {
	return d.Std().String()
}
