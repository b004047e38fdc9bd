package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Passage is one recorded crossing of a toll point.
// Timestamp is a wall-clock value; its Location is always UTC and carries no
// meaning beyond "no zone".
type Passage struct {
	ID        uuid.UUID `json:"id"`
	Vehicle   Vehicle   `json:"vehicle"`
	Timestamp time.Time `json:"timestamp"`
	CreatedAt time.Time `json:"created_at"`
}

// WallClock strips the zone from t and keeps its clock reading, so
// 2013-02-08T06:27:00+01:00 becomes 2013-02-08T06:27:00 in UTC.
func WallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// TimestampLayout is the zone-less form passages are written and read in.
const TimestampLayout = "2006-01-02T15:04:05"

// ParseTimestamp accepts TimestampLayout or RFC 3339. A zone, when present,
// is dropped and the wall clock kept.
func ParseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(TimestampLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: timestamp %q is neither %s nor RFC 3339", ErrValidation, s, TimestampLayout)
	}
	return WallClock(t), nil
}
