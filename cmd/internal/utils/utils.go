package utils

import (
	"time"
)

// TimestampLayout is ISO-8601 with microseconds and an explicit UTC offset.
const TimestampLayout = "2006-01-02T15:04:05.000000-07:00"

func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

func NowUTC() string {
	return FormatTimestamp(time.Now())
}
