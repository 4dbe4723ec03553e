package utils

import "time"

// NowRFC3339 returns the current time in RFC3339 format
func NowRFC3339() string {
	return FormatRFC3339(time.Now())
}

// FormatRFC3339 formats a timestamp in UTC RFC3339 format
func FormatRFC3339(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
