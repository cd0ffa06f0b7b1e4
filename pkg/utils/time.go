package utils

import "time"

// NowRFC3339 returns the current UTC time in RFC3339 format.
func NowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// ParseISODate parses an ISO 8601 value, accepting a full RFC3339 timestamp
// or a bare date such as 2024-03-15.
func ParseISODate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
