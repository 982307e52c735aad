package util

import "time"

// FormatTime formats a time in a human-readable way, in local time.
func FormatTime(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04")
}
