package utils

import (
	"time"
)

const (
	timestampLayout = "2006-01-02 15:04"
	// ArchiveStampLayout names build archives down to the second so repeated
	// runs in one day never collide.
	ArchiveStampLayout = "20060102_150405"
)

// FormatTimestamp returns the provided time formatted using the local time zone
// and a layout that includes date and minutes (locale-sensitive via system TZ).
func FormatTimestamp(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.In(time.Local).Format(timestampLayout)
}

// FormatArchiveStamp renders the compact timestamp embedded in archive filenames.
func FormatArchiveStamp(value time.Time) string {
	return value.In(time.Local).Format(ArchiveStampLayout)
}
