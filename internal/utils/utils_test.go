package utils_test

import (
	"testing"
	"time"

	"github.com/gusface/kodipack/internal/utils"
)

// TestDeduplicatePatterns verifies order-preserving deduplication.
func TestDeduplicatePatterns(testingHandle *testing.T) {
	deduplicated := utils.DeduplicatePatterns([]string{"*.log", "cache/*", "*.log", "temp/*", "cache/*"})
	expected := []string{"*.log", "cache/*", "temp/*"}
	if len(deduplicated) != len(expected) {
		testingHandle.Fatalf("deduplicated %v, expected %v", deduplicated, expected)
	}
	for patternIndex, expectedPattern := range expected {
		if deduplicated[patternIndex] != expectedPattern {
			testingHandle.Fatalf("deduplicated %v, expected %v", deduplicated, expected)
		}
	}
}

// TestContainsString verifies membership checks.
func TestContainsString(testingHandle *testing.T) {
	allowlist := []string{"userdata", "addons"}
	if !utils.ContainsString(allowlist, "userdata") {
		testingHandle.Fatalf("expected membership for userdata")
	}
	if utils.ContainsString(allowlist, "media") {
		testingHandle.Fatalf("unexpected membership for media")
	}
	if utils.ContainsString(nil, "userdata") {
		testingHandle.Fatalf("unexpected membership in nil slice")
	}
}

// TestFormatFileSize verifies the human-readable size rendering.
func TestFormatFileSize(testingHandle *testing.T) {
	testCases := []struct {
		bytes    int64
		expected string
	}{
		{bytes: 0, expected: "0b"},
		{bytes: 512, expected: "512b"},
		{bytes: 1024, expected: "1kb"},
		{bytes: 1536, expected: "1.5kb"},
		{bytes: 95 * 1024 * 1024, expected: "95mb"},
		{bytes: 5 * 1024 * 1024 * 1024, expected: "5gb"},
		{bytes: -8, expected: "0b"},
	}
	for _, testCase := range testCases {
		if actual := utils.FormatFileSize(testCase.bytes); actual != testCase.expected {
			testingHandle.Fatalf("FormatFileSize(%d) = %q, expected %q", testCase.bytes, actual, testCase.expected)
		}
	}
}

// TestFormatArchiveStamp verifies the compact archive timestamp.
func TestFormatArchiveStamp(testingHandle *testing.T) {
	stampValue := time.Date(2024, 1, 2, 15, 4, 5, 0, time.Local)
	if stamp := utils.FormatArchiveStamp(stampValue); stamp != "20240102_150405" {
		testingHandle.Fatalf("FormatArchiveStamp = %q, expected 20240102_150405", stamp)
	}
}

// TestFormatTimestampZeroValue verifies the zero time renders empty.
func TestFormatTimestampZeroValue(testingHandle *testing.T) {
	if formatted := utils.FormatTimestamp(time.Time{}); formatted != "" {
		testingHandle.Fatalf("FormatTimestamp(zero) = %q, expected empty", formatted)
	}
}
