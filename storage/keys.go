package storage

import (
	"fmt"
	"regexp"
	"time"
)

var unsafeKeyChars = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

// SanitizeFilename replaces every character outside [a-zA-Z0-9.-] with an
// underscore so the result is safe as an object key segment.
func SanitizeFilename(name string) string {
	return unsafeKeyChars.ReplaceAllString(name, "_")
}

// ObjectKey builds a bucket-wide unique object key from a millisecond
// timestamp and the sanitized original filename. prefix, when non-empty,
// must include its trailing slash (e.g. "submissions/").
func ObjectKey(prefix, filename string, now time.Time) string {
	return fmt.Sprintf("%s%d_%s", prefix, now.UnixMilli(), SanitizeFilename(filename))
}
