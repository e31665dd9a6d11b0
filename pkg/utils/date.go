package utils

import (
	"time"
)

// PrettyDate formats t for human readable notification text.
func PrettyDate(t time.Time) string {
	return t.Format("02 Jan 2006 15:04:05 MST")
}

// ToPointer returns a pointer to v.
func ToPointer[T any](v T) *T {
	return &v
}
