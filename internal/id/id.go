// Package id generates identifiers used by the access layer: microsecond
// timestamp entry IDs matching the food-log wire format, and short request
// IDs for log correlation.
package id

import (
	"fmt"
	"strconv"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Entry returns the food-log entry ID for a point in time: the millisecond
// timestamp scaled to microseconds, rendered as a decimal string. Entry IDs
// sort chronologically and double as the document field key, so they must
// stay digit-only.
func Entry(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli()*1000, 10)
}

// Food returns the synthetic food ID paired with an entry ID. The app offsets
// it from the entry timestamp so the two never collide.
func Food(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli()*1000+10, 10)
}

// Request creates a prefixed unique ID using NanoID, e.g. "req-V1StGXR8_Z5jdHi6B-myT".
// NanoIDs are URL-friendly and compact (21 characters vs UUID's 36).
func Request(prefix string) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + id, nil
}

// MustRequest is like Request but panics if ID generation fails. Use only
// where failure should crash the program (e.g. during initialization).
func MustRequest(prefix string) string {
	id, err := Request(prefix)
	if err != nil {
		panic(fmt.Sprintf("failed to generate ID: %v", err))
	}
	return id
}
