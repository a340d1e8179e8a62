package mactime

import (
	"math"
	"time"
)

// appleEpoch is the reference instant for Apple absolute time:
// message.date counts from 2001-01-01 rather than the Unix epoch.
var appleEpoch = time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)

// maxSeconds is the largest offset representable as a time.Duration.
const maxSeconds = float64(math.MaxInt64) / float64(time.Second)

// Normalize converts a raw message.date value into a local-time instant.
//
// The column's unit varies across macOS versions, so the magnitude decides:
// values above 1e12 are microseconds, values above 1e10 are milliseconds,
// anything else is whole seconds since the Apple epoch. A nil or
// uninterpretable value yields nil; this field is best-effort and never
// fails the retrieval.
func Normalize(raw *float64) *time.Time {
	if raw == nil {
		return nil
	}
	s := *raw
	if math.IsNaN(s) || math.IsInf(s, 0) {
		return nil
	}
	switch {
	case s > 1e12:
		s /= 1e6
	case s > 1e10:
		s /= 1e3
	}
	if s > maxSeconds || s < -maxSeconds {
		return nil
	}
	t := appleEpoch.Add(time.Duration(s * float64(time.Second))).Local()
	return &t
}

// Epoch returns the Apple reference epoch in UTC.
func Epoch() time.Time {
	return appleEpoch
}
