// Package astro computes apparent sun and moon positions and the events
// derived from them: rise and set at configurable twilight angles, solar
// and lunar transits, and moon illumination and phase.
//
// The formulas are the published low-precision series (Astronomical
// Algorithms, Jean Meeus, 2nd ed.), good to about an arc minute. All
// functions are pure; the only mutable state in the package is the
// Default event table, which callers may extend at startup.
package astro

import (
	"math"
	"time"
)

const (
	rad = math.Pi / 180

	// dayMs is the length of a day in milliseconds. Julian day arithmetic
	// is done in milliseconds so instant -> julian day -> instant round
	// trips exactly.
	dayMs = 1000 * 60 * 60 * 24

	// Julian day of the Unix epoch and of J2000.0 (2000-01-01T12:00Z).
	j1970 = 2440588
	j2000 = 2451545
)

// ToJulian converts an instant to a continuous julian day count.
func ToJulian(t time.Time) float64 {
	return float64(t.UnixMilli())/dayMs - 0.5 + j1970
}

// FromJulian converts a julian day back to an instant in UTC.
// Rounds to the nearest millisecond, so FromJulian(ToJulian(t))
// reproduces t at millisecond precision.
func FromJulian(j float64) time.Time {
	ms := math.Round((j + 0.5 - j1970) * dayMs)
	return time.UnixMilli(int64(ms)).UTC()
}

// ToDays returns fractional days elapsed since J2000.0.
func ToDays(t time.Time) float64 {
	return ToJulian(t) - j2000
}

// hoursLater offsets an instant by a fractional number of hours.
func hoursLater(t time.Time, h float64) time.Time {
	return t.Add(time.Duration(h * float64(time.Hour)))
}

// noonOf snaps an instant to 12:00 of its calendar day, in the
// instant's own location or in UTC when utc is set. Fixing the day at
// noon keeps the julian cycle number stable across the whole day.
func noonOf(t time.Time, utc bool) time.Time {
	loc := t.Location()
	if utc {
		loc = time.UTC
		t = t.UTC()
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, loc)
}

// midnightOf snaps an instant to 00:00 of its calendar day, in the
// instant's own location or in UTC when utc is set.
func midnightOf(t time.Time, utc bool) time.Time {
	loc := t.Location()
	if utc {
		loc = time.UTC
		t = t.UTC()
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
