package astro

import (
	"math"
	"testing"
	"time"
)

func TestJulianRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		time time.Time
	}{
		{"epoch", time.Unix(0, 0).UTC()},
		{"J2000", time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)},
		{"midnight", time.Date(2013, 3, 5, 0, 0, 0, 0, time.UTC)},
		{"with millis", time.Date(2013, 3, 5, 2, 9, 1, 832e6, time.UTC)},
		{"far future", time.Date(2100, 12, 31, 23, 59, 59, 999e6, time.UTC)},
		{"before epoch", time.Date(1957, 10, 4, 19, 28, 34, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromJulian(ToJulian(tt.time))
			if !got.Equal(tt.time) {
				t.Errorf("FromJulian(ToJulian(%v)) = %v, want exact round trip", tt.time, got)
			}
		})
	}
}

func TestJulianEpochConstants(t *testing.T) {
	// J2000.0 is 2000-01-01 12:00 UTC by definition.
	j := ToJulian(time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC))
	if j != j2000 {
		t.Errorf("ToJulian(J2000 epoch) = %f, want %d", j, j2000)
	}

	d := ToDays(time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC))
	if d != 0 {
		t.Errorf("ToDays(J2000 epoch) = %f, want 0", d)
	}

	// The Unix epoch starts at julian day J1970 - 0.5 (midnight).
	j = ToJulian(time.Unix(0, 0))
	if j != j1970-0.5 {
		t.Errorf("ToJulian(unix epoch) = %f, want %f", j, float64(j1970)-0.5)
	}
}

func TestNoonOf(t *testing.T) {
	kyiv := time.FixedZone("EET", 2*3600)

	tests := []struct {
		name string
		in   time.Time
		utc  bool
		want time.Time
	}{
		{
			name: "utc day boundary",
			in:   time.Date(2013, 3, 5, 23, 30, 0, 0, time.UTC),
			utc:  true,
			want: time.Date(2013, 3, 5, 12, 0, 0, 0, time.UTC),
		},
		{
			name: "local day boundary",
			in:   time.Date(2013, 3, 5, 0, 30, 0, 0, kyiv),
			utc:  false,
			want: time.Date(2013, 3, 5, 12, 0, 0, 0, kyiv),
		},
		{
			name: "local instant snapped to utc day",
			in:   time.Date(2013, 3, 5, 0, 30, 0, 0, kyiv), // 2013-03-04T22:30Z
			utc:  true,
			want: time.Date(2013, 3, 4, 12, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := noonOf(tt.in, tt.utc)
			if !got.Equal(tt.want) {
				t.Errorf("noonOf(%v, utc=%v) = %v, want %v", tt.in, tt.utc, got, tt.want)
			}
		})
	}
}

func TestHoursLater(t *testing.T) {
	base := time.Date(2013, 3, 4, 0, 0, 0, 0, time.UTC)

	got := hoursLater(base, 7.5)
	want := time.Date(2013, 3, 4, 7, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("hoursLater(+7.5h) = %v, want %v", got, want)
	}

	// Fractional hours must keep sub-second resolution.
	got = hoursLater(base, 1.0/3600) // one second
	if d := got.Sub(base); math.Abs(float64(d-time.Second)) > float64(time.Millisecond) {
		t.Errorf("hoursLater(1/3600h) offset = %v, want ~1s", d)
	}
}
