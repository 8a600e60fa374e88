package astro

import (
	"math"
	"testing"
	"time"
)

// Reference date and location used across the sun and moon tests:
// Kyiv, 2013-03-05 00:00 UTC.
var (
	refDate = time.Date(2013, 3, 5, 0, 0, 0, 0, time.UTC)
	refLat  = 50.5
	refLon  = 30.5
)

func TestGetSunPosition(t *testing.T) {
	pos, err := GetSunPosition(refDate, refLat, refLon)
	if err != nil {
		t.Fatalf("GetSunPosition() error = %v", err)
	}

	// Published reference values for this instant; azimuth here is
	// north-based, the raw formula value plus pi.
	wantAz := math.Pi - 2.5003175907168385
	wantAlt := -0.7000406838781611

	if math.Abs(pos.Azimuth-wantAz) > 1e-9 {
		t.Errorf("Azimuth = %.12f, want %.12f", pos.Azimuth, wantAz)
	}
	if math.Abs(pos.Altitude-wantAlt) > 1e-9 {
		t.Errorf("Altitude = %.12f, want %.12f", pos.Altitude, wantAlt)
	}
	if math.Abs(pos.AltitudeDegrees-wantAlt/rad) > 1e-7 {
		t.Errorf("AltitudeDegrees = %.7f, want %.7f", pos.AltitudeDegrees, wantAlt/rad)
	}
	if math.Abs(pos.Zenith-(math.Pi/2-pos.Altitude)) > 1e-12 {
		t.Errorf("Zenith = %.12f, want pi/2 - altitude", pos.Zenith)
	}
}

func TestGetSunPositionRanges(t *testing.T) {
	// Altitude stays in [-pi/2, pi/2] and azimuth stays finite for a
	// spread of instants and locations, poles included.
	locations := []struct {
		lat, lon float64
	}{
		{0, 0}, {50.5, 30.5}, {-34, 151}, {89.9, 0}, {-89.9, -120}, {66.5, -18.1},
	}
	for _, loc := range locations {
		for h := 0; h < 48; h += 3 {
			when := refDate.Add(time.Duration(h) * time.Hour)
			pos, err := GetSunPosition(when, loc.lat, loc.lon)
			if err != nil {
				t.Fatalf("GetSunPosition(%v, %v, %v) error = %v", when, loc.lat, loc.lon, err)
			}
			if pos.Altitude < -math.Pi/2 || pos.Altitude > math.Pi/2 {
				t.Errorf("altitude %.6f out of range at lat=%v lon=%v h=%d", pos.Altitude, loc.lat, loc.lon, h)
			}
			if math.IsNaN(pos.Azimuth) || math.IsInf(pos.Azimuth, 0) {
				t.Errorf("azimuth not finite at lat=%v lon=%v h=%d", loc.lat, loc.lon, h)
			}
		}
	}
}

func TestSunDeclinationSeasons(t *testing.T) {
	tests := []struct {
		name    string
		time    time.Time
		wantMin float64 // degrees
		wantMax float64
	}{
		{"spring equinox", time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC), -1, 1},
		{"summer solstice", time.Date(2024, 6, 21, 12, 0, 0, 0, time.UTC), 23, 24},
		{"autumn equinox", time.Date(2024, 9, 22, 12, 0, 0, 0, time.UTC), -1, 1},
		{"winter solstice", time.Date(2024, 12, 21, 12, 0, 0, 0, time.UTC), -24, -23},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, err := GetSunPosition(tt.time, 0, 0)
			if err != nil {
				t.Fatalf("GetSunPosition() error = %v", err)
			}
			decDeg := pos.Declination / rad
			if decDeg < tt.wantMin || decDeg > tt.wantMax {
				t.Errorf("declination = %.2f°, want between %.1f° and %.1f°", decDeg, tt.wantMin, tt.wantMax)
			}
		})
	}
}

func TestGetSunPositionInvalidArgs(t *testing.T) {
	if _, err := GetSunPosition(refDate, math.NaN(), refLon); err != ErrLatitudeMissing {
		t.Errorf("NaN latitude: err = %v, want ErrLatitudeMissing", err)
	}
	if _, err := GetSunPosition(refDate, refLat, math.NaN()); err != ErrLongitudeMissing {
		t.Errorf("NaN longitude: err = %v, want ErrLongitudeMissing", err)
	}
}

func TestGetSunTimeAtAzimuth(t *testing.T) {
	// The sun bears due south (azimuth pi) at solar noon; the bisection
	// must land within a minute of the closed-form transit.
	times, err := Default.SunTimes(refDate, refLat, refLon, SunTimesOptions{InUTC: true})
	if err != nil {
		t.Fatalf("SunTimes() error = %v", err)
	}
	noon := times[EventSolarNoon].Time

	got, err := GetSunTimeAtAzimuth(refDate, refLat, refLon, math.Pi, false)
	if err != nil {
		t.Fatalf("GetSunTimeAtAzimuth() error = %v", err)
	}

	if diff := got.Sub(noon); diff < -time.Minute || diff > time.Minute {
		t.Errorf("azimuth-pi crossing = %v, solar noon = %v, diff = %v", got, noon, diff)
	}
}

func TestGetSunTimeAtAzimuthStaysOnDay(t *testing.T) {
	// At an east longitude the azimuth has already wrapped past north
	// by civil midnight, so a search anchored on the civil day would
	// drift onto the next day's crossing. Morning, noon and afternoon
	// bearings must all resolve on the date of t, in order.
	times, err := Default.SunTimes(refDate, refLat, refLon, SunTimesOptions{InUTC: true})
	if err != nil {
		t.Fatalf("SunTimes() error = %v", err)
	}
	nadir := times[EventNadir].Time

	var prev time.Time
	for _, target := range []float64{math.Pi / 2, math.Pi, 3 * math.Pi / 2} {
		got, err := GetSunTimeAtAzimuth(refDate, refLat, refLon, target, false)
		if err != nil {
			t.Fatalf("GetSunTimeAtAzimuth(%v) error = %v", target, err)
		}
		if !sameDay(got, refDate) {
			t.Errorf("target %v resolved on %v, want the day of %v", target, got, refDate)
		}
		if got.Before(nadir) || got.After(nadir.Add(24*time.Hour)) {
			t.Errorf("target %v resolved at %v, outside the solar day from %v", target, got, nadir)
		}
		if !prev.IsZero() && !got.After(prev) {
			t.Errorf("target %v crossing %v not after the previous bearing's %v", target, got, prev)
		}
		prev = got
	}
}

func TestGetSunTimeAtAzimuthDegrees(t *testing.T) {
	a, err := GetSunTimeAtAzimuth(refDate, refLat, refLon, 180, true)
	if err != nil {
		t.Fatalf("GetSunTimeAtAzimuth(degrees) error = %v", err)
	}
	b, err := GetSunTimeAtAzimuth(refDate, refLat, refLon, math.Pi, false)
	if err != nil {
		t.Fatalf("GetSunTimeAtAzimuth(radians) error = %v", err)
	}
	if diff := a.Sub(b); diff < -time.Second || diff > time.Second {
		t.Errorf("degree and radian targets disagree by %v", diff)
	}
}

func TestGetSunTimeAtAzimuthInvalidArgs(t *testing.T) {
	if _, err := GetSunTimeAtAzimuth(refDate, refLat, refLon, math.NaN(), false); err != ErrAzimuthMissing {
		t.Errorf("NaN azimuth: err = %v, want ErrAzimuthMissing", err)
	}
	if _, err := GetSunTimeAtAzimuth(refDate, math.NaN(), refLon, math.Pi, false); err != ErrLatitudeMissing {
		t.Errorf("NaN latitude: err = %v, want ErrLatitudeMissing", err)
	}
}

func TestGetSolarClockTime(t *testing.T) {
	// Mid-February has one of the year's largest equation-of-time
	// offsets, about -14.3 minutes. At the reference meridian the solar
	// clock should trail the civil clock by that amount.
	civil := time.Date(2024, 2, 11, 12, 0, 0, 0, time.UTC)
	solar, err := GetSolarClockTime(civil, 0, 0)
	if err != nil {
		t.Fatalf("GetSolarClockTime() error = %v", err)
	}

	offset := solar.Sub(civil)
	wantLow := -16 * time.Minute
	wantHigh := -13 * time.Minute
	if offset < wantLow || offset > wantHigh {
		t.Errorf("solar offset = %v, want between %v and %v", offset, wantLow, wantHigh)
	}

	// 15° east with a +1h clock cancels the longitude correction.
	solar, err = GetSolarClockTime(civil, 15, 1)
	if err != nil {
		t.Fatalf("GetSolarClockTime() error = %v", err)
	}
	offset2 := solar.Sub(civil)
	if d := offset2 - offset; d < -time.Second || d > time.Second {
		t.Errorf("meridian-matched offset = %v, want %v", offset2, offset)
	}

	if _, err := GetSolarClockTime(civil, math.NaN(), 0); err != ErrLongitudeMissing {
		t.Errorf("NaN longitude: err = %v, want ErrLongitudeMissing", err)
	}
}
