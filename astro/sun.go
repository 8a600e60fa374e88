package astro

import (
	"math"
	"time"
)

// SunPosition is the sun's horizontal position for an observer.
// Azimuth is measured from north, clockwise.
type SunPosition struct {
	Azimuth  float64 // radians
	Altitude float64 // radians, in [-pi/2, pi/2]

	AzimuthDegrees  float64
	AltitudeDegrees float64

	Zenith        float64 // radians, pi/2 - altitude
	ZenithDegrees float64

	Declination float64 // radians
}

// solarMeanAnomaly for d days since J2000.
func solarMeanAnomaly(d float64) float64 {
	return rad * (357.5291 + 0.98560028*d)
}

// eclipticLongitude of the sun for mean anomaly M, with a three-term
// equation-of-center correction and the fixed perihelion longitude.
func eclipticLongitude(M float64) float64 {
	C := rad * (1.9148*math.Sin(M) + 0.02*math.Sin(2*M) + 0.0003*math.Sin(3*M))
	P := rad * 102.9372
	return M + C + P + math.Pi
}

func sunCoords(d float64) equatorial {
	M := solarMeanAnomaly(d)
	L := eclipticLongitude(M)
	return equatorial{
		ra:  rightAscension(L, 0),
		dec: declination(L, 0),
	}
}

// GetSunPosition computes the sun's azimuth and altitude for the given
// instant and location.
func GetSunPosition(t time.Time, lat, lon float64) (SunPosition, error) {
	if err := checkObserver(lat, lon); err != nil {
		return SunPosition{}, err
	}

	lw := rad * -lon
	phi := rad * lat
	d := ToDays(t)

	c := sunCoords(d)
	H := siderealTime(d, lw) - c.ra

	az := azimuth(H, phi, c.dec)
	alt := altitude(H, phi, c.dec)

	return SunPosition{
		Azimuth:         az,
		Altitude:        alt,
		AzimuthDegrees:  az / rad,
		AltitudeDegrees: alt / rad,
		Zenith:          math.Pi/2 - alt,
		ZenithDegrees:   90 - alt/rad,
		Declination:     c.dec,
	}, nil
}

// azimuthSearchStep is the bisection cutoff for GetSunTimeAtAzimuth.
const azimuthSearchStep = 200 * time.Millisecond

// GetSunTimeAtAzimuth finds the instant within the calendar day of t at
// which the sun's azimuth reaches the target bearing. The target is in
// radians from north unless degrees is set. The north-based azimuth
// wraps at the nadir, not at civil midnight, so the bisection runs over
// the solar day centered on the date's transit, where the azimuth grows
// monotonically from 0 to 2pi; the search stops once the half-step
// drops below 200ms.
func GetSunTimeAtAzimuth(t time.Time, lat, lon, target float64, degrees bool) (time.Time, error) {
	if math.IsNaN(target) {
		return time.Time{}, ErrAzimuthMissing
	}
	if err := checkObserver(lat, lon); err != nil {
		return time.Time{}, err
	}
	if degrees {
		target *= rad
	}

	sd := computeSolarDay(t, lat, lon, 0, false)
	nadir := FromJulian(sd.jnoon - 0.5)

	when := nadir.Add(24 * time.Hour)
	for step := 24 * time.Hour; step > azimuthSearchStep; {
		step /= 2
		pos, _ := GetSunPosition(when, lat, lon)
		if pos.Azimuth < target {
			when = when.Add(step)
		} else {
			when = when.Add(-step)
		}
	}
	return when, nil
}

// GetSolarClockTime converts a clock time to local solar time using the
// two-harmonic equation-of-time approximation over the day of year.
// utcOffset is the observer's clock offset from UTC in hours. This is
// independent of the rise/set machinery; it shifts the clock so that
// 12:00 solar time is the meridian passage.
func GetSolarClockTime(t time.Time, lon, utcOffset float64) (time.Time, error) {
	if math.IsNaN(lon) {
		return time.Time{}, ErrLongitudeMissing
	}

	b := rad * 360 / 365 * float64(t.YearDay()-81)
	// equation of time in minutes
	eot := 9.87*math.Sin(2*b) - 7.53*math.Cos(b) - 1.5*math.Sin(b)

	meridian := 15 * utcOffset
	correction := 4*(lon-meridian) + eot

	return t.Add(time.Duration(correction * float64(time.Minute))), nil
}
