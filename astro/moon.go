package astro

import (
	"math"
	"time"
)

// MoonPosition is the moon's horizontal position for an observer.
// Azimuth is measured from north, clockwise. Altitude includes the
// atmospheric refraction correction.
type MoonPosition struct {
	Azimuth  float64 // radians
	Altitude float64 // radians

	AzimuthDegrees  float64
	AltitudeDegrees float64

	Distance float64 // km, geocentric

	// ParallacticAngle is the angle between the celestial pole and the
	// zenith as seen at the moon, used to orient the illuminated limb.
	ParallacticAngle        float64 // radians
	ParallacticAngleDegrees float64
}

// moonCoords evaluates the low-precision lunar series for d days since
// J2000: mean longitude, mean anomaly and mean distance, one
// perturbation sine term each for longitude and latitude, and a cosine
// distance term.
func moonCoords(d float64) (eq equatorial, distKm float64) {
	L := rad * (218.316 + 13.176396*d) // ecliptic longitude
	M := rad * (134.963 + 13.064993*d) // mean anomaly
	F := rad * (93.272 + 13.229350*d)  // mean distance

	l := L + rad*6.289*math.Sin(M)
	b := rad * 5.128 * math.Sin(F)
	dt := 385001 - 20905*math.Cos(M)

	return equatorial{
		ra:  rightAscension(l, b),
		dec: declination(l, b),
	}, dt
}

// GetMoonPosition computes the moon's azimuth, refraction-corrected
// altitude, distance and parallactic angle for the given instant and
// location.
func GetMoonPosition(t time.Time, lat, lon float64) (MoonPosition, error) {
	if err := checkObserver(lat, lon); err != nil {
		return MoonPosition{}, err
	}

	lw := rad * -lon
	phi := rad * lat
	d := ToDays(t)

	c, dist := moonCoords(d)
	H := siderealTime(d, lw) - c.ra
	h := altitude(H, phi, c.dec)
	pa := math.Atan2(math.Sin(H), math.Tan(phi)*math.Cos(c.dec)-math.Sin(c.dec)*math.Cos(H))

	h += refraction(h)
	az := azimuth(H, phi, c.dec)

	return MoonPosition{
		Azimuth:                 az,
		Altitude:                h,
		AzimuthDegrees:          az / rad,
		AltitudeDegrees:         h / rad,
		Distance:                dist,
		ParallacticAngle:        pa,
		ParallacticAngleDegrees: pa / rad,
	}, nil
}
