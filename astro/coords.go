package astro

import (
	"errors"
	"math"
)

// obliquity is the mean obliquity of the ecliptic. A fixed value is
// enough at the arc-minute precision of the series used here.
const obliquity = rad * 23.4397

// Argument validation errors. Missing coordinates are programming
// errors and are rejected before any computation; astronomically
// undefined results (polar day, moon never rising) are not errors and
// are reported through validity flags on the results instead.
var (
	ErrLatitudeMissing  = errors.New("astro: latitude is not a number")
	ErrLongitudeMissing = errors.New("astro: longitude is not a number")
	ErrAzimuthMissing   = errors.New("astro: azimuth is not a number")
	ErrElevationMissing = errors.New("astro: elevation angle is not a number")
)

// Observer is a ground-based observer location.
type Observer struct {
	Lat    float64 // latitude in degrees, north positive
	Lon    float64 // longitude in degrees, east positive
	Height float64 // height above the horizon in meters, >= 0
	Name   string  // optional site name
}

// checkObserver rejects NaN coordinates up front.
func checkObserver(lat, lon float64) error {
	if math.IsNaN(lat) {
		return ErrLatitudeMissing
	}
	if math.IsNaN(lon) {
		return ErrLongitudeMissing
	}
	return nil
}

// equatorial holds right ascension and declination in radians. It is an
// intermediate value; public results carry horizontal coordinates.
type equatorial struct {
	ra  float64
	dec float64
}

func rightAscension(l, b float64) float64 {
	return math.Atan2(math.Sin(l)*math.Cos(obliquity)-math.Tan(b)*math.Sin(obliquity), math.Cos(l))
}

func declination(l, b float64) float64 {
	return math.Asin(math.Sin(b)*math.Cos(obliquity) + math.Cos(b)*math.Sin(obliquity)*math.Sin(l))
}

// azimuth returns the horizontal bearing for hour angle H, observer
// latitude phi and declination dec, measured from north, clockwise.
func azimuth(H, phi, dec float64) float64 {
	return math.Atan2(math.Sin(H), math.Cos(H)*math.Sin(phi)-math.Tan(dec)*math.Cos(phi)) + math.Pi
}

// altitude returns the elevation above the horizon, in [-pi/2, pi/2].
func altitude(H, phi, dec float64) float64 {
	return math.Asin(math.Sin(phi)*math.Sin(dec) + math.Cos(phi)*math.Cos(dec)*math.Cos(H))
}

// siderealTime returns the local sidereal angle for d days since J2000
// at longitude-west lw, in radians.
func siderealTime(d, lw float64) float64 {
	return rad*(280.16+360.9856235*d) - lw
}

// refraction is the apparent altitude shift caused by atmospheric
// bending near the horizon (Meeus formula 16.4). The formula diverges
// just below the horizon, so negative altitudes are evaluated at 0.
func refraction(h float64) float64 {
	if h < 0 {
		h = 0
	}
	return 0.0002967 / math.Tan(h+0.00312536/(h+0.08901179))
}

// observerAngle is the angular dip of the horizon for an observer
// height in meters above it, in degrees.
func observerAngle(height float64) float64 {
	return -2.076 * math.Sqrt(height) / 60
}
