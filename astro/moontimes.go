package astro

import (
	"math"
	"time"
)

// MoonTimes holds the moon's horizon crossings for one calendar day.
// Rise, Set and Highest are zero when absent; on days the moon never
// crosses the horizon exactly one of AlwaysUp or AlwaysDown is set.
type MoonTimes struct {
	Rise time.Time
	Set  time.Time

	// Highest is the midpoint between rise and set, an approximation of
	// the upper transit. Only reported when both crossings were found.
	Highest time.Time

	AlwaysUp   bool
	AlwaysDown bool
}

// moonHorizonDip accounts for the moon's mean parallax and radius when
// deciding whether it is up: the geometric altitude must exceed this.
const moonHorizonDip = 0.133 * rad

// moonAlt is the refraction-corrected lunar altitude minus the horizon
// dip, sampled by the rise/set search. Coordinates are pre-validated.
func moonAlt(t time.Time, lat, lon float64) float64 {
	pos, _ := GetMoonPosition(t, lat, lon)
	return pos.Altitude - moonHorizonDip
}

// GetMoonTimes finds moon rise and set within the calendar day of t.
// Lunar motion is too fast for the single-transit approach used for the
// sun, so the altitude curve is sampled at the day start and every
// following odd hour. Each overlapping three-sample window gets a
// parabola fitted through it; real roots inside the window are horizon
// crossings. The scan spans up to 26 hours so crossings close to the
// next midnight are not missed.
func GetMoonTimes(t time.Time, lat, lon float64, inUTC bool) (MoonTimes, error) {
	if err := checkObserver(lat, lon); err != nil {
		return MoonTimes{}, err
	}

	start := midnightOf(t, inUTC)

	h0 := moonAlt(start, lat, lon)
	var rise, set, ye float64
	var hasRise, hasSet bool

	for i := 1.0; i <= 26; i += 2 {
		h1 := moonAlt(hoursLater(start, i), lat, lon)
		h2 := moonAlt(hoursLater(start, i+1), lat, lon)

		// Parabola through (x=-1,h0) (x=0,h1) (x=1,h2).
		a := (h0+h2)/2 - h1
		b := (h2 - h0) / 2
		xe := -b / (2 * a)
		ye = (a*xe+b)*xe + h1
		d := b*b - 4*a*h1

		roots := 0
		var x1, x2 float64
		if d >= 0 {
			dx := math.Sqrt(d) / (math.Abs(a) * 2)
			x1 = xe - dx
			x2 = xe + dx
			if math.Abs(x1) <= 1 {
				roots++
			}
			if math.Abs(x2) <= 1 {
				roots++
			}
			if x1 < -1 {
				x1 = x2
			}
		}

		switch roots {
		case 1:
			// A single crossing: rising if the window started below the
			// horizon, setting otherwise.
			if h0 < 0 {
				rise = i + x1
				hasRise = true
			} else {
				set = i + x1
				hasSet = true
			}
		case 2:
			// Both crossings in one window. The vertex altitude decides
			// which root is the ascending one: a vertex below the
			// horizon means the moon dips, so the earlier root is the
			// set.
			if ye < 0 {
				rise = i + x2
				set = i + x1
			} else {
				rise = i + x1
				set = i + x2
			}
			hasRise = true
			hasSet = true
		}

		if hasRise && hasSet {
			break
		}

		h0 = h2
	}

	var mt MoonTimes
	if hasRise {
		mt.Rise = hoursLater(start, rise)
	}
	if hasSet {
		mt.Set = hoursLater(start, set)
	}
	if hasRise && hasSet {
		mt.Highest = midpoint(mt.Rise, mt.Set)
	}
	if !hasRise && !hasSet {
		// No crossing in the sampled span: the last vertex altitude
		// tells whether the moon stayed above or below the horizon.
		if ye > 0 {
			mt.AlwaysUp = true
		} else {
			mt.AlwaysDown = true
		}
	}
	return mt, nil
}

// MoonTransit holds the interpolated lunar meridian passages derived
// from a rise/set pair. Main is the upper transit (moon above the
// horizon), Invert the lower one. Either may be zero when the
// neighboring day's crossings leave it undetermined.
type MoonTransit struct {
	Main   time.Time
	Invert time.Time
}

// GetMoonTransit interpolates the transit as the midpoint between a
// rise and the matching set. When the pair spans midnight the matching
// crossing comes from the adjacent day's solver run, and the candidate
// midpoint is kept only if it still falls on the expected calendar day.
func GetMoonTransit(rise, set time.Time, lat, lon float64) (MoonTransit, error) {
	if err := checkObserver(lat, lon); err != nil {
		return MoonTransit{}, err
	}

	var tr MoonTransit
	if rise.Before(set) {
		tr.Main = midpoint(rise, set)
		// The lower transit pairs this set with the next day's rise.
		next, err := GetMoonTimes(set.AddDate(0, 0, 1), lat, lon, false)
		if err == nil && !next.Rise.IsZero() {
			tr.Invert = midpoint(set, next.Rise)
		}
		return tr, nil
	}

	// Set precedes rise: the moon was up across the previous midnight
	// and the upper transit pairs this rise with the next day's set.
	tr.Invert = midpoint(set, rise)
	next, err := GetMoonTimes(rise.AddDate(0, 0, 1), lat, lon, false)
	if err == nil && !next.Set.IsZero() {
		cand := midpoint(rise, next.Set)
		if sameDay(cand, rise) || sameDay(cand, rise.AddDate(0, 0, 1)) {
			tr.Main = cand
		}
	}
	return tr, nil
}

func midpoint(a, b time.Time) time.Time {
	return a.Add(b.Sub(a) / 2)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
