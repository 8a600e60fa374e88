package astro

import (
	"math"
	"time"
)

// SunTime is one named sun event on a given day.
type SunTime struct {
	Name      string
	Time      time.Time
	JulianDay float64

	// Valid is false when the sun never crosses the event's elevation
	// angle that day (polar day or night). The Time then falls back to
	// the nadir for set events, mirrored about solar noon for rise
	// events, so downstream arithmetic stays finite.
	Valid bool

	ElevationAngle float64 // degrees, the angle that defines the event
	Pos            int     // ordinal position in the source table
}

// SunTimesOptions adjust the sun event computation.
type SunTimesOptions struct {
	Height            float64 // observer height above the horizon in meters
	IncludeDeprecated bool    // also emit deprecated alias names
	InUTC             bool    // snap the calendar day at UTC instead of local time
}

const j0 = 0.0009

func julianCycle(d, lw float64) float64 {
	return math.Round(d - j0 - lw/(2*math.Pi))
}

func approxTransit(ht, lw, n float64) float64 {
	return j0 + (ht+lw)/(2*math.Pi) + n
}

// solarTransitJ refines an approximate transit with two equation-of-
// time-like correction terms.
func solarTransitJ(ds, M, L float64) float64 {
	return j2000 + ds + 0.0053*math.Sin(M) - 0.0069*math.Sin(2*L)
}

// solarDay carries the per-day solar quantities shared by every event
// angle: the julian cycle, the mean anomaly and ecliptic longitude at
// the approximate transit, and the refined noon.
type solarDay struct {
	lw, phi, dh float64
	n, ds       float64
	M, L, dec   float64
	jnoon       float64
}

func computeSolarDay(t time.Time, lat, lon, height float64, utc bool) solarDay {
	sd := solarDay{
		lw:  rad * -lon,
		phi: rad * lat,
		dh:  observerAngle(height),
	}
	d := ToDays(noonOf(t, utc))
	sd.n = julianCycle(d, sd.lw)
	sd.ds = approxTransit(0, sd.lw, sd.n)
	sd.M = solarMeanAnomaly(sd.ds)
	sd.L = eclipticLongitude(sd.M)
	sd.dec = declination(sd.L, 0)
	sd.jnoon = solarTransitJ(sd.ds, sd.M, sd.L)
	return sd
}

// riseSet solves the hour-angle equation for one elevation angle in
// degrees. When cos(H) leaves [-1,1] the sun never reaches the angle
// that day; the set then falls back to the nadir and the rise to its
// mirror. Rise and set are symmetric about noon by construction.
func (sd solarDay) riseSet(angle float64) (jrise, jset float64, valid bool) {
	h0 := (angle + sd.dh) * rad
	cosH := (math.Sin(h0) - math.Sin(sd.phi)*math.Sin(sd.dec)) / (math.Cos(sd.phi) * math.Cos(sd.dec))
	if cosH < -1 || cosH > 1 || math.IsNaN(cosH) {
		return sd.jnoon + 0.5, sd.jnoon - 0.5, false
	}
	w := math.Acos(cosH)
	a := approxTransit(w, sd.lw, sd.n)
	jset = solarTransitJ(a, sd.M, sd.L)
	jrise = sd.jnoon - (jset - sd.jnoon)
	return jrise, jset, true
}

// SunTimes computes every event in the table, plus solar noon and
// nadir, for the calendar day containing t.
func (tbl *EventTable) SunTimes(t time.Time, lat, lon float64, opts SunTimesOptions) (map[string]SunTime, error) {
	if err := checkObserver(lat, lon); err != nil {
		return nil, err
	}

	sd := computeSolarDay(t, lat, lon, opts.Height, opts.InUTC)

	result := make(map[string]SunTime, 2*len(tbl.entries)+2)
	result[EventSolarNoon] = SunTime{
		Name:           EventSolarNoon,
		Time:           FromJulian(sd.jnoon),
		JulianDay:      sd.jnoon,
		Valid:          true,
		ElevationAngle: 90,
		Pos:            0,
	}
	result[EventNadir] = SunTime{
		Name:           EventNadir,
		Time:           FromJulian(sd.jnoon - 0.5),
		JulianDay:      sd.jnoon - 0.5,
		Valid:          true,
		ElevationAngle: -90,
		Pos:            1,
	}

	for i, e := range tbl.entries {
		jrise, jset, valid := sd.riseSet(e.Angle)
		result[e.RiseName] = SunTime{
			Name:           e.RiseName,
			Time:           FromJulian(jrise),
			JulianDay:      jrise,
			Valid:          valid,
			ElevationAngle: e.Angle,
			Pos:            2 + 2*i,
		}
		result[e.SetName] = SunTime{
			Name:           e.SetName,
			Time:           FromJulian(jset),
			JulianDay:      jset,
			Valid:          valid,
			ElevationAngle: e.Angle,
			Pos:            3 + 2*i,
		}
	}

	if opts.IncludeDeprecated {
		// Later aliases overwrite earlier collisions; table order is
		// the only tie break.
		for _, a := range tbl.aliases {
			if st, ok := result[a.canonical]; ok {
				st.Name = a.alias
				result[a.alias] = st
			}
		}
	}

	return result, nil
}

// GetSunTimes computes the Default table's events for the calendar day
// containing t, with no height correction, local day boundaries, and no
// deprecated aliases.
func GetSunTimes(t time.Time, lat, lon float64) (map[string]SunTime, error) {
	return Default.SunTimes(t, lat, lon, SunTimesOptions{})
}

// RiseSet is the pair of instants at which the sun crosses one
// elevation angle.
type RiseSet struct {
	Rise SunTime
	Set  SunTime
}

// GetSunTimeAtAngle solves rise and set for a single elevation angle,
// in radians unless degrees is set.
func GetSunTimeAtAngle(t time.Time, lat, lon, angle, height float64, degrees, inUTC bool) (RiseSet, error) {
	if math.IsNaN(angle) {
		return RiseSet{}, ErrElevationMissing
	}
	if err := checkObserver(lat, lon); err != nil {
		return RiseSet{}, err
	}
	if !degrees {
		angle /= rad
	}

	sd := computeSolarDay(t, lat, lon, height, inUTC)
	jrise, jset, valid := sd.riseSet(angle)

	return RiseSet{
		Rise: SunTime{Name: "rise", Time: FromJulian(jrise), JulianDay: jrise, Valid: valid, ElevationAngle: angle, Pos: 0},
		Set:  SunTime{Name: "set", Time: FromJulian(jset), JulianDay: jset, Valid: valid, ElevationAngle: angle, Pos: 1},
	}, nil
}
