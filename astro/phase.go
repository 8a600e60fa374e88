package astro

import (
	"math"
	"time"
)

// sunDistanceKm is the mean Earth-Sun distance used in the phase-angle
// triangle.
const sunDistanceKm = 149598000

// One synodic month in milliseconds, and a reference new moon
// (2000-01-06T18:14Z) anchoring the cycle for next-phase prediction.
const (
	lunarMonthMs    = 2551442778.0
	newMoonEpochMs  = 947182440000
	synodicMonthDay = 29.530588853
)

// PhaseName identifies one of the eight lunar phase buckets.
type PhaseName string

const (
	NewMoon        PhaseName = "newMoon"
	WaxingCrescent PhaseName = "waxingCrescentMoon"
	FirstQuarter   PhaseName = "firstQuarterMoon"
	WaxingGibbous  PhaseName = "waxingGibbousMoon"
	FullMoon       PhaseName = "fullMoon"
	WaningGibbous  PhaseName = "waningGibbousMoon"
	ThirdQuarter   PhaseName = "thirdQuarterMoon"
	WaningCrescent PhaseName = "waningCrescentMoon"
)

// PhaseBucket is one named range of the cyclic phase value. The
// partition of [0,1) is fixed but deliberately non-uniform: the
// quarter-phase buckets span one day of the synodic month on either
// side of the exact quarter fraction, the crescent and gibbous buckets
// take the wide stretches between them.
type PhaseBucket struct {
	ID    PhaseName
	Emoji string
	From  float64 // inclusive
	To    float64 // exclusive; From > To only for the wrap-around bucket
}

// phaseHalfWidth is one day as a fraction of the synodic month.
const phaseHalfWidth = 1 / synodicMonthDay

// phaseBuckets partitions [0,1). Buckets are half-open [From,To); the
// new-moon bucket wraps across 0.
var phaseBuckets = []PhaseBucket{
	{NewMoon, "\U0001F311", 1 - phaseHalfWidth, phaseHalfWidth},
	{WaxingCrescent, "\U0001F312", phaseHalfWidth, 0.25 - phaseHalfWidth},
	{FirstQuarter, "\U0001F313", 0.25 - phaseHalfWidth, 0.25 + phaseHalfWidth},
	{WaxingGibbous, "\U0001F314", 0.25 + phaseHalfWidth, 0.5 - phaseHalfWidth},
	{FullMoon, "\U0001F315", 0.5 - phaseHalfWidth, 0.5 + phaseHalfWidth},
	{WaningGibbous, "\U0001F316", 0.5 + phaseHalfWidth, 0.75 - phaseHalfWidth},
	{ThirdQuarter, "\U0001F317", 0.75 - phaseHalfWidth, 0.75 + phaseHalfWidth},
	{WaningCrescent, "\U0001F318", 0.75 + phaseHalfWidth, 1 - phaseHalfWidth},
}

// PhaseBucketFor classifies a cyclic phase value in [0,1). Exactly one
// bucket claims every value.
func PhaseBucketFor(v float64) PhaseBucket {
	v = v - math.Floor(v)
	for _, b := range phaseBuckets[1:] {
		if v >= b.From && v < b.To {
			return b
		}
	}
	return phaseBuckets[0]
}

// NextPhases are the projected instants of the four major phases
// following an observation, plus which of them comes first.
type NextPhases struct {
	Type PhaseName // the nearest of the four
	Time time.Time // its instant

	NewMoon      time.Time
	FullMoon     time.Time
	FirstQuarter time.Time
	ThirdQuarter time.Time
}

// MoonIllumination describes how the moon is lit at an instant.
type MoonIllumination struct {
	Fraction   float64 // illuminated fraction of the disk, in [0,1]
	PhaseValue float64 // fraction of the synodic cycle since new moon, in [0,1)
	Angle      float64 // midpoint angle of the bright limb, radians

	Phase PhaseBucket
	Next  NextPhases
}

// GetMoonIllumination computes the illuminated fraction, the continuous
// phase value, the phase bucket and the upcoming major phases for an
// instant. Location-independent: illumination is a property of the
// sun-moon-earth geometry alone.
func GetMoonIllumination(t time.Time) MoonIllumination {
	d := ToDays(t)
	s := sunCoords(d)
	m, mdist := moonCoords(d)

	// Elongation by the spherical law of cosines, then the phase angle
	// at the moon from the sun/moon distance ratio.
	phi := math.Acos(math.Sin(s.dec)*math.Sin(m.dec) + math.Cos(s.dec)*math.Cos(m.dec)*math.Cos(s.ra-m.ra))
	inc := math.Atan2(sunDistanceKm*math.Sin(phi), mdist-sunDistanceKm*math.Cos(phi))
	angle := math.Atan2(math.Cos(s.dec)*math.Sin(s.ra-m.ra),
		math.Sin(s.dec)*math.Cos(m.dec)-math.Cos(s.dec)*math.Sin(m.dec)*math.Cos(s.ra-m.ra))

	phase := 0.5 + 0.5*inc*math.Copysign(1, angle)/math.Pi

	return MoonIllumination{
		Fraction:   (1 + math.Cos(inc)) / 2,
		PhaseValue: phase,
		Angle:      angle,
		Phase:      PhaseBucketFor(phase),
		Next:       nextPhases(t),
	}
}

// nextPhases projects the instant of each upcoming major phase linearly
// from the reference new moon and the fixed synodic month length.
func nextPhases(t time.Time) NextPhases {
	elapsed := math.Mod(float64(t.UnixMilli()-newMoonEpochMs), lunarMonthMs)
	if elapsed < 0 {
		elapsed += lunarMonthMs
	}

	after := func(frac float64) time.Time {
		delta := math.Mod(frac*lunarMonthMs-elapsed, lunarMonthMs)
		if delta <= 0 {
			delta += lunarMonthMs
		}
		return t.Add(time.Duration(delta) * time.Millisecond)
	}

	np := NextPhases{
		NewMoon:      after(1),
		FirstQuarter: after(0.25),
		FullMoon:     after(0.5),
		ThirdQuarter: after(0.75),
	}

	np.Type, np.Time = NewMoon, np.NewMoon
	if np.FirstQuarter.Before(np.Time) {
		np.Type, np.Time = FirstQuarter, np.FirstQuarter
	}
	if np.FullMoon.Before(np.Time) {
		np.Type, np.Time = FullMoon, np.FullMoon
	}
	if np.ThirdQuarter.Before(np.Time) {
		np.Type, np.Time = ThirdQuarter, np.ThirdQuarter
	}
	return np
}
