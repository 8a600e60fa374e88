// Package almanac assembles per-day sun and moon reports on top of the
// astro core and renders them for the TUI and the headless modes.
package almanac

import (
	"sort"
	"time"

	"github.com/litescript/ls-almanac/astro"
)

// Options control how a day report is computed.
type Options struct {
	// InUTC keys the day boundaries to UTC instead of the local zone of
	// the report date.
	InUTC bool

	// IncludeDeprecated adds the legacy event-name aliases to SunTimes.
	IncludeDeprecated bool

	// Events is the twilight table to solve; nil means astro.Default.
	Events *astro.EventTable
}

// DayReport bundles everything the almanac knows about one observer and
// one calendar day.
type DayReport struct {
	Observer    astro.Observer
	Date        time.Time
	GeneratedAt time.Time

	SunTimes  map[string]astro.SunTime
	SunPos    astro.SunPosition
	MoonPos   astro.MoonPosition
	MoonTimes astro.MoonTimes
	MoonIllum astro.MoonIllumination
}

// BuildDayReport computes the full report for an observer and date
// through the public core. The sun and moon positions are for the
// report date itself, not for "now".
func BuildDayReport(obs astro.Observer, date time.Time, opts Options) (*DayReport, error) {
	tbl := opts.Events
	if tbl == nil {
		tbl = astro.Default
	}

	times, err := tbl.SunTimes(date, obs.Lat, obs.Lon, astro.SunTimesOptions{
		Height:            obs.Height,
		IncludeDeprecated: opts.IncludeDeprecated,
		InUTC:             opts.InUTC,
	})
	if err != nil {
		return nil, err
	}

	sunPos, err := astro.GetSunPosition(date, obs.Lat, obs.Lon)
	if err != nil {
		return nil, err
	}
	moonPos, err := astro.GetMoonPosition(date, obs.Lat, obs.Lon)
	if err != nil {
		return nil, err
	}
	moonTimes, err := astro.GetMoonTimes(date, obs.Lat, obs.Lon, opts.InUTC)
	if err != nil {
		return nil, err
	}

	return &DayReport{
		Observer:    obs,
		Date:        date,
		GeneratedAt: time.Now(),
		SunTimes:    times,
		SunPos:      sunPos,
		MoonPos:     moonPos,
		MoonTimes:   moonTimes,
		MoonIllum:   astro.GetMoonIllumination(date),
	}, nil
}

// OrderedEvents returns the day's sun events sorted by instant. Invalid
// events keep their fallback instants so the ordering stays total.
func (r *DayReport) OrderedEvents() []astro.SunTime {
	events := make([]astro.SunTime, 0, len(r.SunTimes))
	for _, st := range r.SunTimes {
		events = append(events, st)
	}
	sort.Slice(events, func(i, j int) bool {
		if events[i].Time.Equal(events[j].Time) {
			return events[i].Name < events[j].Name
		}
		return events[i].Time.Before(events[j].Time)
	})
	return events
}

// NextEvent returns the first valid event after now, or nil when the
// day's remaining events are exhausted.
func (r *DayReport) NextEvent(now time.Time) *astro.SunTime {
	for _, st := range r.OrderedEvents() {
		if st.Valid && st.Time.After(now) {
			next := st
			return &next
		}
	}
	return nil
}
