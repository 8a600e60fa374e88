package almanac

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
)

// ReportExport is the JSON-serializable representation of a day report.
type ReportExport struct {
	GeneratedAt time.Time      `json:"generated_at"`
	Date        time.Time      `json:"date"`
	Observer    ObserverExport `json:"observer"`
	SunEvents   []EventExport  `json:"sun_events"`
	Sun         SunExport      `json:"sun"`
	Moon        MoonExport     `json:"moon"`
}

// ObserverExport is a JSON-friendly observer representation.
type ObserverExport struct {
	Name   string  `json:"name,omitempty"`
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
	Height float64 `json:"height_m,omitempty"`
}

// EventExport is a JSON-friendly sun event.
type EventExport struct {
	Name      string    `json:"name"`
	Time      time.Time `json:"time"`
	Valid     bool      `json:"valid"`
	Elevation float64   `json:"elevation_deg"`
}

// SunExport carries the sun's position at the report instant.
type SunExport struct {
	Azimuth  float64 `json:"azimuth_deg"`
	Altitude float64 `json:"altitude_deg"`
}

// MoonExport carries position, crossings and illumination.
type MoonExport struct {
	Azimuth    float64    `json:"azimuth_deg"`
	Altitude   float64    `json:"altitude_deg"`
	Distance   float64    `json:"distance_km"`
	Rise       *time.Time `json:"rise,omitempty"`
	Set        *time.Time `json:"set,omitempty"`
	AlwaysUp   bool       `json:"always_up,omitempty"`
	AlwaysDown bool       `json:"always_down,omitempty"`
	Fraction   float64    `json:"illuminated_fraction"`
	PhaseValue float64    `json:"phase_value"`
	Phase      string     `json:"phase"`
	PhaseEmoji string     `json:"phase_emoji"`
	NextNew    time.Time  `json:"next_new_moon"`
	NextFull   time.Time  `json:"next_full_moon"`
}

// ExportReport converts a day report to its exportable form.
func ExportReport(r *DayReport) *ReportExport {
	if r == nil {
		return &ReportExport{}
	}

	export := &ReportExport{
		GeneratedAt: r.GeneratedAt,
		Date:        r.Date,
		Observer: ObserverExport{
			Name:   r.Observer.Name,
			Lat:    r.Observer.Lat,
			Lon:    r.Observer.Lon,
			Height: r.Observer.Height,
		},
		Sun: SunExport{
			Azimuth:  r.SunPos.AzimuthDegrees,
			Altitude: r.SunPos.AltitudeDegrees,
		},
		Moon: MoonExport{
			Azimuth:    r.MoonPos.AzimuthDegrees,
			Altitude:   r.MoonPos.AltitudeDegrees,
			Distance:   r.MoonPos.Distance,
			AlwaysUp:   r.MoonTimes.AlwaysUp,
			AlwaysDown: r.MoonTimes.AlwaysDown,
			Fraction:   r.MoonIllum.Fraction,
			PhaseValue: r.MoonIllum.PhaseValue,
			Phase:      string(r.MoonIllum.Phase.ID),
			PhaseEmoji: r.MoonIllum.Phase.Emoji,
			NextNew:    r.MoonIllum.Next.NewMoon,
			NextFull:   r.MoonIllum.Next.FullMoon,
		},
	}

	if !r.MoonTimes.Rise.IsZero() {
		rise := r.MoonTimes.Rise
		export.Moon.Rise = &rise
	}
	if !r.MoonTimes.Set.IsZero() {
		set := r.MoonTimes.Set
		export.Moon.Set = &set
	}

	for _, st := range r.OrderedEvents() {
		export.SunEvents = append(export.SunEvents, EventExport{
			Name:      st.Name,
			Time:      st.Time,
			Valid:     st.Valid,
			Elevation: st.ElevationAngle,
		})
	}

	return export
}

// WriteJSON writes the report as indented JSON to the given writer.
func (e *ReportExport) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(e)
}

// WriteSummaryTable writes the day's events and moon facts as a text
// table.
func WriteSummaryTable(w io.Writer, r *DayReport) {
	if r == nil {
		fmt.Fprintln(w, "No report")
		return
	}

	where := r.Observer.Name
	if where == "" {
		where = fmt.Sprintf("%.4f, %.4f", r.Observer.Lat, r.Observer.Lon)
	}
	fmt.Fprintf(w, "Almanac for %s @ %s\n", where, r.Date.Format("2006-01-02"))
	fmt.Fprintln(w, strings.Repeat("─", 56))

	fmt.Fprintf(w, "%-24s %-22s %8s\n", "Event", "Time", "Elev")
	fmt.Fprintln(w, strings.Repeat("─", 56))

	for _, st := range r.OrderedEvents() {
		when := st.Time.Format("15:04:05 MST")
		if !st.Valid {
			when = "—"
		}
		fmt.Fprintf(w, "%-24s %-22s %7.2f°\n", truncateStr(st.Name, 24), when, st.ElevationAngle)
	}

	fmt.Fprintln(w, strings.Repeat("─", 56))
	fmt.Fprintf(w, "Moon: %s %s, %.0f%% lit, %.0f km\n",
		r.MoonIllum.Phase.Emoji, r.MoonIllum.Phase.ID, r.MoonIllum.Fraction*100, r.MoonPos.Distance)

	switch {
	case r.MoonTimes.AlwaysUp:
		fmt.Fprintln(w, "Moon above the horizon all day")
	case r.MoonTimes.AlwaysDown:
		fmt.Fprintln(w, "Moon below the horizon all day")
	default:
		if !r.MoonTimes.Rise.IsZero() {
			fmt.Fprintf(w, "Moonrise: %s\n", r.MoonTimes.Rise.Format("15:04:05 MST"))
		}
		if !r.MoonTimes.Set.IsZero() {
			fmt.Fprintf(w, "Moonset:  %s\n", r.MoonTimes.Set.Format("15:04:05 MST"))
		}
	}
}

// WriteNowLine writes a one-line status: sun altitude, next event, moon
// phase. Meant for prompt integrations and watch mode.
func WriteNowLine(w io.Writer, r *DayReport, now time.Time) {
	if r == nil {
		fmt.Fprintln(w, "no data")
		return
	}

	next := "no more events today"
	if ev := r.NextEvent(now); ev != nil {
		next = fmt.Sprintf("%s in %s", ev.Name, ev.Time.Sub(now).Round(time.Minute))
	}
	fmt.Fprintf(w, "☀ %+.1f° | %s | %s %.0f%%\n",
		r.SunPos.AltitudeDegrees, next, r.MoonIllum.Phase.Emoji, r.MoonIllum.Fraction*100)
}

func truncateStr(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-2] + ".."
}
