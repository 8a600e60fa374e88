package almanac

import (
	"math"
	"testing"
	"time"

	"github.com/litescript/ls-almanac/astro"
)

var (
	testObserver = astro.Observer{Lat: 50.5, Lon: 30.5, Name: "Kyiv"}
	testDate     = time.Date(2013, 3, 5, 0, 0, 0, 0, time.UTC)
)

func buildTestReport(t *testing.T) *DayReport {
	t.Helper()
	r, err := BuildDayReport(testObserver, testDate, Options{InUTC: true})
	if err != nil {
		t.Fatalf("BuildDayReport() error = %v", err)
	}
	return r
}

func TestBuildDayReport(t *testing.T) {
	r := buildTestReport(t)

	if _, ok := r.SunTimes["sunriseStart"]; !ok {
		t.Error("sunriseStart missing from report")
	}
	if _, ok := r.SunTimes["sunrise"]; ok {
		t.Error("deprecated alias present without IncludeDeprecated")
	}
	if r.MoonIllum.Fraction <= 0 || r.MoonIllum.Fraction >= 1 {
		t.Errorf("illuminated fraction = %v, want strictly inside (0,1) for this date", r.MoonIllum.Fraction)
	}
	if r.GeneratedAt.IsZero() {
		t.Error("GeneratedAt not stamped")
	}
}

func TestBuildDayReportInvalidObserver(t *testing.T) {
	bad := astro.Observer{Lat: 50.5, Lon: math.NaN()}
	if _, err := BuildDayReport(bad, testDate, Options{}); err != astro.ErrLongitudeMissing {
		t.Errorf("NaN longitude: err = %v, want ErrLongitudeMissing", err)
	}
}

func TestOrderedEvents(t *testing.T) {
	r := buildTestReport(t)

	events := r.OrderedEvents()
	if len(events) != len(r.SunTimes) {
		t.Fatalf("OrderedEvents() len = %d, want %d", len(events), len(r.SunTimes))
	}
	for i := 1; i < len(events); i++ {
		if events[i].Time.Before(events[i-1].Time) {
			t.Errorf("events out of order: %s at %v after %s at %v",
				events[i-1].Name, events[i-1].Time, events[i].Name, events[i].Time)
		}
	}
}

func TestNextEvent(t *testing.T) {
	r := buildTestReport(t)

	// Just before the day's sunrise the next event is the sunrise start.
	sunrise := r.SunTimes["sunriseStart"].Time
	next := r.NextEvent(sunrise.Add(-time.Second))
	if next == nil {
		t.Fatal("NextEvent() = nil before sunrise")
	}
	if next.Name != "sunriseStart" {
		t.Errorf("NextEvent() = %s, want sunriseStart", next.Name)
	}

	// Past the last event of the day there is nothing left.
	last := r.OrderedEvents()[len(r.SunTimes)-1]
	if got := r.NextEvent(last.Time.Add(time.Minute)); got != nil {
		t.Errorf("NextEvent() after %s = %s, want nil", last.Name, got.Name)
	}
}

func TestSitePresets(t *testing.T) {
	s, ok := SiteByKey("Kyiv")
	if !ok {
		t.Fatal("kyiv preset missing")
	}
	obs := s.Observer()
	if obs.Lat != s.Lat || obs.Lon != s.Lon || obs.Name != s.Name {
		t.Errorf("Observer() = %+v, want fields from %+v", obs, s)
	}

	if _, ok := SiteByKey("atlantis"); ok {
		t.Error("unknown preset resolved")
	}

	keys := SiteKeys()
	if len(keys) != len(KnownSites) {
		t.Fatalf("SiteKeys() len = %d, want %d", len(keys), len(KnownSites))
	}
	for i := 1; i < len(keys); i++ {
		if keys[i] < keys[i-1] {
			t.Errorf("SiteKeys() unsorted at %d: %s < %s", i, keys[i], keys[i-1])
		}
	}

	// Every preset must produce a computable report.
	for _, k := range keys {
		site := KnownSites[k]
		if _, err := BuildDayReport(site.Observer(), testDate, Options{InUTC: true}); err != nil {
			t.Errorf("site %s: BuildDayReport() error = %v", k, err)
		}
	}
}
