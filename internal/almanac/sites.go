package almanac

import (
	"sort"
	"strings"

	"github.com/litescript/ls-almanac/astro"
)

// Site is a named observer preset for the -site flag and the TUI.
type Site struct {
	Key  string
	Name string
	Lat  float64
	Lon  float64
	// Height in meters above the horizon reference.
	Height float64
}

// KnownSites maps preset keys to observers. Keys are lowercase.
var KnownSites = map[string]Site{
	"kyiv":         {Key: "kyiv", Name: "Kyiv", Lat: 50.45, Lon: 30.52, Height: 179},
	"london":       {Key: "london", Name: "London", Lat: 51.5074, Lon: -0.1278, Height: 11},
	"sydney":       {Key: "sydney", Name: "Sydney", Lat: -33.8688, Lon: 151.2093, Height: 58},
	"reykjavik":    {Key: "reykjavik", Name: "Reykjavik", Lat: 64.1466, Lon: -21.9426, Height: 15},
	"longyearbyen": {Key: "longyearbyen", Name: "Longyearbyen", Lat: 78.2232, Lon: 15.6267, Height: 2},
	"quito":        {Key: "quito", Name: "Quito", Lat: -0.1807, Lon: -78.4678, Height: 2850},
	"tokyo":        {Key: "tokyo", Name: "Tokyo", Lat: 35.6762, Lon: 139.6503, Height: 40},
}

// SiteByKey looks up a preset, case-insensitively.
func SiteByKey(key string) (Site, bool) {
	s, ok := KnownSites[strings.ToLower(strings.TrimSpace(key))]
	return s, ok
}

// SiteKeys returns the preset keys in sorted order.
func SiteKeys() []string {
	keys := make([]string, 0, len(KnownSites))
	for k := range KnownSites {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Observer converts a site preset to an astro.Observer.
func (s Site) Observer() astro.Observer {
	return astro.Observer{Lat: s.Lat, Lon: s.Lon, Height: s.Height, Name: s.Name}
}
