package astro

import (
	"errors"
	"fmt"
	"regexp"
)

// SunEventDefinition names the pair of instants at which the sun
// crosses a given elevation angle: once rising, once setting.
type SunEventDefinition struct {
	Angle    float64 // degrees relative to the horizon
	RiseName string
	SetName  string
}

// eventAlias maps a retired event name onto the entry that replaced it.
type eventAlias struct {
	alias     string
	canonical string
}

// Event registration errors.
var (
	ErrEventNameInvalid = errors.New("astro: event name is not a valid identifier")
	ErrEventNameTaken   = errors.New("astro: event name already registered")
	ErrUnknownCanonical = errors.New("astro: alias target is not a registered event name")
)

// Event names follow identifier syntax: no leading digit, then letters,
// digits, '$' and '_'.
var eventNamePattern = regexp.MustCompile(`^[a-zA-Z$_][a-zA-Z0-9$_]*$`)

// Names of the two transit events every table reports.
const (
	EventSolarNoon = "solarNoon"
	EventNadir     = "nadir"
)

// EventTable is the ordered set of sun event definitions plus the
// deprecated-name aliases resolving against it. Tables are not safe for
// concurrent mutation; callers extending a shared table must serialize
// those writes themselves. The usual pattern is to register custom
// events once at startup.
type EventTable struct {
	entries []SunEventDefinition
	aliases []eventAlias
}

// DefaultEvents returns a new table holding the standard twilight,
// golden-hour and blue-hour angles.
func DefaultEvents() *EventTable {
	return &EventTable{
		entries: []SunEventDefinition{
			{6, "goldenHourDawnEnd", "goldenHourDuskStart"},
			{-0.3, "sunriseEnd", "sunsetStart"},
			{-0.833, "sunriseStart", "sunsetEnd"},
			{-1, "goldenHourDawnStart", "goldenHourDuskEnd"},
			{-4, "blueHourDawnEnd", "blueHourDuskStart"},
			{-6, "civilDawn", "civilDusk"},
			{-8, "blueHourDawnStart", "blueHourDuskEnd"},
			{-12, "nauticalDawn", "nauticalDusk"},
			{-15, "amateurDawn", "amateurDusk"},
			{-18, "astronomicalDawn", "astronomicalDusk"},
		},
		aliases: []eventAlias{
			{"sunrise", "sunriseStart"},
			{"sunset", "sunsetEnd"},
			{"dawn", "civilDawn"},
			{"dusk", "civilDusk"},
			{"goldenHourEnd", "goldenHourDawnEnd"},
			{"goldenHour", "goldenHourDuskStart"},
			{"goldenHourStart", "goldenHourDuskStart"},
			{"nightEnd", "astronomicalDawn"},
			{"night", "astronomicalDusk"},
			{"nightStart", "astronomicalDusk"},
		},
	}
}

// Default is the process-wide table used by the package-level
// functions. Extend it at startup only.
var Default = DefaultEvents()

// has reports whether name is already claimed by an entry, an alias, or
// one of the fixed transit names.
func (tbl *EventTable) has(name string) bool {
	if name == EventSolarNoon || name == EventNadir {
		return true
	}
	for _, e := range tbl.entries {
		if e.RiseName == name || e.SetName == name {
			return true
		}
	}
	for _, a := range tbl.aliases {
		if a.alias == name {
			return true
		}
	}
	return false
}

// Register appends a custom (angle, rise, set) entry. Both names must
// be valid identifiers and not collide with any existing entry or
// alias, including previously registered custom ones.
func (tbl *EventTable) Register(angle float64, riseName, setName string) error {
	for _, name := range []string{riseName, setName} {
		if !eventNamePattern.MatchString(name) {
			return fmt.Errorf("%w: %q", ErrEventNameInvalid, name)
		}
		if tbl.has(name) {
			return fmt.Errorf("%w: %q", ErrEventNameTaken, name)
		}
	}
	if riseName == setName {
		return fmt.Errorf("%w: %q", ErrEventNameTaken, setName)
	}
	tbl.entries = append(tbl.entries, SunEventDefinition{angle, riseName, setName})
	return nil
}

// RegisterAlias maps a deprecated name onto an already registered
// canonical rise or set name.
func (tbl *EventTable) RegisterAlias(alias, canonical string) error {
	if !eventNamePattern.MatchString(alias) {
		return fmt.Errorf("%w: %q", ErrEventNameInvalid, alias)
	}
	if tbl.has(alias) {
		return fmt.Errorf("%w: %q", ErrEventNameTaken, alias)
	}
	canonicalKnown := false
	for _, e := range tbl.entries {
		if e.RiseName == canonical || e.SetName == canonical {
			canonicalKnown = true
			break
		}
	}
	if !canonicalKnown {
		return fmt.Errorf("%w: %q", ErrUnknownCanonical, canonical)
	}
	tbl.aliases = append(tbl.aliases, eventAlias{alias, canonical})
	return nil
}

// Entries returns a copy of the table's definitions, in order.
func (tbl *EventTable) Entries() []SunEventDefinition {
	out := make([]SunEventDefinition, len(tbl.entries))
	copy(out, tbl.entries)
	return out
}

// RegisterTwilightEvent adds a custom entry to the Default table.
func RegisterTwilightEvent(angle float64, riseName, setName string) error {
	return Default.Register(angle, riseName, setName)
}

// RegisterDeprecatedAlias adds a deprecated-name alias to the Default table.
func RegisterDeprecatedAlias(alias, canonical string) error {
	return Default.RegisterAlias(alias, canonical)
}
