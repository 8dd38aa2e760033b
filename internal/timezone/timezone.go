// Package timezone converts upstream timestamps into the dashboard's display timezone.
//
// Every converted start time uses the canonical DisplayLayout ("2006-01-02 15:04").
// Conversion never fails loudly: text that cannot be parsed is handed back as-is so
// a contest is still shown, just in its platform's own format.
package timezone

import (
	"fmt"
	"strings"
	"time"
)

const (
	// DefaultZone is the display timezone when none is configured
	DefaultZone = "Asia/Kolkata"

	// InputLayout is the UTC text form accepted by FormatTime
	InputLayout = "Jan/2/2006 15:4"

	// DisplayLayout is the canonical start time form
	DisplayLayout = "2006-01-02 15:04"
)

// IST is India Standard Time, UTC+5:30 with no daylight saving.
// Used when the tz database has no entry for DefaultZone.
var IST = time.FixedZone("IST", 5*3600+30*60)

// LoadLocation resolves a zone name. Empty means DefaultZone, which falls back
// to the fixed IST zone when the system has no tz database.
func LoadLocation(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultZone
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		if name == DefaultZone {
			return IST, nil
		}
		return nil, fmt.Errorf("loading timezone %q: %w", name, err)
	}
	return loc, nil
}

// Normalizer formats timestamps in a fixed display location
type Normalizer struct {
	loc *time.Location
}

// New creates a Normalizer for loc; a nil loc means IST
func New(loc *time.Location) *Normalizer {
	if loc == nil {
		loc = IST
	}
	return &Normalizer{loc: loc}
}

// Location returns the display location
func (n *Normalizer) Location() *time.Location {
	return n.loc
}

// FormatTime converts a UTC time in InputLayout ("Oct/18/2026 14:30") to DisplayLayout
// in the display location. Unparseable input is returned unchanged.
func (n *Normalizer) FormatTime(s string) string {
	t, err := time.ParseInLocation(InputLayout, s, time.UTC)
	if err != nil {
		return s
	}
	return t.In(n.loc).Format(DisplayLayout)
}

// EpochTime converts UTC seconds since the epoch to a time in the display location
func (n *Normalizer) EpochTime(sec int64) time.Time {
	return time.Unix(sec, 0).In(n.loc)
}

// FromEpoch converts UTC seconds since the epoch to DisplayLayout in the display location
func (n *Normalizer) FromEpoch(sec int64) string {
	return n.EpochTime(sec).Format(DisplayLayout)
}

// flexibleLayouts are the native start time forms seen upstream, tried in order.
// Layouts without a zone are read in the display location.
var flexibleLayouts = []string{
	"2006-01-02 15:04:05-0700", // AtCoder
	time.RFC3339,               // GeeksforGeeks start_date
	"2006-01-02T15:04:05",      // GeeksforGeeks without offset
	"2006-01-02 15:04:05",      // GeeksforGeeks after offset strip
	"2 Jan 2006 15:04:05",      // CodeChef, whitespace collapsed
	"2006-01-02 15:04",         // DisplayLayout
}

// ParseFlexible makes a best-effort parse of a platform's native start time.
// Returns time.Time{} (zero value) if no known layout matches.
func (n *Normalizer) ParseFlexible(s string) time.Time {
	trimmed := strings.Join(strings.Fields(s), " ")
	if trimmed == "" {
		return time.Time{}
	}

	for _, layout := range flexibleLayouts {
		if t, err := time.ParseInLocation(layout, trimmed, n.loc); err == nil {
			return t.In(n.loc)
		}
	}

	if t, err := time.ParseInLocation(InputLayout, trimmed, time.UTC); err == nil {
		return t.In(n.loc)
	}

	return time.Time{}
}

// FormatDuration renders seconds as "{h}h {m}m", dropping leftover seconds
func FormatDuration(sec int64) string {
	return fmt.Sprintf("%dh %dm", sec/3600, (sec%3600)/60)
}
