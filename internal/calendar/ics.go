// Package calendar exports aggregated contests as an iCalendar feed.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/pfrederiksen/contest-radar/internal/contest"
)

// ContentType is the media type served for .ics output
const ContentType = "text/calendar; charset=utf-8"

// GenerateICS builds one VCALENDAR with a VEVENT per contest whose start instant
// is known. Contests without a parsed StartsAt are skipped.
func GenerateICS(contests []*contest.Contest, now time.Time) string {
	var ics strings.Builder

	ics.WriteString("BEGIN:VCALENDAR\r\n")
	ics.WriteString("VERSION:2.0\r\n")
	ics.WriteString("PRODID:-//contest-radar//contest-radar//EN\r\n")
	ics.WriteString("CALSCALE:GREGORIAN\r\n")
	ics.WriteString("METHOD:PUBLISH\r\n")
	ics.WriteString("X-WR-CALNAME:Upcoming Contests\r\n")

	for _, c := range contests {
		if c.StartsAt.IsZero() {
			continue
		}
		writeEvent(&ics, c, now)
	}

	ics.WriteString("END:VCALENDAR\r\n")

	return ics.String()
}

func writeEvent(ics *strings.Builder, c *contest.Contest, now time.Time) {
	id := c.ID
	if id == "" {
		id = contest.GenerateID(c.Platform, c.Link)
	}

	ics.WriteString("BEGIN:VEVENT\r\n")
	ics.WriteString(fmt.Sprintf("UID:%s@contest-radar\r\n", id))
	ics.WriteString(fmt.Sprintf("DTSTAMP:%s\r\n", formatICSTime(now)))
	ics.WriteString(fmt.Sprintf("DTSTART:%s\r\n", formatICSTime(c.StartsAt)))

	if d, ok := ParseDuration(c.Duration); ok {
		ics.WriteString(fmt.Sprintf("DTEND:%s\r\n", formatICSTime(c.StartsAt.Add(d))))
	}

	summary := fmt.Sprintf("%s: %s", c.Platform, c.Name)
	ics.WriteString(fmt.Sprintf("SUMMARY:%s\r\n", escapeICS(summary)))

	description := fmt.Sprintf("Start: %s\nDuration: %s\n\n%s", c.StartTime, c.Duration, c.Link)
	ics.WriteString(fmt.Sprintf("DESCRIPTION:%s\r\n", escapeICS(description)))

	if c.Link != "" {
		ics.WriteString(fmt.Sprintf("URL:%s\r\n", c.Link))
	}

	ics.WriteString("STATUS:CONFIRMED\r\n")
	ics.WriteString("SEQUENCE:0\r\n")
	ics.WriteString("TRANSP:OPAQUE\r\n")
	ics.WriteString("END:VEVENT\r\n")
}

// ParseDuration reads the duration forms adapters produce: "2h 30m" and the
// AtCoder cell "01:40". Anything else ("Until ...", "-") is not a duration.
func ParseDuration(s string) (time.Duration, bool) {
	s = strings.TrimSpace(s)

	var h, m int
	if n, err := fmt.Sscanf(s, "%dh %dm", &h, &m); err == nil && n == 2 {
		return durationOf(h, m)
	}
	if n, err := fmt.Sscanf(s, "%d:%d", &h, &m); err == nil && n == 2 && strings.Count(s, ":") == 1 {
		return durationOf(h, m)
	}
	return 0, false
}

func durationOf(h, m int) (time.Duration, bool) {
	if h < 0 || m < 0 || m >= 60 {
		return 0, false
	}
	d := time.Duration(h)*time.Hour + time.Duration(m)*time.Minute
	return d, d > 0
}

// formatICSTime formats a time.Time as an iCalendar datetime string
func formatICSTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

// escapeICS escapes special characters for iCalendar format
func escapeICS(s string) string {
	// Replace special characters according to RFC 5545
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
