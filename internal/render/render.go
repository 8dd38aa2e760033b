package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pfrederiksen/contest-radar/internal/calendar"
	"github.com/pfrederiksen/contest-radar/internal/radar"
	"github.com/pfrederiksen/contest-radar/internal/timezone"
)

// Format specifies the output format
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatTerminal Format = "terminal"
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatHTML     Format = "html"
	FormatICS      Format = "ics"
)

const (
	// NoContests is shown instead of the cards when the report has no contests
	NoContests = "No upcoming contests found. Please try again later."

	// LastUpdatedLayout formats the report's generation time
	LastUpdatedLayout = "2006-01-02 15:04:05"

	// Title heads the full page views
	Title = "ContestRadar: Next Coding Contest on Each Platform"
)

// Formats lists every supported format
func Formats() []Format {
	return []Format{FormatMarkdown, FormatTerminal, FormatText, FormatJSON, FormatHTML, FormatICS}
}

// ParseFormat resolves a format name case-insensitively
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats() {
		if f == known {
			return f, nil
		}
	}
	names := make([]string, 0, len(Formats()))
	for _, known := range Formats() {
		names = append(names, string(known))
	}
	return "", fmt.Errorf("invalid format: %s (must be one of %s)", s, strings.Join(names, ", "))
}

// Renderer writes reports in any Format
type Renderer struct {
	// Zone is the display timezone named in page headers
	Zone string

	// Style is the glamour style for FormatTerminal: "auto", "dark", "light", "notty"...
	Style string
	Width int
}

// New creates a Renderer for the given display zone
func New(zone string) *Renderer {
	if zone == "" {
		zone = timezone.DefaultZone
	}
	return &Renderer{
		Zone:  zone,
		Style: "auto",
		Width: 80,
	}
}

// Write renders report to w in the specified format
func (r *Renderer) Write(w io.Writer, report *radar.Report, format Format) error {
	switch format {
	case FormatMarkdown:
		_, err := io.WriteString(w, Markdown(report))
		return err
	case FormatTerminal:
		out, err := r.Terminal(report)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, out)
		return err
	case FormatText:
		return writeText(w, report)
	case FormatJSON:
		return writeJSON(w, report)
	case FormatHTML:
		return r.Page(w, report)
	case FormatICS:
		_, err := io.WriteString(w, calendar.GenerateICS(report.Contests, report.GeneratedAt))
		return err
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// lastUpdated is the caption under the cards
func lastUpdated(report *radar.Report) string {
	return "Last Updated: " + report.GeneratedAt.Format(LastUpdatedLayout)
}

// noticeIcon marks a notice by level
func noticeIcon(n radar.Notice) string {
	if n.Level == radar.LevelWarning {
		return "⚠️"
	}
	return "❌"
}

// writeJSON outputs the report as JSON
func writeJSON(w io.Writer, report *radar.Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

// writeText outputs the report as plain text
func writeText(w io.Writer, report *radar.Report) error {
	if report.Empty() {
		_, err := fmt.Fprintln(w, NoContests)
		return err
	}

	for _, n := range report.Notices {
		fmt.Fprintf(w, "[%s] %s\n", n.Level, n)
	}
	if len(report.Notices) > 0 {
		fmt.Fprintln(w)
	}

	for _, c := range report.Contests {
		fmt.Fprintf(w, "%s\n", c.Name)
		fmt.Fprintf(w, "  Platform:   %s\n", c.Platform)
		fmt.Fprintf(w, "  Start Time: %s\n", c.StartTime)
		fmt.Fprintf(w, "  Duration:   %s\n", c.Duration)
		fmt.Fprintf(w, "  Link:       %s\n", c.Link)
		fmt.Fprintln(w, strings.Repeat("-", 40))
	}

	_, err := fmt.Fprintln(w, lastUpdated(report))
	return err
}
