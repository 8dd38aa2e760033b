package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/pfrederiksen/contest-radar/internal/radar"
)

// Markdown renders the report as contest cards: a linked heading, the
// Platform/Start Time/Duration lines and a separator per contest.
func Markdown(report *radar.Report) string {
	var md strings.Builder

	if report.Empty() {
		md.WriteString(NoContests + "\n")
		return md.String()
	}

	for _, n := range report.Notices {
		md.WriteString(fmt.Sprintf("> %s %s\n\n", noticeIcon(n), escapeMarkdown(n.String())))
	}

	for _, c := range report.Contests {
		md.WriteString(fmt.Sprintf("### [%s](%s)\n\n", escapeMarkdown(c.Name), c.Link))
		md.WriteString(fmt.Sprintf("**Platform**: %s  \n", c.Platform))
		md.WriteString(fmt.Sprintf("**Start Time**: %s  \n", c.StartTime))
		md.WriteString(fmt.Sprintf("**Duration**: %s\n\n", c.Duration))
		md.WriteString("---\n\n")
	}

	md.WriteString(lastUpdated(report) + "\n")
	return md.String()
}

// Terminal renders Markdown with glamour for display in a terminal
func (r *Renderer) Terminal(report *radar.Report) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(r.Width)}
	if r.Style == "" || r.Style == "auto" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(r.Style))
	}

	tr, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("creating terminal renderer: %w", err)
	}

	out, err := tr.Render(Markdown(report))
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return out, nil
}

// escapeMarkdown keeps contest names from breaking the link syntax
func escapeMarkdown(s string) string {
	replacer := strings.NewReplacer(
		`\`, `\\`,
		`[`, `\[`,
		`]`, `\]`,
		`*`, `\*`,
		`_`, `\_`,
	)
	return replacer.Replace(s)
}
