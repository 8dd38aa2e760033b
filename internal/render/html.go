package render

import (
	"fmt"
	"html/template"
	"io"

	"github.com/pfrederiksen/contest-radar/internal/radar"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>ContestRadar</title>
<style>
body { font-family: system-ui, sans-serif; max-width: 60rem; margin: 2rem auto; padding: 0 1rem; }
.info { background: #e8f1fb; padding: .75rem 1rem; border-radius: .25rem; }
.notice { padding: .5rem 1rem; border-radius: .25rem; margin: .5rem 0; }
.notice.warning { background: #fff6dd; }
.notice.error, .empty { background: #fde8e8; padding: .75rem 1rem; border-radius: .25rem; }
.caption { color: #666; font-size: .875rem; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p class="info">All times shown in <strong>{{.Zone}}</strong></p>
{{- if .Empty}}
<p class="empty">{{.NoContests}}</p>
{{- else}}
{{- range .Notices}}
<div class="notice {{.Level}}">{{.}}</div>
{{- end}}
{{- range .Contests}}
<section class="contest">
<h3><a href="{{.Link}}">{{.Name}}</a></h3>
<p><strong>Platform</strong>: {{.Platform}}<br>
<strong>Start Time</strong>: {{.StartTime}}<br>
<strong>Duration</strong>: {{.Duration}}</p>
<hr>
</section>
{{- end}}
<p class="caption">{{.LastUpdated}}</p>
{{- end}}
</body>
</html>
`))

type pageData struct {
	*radar.Report
	Title       string
	Zone        string
	NoContests  string
	LastUpdated string
}

// Page writes the full dashboard page for report
func (r *Renderer) Page(w io.Writer, report *radar.Report) error {
	data := pageData{
		Report:      report,
		Title:       Title,
		Zone:        r.Zone,
		NoContests:  NoContests,
		LastUpdated: lastUpdated(report),
	}
	if err := pageTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("rendering page: %w", err)
	}
	return nil
}
