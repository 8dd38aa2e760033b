package cli

import (
	"io"

	"github.com/pfrederiksen/contest-radar/internal/contest"
	"github.com/pfrederiksen/contest-radar/internal/logger"
	"github.com/pfrederiksen/contest-radar/internal/radar"
	"github.com/pfrederiksen/contest-radar/internal/render"
)

// newRenderer names the configured display zone in page headers
func newRenderer() *render.Renderer {
	return render.New(cfg.DisplayTimezone)
}

// writeReport writes the report in the specified format
func writeReport(w io.Writer, report *radar.Report, format render.Format) error {
	return newRenderer().Write(w, report, format)
}

// logDurations logs how long each platform took, in display order
func logDurations(report *radar.Report) {
	for _, p := range contest.Platforms() {
		d, ok := report.Durations[p]
		if !ok {
			continue
		}
		logger.Debug("Fetch timing", logger.Fields{
			"run_id":   report.RunID,
			"platform": string(p),
			"duration": d.String(),
		})
	}
}
