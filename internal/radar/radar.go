package radar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pfrederiksen/contest-radar/internal/contest"
	"github.com/pfrederiksen/contest-radar/internal/logger"
	"github.com/pfrederiksen/contest-radar/internal/platform"
)

// NoticeLevel is the severity shown next to a platform notice
type NoticeLevel string

const (
	LevelWarning NoticeLevel = "warning"
	LevelError   NoticeLevel = "error"
)

// Notice describes one adapter that could not contribute a contest
type Notice struct {
	Platform contest.Platform `json:"platform"`
	Level    NoticeLevel      `json:"level"`
	Message  string           `json:"message"`
}

// String formats the notice the way the dashboard shows it
func (n Notice) String() string {
	return fmt.Sprintf("%s: %s", n.Platform, n.Message)
}

// Report is the result of one aggregation run
type Report struct {
	RunID       string                             `json:"run_id"`
	Contests    []*contest.Contest                 `json:"contests"`
	Notices     []Notice                           `json:"notices,omitempty"`
	GeneratedAt time.Time                          `json:"generated_at"`
	Durations   map[contest.Platform]time.Duration `json:"-"`
}

// Empty reports whether no adapter produced a contest
func (r *Report) Empty() bool {
	return len(r.Contests) == 0
}

// Radar aggregates contests from a fixed list of adapters
type Radar struct {
	adapters []platform.Adapter
	log      *logger.Logger
	metrics  *logger.Metrics
	now      func() time.Time
}

// Option configures a Radar
type Option func(*Radar)

// WithLogger sets the logger notices are written to
func WithLogger(l *logger.Logger) Option {
	return func(r *Radar) {
		r.log = l
	}
}

// WithMetrics sets the metrics tracker fetch counters and timings go to
func WithMetrics(m *logger.Metrics) Option {
	return func(r *Radar) {
		r.metrics = m
	}
}

// WithClock overrides the clock used for GeneratedAt
func WithClock(now func() time.Time) Option {
	return func(r *Radar) {
		r.now = now
	}
}

// New creates a Radar running adapters in the given order
func New(adapters []platform.Adapter, opts ...Option) *Radar {
	r := &Radar{
		adapters: adapters,
		log:      logger.Default(),
		metrics:  logger.DefaultMetrics(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Collect runs every adapter once and concatenates their results in adapter order.
// It never fails; problems are returned as notices on the report.
func (r *Radar) Collect(ctx context.Context) *Report {
	report := &Report{
		RunID:     uuid.NewString(),
		Contests:  []*contest.Contest{},
		Durations: make(map[contest.Platform]time.Duration, len(r.adapters)),
	}
	log := r.log.With(logger.Fields{"run_id": report.RunID})

	for _, a := range r.adapters {
		p := a.Platform()
		start := time.Now()
		contests, err := fetch(ctx, a)
		elapsed := time.Since(start)

		report.Durations[p] = elapsed
		r.metrics.RecordTiming("fetch."+p.Key(), elapsed)

		if err != nil {
			notice := classify(p, err)
			report.Notices = append(report.Notices, notice)
			r.metrics.IncrCounter("fetch." + p.Key() + "." + string(notice.Level))

			fields := logger.Fields{"platform": string(p), "duration": elapsed.String()}
			if notice.Level == LevelWarning {
				log.Warn("Adapter reported a problem", fields)
			} else {
				log.Error("Adapter failed", fields, err)
			}
			continue
		}

		r.metrics.IncrCounter("fetch." + p.Key() + ".ok")
		log.Debug("Adapter finished", logger.Fields{
			"platform": string(p),
			"contests": len(contests),
			"duration": elapsed.String(),
		})
		report.Contests = append(report.Contests, contests...)
	}

	report.GeneratedAt = r.now()
	r.metrics.SetGauge("contests", float64(len(report.Contests)))
	log.Info("Collection finished", logger.Fields{
		"contests": len(report.Contests),
		"notices":  len(report.Notices),
	})
	return report
}

// fetch calls a.Fetch, turning a panic into an error
func fetch(ctx context.Context, a platform.Adapter) (contests []*contest.Contest, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			contests = nil
			err = fmt.Errorf("adapter panicked: %v", rec)
		}
	}()
	return a.Fetch(ctx)
}

func classify(p contest.Platform, err error) Notice {
	level := LevelError
	if errors.Is(err, platform.ErrStructureChanged) {
		level = LevelWarning
	}
	return Notice{
		Platform: p,
		Level:    level,
		Message:  err.Error(),
	}
}
