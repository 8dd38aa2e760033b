package platform

import (
	"context"
	"fmt"
	"strings"

	"github.com/pfrederiksen/contest-radar/internal/contest"
)

const (
	GeeksforGeeksURL = "https://practiceapi.geeksforgeeks.org"

	// gfgDuration is shown for every event; the events API is not used to derive one
	gfgDuration = "-"
)

type gfgResponse struct {
	Count   int        `json:"count"`
	Results []gfgEvent `json:"results"`
}

type gfgEvent struct {
	Title     string `json:"title"`
	StartDate string `json:"start_date"`
	URL       string `json:"url"`
}

// GeeksforGeeks reads the first page of the events API
type GeeksforGeeks struct {
	base
}

// NewGeeksforGeeks creates the GeeksforGeeks adapter
func NewGeeksforGeeks(opts Options) *GeeksforGeeks {
	return &GeeksforGeeks{base: newBase(contest.GeeksforGeeks, GeeksforGeeksURL, opts)}
}

// Platform returns contest.GeeksforGeeks
func (a *GeeksforGeeks) Platform() contest.Platform {
	return contest.GeeksforGeeks
}

// Fetch selects among the events on page 1; a missing list means no contests
func (a *GeeksforGeeks) Fetch(ctx context.Context) ([]*contest.Contest, error) {
	var resp gfgResponse
	if err := a.client.GetJSON(ctx, a.baseURL+"/api/v1/events/?page=1", &resp); err != nil {
		return nil, fmt.Errorf("fetching events: %w", err)
	}

	candidates := newCandidates(len(resp.Results))
	for _, e := range resp.Results {
		candidates.add(a.mapEvent(e))
	}

	return a.pick(candidates)
}

func (a *GeeksforGeeks) mapEvent(e gfgEvent) (*contest.Contest, error) {
	mapped := contest.New(
		contest.GeeksforGeeks,
		strings.TrimSpace(e.Title),
		StripOffset(e.StartDate),
		gfgDuration,
		e.URL,
	)
	mapped.StartsAt = a.tz.ParseFlexible(e.StartDate)

	what := fmt.Sprintf("event %q", e.Title)
	if err := requireFields(what, "start_date", e.StartDate, "url", e.URL); err != nil {
		return mapped, err
	}
	if !strings.HasPrefix(e.URL, "http://") && !strings.HasPrefix(e.URL, "https://") {
		return mapped, fmt.Errorf("%w: %s has non-absolute url %q", ErrMalformed, what, e.URL)
	}
	return mapped, nil
}

// StripOffset turns "2026-10-19T19:00:00+05:30" into "2026-10-19 19:00:00".
// Every "T" becomes a space and everything from the first "+" is dropped; no
// timezone conversion is applied.
func StripOffset(s string) string {
	s = strings.ReplaceAll(s, "T", " ")
	before, _, _ := strings.Cut(s, "+")
	return before
}
