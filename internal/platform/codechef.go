package platform

import (
	"context"
	"fmt"
	"strings"

	"github.com/pfrederiksen/contest-radar/internal/contest"
)

const CodeChefURL = "https://www.codechef.com"

type codechefResponse struct {
	Status         string            `json:"status"`
	FutureContests []codechefContest `json:"future_contests"`
}

type codechefContest struct {
	Code         string `json:"contest_code"`
	Name         string `json:"contest_name"`
	StartDate    string `json:"contest_start_date"`
	EndDate      string `json:"contest_end_date"`
	StartDateISO string `json:"contest_start_date_iso"`
}

// CodeChef reads the future_contests list of the contests API.
// Start times are kept as CodeChef formats them.
type CodeChef struct {
	base
}

// NewCodeChef creates the CodeChef adapter
func NewCodeChef(opts Options) *CodeChef {
	return &CodeChef{base: newBase(contest.CodeChef, CodeChefURL, opts)}
}

// Platform returns contest.CodeChef
func (a *CodeChef) Platform() contest.Platform {
	return contest.CodeChef
}

// Fetch selects among future contests; a missing list means no contests
func (a *CodeChef) Fetch(ctx context.Context) ([]*contest.Contest, error) {
	var resp codechefResponse
	if err := a.client.GetJSON(ctx, a.baseURL+"/api/list/contests/all", &resp); err != nil {
		return nil, fmt.Errorf("fetching contest list: %w", err)
	}

	candidates := newCandidates(len(resp.FutureContests))
	for _, c := range resp.FutureContests {
		candidates.add(a.mapContest(c))
	}

	return a.pick(candidates)
}

func (a *CodeChef) mapContest(c codechefContest) (*contest.Contest, error) {
	mapped := contest.New(
		contest.CodeChef,
		strings.TrimSpace(c.Name),
		c.StartDate,
		fmt.Sprintf("Until %s", c.EndDate),
		fmt.Sprintf("%s/%s", CodeChefURL, c.Code),
	)

	mapped.StartsAt = a.tz.ParseFlexible(c.StartDateISO)
	if mapped.StartsAt.IsZero() {
		mapped.StartsAt = a.tz.ParseFlexible(c.StartDate)
	}
	return mapped, requireFields(fmt.Sprintf("contest %q", c.Code),
		"contest_code", c.Code,
		"contest_start_date", c.StartDate,
		"contest_end_date", c.EndDate,
	)
}
