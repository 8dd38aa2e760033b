package platform

import (
	"context"
	"fmt"
	"strings"

	"github.com/pfrederiksen/contest-radar/internal/contest"
	"github.com/pfrederiksen/contest-radar/internal/timezone"
)

const (
	CodeforcesURL = "https://codeforces.com"

	// phaseBefore marks a Codeforces contest that has not started
	phaseBefore = "BEFORE"
)

type codeforcesResponse struct {
	Status  string              `json:"status"`
	Comment string              `json:"comment"`
	Result  []codeforcesContest `json:"result"`
}

type codeforcesContest struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	Phase            string `json:"phase"`
	StartTimeSeconds *int64 `json:"startTimeSeconds"`
	DurationSeconds  *int64 `json:"durationSeconds"`
}

// Codeforces reads the public contest.list API
type Codeforces struct {
	base
}

// NewCodeforces creates the Codeforces adapter
func NewCodeforces(opts Options) *Codeforces {
	return &Codeforces{base: newBase(contest.Codeforces, CodeforcesURL, opts)}
}

// Platform returns contest.Codeforces
func (a *Codeforces) Platform() contest.Platform {
	return contest.Codeforces
}

// Fetch selects among contests in the BEFORE phase
func (a *Codeforces) Fetch(ctx context.Context) ([]*contest.Contest, error) {
	var resp codeforcesResponse
	if err := a.client.GetJSON(ctx, a.baseURL+"/api/contest.list", &resp); err != nil {
		return nil, fmt.Errorf("fetching contest list: %w", err)
	}

	if resp.Status != "" && resp.Status != "OK" {
		return nil, fmt.Errorf("%w: status %s: %s", ErrMalformed, resp.Status, resp.Comment)
	}
	if resp.Result == nil {
		return nil, fmt.Errorf("%w: missing result", ErrMalformed)
	}

	candidates := newCandidates(len(resp.Result))
	for _, c := range resp.Result {
		if c.Phase != phaseBefore {
			continue
		}
		candidates.add(a.mapContest(c))
	}

	return a.pick(candidates)
}

// mapContest always returns a contest; the error marks it unusable
func (a *Codeforces) mapContest(c codeforcesContest) (*contest.Contest, error) {
	link := fmt.Sprintf("%s/contest/%d", CodeforcesURL, c.ID)
	if c.StartTimeSeconds == nil || c.DurationSeconds == nil {
		return contest.New(contest.Codeforces, strings.TrimSpace(c.Name), "", "", link),
			fmt.Errorf("%w: contest %d without start or duration", ErrMalformed, c.ID)
	}

	mapped := contest.New(
		contest.Codeforces,
		strings.TrimSpace(c.Name),
		a.tz.FromEpoch(*c.StartTimeSeconds),
		timezone.FormatDuration(*c.DurationSeconds),
		link,
	)
	mapped.StartsAt = a.tz.EpochTime(*c.StartTimeSeconds)
	return mapped, nil
}
