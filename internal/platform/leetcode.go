package platform

import (
	"context"
	"fmt"
	"strings"

	"github.com/pfrederiksen/contest-radar/internal/contest"
	"github.com/pfrederiksen/contest-radar/internal/timezone"
)

const (
	LeetCodeURL = "https://leetcode.com"

	upcomingContestsQuery = `
		query {
			upcomingContests {
				title
				titleSlug
				startTime
				duration
			}
		}
	`
)

type graphqlRequest struct {
	Query string `json:"query"`
}

type leetcodeResponse struct {
	Data *struct {
		UpcomingContests []leetcodeContest `json:"upcomingContests"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

type leetcodeContest struct {
	Title     string `json:"title"`
	TitleSlug string `json:"titleSlug"`
	StartTime *int64 `json:"startTime"`
	Duration  *int64 `json:"duration"`
}

// LeetCode queries the upcomingContests GraphQL field
type LeetCode struct {
	base
}

// NewLeetCode creates the LeetCode adapter
func NewLeetCode(opts Options) *LeetCode {
	return &LeetCode{base: newBase(contest.LeetCode, LeetCodeURL, opts)}
}

// Platform returns contest.LeetCode
func (a *LeetCode) Platform() contest.Platform {
	return contest.LeetCode
}

// Fetch selects among the upcoming contests returned by the API
func (a *LeetCode) Fetch(ctx context.Context) ([]*contest.Contest, error) {
	req := graphqlRequest{
		Query: strings.Join(strings.Fields(upcomingContestsQuery), " "),
	}

	var resp leetcodeResponse
	if err := a.client.PostJSON(ctx, a.baseURL+"/graphql", req, &resp); err != nil {
		return nil, fmt.Errorf("querying upcoming contests: %w", err)
	}

	if resp.Data == nil {
		if len(resp.Errors) > 0 {
			return nil, fmt.Errorf("%w: graphql error: %s", ErrMalformed, resp.Errors[0].Message)
		}
		return nil, fmt.Errorf("%w: missing data", ErrMalformed)
	}

	candidates := newCandidates(len(resp.Data.UpcomingContests))
	for _, c := range resp.Data.UpcomingContests {
		candidates.add(a.mapContest(c))
	}

	return a.pick(candidates)
}

func (a *LeetCode) mapContest(c leetcodeContest) (*contest.Contest, error) {
	link := fmt.Sprintf("%s/contest/%s/", LeetCodeURL, c.TitleSlug)
	if c.StartTime == nil || c.Duration == nil {
		return contest.New(contest.LeetCode, strings.TrimSpace(c.Title), "", "", link),
			fmt.Errorf("%w: contest %q without start or duration", ErrMalformed, c.TitleSlug)
	}
	if err := requireFields("contest", "titleSlug", c.TitleSlug); err != nil {
		return contest.New(contest.LeetCode, strings.TrimSpace(c.Title), "", "", link), err
	}

	mapped := contest.New(
		contest.LeetCode,
		strings.TrimSpace(c.Title),
		a.tz.FromEpoch(*c.StartTime),
		timezone.FormatDuration(*c.Duration),
		link,
	)
	mapped.StartsAt = a.tz.EpochTime(*c.StartTime)
	return mapped, nil
}
