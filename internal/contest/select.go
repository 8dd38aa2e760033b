package contest

import (
	"fmt"
	"strings"
)

// Selector chooses the next contest out of an adapter's candidates.
// Select returns nil when there is nothing to choose.
type Selector interface {
	Select(candidates []*Contest) *Contest
}

// SelectorFunc adapts a plain function to Selector
type SelectorFunc func(candidates []*Contest) *Contest

// Select calls f(candidates)
func (f SelectorFunc) Select(candidates []*Contest) *Contest {
	return f(candidates)
}

const (
	SelectFirst    = "first"
	SelectEarliest = "earliest"
)

var (
	// First trusts the upstream order and takes index 0
	First Selector = SelectorFunc(selectFirst)

	// Earliest takes the candidate with the smallest parsed start.
	// Candidates without a parsed start lose to any that have one; among
	// themselves they keep upstream order.
	Earliest Selector = SelectorFunc(selectEarliest)
)

func selectFirst(candidates []*Contest) *Contest {
	if len(candidates) == 0 {
		return nil
	}
	return candidates[0]
}

func selectEarliest(candidates []*Contest) *Contest {
	var best *Contest
	for _, c := range candidates {
		if c.StartsAt.IsZero() {
			continue
		}
		if best == nil || c.StartsAt.Before(best.StartsAt) {
			best = c
		}
	}
	if best != nil {
		return best
	}
	return selectFirst(candidates)
}

// SelectorByName returns the selector registered under name ("first" or "earliest").
// An empty name selects First.
func SelectorByName(name string) (Selector, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", SelectFirst:
		return First, nil
	case SelectEarliest:
		return Earliest, nil
	default:
		return nil, fmt.Errorf("unknown selection strategy: %q (must be 'first' or 'earliest')", name)
	}
}

// Pick applies s to candidates and returns a slice of zero or one contest
func Pick(s Selector, candidates []*Contest) []*Contest {
	if s == nil {
		s = First
	}
	if c := s.Select(candidates); c != nil {
		return []*Contest{c}
	}
	return nil
}

// Unreliable reports whether the platform's upstream order has been known to
// disagree with chronological order, so "first" may not be the next contest.
func Unreliable(p Platform) bool {
	return p == AtCoder || p == GeeksforGeeks
}
