package platform

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pfrederiksen/contest-radar/internal/contest"
	"github.com/pfrederiksen/contest-radar/internal/scraper"
	"github.com/pfrederiksen/contest-radar/internal/timezone"
)

var (
	// ErrStructureChanged means an HTML page no longer has the element the
	// adapter scrapes. It is reported as a warning rather than an error.
	ErrStructureChanged = errors.New("page structure changed")

	// ErrMalformed means a response decoded but lacks a required field
	ErrMalformed = errors.New("malformed response")
)

// Adapter fetches the next upcoming contest from one platform
type Adapter interface {
	Platform() contest.Platform
	// Fetch returns zero or one contests
	Fetch(ctx context.Context) ([]*contest.Contest, error)
}

// Options holds the dependencies shared by every adapter. Zero values fall back
// to a default scraper.Client, the IST normalizer, contest.First and the public
// platform URLs.
type Options struct {
	Client     *scraper.Client
	Normalizer *timezone.Normalizer
	Selectors  map[contest.Platform]contest.Selector
	BaseURLs   map[contest.Platform]string
}

// Defaults returns the five adapters in display order
func Defaults(opts Options) []Adapter {
	return []Adapter{
		NewCodeforces(opts),
		NewAtCoder(opts),
		NewLeetCode(opts),
		NewCodeChef(opts),
		NewGeeksforGeeks(opts),
	}
}

// base carries what every adapter needs to fetch and select
type base struct {
	client   *scraper.Client
	tz       *timezone.Normalizer
	selector contest.Selector
	baseURL  string
}

func newBase(p contest.Platform, defaultURL string, opts Options) base {
	b := base{
		client:   opts.Client,
		tz:       opts.Normalizer,
		selector: opts.Selectors[p],
		baseURL:  defaultURL,
	}
	if b.client == nil {
		b.client = scraper.New()
	}
	if b.tz == nil {
		b.tz = timezone.New(nil)
	}
	if b.selector == nil {
		b.selector = contest.First
	}
	if u := opts.BaseURLs[p]; u != "" {
		b.baseURL = strings.TrimRight(u, "/")
	}
	return b
}

// candidates collects mapped contests along with the reason any of them is
// unusable. An unusable entry only fails the fetch when it is the one selected.
type candidates struct {
	contests []*contest.Contest
	invalid  map[*contest.Contest]error
}

func newCandidates(n int) *candidates {
	return &candidates{
		contests: make([]*contest.Contest, 0, n),
		invalid:  make(map[*contest.Contest]error),
	}
}

// add appends c; a non-nil err marks it unusable
func (cs *candidates) add(c *contest.Contest, err error) {
	cs.contests = append(cs.contests, c)
	if err != nil {
		cs.invalid[c] = err
	}
}

// pick applies the adapter's selector and rejects a selected contest that was
// marked unusable or has no name
func (b base) pick(cs *candidates) ([]*contest.Contest, error) {
	picked := contest.Pick(b.selector, cs.contests)
	for _, c := range picked {
		if err := cs.invalid[c]; err != nil {
			return nil, err
		}
		if c.Name == "" {
			return nil, fmt.Errorf("%w: contest without a name", ErrMalformed)
		}
	}
	return picked, nil
}

// requireFields returns ErrMalformed naming the first empty field.
// fields alternates key and value.
func requireFields(what string, fields ...string) error {
	for i := 0; i+1 < len(fields); i += 2 {
		if strings.TrimSpace(fields[i+1]) == "" {
			return fmt.Errorf("%w: %s without %s", ErrMalformed, what, fields[i])
		}
	}
	return nil
}
