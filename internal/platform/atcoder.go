package platform

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/contest-radar/internal/contest"
)

const (
	AtCoderURL = "https://atcoder.jp"

	// upcomingTableID is the id of the div wrapping the upcoming contests table
	upcomingTableID = "contest-table-upcoming"
)

// AtCoderRow is the text of one row in the upcoming contests table
type AtCoderRow struct {
	StartTime string
	Name      string
	Href      string
	Duration  string
}

// UpcomingTable extracts the upcoming contest rows from the AtCoder contests page.
// It returns ErrStructureChanged when the table itself is missing.
type UpcomingTable interface {
	Rows(doc *goquery.Document) ([]AtCoderRow, error)
}

// upcomingTableSelector reads div#contest-table-upcoming > tbody > tr, keeping
// rows with at least three cells: start time, name link, duration.
type upcomingTableSelector struct{}

func (upcomingTableSelector) Rows(doc *goquery.Document) ([]AtCoderRow, error) {
	table := doc.Find("div#" + upcomingTableID)
	if table.Length() == 0 {
		return nil, fmt.Errorf("%w: #%s not found", ErrStructureChanged, upcomingTableID)
	}

	tbody := table.Find("tbody").First()
	if tbody.Length() == 0 {
		return nil, fmt.Errorf("%w: #%s has no tbody", ErrMalformed, upcomingTableID)
	}

	rows := make([]AtCoderRow, 0)
	var rowErr error
	tbody.Find("tr").EachWithBreak(func(i int, tr *goquery.Selection) bool {
		cols := tr.Find("td")
		if cols.Length() < 3 {
			return true
		}

		link := cols.Eq(1).Find("a").First()
		href, ok := link.Attr("href")
		if link.Length() == 0 || !ok {
			rowErr = fmt.Errorf("%w: row %d has no contest link", ErrMalformed, i)
			return false
		}

		rows = append(rows, AtCoderRow{
			StartTime: strings.TrimSpace(cols.Eq(0).Text()),
			Name:      strings.TrimSpace(link.Text()),
			Href:      href,
			Duration:  strings.TrimSpace(cols.Eq(2).Text()),
		})
		return true
	})
	if rowErr != nil {
		return nil, rowErr
	}

	return rows, nil
}

// AtCoder scrapes the upcoming contests table of atcoder.jp/contests.
// Start times and durations are kept as the page shows them.
type AtCoder struct {
	base
	table UpcomingTable
}

// NewAtCoder creates the AtCoder adapter
func NewAtCoder(opts Options) *AtCoder {
	return &AtCoder{
		base:  newBase(contest.AtCoder, AtCoderURL, opts),
		table: upcomingTableSelector{},
	}
}

// WithTable replaces the DOM query used to find contest rows
func (a *AtCoder) WithTable(t UpcomingTable) *AtCoder {
	a.table = t
	return a
}

// Platform returns contest.AtCoder
func (a *AtCoder) Platform() contest.Platform {
	return contest.AtCoder
}

// Fetch selects among every row of the upcoming table
func (a *AtCoder) Fetch(ctx context.Context) ([]*contest.Contest, error) {
	doc, err := a.client.GetDocument(ctx, a.baseURL+"/contests/")
	if err != nil {
		return nil, fmt.Errorf("fetching contests page: %w", err)
	}

	return a.parse(doc)
}

func (a *AtCoder) parse(doc *goquery.Document) ([]*contest.Contest, error) {
	rows, err := a.table.Rows(doc)
	if err != nil {
		return nil, err
	}

	candidates := newCandidates(len(rows))
	for _, row := range rows {
		candidates.add(a.mapRow(row), nil)
	}

	return a.pick(candidates)
}

func (a *AtCoder) mapRow(row AtCoderRow) *contest.Contest {
	link := row.Href
	if !strings.HasPrefix(link, "http://") && !strings.HasPrefix(link, "https://") {
		link = AtCoderURL + link
	}

	mapped := contest.New(contest.AtCoder, row.Name, row.StartTime, row.Duration, link)
	mapped.StartsAt = a.tz.ParseFlexible(row.StartTime)
	return mapped
}
