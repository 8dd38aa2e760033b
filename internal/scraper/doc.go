// Package scraper provides the HTTP fetching shared by the platform adapters.
//
// A Client issues exactly one request per call: a GET or POST decoded as JSON, or a
// GET parsed into a goquery document for HTML sources. Every request carries the
// contest-radar User-Agent and fails on any non-200 status. There are no retries.
package scraper
