// Package platform implements one adapter per contest platform.
//
// Each adapter performs a single request, maps the platform's JSON, GraphQL or HTML
// shape into contest.Contest records, and hands its candidates to a contest.Selector
// so at most one contest is returned. Adapters report failures as errors and never
// log; the radar package decides how a failure is surfaced.
package platform
