// Package radar runs every platform adapter once and gathers the results into a Report.
//
// Adapters run one after another in the order given. A failing adapter never stops
// the run: its error becomes a Notice tagged with the platform, and the remaining
// adapters still contribute their contests.
package radar
