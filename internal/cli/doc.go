// Package cli implements the command-line interface for contest-radar.
//
// The cli package provides the Cobra-based CLI: "show" prints the next contest on
// each platform once, "serve" runs the dashboard server. It loads configuration,
// sets up logging and wires the scraper, platform adapters, aggregator and renderer.
package cli
