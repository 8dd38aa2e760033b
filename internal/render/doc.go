// Package render presents a radar.Report as contest cards.
//
// Every format shows the contests in report order. A report without contests
// renders the NoContests notice alone, with no cards and no "last updated" line.
// Rendering never mutates the report.
package render
