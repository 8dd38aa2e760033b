// Package contest defines the Contest record shared by every platform adapter.
//
// A Contest is the normalized view of one upcoming contest: platform, name, start
// time, duration and link. The package also holds the two per-platform policies
// that used to be implicit in each adapter: how a start time is treated (converted
// to the display timezone, kept raw, or string-munged) and how the "next" contest
// is chosen from an upstream list.
package contest
