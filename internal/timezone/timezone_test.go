package timezone

import (
	"testing"
	"time"
)

func TestFromEpoch(t *testing.T) {
	n := New(IST)

	tests := []struct {
		name string
		sec  int64
		want string
	}{
		{"epoch zero", 0, "1970-01-01 05:30"},
		{"crosses midnight", 1761251400, "2025-10-24 02:00"},
		{"afternoon UTC", 1792333800, "2026-10-18 20:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := n.FromEpoch(tt.sec); got != tt.want {
				t.Errorf("FromEpoch(%d) = %q, want %q", tt.sec, got, tt.want)
			}
		})
	}
}

func TestFromEpoch_DefaultLocation(t *testing.T) {
	loc, err := LoadLocation("")
	if err != nil {
		t.Fatalf("LoadLocation() error: %v", err)
	}

	if got := New(loc).FromEpoch(0); got != "1970-01-01 05:30" {
		t.Errorf("FromEpoch(0) = %q, want %q", got, "1970-01-01 05:30")
	}
}

func TestFormatTime(t *testing.T) {
	n := New(IST)

	tests := []struct {
		in   string
		want string
	}{
		{"Oct/18/2026 14:30", "2026-10-18 20:00"},
		{"Jan/01/2026 20:45", "2026-01-02 02:15"},
		{"Mar/5/2026 9:05", "2026-03-05 14:35"},
		{"oct/18/2026 14:30", "2026-10-18 20:00"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := n.FormatTime(tt.in); got != tt.want {
				t.Errorf("FormatTime(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatTime_UnparseableUnchanged(t *testing.T) {
	n := New(IST)

	inputs := []string{
		"",
		"not a date",
		"2026-10-18 14:30",
		"Oct/18/2026",
		"Oct/18/2026 14:30 ",
		"18 Oct 2026  20:00:00",
		"Foo/18/2026 14:30",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			if got := n.FormatTime(in); got != in {
				t.Errorf("FormatTime(%q) = %q, want input unchanged", in, got)
			}
		})
	}
}

func TestParseFlexible(t *testing.T) {
	n := New(IST)

	tests := []struct {
		name     string
		in       string
		want     time.Time
		wantZero bool
	}{
		{
			name: "AtCoder with numeric offset",
			in:   "2026-10-24 21:00:00+0900",
			want: time.Date(2026, 10, 24, 12, 0, 0, 0, time.UTC),
		},
		{
			name: "CodeChef double spaced",
			in:   "22 Oct 2026  20:00:00",
			want: time.Date(2026, 10, 22, 20, 0, 0, 0, IST),
		},
		{
			name: "GeeksforGeeks RFC3339",
			in:   "2026-10-19T19:00:00+05:30",
			want: time.Date(2026, 10, 19, 19, 0, 0, 0, IST),
		},
		{
			name: "GeeksforGeeks stripped",
			in:   "2026-10-19 19:00:00",
			want: time.Date(2026, 10, 19, 19, 0, 0, 0, IST),
		},
		{
			name: "canonical display form",
			in:   "2026-10-19 19:00",
			want: time.Date(2026, 10, 19, 19, 0, 0, 0, IST),
		},
		{
			name: "UTC input layout",
			in:   "Oct/18/2026 14:30",
			want: time.Date(2026, 10, 18, 14, 30, 0, 0, time.UTC),
		},
		{name: "empty", in: "", wantZero: true},
		{name: "garbage", in: "sometime next week", wantZero: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := n.ParseFlexible(tt.in)
			if tt.wantZero {
				if !got.IsZero() {
					t.Errorf("ParseFlexible(%q) = %v, want zero time", tt.in, got)
				}
				return
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseFlexible(%q) = %v, want %v", tt.in, got, tt.want)
			}
			if got.Location() != IST {
				t.Errorf("ParseFlexible(%q) location = %v, want display location", tt.in, got.Location())
			}
		})
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		sec  int64
		want string
	}{
		{0, "0h 0m"},
		{5400, "1h 30m"},
		{7200, "2h 0m"},
		{7259, "2h 0m"},
		{9000, "2h 30m"},
		{18000, "5h 0m"},
	}

	for _, tt := range tests {
		if got := FormatDuration(tt.sec); got != tt.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tt.sec, got, tt.want)
		}
	}
}

func TestLoadLocation(t *testing.T) {
	loc, err := LoadLocation("UTC")
	if err != nil {
		t.Fatalf("LoadLocation(UTC) error: %v", err)
	}
	if loc != time.UTC {
		t.Errorf("LoadLocation(UTC) = %v, want UTC", loc)
	}

	if _, err := LoadLocation("Mars/Olympus_Mons"); err == nil {
		t.Error("LoadLocation() expected error for unknown zone")
	}
}

func TestNew_NilLocation(t *testing.T) {
	n := New(nil)
	if n.Location() != IST {
		t.Errorf("New(nil).Location() = %v, want IST", n.Location())
	}
}
