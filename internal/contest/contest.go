package contest

import (
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Platform identifies the site a contest was fetched from
type Platform string

const (
	Codeforces    Platform = "Codeforces"
	AtCoder       Platform = "AtCoder"
	LeetCode      Platform = "LeetCode"
	CodeChef      Platform = "CodeChef"
	GeeksforGeeks Platform = "GeeksforGeeks"
)

// Platforms returns every supported platform in display order
func Platforms() []Platform {
	return []Platform{Codeforces, AtCoder, LeetCode, CodeChef, GeeksforGeeks}
}

// Key returns the lowercase identifier used in config files and log fields
func (p Platform) Key() string {
	return strings.ToLower(string(p))
}

// ParsePlatform resolves a platform from its name or key, case-insensitively.
// "gfg" is accepted for GeeksforGeeks.
func ParsePlatform(s string) (Platform, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "gfg" {
		return GeeksforGeeks, nil
	}
	for _, p := range Platforms() {
		if p.Key() == key {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown platform: %q", s)
}

// Contest represents the next upcoming contest on one platform
type Contest struct {
	ID         string     `json:"id"`
	Platform   Platform   `json:"platform"`
	Name       string     `json:"name"`
	StartTime  string     `json:"start_time"`
	Duration   string     `json:"duration"`
	Link       string     `json:"link"`
	StartsAt   time.Time  `json:"starts_at"` // best effort, zero when the native text did not parse
	TimePolicy TimePolicy `json:"time_policy"`
}

// GenerateID creates a deterministic ID for a contest from its platform and link
func GenerateID(platform Platform, link string) string {
	h := sha1.New()
	h.Write([]byte(string(platform) + "|" + link))
	return fmt.Sprintf("%x", h.Sum(nil))
}

// New creates a Contest with ID and TimePolicy populated
func New(platform Platform, name, startTime, duration, link string) *Contest {
	return &Contest{
		ID:         GenerateID(platform, link),
		Platform:   platform,
		Name:       name,
		StartTime:  startTime,
		Duration:   duration,
		Link:       link,
		TimePolicy: PolicyFor(platform),
	}
}

// MarshalJSON leaves starts_at out when no instant was parsed
func (c Contest) MarshalJSON() ([]byte, error) {
	type plain Contest
	out := struct {
		plain
		StartsAt *time.Time `json:"starts_at,omitempty"`
	}{plain: plain(c)}
	if !c.StartsAt.IsZero() {
		startsAt := c.StartsAt
		out.StartsAt = &startsAt
	}
	return json.Marshal(out)
}
