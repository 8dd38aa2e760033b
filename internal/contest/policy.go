package contest

// TimePolicy states what an adapter does with the upstream start time
type TimePolicy string

const (
	// PolicyConvert means StartTime was converted to the display timezone
	PolicyConvert TimePolicy = "convert"
	// PolicyRaw means StartTime is the platform's own text, untouched
	PolicyRaw TimePolicy = "raw"
	// PolicyStripOffset means the "T" separator and "+hh:mm" suffix were removed
	// from the platform's text, without any timezone conversion
	PolicyStripOffset TimePolicy = "strip-offset"
)

// Policies is the time policy of every platform.
var Policies = map[Platform]TimePolicy{
	Codeforces:    PolicyConvert,
	AtCoder:       PolicyRaw,
	LeetCode:      PolicyConvert,
	CodeChef:      PolicyRaw,
	GeeksforGeeks: PolicyStripOffset,
}

// PolicyFor returns the platform's time policy, PolicyRaw for unknown platforms
func PolicyFor(p Platform) TimePolicy {
	if policy, ok := Policies[p]; ok {
		return policy
	}
	return PolicyRaw
}

// Converted reports whether start times under this policy are in the display timezone
func (t TimePolicy) Converted() bool {
	return t == PolicyConvert
}
