package enums

import "fmt"

// MatchStatus tracks the lifecycle of a mutual-like match.
type MatchStatus string

const (
	MatchStatusActive    MatchStatus = "ACTIVE"
	MatchStatusUnmatched MatchStatus = "UNMATCHED"
	MatchStatusBlocked   MatchStatus = "BLOCKED"
)

var validMatchStatuses = []MatchStatus{
	MatchStatusActive,
	MatchStatusUnmatched,
	MatchStatusBlocked,
}

// String implements fmt.Stringer.
func (m MatchStatus) String() string {
	return string(m)
}

// IsValid reports whether the value is a known MatchStatus.
func (m MatchStatus) IsValid() bool {
	for _, candidate := range validMatchStatuses {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseMatchStatus converts raw input into a MatchStatus.
func ParseMatchStatus(value string) (MatchStatus, error) {
	for _, candidate := range validMatchStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid match status %q", value)
}
