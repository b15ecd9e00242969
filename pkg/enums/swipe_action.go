package enums

import "fmt"

// SwipeAction is the decision one user records against another.
type SwipeAction string

const (
	SwipeActionLike SwipeAction = "LIKE"
	SwipeActionPass SwipeAction = "PASS"
)

var validSwipeActions = []SwipeAction{
	SwipeActionLike,
	SwipeActionPass,
}

// String implements fmt.Stringer.
func (s SwipeAction) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SwipeAction.
func (s SwipeAction) IsValid() bool {
	for _, candidate := range validSwipeActions {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSwipeAction converts raw input into a SwipeAction.
func ParseSwipeAction(value string) (SwipeAction, error) {
	for _, candidate := range validSwipeActions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid swipe action %q", value)
}
