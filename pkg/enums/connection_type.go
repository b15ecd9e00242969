package enums

import "fmt"

// ConnectionType is the kind of connection a user wants from discovery.
type ConnectionType string

const (
	ConnectionTypeFriends    ConnectionType = "FRIENDS"
	ConnectionTypeDating     ConnectionType = "DATING"
	ConnectionTypeNetworking ConnectionType = "NETWORKING"
)

var validConnectionTypes = []ConnectionType{
	ConnectionTypeFriends,
	ConnectionTypeDating,
	ConnectionTypeNetworking,
}

// String implements fmt.Stringer.
func (c ConnectionType) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ConnectionType.
func (c ConnectionType) IsValid() bool {
	for _, candidate := range validConnectionTypes {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseConnectionType converts raw input into a ConnectionType.
func ParseConnectionType(value string) (ConnectionType, error) {
	for _, candidate := range validConnectionTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid connection type %q", value)
}
