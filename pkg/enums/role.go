package enums

import "fmt"

// Role distinguishes ordinary bidders from marketplace operators.
type Role string

const (
	RoleBidder   Role = "bidder"
	RoleOperator Role = "operator"
)

// String implements fmt.Stringer.
func (r Role) String() string {
	return string(r)
}

// IsValid reports whether the value is a known Role.
func (r Role) IsValid() bool {
	return r == RoleBidder || r == RoleOperator
}

// ParseRole converts raw input into a Role.
func ParseRole(value string) (Role, error) {
	switch Role(value) {
	case RoleBidder:
		return RoleBidder, nil
	case RoleOperator:
		return RoleOperator, nil
	}
	return "", fmt.Errorf("invalid role %q", value)
}
