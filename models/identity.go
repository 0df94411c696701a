package models

import (
	"fmt"
	"strings"
)

// Role is the closed set of account roles.
type Role string

const (
	RoleOwner    Role = "Owner"
	RoleCustomer Role = "Customer"
)

// ParseRole accepts the canonical role names, case-insensitively.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "owner":
		return RoleOwner, nil
	case "customer":
		return RoleCustomer, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

func (r Role) Valid() bool {
	return r == RoleOwner || r == RoleCustomer
}

func (r Role) String() string { return string(r) }

// Identity is the authenticated caller attached to a request.
type Identity struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
	Token  string `json:"-"`
}
