package mmodel

import "github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/midentifier"

// Role is one of the closed set of role names a user can hold.
type Role string

const (
	RoleUnspecified Role = "UNSPECIFIED"
	RoleRoot        Role = "ROOT"
	RoleUser        Role = "USER"
)

// ParseRole is a total converter: unrecognized input maps to
// RoleUnspecified rather than silently defaulting to something granted
// access.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleRoot:
		return RoleRoot
	case RoleUser:
		return RoleUser
	default:
		return RoleUnspecified
	}
}

// User is one human or service principal.
type User struct {
	ID          midentifier.ID `json:"userId"`
	Username    string         `json:"username"`
	Email       *string        `json:"email,omitempty"`
	DisplayName string         `json:"displayName"`
	Roles       []Role         `json:"roles"`
	CreatedAt   MillisTime     `json:"createdAt"`
	UpdatedAt   MillisTime     `json:"updatedAt"`
}

// HasRole reports whether the user holds the given role.
func (u *User) HasRole(r Role) bool {
	for _, have := range u.Roles {
		if have == r {
			return true
		}
	}

	return false
}

// ReservedRootUsername is the sole username system-init ever creates
// with the ROOT role.
const ReservedRootUsername = "root"

// CreateUserInput is the request shape for creating a non-root user.
type CreateUserInput struct {
	Username    string  `json:"username" validate:"required,max=128"`
	Email       *string `json:"email,omitempty" validate:"omitempty,email"`
	DisplayName string  `json:"displayName" validate:"required,max=256"`
}
