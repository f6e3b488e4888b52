package domain

import "errors"

// Role tags a user with what they are allowed to see in the front-end.
// Values are the Portuguese wire spellings the clients already store.
type Role string

const (
	RoleManager   Role = "gestor"
	RoleAttendant Role = "atendente"
	RoleUnknown   Role = "unknown"
)

var (
	ErrUserNotFound            = errors.New("user not found")
	ErrUserExists              = errors.New("user already exists")
	ErrInvalidCredentials      = errors.New("invalid credentials")
	ErrCurrentPasswordMismatch = errors.New("current password does not match")
	ErrInvalidPassword         = errors.New("password cannot be stored")
)

// ParseRole classifies a free-form role string. English aliases are accepted;
// anything else, "unknown" itself included, is RoleUnknown.
func ParseRole(s string) Role {
	switch s {
	case string(RoleManager), "manager":
		return RoleManager
	case string(RoleAttendant), "attendant":
		return RoleAttendant
	default:
		return RoleUnknown
	}
}

// User models an account in the directory. Role keeps the raw value given at
// creation so unknown roles round-trip unchanged; use Kind to classify it.
type User struct {
	ID           int64
	Name         string
	PasswordHash string
	Role         string
}

// Kind returns the closed-set role for u.
func (u *User) Kind() Role {
	return ParseRole(u.Role)
}

// IsManager reports whether u may manage the roster.
func (u *User) IsManager() bool {
	return u.Kind() == RoleManager
}
