// Package domain defines the core domain models for the authorization agent.
package domain

import "fmt"

// Role identifies the sender of a transcript message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Valid reports whether r is one of the closed role set.
func (r Role) Valid() bool {
	switch r {
	case RoleSystem, RoleUser, RoleAssistant:
		return true
	}
	return false
}

// InvalidRoleError reports an attempt to record a message with a role
// outside the closed set.
type InvalidRoleError struct {
	Role string
}

func (e *InvalidRoleError) Error() string {
	return fmt.Sprintf("invalid role %q: must be one of system, user, assistant", e.Role)
}
