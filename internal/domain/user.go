// Package domain contains the core data types for the Ferry Logbook application.
// This package has zero external dependencies and is imported by every other
// internal package (repo, store, service, handler).
package domain

// Role is the closed set of crew roles. Every user holds exactly one role,
// fixed at creation. Access control decisions are made against this type,
// never against raw strings scattered through handlers.
type Role string

const (
	RoleAdmin         Role = "admin"
	RoleCaptain       Role = "captain"
	RoleChiefEngineer Role = "chief-engineer"
	RoleCrew          Role = "crew"
)

// Roles lists every valid role, in display order.
var Roles = []Role{RoleAdmin, RoleCaptain, RoleChiefEngineer, RoleCrew}

// Valid reports whether r is one of the four defined roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleCaptain, RoleChiefEngineer, RoleCrew:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }

// User is a member of the operations team.
// ID is immutable and Role is fixed at creation; only Name and
// TelegramChatID may change afterwards.
//
// JSON field names match the durable slot format, which predates this
// implementation and is shared with existing deployments.
type User struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Role           Role   `json:"role"`
	TelegramChatID string `json:"telegramChatId"` // empty when the user has no Telegram account linked
	JoinedAt       string `json:"joinedAt"`       // "2006-01-02" formatted date
}
