// Copyright (c) 2026 Odrzavanje. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// # Access Levels

// AccessLevel is the integer authorization tier stored on every account.
// A nil *AccessLevel means the account never had one assigned.
type AccessLevel int

const (
	// AccessLevelAdministrator is the tier granted full site access.
	AccessLevelAdministrator AccessLevel = 1

	// AccessLevelDefault is assigned at registration when none is supplied.
	AccessLevelDefault AccessLevel = 2
)

// # User Roles

// UserRole is the role claim carried inside issued tokens.
type UserRole string

const (
	// Unrestricted site access
	RoleAdministrator UserRole = "Administrator"

	// Default role for every other account
	RoleUser UserRole = "Korisnik"
)

// roleTable maps stored access levels to role claims.
// Levels missing from the table receive [RoleUser].
var roleTable = map[AccessLevel]UserRole{
	AccessLevelAdministrator: RoleAdministrator,
}

// RoleFor derives the role claim for a stored access level.
func RoleFor(level *AccessLevel) UserRole {
	if level == nil {
		return RoleUser
	}
	if role, ok := roleTable[*level]; ok {
		return role
	}
	return RoleUser
}

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {

	// Linear scale leaves room for intermediate roles
	switch r {
	case RoleAdministrator:
		return 40
	case RoleUser:
		return 10
	default:
		return 0
	}
}
