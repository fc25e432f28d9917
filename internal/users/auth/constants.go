// Copyright (c) 2026 Odrzavanje. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

// # Registration Constraints

const (
	// UsernameMinLength and UsernameMaxLength bound the login name, in characters.
	UsernameMinLength = 3
	UsernameMaxLength = 50

	// DisplayNameMaxLength matches the users.account.displayname column.
	DisplayNameMaxLength = 100

	// PersonNameMaxLength bounds first and last names.
	PersonNameMaxLength = 50

	// PhoneMaxLength matches the users.account.phone column.
	PhoneMaxLength = 30

	// MinAccessLevel and MaxAccessLevel bound an explicitly requested access level.
	// Level 1 is the administrator; the default for new accounts is 2.
	MinAccessLevel = 1
	MaxAccessLevel = 9
)
