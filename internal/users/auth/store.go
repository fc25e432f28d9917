// Copyright (c) 2026 Odrzavanje. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import "context"

// # Storage Contracts

// Directory is the narrow account store the authentication core depends on.
//
// # Implementations
//   - [PostgresDirectory]: the canonical store (users.account).
//   - [MemoryDirectory]: tests and the "memory" storage driver.
//   - [CachedDirectory]: Redis read-through decorator over either.
type Directory interface {
	// FindByUsername returns the account with exactly this username.
	//
	// Returns [apperr.NotFound] if no account matches.
	FindByUsername(ctx context.Context, username string) (*User, error)

	// Insert persists a brand-new account in a single round-trip and returns it.
	//
	// Returns [apperr.Conflict] if the username is already taken.
	Insert(ctx context.Context, user *User) (*User, error)
}
