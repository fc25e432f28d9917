// Copyright (c) 2026 Odrzavanje. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"bytes"
	"context"
	"sync"
	"time"

	"github.com/taibuivan/odrzavanje/internal/platform/apperr"
)

// MemoryDirectory is an in-process [Directory] keyed by username.
//
// It backs the "memory" storage driver and the service tests. Accounts are
// copied on the way in and out so callers never share slices with the map.
type MemoryDirectory struct {
	mu    sync.RWMutex
	users map[string]*User
}

// NewMemoryDirectory returns an empty in-memory directory.
func NewMemoryDirectory() *MemoryDirectory {
	return &MemoryDirectory{users: make(map[string]*User)}
}

// FindByUsername returns a copy of the account, or [apperr.NotFound].
func (directory *MemoryDirectory) FindByUsername(_ context.Context, username string) (*User, error) {
	directory.mu.RLock()
	defer directory.mu.RUnlock()

	user, ok := directory.users[username]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	return cloneUser(user), nil
}

// Insert stores a copy of the account, or returns [apperr.Conflict] if the username exists.
func (directory *MemoryDirectory) Insert(_ context.Context, user *User) (*User, error) {
	directory.mu.Lock()
	defer directory.mu.Unlock()

	if _, exists := directory.users[user.Username]; exists {
		return nil, apperr.Conflict("Username is already taken")
	}

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	directory.users[user.Username] = cloneUser(user)

	return user, nil
}

// Len reports how many accounts are stored.
func (directory *MemoryDirectory) Len() int {
	directory.mu.RLock()
	defer directory.mu.RUnlock()
	return len(directory.users)
}

func cloneUser(user *User) *User {
	clone := *user
	clone.PasswordHash = bytes.Clone(user.PasswordHash)
	clone.PasswordSalt = bytes.Clone(user.PasswordSalt)
	if user.AccessLevel != nil {
		level := *user.AccessLevel
		clone.AccessLevel = &level
	}
	return &clone
}
