// Copyright (c) 2026 Odrzavanje. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements the user identity layer of the maintenance site.

It defines the account entity, the [Directory] contract the rest of the site
stores accounts behind, and the registration and login use cases.

# Architecture

  - Service: Orchestrates Register and Login over a [Directory].
  - Directory: Postgres, in-memory and Redis-cached implementations.
  - Security: Digests and tokens come from the sec package.
*/
package auth

import (
	"time"

	"github.com/taibuivan/odrzavanje/internal/platform/sec"
)

// # Domain Entities

// User is a registered account of the maintenance site.
//
// # Rules
//   - Username is unique and matched case-sensitively.
//   - PasswordHash and PasswordSalt are written together, only by [Service].
//   - A nil AccessLevel is treated as the lowest privilege.
type User struct {
	ID           string           `json:"id"`
	Username     string           `json:"username"`
	DisplayName  string           `json:"display_name"`
	FirstName    string           `json:"first_name,omitempty"`
	LastName     string           `json:"last_name,omitempty"`
	Email        string           `json:"email,omitempty"`
	Phone        string           `json:"phone,omitempty"`
	PasswordHash []byte           `json:"-"`
	PasswordSalt []byte           `json:"-"`
	AccessLevel  *sec.AccessLevel `json:"access_level"`
	IsActive     bool             `json:"is_active"`
	CreatedAt    time.Time        `json:"created_at"`
}

// HasCredential reports whether both halves of the stored credential are present.
func (user *User) HasCredential() bool {
	return len(user.PasswordHash) > 0 && len(user.PasswordSalt) > 0
}

// Summary projects the account onto the fields returned after login.
func (user *User) Summary() UserSummary {
	return UserSummary{
		ID:          user.ID,
		Username:    user.Username,
		DisplayName: user.DisplayName,
		AccessLevel: user.AccessLevel,
	}
}

// UserSummary is the public view of an account returned with a token.
type UserSummary struct {
	ID          string           `json:"id"`
	Username    string           `json:"username"`
	DisplayName string           `json:"display_name"`
	AccessLevel *sec.AccessLevel `json:"access_level"`
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldUsername    = "username"
	FieldPassword    = "password"
	FieldDisplayName = "display_name"
	FieldFirstName   = "first_name"
	FieldLastName    = "last_name"
	FieldEmail       = "email"
	FieldPhone       = "phone"
	FieldAccessLevel = "access_level"
)
