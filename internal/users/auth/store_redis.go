// Copyright (c) 2026 Odrzavanje. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/odrzavanje/internal/platform/constants"
	"github.com/taibuivan/odrzavanje/internal/platform/sec"
)

// CachedDirectory decorates a [Directory] with a Redis read-through cache of
// username lookups.
//
// Only found accounts are cached. Redis failures are logged and the lookup
// falls through to the backing directory, so the cache can never turn a
// healthy directory into a failing one.
type CachedDirectory struct {
	next   Directory
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedDirectory wraps next with a Redis cache whose entries live for ttl.
// A non-positive ttl takes the default; anything above
// [constants.MaxDirectoryCacheTTL] is clamped to it.
func NewCachedDirectory(next Directory, client *redis.Client, ttl time.Duration, logger *slog.Logger) *CachedDirectory {
	switch {
	case ttl <= 0:
		ttl = constants.DefaultDirectoryCacheTTL
	case ttl > constants.MaxDirectoryCacheTTL:
		ttl = constants.MaxDirectoryCacheTTL
	}
	return &CachedDirectory{next: next, client: client, ttl: ttl, logger: logger}
}

// cachedUser is the Redis wire form of a [User].
// It keeps credential material that the public JSON form of User omits,
// so its fields must stay in step with User. Login reads the digest and salt
// through FindByUsername, so a cache without them could not serve it. The
// copy holds the salted digest only, never the password, and always expires
// within [constants.MaxDirectoryCacheTTL].
type cachedUser struct {
	ID           string           `json:"id"`
	Username     string           `json:"username"`
	DisplayName  string           `json:"display_name"`
	FirstName    string           `json:"first_name,omitempty"`
	LastName     string           `json:"last_name,omitempty"`
	Email        string           `json:"email,omitempty"`
	Phone        string           `json:"phone,omitempty"`
	PasswordHash []byte           `json:"password_hash"`
	PasswordSalt []byte           `json:"password_salt"`
	AccessLevel  *sec.AccessLevel `json:"access_level"`
	IsActive     bool             `json:"is_active"`
	CreatedAt    time.Time        `json:"created_at"`
}

// FindByUsername serves from Redis when possible and fills the cache on a miss.
func (directory *CachedDirectory) FindByUsername(ctx context.Context, username string) (*User, error) {
	key := directoryKey(username)

	payload, err := directory.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var entry cachedUser
		if decodeErr := json.Unmarshal(payload, &entry); decodeErr == nil {
			return entry.user(), nil
		}
		directory.logger.WarnContext(ctx, "directory_cache_decode_failed", slog.String("key", key))
	case !errors.Is(err, redis.Nil):
		directory.logger.WarnContext(ctx, "directory_cache_get_failed", slog.Any("error", err))
	}

	user, err := directory.next.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	directory.store(ctx, user)
	return user, nil
}

// Insert writes through to the backing directory, then primes the cache.
func (directory *CachedDirectory) Insert(ctx context.Context, user *User) (*User, error) {
	created, err := directory.next.Insert(ctx, user)
	if err != nil {
		return nil, err
	}

	directory.store(ctx, created)
	return created, nil
}

// store caches user, logging instead of failing.
func (directory *CachedDirectory) store(ctx context.Context, user *User) {
	payload, err := json.Marshal(newCachedUser(user))
	if err != nil {
		directory.logger.WarnContext(ctx, "directory_cache_encode_failed", slog.Any("error", err))
		return
	}

	if err := directory.client.Set(ctx, directoryKey(user.Username), payload, directory.ttl).Err(); err != nil {
		directory.logger.WarnContext(ctx, "directory_cache_set_failed", slog.Any("error", err))
	}
}

func directoryKey(username string) string {
	return constants.RedisPrefixDirectory + username
}

// newCachedUser converts between identical field sets; only the JSON tags differ.
func newCachedUser(user *User) cachedUser {
	return cachedUser(*user)
}

func (entry cachedUser) user() *User {
	user := User(entry)
	return &user
}
