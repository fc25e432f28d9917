// Copyright (c) 2026 Odrzavanje. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/taibuivan/odrzavanje/internal/platform/apperr"
	"github.com/taibuivan/odrzavanje/internal/platform/constants"
	"github.com/taibuivan/odrzavanje/internal/platform/sec"
	"github.com/taibuivan/odrzavanje/internal/users/auth"
	"github.com/taibuivan/odrzavanje/pkg/pointer"
)

// countingDirectory records how many lookups reach the backing directory.
type countingDirectory struct {
	auth.Directory
	lookups atomic.Int32
}

func (counting *countingDirectory) FindByUsername(ctx context.Context, username string) (*auth.User, error) {
	counting.lookups.Add(1)
	return counting.Directory.FindByUsername(ctx, username)
}

type CachedDirectorySuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	client  *redis.Client
	backing *countingDirectory
	cache   *auth.CachedDirectory
	ctx     context.Context
}

func TestCachedDirectorySuite(t *testing.T) {
	suite.Run(t, new(CachedDirectorySuite))
}

func (s *CachedDirectorySuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())
	s.client = redis.NewClient(&redis.Options{Addr: s.mini.Addr(), MaxRetries: -1})
	s.backing = &countingDirectory{Directory: auth.NewMemoryDirectory()}
	s.cache = auth.NewCachedDirectory(s.backing, s.client, time.Minute, discardLogger())
	s.ctx = context.Background()
}

func (s *CachedDirectorySuite) TearDownTest() {
	_ = s.client.Close()
}

func (s *CachedDirectorySuite) sampleUser() *auth.User {
	return &auth.User{
		ID:           "0192f0c0-0000-7000-8000-000000000001",
		Username:     "ana",
		DisplayName:  "Ana Anić",
		Email:        "ana@example.com",
		PasswordHash: []byte{1, 2, 3},
		PasswordSalt: []byte{4, 5, 6},
		AccessLevel:  pointer.To(sec.AccessLevelDefault),
		IsActive:     true,
		CreatedAt:    time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func (s *CachedDirectorySuite) TestInsertPrimesCache() {
	_, err := s.cache.Insert(s.ctx, s.sampleUser())
	s.Require().NoError(err)

	s.True(s.mini.Exists(constants.RedisPrefixDirectory + "ana"))
	s.Equal(time.Minute, s.mini.TTL(constants.RedisPrefixDirectory+"ana"))

	found, err := s.cache.FindByUsername(s.ctx, "ana")
	s.Require().NoError(err)
	s.Equal(int32(0), s.backing.lookups.Load())

	// Credential material survives the cache round trip.
	s.Equal([]byte{1, 2, 3}, found.PasswordHash)
	s.Equal([]byte{4, 5, 6}, found.PasswordSalt)
	s.Equal(sec.AccessLevelDefault, *found.AccessLevel)
	s.True(found.CreatedAt.Equal(s.sampleUser().CreatedAt))
}

/*
TestCachedEntryHoldsDigestOnly ensures a registration through the cache stores
the salted digest, never the password, and that every entry expires within
the cap even when a longer TTL is configured.
*/
func (s *CachedDirectorySuite) TestCachedEntryHoldsDigestOnly() {
	cache := auth.NewCachedDirectory(s.backing, s.client, 24*time.Hour, discardLogger())
	service, _ := newService(s.T(), cache)

	_, err := service.Register(s.ctx, anaInput())
	s.Require().NoError(err)

	key := constants.RedisPrefixDirectory + "ana"
	payload, err := s.mini.Get(key)
	s.Require().NoError(err)
	s.NotContains(payload, "Sifra123")
	s.Contains(payload, "password_hash")

	ttl := s.mini.TTL(key)
	s.Positive(ttl)
	s.LessOrEqual(ttl, constants.MaxDirectoryCacheTTL)
}

func (s *CachedDirectorySuite) TestReadThroughFillsCache() {
	_, err := s.backing.Insert(s.ctx, s.sampleUser())
	s.Require().NoError(err)

	_, err = s.cache.FindByUsername(s.ctx, "ana")
	s.Require().NoError(err)
	_, err = s.cache.FindByUsername(s.ctx, "ana")
	s.Require().NoError(err)

	s.Equal(int32(1), s.backing.lookups.Load())
}

func (s *CachedDirectorySuite) TestMissIsNotCached() {
	_, err := s.cache.FindByUsername(s.ctx, "ghost")

	appErr := apperr.As(err)
	s.Require().NotNil(appErr)
	s.Equal(apperr.CodeNotFound, appErr.Code)
	s.False(s.mini.Exists(constants.RedisPrefixDirectory + "ghost"))
}

func (s *CachedDirectorySuite) TestDuplicateInsertIsNotCached() {
	_, err := s.backing.Insert(s.ctx, s.sampleUser())
	s.Require().NoError(err)

	_, err = s.cache.Insert(s.ctx, s.sampleUser())
	s.Require().Error(err)
	s.False(s.mini.Exists(constants.RedisPrefixDirectory + "ana"))
}

func (s *CachedDirectorySuite) TestCorruptEntryFallsThrough() {
	_, err := s.backing.Insert(s.ctx, s.sampleUser())
	s.Require().NoError(err)
	s.Require().NoError(s.mini.Set(constants.RedisPrefixDirectory+"ana", "{not json"))

	found, err := s.cache.FindByUsername(s.ctx, "ana")
	s.Require().NoError(err)
	s.Equal("ana", found.Username)
	s.Equal(int32(1), s.backing.lookups.Load())
}

func (s *CachedDirectorySuite) TestRedisDownFallsThrough() {
	_, err := s.backing.Insert(s.ctx, s.sampleUser())
	s.Require().NoError(err)

	s.mini.Close()

	found, err := s.cache.FindByUsername(s.ctx, "ana")
	s.Require().NoError(err)
	s.Equal("ana", found.Username)

	created, err := s.cache.Insert(s.ctx, &auth.User{ID: "2", Username: "marko", DisplayName: "Marko"})
	s.Require().NoError(err)
	s.Equal("marko", created.Username)
}

func (s *CachedDirectorySuite) TestExpiredEntryIsReloaded() {
	_, err := s.cache.Insert(s.ctx, s.sampleUser())
	s.Require().NoError(err)

	s.mini.FastForward(2 * time.Minute)

	_, err = s.cache.FindByUsername(s.ctx, "ana")
	s.Require().NoError(err)
	s.Equal(int32(1), s.backing.lookups.Load())
}
