// Copyright (c) 2026 Odrzavanje. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"math"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/taibuivan/odrzavanje/internal/platform/apperr"
	"github.com/taibuivan/odrzavanje/internal/platform/constants"
	"github.com/taibuivan/odrzavanje/internal/platform/respond"
)

// visitor is one client's token bucket.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// visitorTable maps client IPs to buckets that share one limit.
type visitorTable struct {
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
	visitors map[string]*visitor
}

func (table *visitorTable) allow(ip string, now time.Time) bool {
	table.mu.Lock()
	defer table.mu.Unlock()

	entry, ok := table.visitors[ip]
	if !ok {
		entry = &visitor{limiter: rate.NewLimiter(table.limit, table.burst)}
		table.visitors[ip] = entry
	}
	entry.lastSeen = now

	return entry.limiter.AllowN(now, 1)
}

func (table *visitorTable) evictIdle(now time.Time) {
	table.mu.Lock()
	defer table.mu.Unlock()

	for ip, entry := range table.visitors {
		if now.Sub(entry.lastSeen) > constants.RateLimitClientTTL {
			delete(table.visitors, ip)
		}
	}
}

// RateLimit answers 429 RATE_LIMITED once a client IP exceeds limit/burst.
//
// Each call owns its table, so a tighter instance can sit on /auth next to the
// global one. Idle clients are evicted until ctx is cancelled.
func RateLimit(ctx context.Context, limit rate.Limit, burst int) func(http.Handler) http.Handler {
	table := &visitorTable{limit: limit, burst: burst, visitors: make(map[string]*visitor)}

	go func() {
		ticker := time.NewTicker(constants.RateLimitCleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case now := <-ticker.C:
				table.evictIdle(now)
			case <-ctx.Done():
				return
			}
		}
	}()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if !table.allow(RealIP(request), time.Now()) {
				respond.Error(writer, request, apperr.RateLimited(retryAfterSeconds(limit)))
				return
			}
			next.ServeHTTP(writer, request)
		})
	}
}

// retryAfterSeconds is the time until one token refills, rounded up.
func retryAfterSeconds(limit rate.Limit) int {
	if limit <= 0 {
		return 60
	}
	return int(math.Ceil(1 / float64(limit)))
}
