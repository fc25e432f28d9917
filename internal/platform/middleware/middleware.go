// Copyright (c) 2026 Odrzavanje. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package middleware holds the HTTP decorators mounted by the API server.

Global chain, outermost first:

  - RequestID: correlation id in context and response header.
  - StructuredLogger: one line per request, request logger in context.
  - RateLimit: per-IP token bucket; a stricter instance guards /auth.
  - PanicRecovery: turns a panic into the standard 500 envelope.
  - CORS: origin allow-list, open in development.

Authenticate, IdentifyCaller, RequireAuth and RequireRole are mounted per
route group by the handlers that read token claims.
*/
package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/taibuivan/odrzavanje/internal/platform/constants"
)

// RealIP returns the client address used for rate limiting and logs.
// X-Real-IP wins over the first X-Forwarded-For hop, which wins over RemoteAddr.
func RealIP(request *http.Request) string {
	if ip := strings.TrimSpace(request.Header.Get(constants.HeaderXRealIP)); ip != "" {
		return ip
	}

	if forwarded := request.Header.Get(constants.HeaderXForwardedFor); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}

	if host, _, err := net.SplitHostPort(request.RemoteAddr); err == nil {
		return host
	}
	return request.RemoteAddr
}
