// Copyright (c) 2026 Odrzavanje. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/taibuivan/odrzavanje/internal/platform/apperr"
	"github.com/taibuivan/odrzavanje/internal/platform/ctxutil"
	"github.com/taibuivan/odrzavanje/internal/platform/respond"
)

// PanicRecovery logs a panic with its stack and answers with the standard
// INTERNAL_ERROR envelope. logger is used when no request logger is present.
func PanicRecovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			defer func() {
				recovered := recover()
				if recovered == nil {
					return
				}

				log := logger
				if scoped := ctxutil.GetLogger(request.Context()); scoped != slog.Default() {
					log = scoped
				}
				log.ErrorContext(request.Context(), "panic_recovered",
					slog.Any("panic", recovered),
					slog.String("stack", string(debug.Stack())),
				)

				respond.Error(writer, request, apperr.Internal(fmt.Errorf("panic: %v", recovered)))
			}()

			next.ServeHTTP(writer, request)
		})
	}
}
