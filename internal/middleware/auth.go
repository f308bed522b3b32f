package middleware

import (
	"context"
	"strings"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// SessionChecker is the liveness slice of the authentication facade.
type SessionChecker interface {
	IsSessionLive(ctx context.Context, userID, token string) (bool, error)
}

// SessionAuth gates requests on a live (user, token) session. The caller
// identifies itself with an X-User-ID header plus a bearer token; a dead or
// missing session yields 401 and storage failures yield 503.
func SessionAuth(checker SessionChecker, logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			userID := string(ctx.Request.Header.Peek("X-User-ID"))
			token := extractToken(ctx)
			if userID == "" || token == "" {
				ctx.SetStatusCode(fasthttp.StatusUnauthorized)
				return
			}

			live, err := checker.IsSessionLive(ctx, userID, token)
			if err != nil {
				logger.Error("session check failed", zap.Error(err))
				ctx.SetStatusCode(fasthttp.StatusServiceUnavailable)
				return
			}
			if !live {
				ctx.SetStatusCode(fasthttp.StatusUnauthorized)
				return
			}

			next(ctx)
		}
	}
}

func extractToken(ctx *fasthttp.RequestCtx) string {
	header := string(ctx.Request.Header.Peek("Authorization"))
	if header == "" {
		return ""
	}
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return header
}
