package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/vendhub/vendhub-backend/api/responses"
	pkgerrors "github.com/vendhub/vendhub-backend/pkg/errors"
	"github.com/vendhub/vendhub-backend/pkg/logger"
)

type rateLimiterStore interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

// UploadRateLimitPolicy defines the per-IP throttle for upload traffic.
type UploadRateLimitPolicy struct {
	name   string
	window time.Duration
	limit  int64
}

// NewUploadRateLimitPolicy builds a policy with the supplied window and limit.
func NewUploadRateLimitPolicy(name string, window time.Duration, limit int64) UploadRateLimitPolicy {
	return UploadRateLimitPolicy{
		name:   strings.ToLower(strings.TrimSpace(name)),
		window: window,
		limit:  limit,
	}
}

func (p UploadRateLimitPolicy) enabled() bool {
	return p.window > 0 && p.limit > 0
}

func (p UploadRateLimitPolicy) normalizedName() string {
	if p.name == "" {
		return "uploads"
	}
	return p.name
}

// UploadRateLimit enforces a fixed-window per-IP counter. Batch imports are
// heavy; a browser retry loop must not queue dozens of them.
func UploadRateLimit(policy UploadRateLimitPolicy, store rateLimiterStore, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !policy.enabled() || store == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			ip := clientIP(r)
			scope := policy.normalizedName() + ":" + ip
			allowed, count, err := store.FixedWindowAllow(ctx, scope, policy.limit, policy.window)
			if err != nil {
				responses.WriteError(ctx, nil, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate limiting"))
				return
			}
			if !allowed {
				if logg != nil {
					logCtx := logg.WithFields(ctx, map[string]any{
						"policy":         policy.normalizedName(),
						"ip":             ip,
						"attempts":       count,
						"limit":          policy.limit,
						"window_seconds": int(policy.window.Seconds()),
					})
					logg.Warn(logCtx, "upload.rate_limit.blocked")
				}
				responses.WriteError(ctx, nil, w, pkgerrors.New(pkgerrors.CodeRateLimit, "rate limit exceeded"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	if header := r.Header.Get("X-Forwarded-For"); header != "" {
		for _, part := range strings.Split(header, ",") {
			if ip := strings.TrimSpace(part); ip != "" {
				return ip
			}
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}
