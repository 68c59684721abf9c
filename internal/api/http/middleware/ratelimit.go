package middleware

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/dtroode/tasktracker-server/internal/api/http/response"
	"github.com/dtroode/tasktracker-server/internal/apierror"
	"github.com/dtroode/tasktracker-server/internal/logger"
	"github.com/dtroode/tasktracker-server/internal/model"
)

// RateLimit throttles requests per client address.
type RateLimit struct {
	limiter model.RateLimiter
	scope   string
	logger  *logger.Logger
}

// NewRateLimit creates a RateLimit middleware. Keys are namespaced by scope so
// that separate routes keep separate budgets.
func NewRateLimit(limiter model.RateLimiter, scope string, logger *logger.Logger) *RateLimit {
	return &RateLimit{limiter: limiter, scope: scope, logger: logger}
}

// Handle admits the request or answers 429. A limiter failure admits the
// request.
func (m *RateLimit) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		result, err := m.limiter.Allow(r.Context(), m.scope+":"+ip)
		if err != nil {
			m.logger.Warn("Rate limit middleware: limiter unavailable, allowing request",
				"ip", ip,
				"scope", m.scope,
				"error", err.Error())
			next.ServeHTTP(w, r)
			return
		}

		h := w.Header()
		h.Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
		h.Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
		h.Set("X-RateLimit-Reset", seconds(result.Reset))

		if !result.Allowed {
			h.Set("Retry-After", seconds(result.RetryAfter))

			m.logger.Info("Rate limit middleware: request throttled",
				"ip", ip,
				"scope", m.scope,
				"retry_after", result.RetryAfter.String())
			response.Error(w, r, m.logger, apierror.NewErrRateLimited())
			return
		}

		next.ServeHTTP(w, r)
	})
}

// seconds rounds d up to whole seconds.
func seconds(d time.Duration) string {
	return strconv.Itoa(int(math.Ceil(d.Seconds())))
}

// clientIP returns the host part of RemoteAddr. When the server trusts a
// proxy, RealIP has already rewritten RemoteAddr from forwarding headers.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
