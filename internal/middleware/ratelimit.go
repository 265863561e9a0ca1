package middleware

import (
	"net"
	"net/http"

	"emailform/pkg/ratelimit"

	"go.uber.org/zap"
)

const TooManyAttemptsMessage = "Too many attempts, please wait."

type RateLimitMiddleware struct {
	limiter *ratelimit.Limiter
	flashes *FlashStore
	logger  *zap.Logger
}

func NewRateLimitMiddleware(limiter *ratelimit.Limiter, flashes *FlashStore, logger *zap.Logger) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		limiter: limiter,
		flashes: flashes,
		logger:  logger,
	}
}

// Limit rejects submissions from a client over its attempt budget and
// sends it back to the form with an error message.
func (m *RateLimitMiddleware) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := ClientIP(r)
		if m.limiter.Allow(ip) {
			next.ServeHTTP(w, r)
			return
		}

		m.logger.Warn("submission rate limited", zap.String("client_ip", ip))
		flash := Flash{Kind: "error", Message: TooManyAttemptsMessage, Input: r.PostFormValue("email")}
		if err := m.flashes.AddFlash(w, r, flash); err != nil {
			m.logger.Error("failed to save flash", zap.Error(err))
		}
		http.Redirect(w, r, r.URL.Path, http.StatusSeeOther)
	})
}

func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
