package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/GregMSThompson/status-assistant/internal/errs"
	"github.com/GregMSThompson/status-assistant/internal/response"
)

const (
	defaultIdleTTL         = 10 * time.Minute
	defaultCleanupInterval = time.Minute
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type rateLimiter struct {
	mu              sync.Mutex
	visitors        map[string]*visitor
	rps             rate.Limit
	burst           int
	idleTTL         time.Duration
	cleanupInterval time.Duration
	lastCleanup     time.Time
	resp            response.ResponseHandler
	clockNow        func() time.Time
}

// NewRateLimiter keeps one token bucket per caller. Callers are keyed by the
// identity when the guard verified it against a domain, otherwise by remote
// address.
func NewRateLimiter(rps float64, burst int, resp response.ResponseHandler) *rateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &rateLimiter{
		visitors:        make(map[string]*visitor),
		rps:             rate.Limit(rps),
		burst:           burst,
		idleTTL:         defaultIdleTTL,
		cleanupInterval: defaultCleanupInterval,
		lastCleanup:     time.Now(),
		resp:            resp,
		clockNow:        time.Now,
	}
}

func (l *rateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.allow(callerKey(r)) {
			l.resp.HandleError(w, r, errs.NewRateLimitedError())
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (l *rateLimiter) allow(key string) bool {
	now := l.clockNow()

	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastCleanup) > l.cleanupInterval {
		l.evict(now)
		l.lastCleanup = now
	}

	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

// evict must be called with mu held.
func (l *rateLimiter) evict(now time.Time) {
	for key, v := range l.visitors {
		if now.Sub(v.lastSeen) > l.idleTTL {
			delete(l.visitors, key)
		}
	}
}

func callerKey(r *http.Request) string {
	if identity := Identity(r.Context()); identity != "" && IdentityVerified(r.Context()) {
		return "id:" + identity
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}
