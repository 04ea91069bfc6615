package api

import (
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/Domenick1991/hoteldesk/internal/domain"
	"github.com/Domenick1991/hoteldesk/internal/repository"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// StaffHeader carries the username of the acting staff member.
const StaffHeader = "X-Staff-User"

const actorKey = "actor"

// Actor resolves the acting staff user from StaffHeader. Unknown or inactive
// users are refused with 401.
func Actor(staff repository.StaffRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := strings.TrimSpace(c.GetHeader(StaffHeader))
		if username == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing " + StaffHeader + " header"})
			return
		}
		user, err := staff.GetByUsername(c.Request.Context(), username)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unknown staff user"})
				return
			}
			_ = c.Error(err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		if !user.Active {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "staff user is inactive"})
			return
		}
		c.Set(actorKey, *user)
		c.Next()
	}
}

func actorFrom(c *gin.Context) domain.StaffUser {
	if v, ok := c.Get(actorKey); ok {
		if u, ok := v.(domain.StaffUser); ok {
			return u
		}
	}
	return domain.StaffUser{}
}

// RequireRevenueAccess refuses roles that may not see financial aggregates.
func RequireRevenueAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !actorFrom(c).Role.CanViewRevenue() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "restricted to administrators", "kind": domain.KindForbidden})
			return
		}
		c.Next()
	}
}

// limiterIdleTTL bounds how long an unused bucket is kept.
const limiterIdleTTL = 10 * time.Minute

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per acting user, falling back to the
// client IP before the actor is known. Buckets idle for longer than idleTTL
// are swept on lookup.
type RateLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*limiterEntry
	rate      rate.Limit
	burst     int
	idleTTL   time.Duration
	lastSweep time.Time
	now       func() time.Time
	log       logrus.FieldLogger
}

func NewRateLimiter(rps float64, burst int, log logrus.FieldLogger) *RateLimiter {
	return &RateLimiter{
		limiters:  make(map[string]*limiterEntry),
		rate:      rate.Limit(rps),
		burst:     burst,
		idleTTL:   limiterIdleTTL,
		lastSweep: time.Now(),
		now:       time.Now,
		log:       log,
	}
}

func (rl *RateLimiter) limiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastSweep) >= rl.idleTTL {
		rl.sweep(now)
	}

	e, ok := rl.limiters[key]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.limiters[key] = e
	}
	e.lastSeen = now
	return e.limiter
}

// sweep drops idle buckets. Caller holds mu.
func (rl *RateLimiter) sweep(now time.Time) {
	for key, e := range rl.limiters {
		if now.Sub(e.lastSeen) >= rl.idleTTL {
			delete(rl.limiters, key)
		}
	}
	rl.lastSweep = now
}

func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := actorFrom(c).Username
		if key == "" {
			key = c.ClientIP()
		}
		if !rl.limiter(key).Allow() {
			rl.log.WithFields(logrus.Fields{"key": key, "path": c.FullPath()}).Warn("rate limit exceeded")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}

// RequestLogger logs one line per request and any error attached to it.
func RequestLogger(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		entry := log.WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.FullPath(),
			"status": c.Writer.Status(),
			"actor":  actorFrom(c).Username,
		})
		if len(c.Errors) > 0 {
			entry.WithError(c.Errors.Last()).Error("request failed")
			return
		}
		entry.Debug("request served")
	}
}
