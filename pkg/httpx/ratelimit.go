package httpx

import (
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/zancompute/zanconfig/pkg/slogx"
	"golang.org/x/time/rate"
)

// RateLimitConfig is a token bucket: RequestsPerWindow tokens refill over
// Window and at most Burst are held at once.
type RateLimitConfig struct {
	RequestsPerWindow int
	Window            time.Duration
	Burst             int
}

// Limit returns the refill rate in tokens per second.
func (c RateLimitConfig) Limit() rate.Limit {
	if c.Window <= 0 {
		return rate.Inf
	}
	return rate.Limit(float64(c.RequestsPerWindow) / c.Window.Seconds())
}

// Profiles used by the console routes. Each can be overridden with
// RATELIMIT_<NAME>_REQUESTS, RATELIMIT_<NAME>_WINDOW_SEC and
// RATELIMIT_<NAME>_BURST.
var (
	// StrictLimit guards login, registration and password changes.
	StrictLimit = RateLimitConfig{RequestsPerWindow: 5, Window: time.Minute, Burst: 5}

	// ModerateLimit guards record writes and exports.
	ModerateLimit = RateLimitConfig{RequestsPerWindow: 20, Window: time.Minute, Burst: 20}

	// LenientLimit guards page views and health probes.
	LenientLimit = RateLimitConfig{RequestsPerWindow: 100, Window: time.Minute, Burst: 100}

	// PublicLimit guards the dashboard poll.
	PublicLimit = RateLimitConfig{RequestsPerWindow: 1000, Window: time.Minute, Burst: 1000}
)

func init() {
	StrictLimit = ParseRateLimitFromEnv("STRICT", StrictLimit)
	ModerateLimit = ParseRateLimitFromEnv("MODERATE", ModerateLimit)
	LenientLimit = ParseRateLimitFromEnv("LENIENT", LenientLimit)
	PublicLimit = ParseRateLimitFromEnv("PUBLIC", PublicLimit)
}

// ParseRateLimitFromEnv overlays RATELIMIT_<prefix>_* variables on def.
// Missing, malformed and non-positive values keep the default.
func ParseRateLimitFromEnv(prefix string, def RateLimitConfig) RateLimitConfig {
	positive := func(name string) (int, bool) {
		n, err := strconv.Atoi(os.Getenv("RATELIMIT_" + prefix + "_" + name))
		return n, err == nil && n > 0
	}

	cfg := def
	if n, ok := positive("REQUESTS"); ok {
		cfg.RequestsPerWindow = n
	}
	if n, ok := positive("WINDOW_SEC"); ok {
		cfg.Window = time.Duration(n) * time.Second
	}
	if n, ok := positive("BURST"); ok {
		cfg.Burst = n
	}
	return cfg
}

// KeyExtractor names the bucket a request draws from. An empty key skips
// limiting for that request.
type KeyExtractor func(*http.Request) string

// IPKeyExtractor returns the caller's address, preferring the first
// X-Forwarded-For hop, then X-Real-IP, then the connection's peer.
func IPKeyExtractor(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// UserKeyExtractor returns the signed-in operator, or "" when anonymous.
func UserKeyExtractor(r *http.Request) string {
	return UserFromContext(r.Context())
}

// FormFieldKeyExtractor returns the named query or form value.
func FormFieldKeyExtractor(field string) KeyExtractor {
	return func(r *http.Request) string {
		if err := r.ParseForm(); err != nil {
			return ""
		}
		return r.FormValue(field)
	}
}

// CompositeKeyExtractor joins the non-empty keys of extractors with sep,
// e.g. "alice:192.168.1.1".
func CompositeKeyExtractor(sep string, extractors ...KeyExtractor) KeyExtractor {
	return func(r *http.Request) string {
		parts := make([]string, 0, len(extractors))
		for _, extract := range extractors {
			if key := extract(r); key != "" {
				parts = append(parts, key)
			}
		}
		return strings.Join(parts, sep)
	}
}

// buckets holds one limiter per key and drops those left idle for longer
// than a full refill.
type buckets struct {
	cfg RateLimitConfig

	mu        sync.Mutex
	byKey     map[string]*bucket
	lastSweep time.Time
	now       func() time.Time
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newBuckets(cfg RateLimitConfig) *buckets {
	return &buckets{
		cfg:       cfg,
		byKey:     make(map[string]*bucket),
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

// take consumes a token for key. When none is left it reports how long
// until the next one.
func (b *buckets) take(key string) (bool, time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	b.sweep(now)

	bk, ok := b.byKey[key]
	if !ok {
		bk = &bucket{limiter: rate.NewLimiter(b.cfg.Limit(), b.cfg.Burst)}
		b.byKey[key] = bk
	}
	bk.lastSeen = now

	if bk.limiter.AllowN(now, 1) {
		return true, 0
	}

	res := bk.limiter.ReserveN(now, 1)
	delay := res.DelayFrom(now)
	res.CancelAt(now)
	return false, delay
}

func (b *buckets) sweep(now time.Time) {
	idle := max(b.cfg.Window, time.Minute)
	if now.Sub(b.lastSweep) < idle {
		return
	}
	b.lastSweep = now

	for key, bk := range b.byKey {
		if now.Sub(bk.lastSeen) >= idle {
			delete(b.byKey, key)
		}
	}
}

// RejectFunc writes the response for a request that exceeded its limit.
type RejectFunc func(w http.ResponseWriter, r *http.Request, retryAfter int)

// DefaultReject answers JSON callers with a JSON error and browsers with a
// short plain-text page.
func DefaultReject(w http.ResponseWriter, r *http.Request, retryAfter int) {
	if WantsJSON(r) {
		WriteJSON(w, http.StatusTooManyRequests, map[string]string{
			"error": "Too many requests. Please try again later.",
		})
		return
	}

	NoCache(w)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusTooManyRequests)
	_, _ = w.Write([]byte("Too many requests. Please try again later.\n"))
}

// RateLimitMiddleware limits requests per key. The first RejectFunc given,
// if any, replaces DefaultReject.
func RateLimitMiddleware(cfg RateLimitConfig, keyFor KeyExtractor, reject ...RejectFunc) Middleware {
	limits := newBuckets(cfg)

	onReject := RejectFunc(DefaultReject)
	if len(reject) > 0 && reject[0] != nil {
		onReject = reject[0]
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := keyFor(r)
			if key == "" {
				slogx.FromContext(r.Context()).Warn("rate limit: no key for request, allowing")
				next.ServeHTTP(w, r)
				return
			}

			ok, delay := limits.take(key)
			if ok {
				next.ServeHTTP(w, r)
				return
			}

			retryAfter := max(int(delay.Round(time.Second).Seconds()), 1)
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.RequestsPerWindow))
			w.Header().Set("X-RateLimit-Window", cfg.Window.String())

			slogx.FromContext(r.Context()).Warn("rate limit exceeded",
				"key", key,
				"path", r.URL.Path,
				"retry_after", retryAfter,
			)
			onReject(w, r, retryAfter)
		})
	}
}

// RateLimitByIP limits by caller address.
func RateLimitByIP(cfg RateLimitConfig) Middleware {
	return RateLimitMiddleware(cfg, IPKeyExtractor)
}

// RateLimitByUser limits by signed-in operator plus caller address.
func RateLimitByUser(cfg RateLimitConfig) Middleware {
	return RateLimitMiddleware(cfg, CompositeKeyExtractor(":", UserKeyExtractor, IPKeyExtractor))
}

// RateLimitByIPAndFormField limits by caller address plus a form value,
// such as the username of a login attempt.
func RateLimitByIPAndFormField(cfg RateLimitConfig, field string, reject ...RejectFunc) Middleware {
	return RateLimitMiddleware(cfg, CompositeKeyExtractor(":", IPKeyExtractor, FormFieldKeyExtractor(field)), reject...)
}
