package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// DefaultLimiterIdleTTL — время, после которого неактивный ограничитель клиента удаляется.
const DefaultLimiterIdleTTL = 3 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ClientRateLimiter хранит отдельный ограничитель частоты запросов для каждого клиента.
// Ограничители, к которым не обращались дольше idleTTL, удаляются при очередном обращении.
type ClientRateLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*clientLimiter
	r         rate.Limit
	b         int
	idleTTL   time.Duration
	lastSweep time.Time
	now       func() time.Time
}

// NewClientRateLimiter создаёт ограничитель с частотой r запросов в секунду и всплеском b.
func NewClientRateLimiter(r rate.Limit, b int) *ClientRateLimiter {
	return &ClientRateLimiter{
		limiters: make(map[string]*clientLimiter),
		r:        r,
		b:        b,
		idleTTL:  DefaultLimiterIdleTTL,
		now:      time.Now,
	}
}

// GetLimiter возвращает ограничитель для клиента, создавая его при первом обращении.
func (l *ClientRateLimiter) GetLimiter(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= l.idleTTL {
		l.sweep(now)
	}

	cl, ok := l.limiters[key]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(l.r, l.b)}
		l.limiters[key] = cl
	}
	cl.lastSeen = now
	return cl.limiter
}

// Len возвращает количество отслеживаемых клиентов.
func (l *ClientRateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}

func (l *ClientRateLimiter) sweep(now time.Time) {
	for key, cl := range l.limiters {
		if now.Sub(cl.lastSeen) >= l.idleTTL {
			delete(l.limiters, key)
		}
	}
	l.lastSweep = now
}

// RateLimiter возвращает middleware, ограничивающее частоту запросов с одного адреса.
// Нулевая частота отключает ограничение.
// Ключ клиента — адрес TCP-соединения, поэтому middleware подключается до RealIP:
// заголовки X-Real-IP и X-Forwarded-For задаёт сам клиент.
func RateLimiter(perSecond float64) func(http.Handler) http.Handler {
	if perSecond <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	burst := int(perSecond)
	if burst < 1 {
		burst = 1
	}
	limiter := NewClientRateLimiter(rate.Limit(perSecond), burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.GetLimiter(clientKey(r)).Allow() {
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
