package rateLimit

import (
	"net/http"
	"time"

	resp "todo_service/internal/lib/api/response"

	"github.com/go-chi/httprate"
	"github.com/go-chi/render"
)

// CounterFactory returns a fresh counter for the named limiter. httprate
// configures every counter with its own limit and window, so limiters must
// not share one.
type CounterFactory func(name string) httprate.LimitCounter

type Limiter struct {
	newCounter CounterFactory
}

// New builds limiters backed by newCounter, or by httprate's in-process
// counter when newCounter is nil.
func New(newCounter CounterFactory) *Limiter {
	return &Limiter{newCounter: newCounter}
}

func (l *Limiter) Login() func(http.Handler) http.Handler {
	return l.limitByIP("login", 10, 5*time.Minute)
}

func (l *Limiter) Register() func(http.Handler) http.Handler {
	return l.limitByIP("register", 5, time.Hour)
}

func (l *Limiter) limitByIP(name string, limit int, window time.Duration) func(http.Handler) http.Handler {
	opts := []httprate.Option{
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(tooManyRequests),
	}

	if l.newCounter != nil {
		opts = append(opts, httprate.WithLimitCounter(l.newCounter(name)))
	}

	return httprate.Limit(limit, window, opts...)
}

func tooManyRequests(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusTooManyRequests)
	render.JSON(w, r, resp.Error("Too many requests"))
}
