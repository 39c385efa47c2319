package rateLimit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	redisstore "todo_service/internal/storage/redis"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/httprate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ok = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func hit(h http.Handler, remoteAddr string) int {
	req := httptest.NewRequest(http.MethodPost, "/api/register", nil)
	req.RemoteAddr = remoteAddr

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec.Code
}

func TestRegister_LimitsPerIP(t *testing.T) {
	h := New(nil).Register()(ok)

	for i := 0; i < 5; i++ {
		require.Equal(t, http.StatusOK, hit(h, "192.0.2.1:1234"), "request %d", i+1)
	}

	assert.Equal(t, http.StatusTooManyRequests, hit(h, "192.0.2.1:1234"))
	assert.Equal(t, http.StatusOK, hit(h, "192.0.2.2:1234"))
}

func TestLimitHandler_WritesJSON(t *testing.T) {
	h := New(nil).Register()(ok)

	for i := 0; i < 5; i++ {
		hit(h, "192.0.2.1:1234")
	}

	req := httptest.NewRequest(http.MethodPost, "/api/register", nil)
	req.RemoteAddr = "192.0.2.1:1234"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.JSONEq(t, `{"msg":"Too many requests"}`, rec.Body.String())
}

func TestLogin_SharedRedisCounters(t *testing.T) {
	mr := miniredis.RunT(t)

	repo, err := redisstore.New(context.Background(), mr.Addr(), "", 0)
	require.NoError(t, err)
	t.Cleanup(repo.Close)

	factory := func(name string) httprate.LimitCounter { return repo.LimitCounter(name) }

	// Two replicas behind a load balancer.
	first := New(factory).Login()(ok)
	second := New(factory).Login()(ok)

	for i := 0; i < 10; i++ {
		h := first
		if i%2 == 1 {
			h = second
		}
		require.Equal(t, http.StatusOK, hit(h, "198.51.100.7:4000"), "request %d", i+1)
	}

	assert.Equal(t, http.StatusTooManyRequests, hit(first, "198.51.100.7:4000"))
	assert.Equal(t, http.StatusTooManyRequests, hit(second, "198.51.100.7:4000"))
}
