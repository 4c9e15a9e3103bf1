package http_test

import (
	"net/http"
	"testing"
	"time"

	"collectrent/internal/security"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func TestAuthMiddleware(t *testing.T) {
	t.Run("MissingToken", func(t *testing.T) {
		s := newTestServer()

		rec := s.do(t, http.MethodGet, "/v1/rentals", "", nil)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("GarbageToken", func(t *testing.T) {
		s := newTestServer()

		rec := s.do(t, http.MethodGet, "/v1/rentals", "not.a.jwt", nil)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("ExpiredToken", func(t *testing.T) {
		s := newTestServer()
		expired := security.NewTokenManager(testSecret, -time.Minute)
		token, err := expired.GenerateAccessToken(uuid.New(), "")
		assert.NoError(t, err)

		rec := s.do(t, http.MethodGet, "/v1/rentals", token, nil)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		s := newTestServer()
		other := security.NewTokenManager("another-secret-key-that-is-long-enough", time.Hour)
		token, err := other.GenerateAccessToken(uuid.New(), "")
		assert.NoError(t, err)

		rec := s.do(t, http.MethodGet, "/v1/rentals", token, nil)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("PublicRoutesNeedNoToken", func(t *testing.T) {
		s := newTestServer()

		rec := s.do(t, http.MethodGet, "/v1/health", "", nil)
		assert.Equal(t, http.StatusOK, rec.Code)

		rec = s.do(t, http.MethodGet, "/v1/tick", "", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		var got struct {
			Tick uint64 `json:"tick"`
		}
		decodeBody(t, rec, &got)
		assert.Equal(t, uint64(testTick), got.Tick)
	})

	t.Run("UnknownRouteIs404", func(t *testing.T) {
		s := newTestServer()

		rec := s.do(t, http.MethodGet, "/v1/nope", "", nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestRateLimit(t *testing.T) {
	// One request per hour with a burst of one: the second request in
	// the test must be rejected.
	s := newTestServerWithLimiter(rate.NewLimiter(rate.Every(time.Hour), 1))

	rec := s.do(t, http.MethodGet, "/v1/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/v1/health", "", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}
