package httpserver_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpserver "hotels_api/internal/adapters/http_server"
	redisad "hotels_api/internal/adapters/redis"
	"hotels_api/internal/auth"
)

type failingStore struct{}

func (failingStore) UserIDForToken(context.Context, string) (int64, error) {
	return 0, errors.New("redis: connection refused")
}

func echoUser() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := httpserver.UserIDFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusTeapot)
			return
		}
		_, _ = w.Write([]byte(strconv.FormatInt(id, 10)))
	})
}

func TestAuthenticator_RedisSessions(t *testing.T) {
	mr := miniredis.RunT(t)
	sessions := redisad.New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = sessions.Close() })
	signer := auth.NewSigner("secret", time.Hour)
	h := httpserver.NewAuthenticator(signer, sessions, "redis").Middleware(echoUser())

	tok, err := signer.Issue(21)
	require.NoError(t, err)
	stranger, err := signer.Issue(22)
	require.NoError(t, err)
	require.NoError(t, sessions.Put(context.Background(), tok, 21, time.Hour))
	require.NoError(t, sessions.Put(context.Background(), stranger, 99, time.Hour))

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{name: "ok", header: "Bearer " + tok, status: http.StatusOK, body: "21"},
		{name: "trailing space", header: "Bearer " + tok + " ", status: http.StatusOK, body: "21"},
		{name: "lowercase scheme", header: "bearer " + tok, status: http.StatusOK, body: "21"},
		{name: "missing", header: "", status: http.StatusUnauthorized},
		{name: "basic scheme", header: "Basic " + tok, status: http.StatusUnauthorized},
		{name: "no token", header: "Bearer ", status: http.StatusUnauthorized},
		{name: "garbage", header: "Bearer XXXX", status: http.StatusUnauthorized},
		{name: "session of other user", header: "Bearer " + stranger, status: http.StatusUnauthorized},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/hotels", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			assert.Equal(t, tc.status, rr.Code)
			if tc.body != "" {
				assert.Equal(t, tc.body, rr.Body.String())
			}
		})
	}

	t.Run("revoked session", func(t *testing.T) {
		require.NoError(t, sessions.Delete(context.Background(), tok))
		req := httptest.NewRequest(http.MethodGet, "/hotels", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestAuthenticator_StoreFailureIs500(t *testing.T) {
	signer := auth.NewSigner("secret", time.Hour)
	tok, err := signer.Issue(1)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/hotels", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rr := httptest.NewRecorder()
	httpserver.NewAuthenticator(signer, failingStore{}, "redis").Middleware(echoUser()).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "application/problem+json", rr.Header().Get("Content-Type"))
}
