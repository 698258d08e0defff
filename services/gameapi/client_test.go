package gameapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testClient(baseURL string) baseClient {
	c := newBaseClient(baseURL, "test-key", "X-Test-Token")
	c.retryDelay = time.Millisecond
	return c
}

func TestGetRetriesRateLimitThenSucceeds(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		assert.Equal(t, "test-key", r.Header.Get("X-Test-Token"))
		if attempts <= 2 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	c := testClient(server.URL)
	resp := c.get("/players/1", nil)

	assert.Equal(t, 3, attempts)
	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Empty(t, resp.Error)
	assert.JSONEq(t, `{"ok":true}`, string(resp.Data))
}

func TestGetDoesNotRetryClientErrors(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	c := testClient(server.URL)
	resp := c.get("/players/unknown", nil)

	assert.Equal(t, 1, attempts, "4xx answers are final")
	assert.Equal(t, http.StatusNotFound, resp.Status)
	assert.NotEmpty(t, resp.Error)
	assert.Nil(t, resp.Data)
}

func TestGetExhaustsRetriesOnServerErrors(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	c := testClient(server.URL)
	resp := c.get("/leaderboard", nil)

	assert.Equal(t, c.maxRetries+1, attempts)
	assert.Equal(t, http.StatusServiceUnavailable, resp.Status)
	assert.NotEmpty(t, resp.Error)
}

func TestGetNormalizesTransportErrors(t *testing.T) {
	c := testClient("http://127.0.0.1:1") // nothing listens here
	resp := c.get("/players/1", nil)

	assert.Zero(t, resp.Status)
	assert.NotEmpty(t, resp.Error)
	assert.Nil(t, resp.Data)
}
