package stealth

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testUA = "Mozilla/5.0 test"

func robotsServer(t *testing.T, body string, hits *atomic.Int64) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		hits.Add(1)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRobotsCheckerAllowsAndDenies(t *testing.T) {
	var hits atomic.Int64
	srv := robotsServer(t, "User-agent: *\nDisallow: /maps/org/\n", &hits)

	rc := NewRobotsChecker(srv.Client(), true)

	allowed, err := rc.IsAllowed(testUA, srv.URL+"/maps/org/x/123456/")
	require.NoError(t, err)
	assert.False(t, allowed)

	allowed, err = rc.IsAllowed(testUA, srv.URL+"/search")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestRobotsCheckerCachesPerDomain(t *testing.T) {
	var hits atomic.Int64
	srv := robotsServer(t, "User-agent: *\nAllow: /\n", &hits)

	rc := NewRobotsChecker(srv.Client(), true)
	for i := 0; i < 5; i++ {
		_, err := rc.IsAllowed(testUA, srv.URL+"/page")
		require.NoError(t, err)
	}
	assert.Equal(t, int64(1), hits.Load())
}

func TestRobotsCheckerDisabledAlwaysAllows(t *testing.T) {
	rc := NewRobotsChecker(nil, false)
	allowed, err := rc.IsAllowed(testUA, "https://example.com/anything")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestRobotsCheckerUnreachableAllows(t *testing.T) {
	rc := NewRobotsChecker(&http.Client{}, true)
	allowed, err := rc.IsAllowed(testUA, "http://127.0.0.1:1/x")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestHumanDelayJitterBounds(t *testing.T) {
	h := NewHumanDelay(ProfileAggressive)
	for i := 0; i < 100; i++ {
		j := h.Jitter()
		assert.GreaterOrEqual(t, j, time.Duration(0))
		assert.Less(t, j, h.MaxDelay-h.MinDelay)
	}
}
